package sigcache

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/gridedge/gsub/pkg/guid"
	"github.com/gridedge/gsub/pkg/protoerr"
	"github.com/gridedge/gsub/pkg/wire"
)

// Parse decodes an UpdateSignalIndexCache payload into a slice of
// entries, ready for Cache.Load. If compressed is true, payload is
// unwrapped from GZip first. The trailing "unauthorized signal IDs"
// section is ignored, per spec.
func Parse(payload []byte, compressed bool) ([]Entry, error) {
	if compressed {
		r, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, protoerr.NewProtocolError("sigcache", "gzip header: %v", err)
		}
		defer r.Close()
		decompressed, err := io.ReadAll(r)
		if err != nil {
			return nil, protoerr.NewProtocolError("sigcache", "gzip body: %v", err)
		}
		payload = decompressed
	}

	const headerSize = 4 + 16 + 4 // length + subscriberID + referenceCount
	if len(payload) < headerSize {
		return nil, protoerr.NewProtocolError("sigcache", "payload too short for header: %d bytes", len(payload))
	}

	pos := 0
	_ = wire.Uint32BE(payload[pos:]) // declared length, unused: io.ReadAll already gave us the exact bytes
	pos += 4
	pos += 16 // subscriberID, unused
	referenceCount := wire.Uint32BE(payload[pos:])
	pos += 4

	entries := make([]Entry, 0, referenceCount)
	for i := uint32(0); i < referenceCount; i++ {
		if pos+2+16+4 > len(payload) {
			return nil, protoerr.NewProtocolError("sigcache", "truncated entry %d/%d", i, referenceCount)
		}
		signalIndex := wire.Uint16BE(payload[pos:])
		pos += 2

		var guidBytes [16]byte
		copy(guidBytes[:], payload[pos:pos+16])
		pos += 16
		signalID := guid.FromWireBytes(guidBytes)

		sourceSize := wire.Uint32BE(payload[pos:])
		pos += 4
		if pos+int(sourceSize)+4 > len(payload) {
			return nil, protoerr.NewProtocolError("sigcache", "truncated source/id for entry %d/%d", i, referenceCount)
		}
		source := string(payload[pos : pos+int(sourceSize)])
		pos += int(sourceSize)

		id := wire.Uint32BE(payload[pos:])
		pos += 4

		entries = append(entries, Entry{
			SignalIndex: signalIndex,
			SignalID:    signalID,
			Source:      source,
			ID:          id,
		})
	}

	// Remaining bytes describe unauthorized signal IDs; opaque, ignored.
	return entries, nil
}
