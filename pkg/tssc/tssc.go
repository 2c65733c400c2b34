// Package tssc implements the stateful, predictive TSSC measurement
// codec and its sequence-number reset/resync protocol. Unlike the
// compact format (pkg/compact), each point is encoded relative to the
// previous value, quality and timestamp seen for that same signal
// index, which is why the decoder must be long-lived for a connection
// rather than constructed fresh per packet.
package tssc

import (
	"math"

	"github.com/gridedge/gsub/pkg/protoerr"
	"github.com/gridedge/gsub/pkg/wire"
)

// Point is a single decoded TSSC measurement, keyed by the raw
// signalIndex; resolving it against the SignalIndexCache is the
// dispatcher's job, not the decoder's.
type Point struct {
	PointID   uint16
	Timestamp int64
	Quality   uint32
	Value     float32
}

type pointState struct {
	lastValueBits uint32
	lastQuality   uint32
	lastTimestamp int64
	lastTimeDelta int64
}

// Decoder holds the per-connection predictive state and sequence
// tracking for TSSC packets. The zero value is not ready to use; call
// NewDecoder.
type Decoder struct {
	expected         uint16
	resetRequested   bool
	points           map[uint16]*pointState
	lastCodedPointID uint16
}

// NewDecoder returns a Decoder in its post-reset state, as if a reset
// had already been observed.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.reset()
	return d
}

// RequestReset marks that the caller (SubscriptionEngine, on every
// (re)subscribe) expects the next packet's sequence-zero reset, so
// observing it is not reported as an unsolicited status event.
func (d *Decoder) RequestReset() {
	d.resetRequested = true
}

func (d *Decoder) reset() {
	d.points = make(map[uint16]*pointState)
	d.expected = 0
	d.lastCodedPointID = 0
}

// Decode parses one TSSC packet: a 1-byte version, a 2-byte big-endian
// sequence number, and a bit-packed body. It returns the decoded
// points, whether this packet carried an unsolicited reset (the caller
// should emit a status message in that case, not an error), and an
// error.
//
// On a *protoerr.SequenceError the packet is dropped: the caller must
// not surface partial points and must wait for the next reset before
// decoding resumes. A failure while decoding the body is a
// *protoerr.DecodeError and terminates only the current packet; the
// sequence counter still advances since version and sequence framing
// were valid.
func (d *Decoder) Decode(packet []byte) (points []Point, unsolicitedReset bool, err error) {
	const headerSize = 1 + 2
	if len(packet) < headerSize {
		return nil, false, protoerr.NewProtocolError("tssc", "packet too short: %d bytes", len(packet))
	}
	version := packet[0]
	if version != wire.TSSCVersion {
		return nil, false, protoerr.NewProtocolError("tssc", "version byte %#x, want %#x", version, wire.TSSCVersion)
	}
	seq := wire.Uint16BE(packet[1:3])
	body := packet[headerSize:]

	switch {
	case seq == 0 && d.expected > 0:
		unsolicitedReset = !d.resetRequested
		d.reset()
		d.resetRequested = false
	case seq != d.expected:
		return nil, false, &protoerr.SequenceError{Expected: d.expected, Received: seq}
	default:
		d.resetRequested = false
	}

	r := newBitReader(body)
	for !r.exhausted() {
		pt, ok, decErr := d.decodeOne(r)
		if decErr != nil {
			d.expected = nextSequence(seq)
			return points, unsolicitedReset, &protoerr.DecodeError{Context: "tssc", Err: decErr}
		}
		if !ok {
			break
		}
		points = append(points, pt)
	}

	d.expected = nextSequence(seq)
	return points, unsolicitedReset, nil
}

func nextSequence(seq uint16) uint16 {
	if seq == 0xFFFF {
		return 1
	}
	return seq + 1
}

func (d *Decoder) decodeOne(r *bitReader) (Point, bool, error) {
	deltaU, ok := readVarint(r)
	if !ok {
		return Point{}, false, nil
	}
	delta := unzigzag(deltaU)
	pointID := uint16(int64(d.lastCodedPointID) + delta)
	d.lastCodedPointID = pointID

	state, ok := d.points[pointID]
	if !ok {
		state = &pointState{}
		d.points[pointID] = state
	}

	valueChanged, ok := r.readBit()
	if !ok {
		return Point{}, false, errShortRead("value flag")
	}
	valueBits := state.lastValueBits
	if valueChanged {
		xu, ok := readVarint(r)
		if !ok {
			return Point{}, false, errShortRead("value")
		}
		valueBits ^= uint32(xu)
	}
	state.lastValueBits = valueBits

	qualityChanged, ok := r.readBit()
	if !ok {
		return Point{}, false, errShortRead("quality flag")
	}
	quality := state.lastQuality
	if qualityChanged {
		qu, ok := readVarint(r)
		if !ok {
			return Point{}, false, errShortRead("quality")
		}
		quality = uint32(qu)
	}
	state.lastQuality = quality

	timeExplicit, ok := r.readBit()
	if !ok {
		return Point{}, false, errShortRead("timestamp flag")
	}
	var timestamp int64
	if timeExplicit {
		tu, ok := readVarint(r)
		if !ok {
			return Point{}, false, errShortRead("timestamp")
		}
		delta := unzigzag(tu)
		timestamp = state.lastTimestamp + delta
		state.lastTimeDelta = delta
	} else {
		timestamp = state.lastTimestamp + state.lastTimeDelta
	}
	state.lastTimestamp = timestamp

	return Point{
		PointID:   pointID,
		Timestamp: timestamp,
		Quality:   quality,
		Value:     math.Float32frombits(valueBits),
	}, true, nil
}
