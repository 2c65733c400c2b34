// Package compact decodes the uncompressed ("compact") DataPacket
// payload format: a flat sequence of fixed-shape measurement records,
// as opposed to the stateful TSSC format handled by pkg/tssc.
package compact

import (
	"github.com/gridedge/gsub/pkg/protoerr"
	"github.com/gridedge/gsub/pkg/wire"
)

// Quality values. OK is the default applied whenever a measurement
// carries no explicit quality information.
const (
	QualityOK        uint32 = 0
	QualityDiscarded uint32 = 1 << 0
	QualityCalculated uint32 = 1 << 1
)

// ticksPerMillisecond converts a millisecond-resolution base-time
// offset to the wire format's 100-ns ticks.
const ticksPerMillisecond = 10_000

// Measurement is a single decoded point: the signalIndex it was received
// under (not yet resolved against the SignalIndexCache), a reconstructed
// absolute timestamp, a quality bitmask, and the value.
type Measurement struct {
	SignalIndex uint16
	Timestamp   int64
	Quality     uint32
	Value       float32
}

// BaseTimeOffsets holds the two rolling base-time offsets maintained by
// UpdateBaseTimes responses, plus which of them is presently active.
type BaseTimeOffsets struct {
	Offsets     [2]int64
	ActiveIndex int32
}

// ParseDataPacketHeader reads the header shared by both DataPacket
// codecs: an optional frame-level timestamp (present when flags
// carries Synchronized) followed by the measurement count. rest is
// everything after the header, ready for Compact or TSSC decoding.
func ParseDataPacketHeader(flags byte, payload []byte) (frameLevelTimestamp int64, count uint32, rest []byte, err error) {
	pos := 0
	if flags&wire.DataPacketFlagSynchronized != 0 {
		if pos+8 > len(payload) {
			return 0, 0, nil, protoerr.NewProtocolError("compact", "truncated frame-level timestamp")
		}
		frameLevelTimestamp = wire.Int64BE(payload[pos:])
		pos += 8
	}

	if pos+4 > len(payload) {
		return 0, 0, nil, protoerr.NewProtocolError("compact", "truncated measurement count")
	}
	count = wire.Uint32BE(payload[pos:])
	pos += 4

	return frameLevelTimestamp, count, payload[pos:], nil
}

// Decode parses the body of a DataPacket response whose flags do not
// include Compressed (optional frame-level timestamp, count, then that
// many compact measurements) into a slice of Measurement. flags is the
// dataPacketFlags byte dispatch.Event splits off the front of the
// payload; defaultTimestamp is used whenever a measurement carries no
// timestamp of its own and the packet is not Synchronized, so that a
// measurement never surfaces a zero time.Time. useMillisecondResolution
// matches the subscription's negotiated SubscriptionInfo field: when
// set, a base-time-offset measurement's 32-bit offset is in
// milliseconds rather than ticks and must be scaled before use.
func Decode(flags byte, payload []byte, baseTimes BaseTimeOffsets, defaultTimestamp int64, useMillisecondResolution bool) ([]Measurement, error) {
	synchronized := flags&wire.DataPacketFlagSynchronized != 0

	frameLevelTimestamp, count, rest, err := ParseDataPacketHeader(flags, payload)
	if err != nil {
		return nil, err
	}
	if !synchronized {
		frameLevelTimestamp = defaultTimestamp
	}

	pos := 0
	measurements := make([]Measurement, 0, count)
	for i := uint32(0); i < count; i++ {
		if pos+1+2+4 > len(rest) {
			return nil, protoerr.NewProtocolError("compact", "truncated measurement %d/%d", i, count)
		}
		compactFlags := rest[pos]
		pos++
		signalIndex := wire.Uint16BE(rest[pos:])
		pos += 2
		value := wire.Float32BE(rest[pos:])
		pos += 4

		quality := QualityOK
		if compactFlags&wire.CompactFlagDiscarded != 0 {
			quality |= QualityDiscarded
		}
		if compactFlags&wire.CompactFlagCalculated != 0 {
			quality |= QualityCalculated
		}

		var timestamp int64
		switch {
		case synchronized:
			timestamp = frameLevelTimestamp
		case compactFlags&wire.CompactFlagIncludeTime != 0 && compactFlags&wire.CompactFlagBaseTimeOffset != 0:
			if pos+4 > len(rest) {
				return nil, protoerr.NewProtocolError("compact", "truncated offset timestamp for measurement %d/%d", i, count)
			}
			offset := int64(wire.Int32BE(rest[pos:]))
			pos += 4
			if useMillisecondResolution {
				offset *= ticksPerMillisecond
			}
			idx := baseTimes.ActiveIndex
			if compactFlags&wire.CompactFlagTimeIndex != 0 {
				idx = 1 - idx
			}
			timestamp = baseTimes.Offsets[idx] + offset
		case compactFlags&wire.CompactFlagIncludeTime != 0:
			if pos+8 > len(rest) {
				return nil, protoerr.NewProtocolError("compact", "truncated absolute timestamp for measurement %d/%d", i, count)
			}
			timestamp = wire.Int64BE(rest[pos:])
			pos += 8
		default:
			timestamp = frameLevelTimestamp
		}

		measurements = append(measurements, Measurement{
			SignalIndex: signalIndex,
			Timestamp:   timestamp,
			Quality:     quality,
			Value:       value,
		})
	}

	return measurements, nil
}
