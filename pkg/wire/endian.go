package wire

import (
	"encoding/binary"
	"math"
)

// EndianCodec converts between the two byte orders the GEP wire protocol
// mixes: frame-length fields are little-endian, everything inside a
// response body (counts, offsets, timestamps) is big-endian.

// PutUint32LE writes v into b using little-endian order, used only for the
// outer frame length fields.
func PutUint32LE(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// Uint32LE reads a little-endian u32, used only for the outer frame length
// fields.
func Uint32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// PutUint16BE writes v into b using big-endian order.
func PutUint16BE(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }

// Uint16BE reads a big-endian u16.
func Uint16BE(b []byte) uint16 { return binary.BigEndian.Uint16(b) }

// PutUint32BE writes v into b using big-endian order.
func PutUint32BE(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// Uint32BE reads a big-endian u32.
func Uint32BE(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// PutInt32BE writes v into b using big-endian order.
func PutInt32BE(b []byte, v int32) { binary.BigEndian.PutUint32(b, uint32(v)) }

// Int32BE reads a big-endian i32.
func Int32BE(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }

// PutUint64BE writes v into b using big-endian order.
func PutUint64BE(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

// Uint64BE reads a big-endian u64.
func Uint64BE(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// PutInt64BE writes v into b using big-endian order. Used for 100-ns tick
// timestamps and base-time offsets.
func PutInt64BE(b []byte, v int64) { binary.BigEndian.PutUint64(b, uint64(v)) }

// Int64BE reads a big-endian i64.
func Int64BE(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }

// PutFloat32BE writes v's IEEE-754 bits into b using big-endian order.
func PutFloat32BE(b []byte, v float32) {
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
}

// Float32BE reads a big-endian IEEE-754 float32.
func Float32BE(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}
