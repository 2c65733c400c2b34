package compact

import (
	"bytes"
	"testing"

	"github.com/gridedge/gsub/pkg/wire"
)

func u16(v uint16) []byte { b := make([]byte, 2); wire.PutUint16BE(b, v); return b }
func u32(v uint32) []byte { b := make([]byte, 4); wire.PutUint32BE(b, v); return b }
func i32(v int32) []byte  { b := make([]byte, 4); wire.PutInt32BE(b, v); return b }
func i64(v int64) []byte  { b := make([]byte, 8); wire.PutInt64BE(b, v); return b }
func f32(v float32) []byte { b := make([]byte, 4); wire.PutFloat32BE(b, v); return b }

func TestDecodeNoTimeDefaultsToFrameTimestamp(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32(1))
	buf.WriteByte(0) // no compact flags
	buf.Write(u16(7))
	buf.Write(f32(1.5))

	got, err := Decode(wire.DataPacketFlagNoFlags, buf.Bytes(), BaseTimeOffsets{}, 999, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d measurements, want 1", len(got))
	}
	if got[0].Timestamp != 999 {
		t.Errorf("Timestamp = %d, want default 999", got[0].Timestamp)
	}
	if got[0].Value != 1.5 || got[0].SignalIndex != 7 {
		t.Errorf("unexpected measurement: %+v", got[0])
	}
	if got[0].Quality != QualityOK {
		t.Errorf("Quality = %d, want OK", got[0].Quality)
	}
}

func TestDecodeSynchronizedUsesFrameLevelTimestamp(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(i64(12345))
	buf.Write(u32(1))
	buf.WriteByte(wire.CompactFlagIncludeTime) // ignored: synchronized wins
	buf.Write(u16(3))
	buf.Write(f32(2.0))

	got, err := Decode(wire.DataPacketFlagSynchronized, buf.Bytes(), BaseTimeOffsets{}, 0, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Timestamp != 12345 {
		t.Errorf("Timestamp = %d, want 12345", got[0].Timestamp)
	}
}

func TestDecodeBaseTimeOffsetForm(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32(1))
	buf.WriteByte(wire.CompactFlagIncludeTime | wire.CompactFlagBaseTimeOffset)
	buf.Write(u16(1))
	buf.Write(f32(3.0))
	buf.Write(i32(500))

	base := BaseTimeOffsets{Offsets: [2]int64{1_000_000, 2_000_000}, ActiveIndex: 0}
	got, err := Decode(wire.DataPacketFlagNoFlags, buf.Bytes(), base, 0, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Timestamp != 1_000_500 {
		t.Errorf("Timestamp = %d, want 1000500", got[0].Timestamp)
	}
}

func TestDecodeBaseTimeOffsetFormMillisecondResolution(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32(1))
	buf.WriteByte(wire.CompactFlagIncludeTime | wire.CompactFlagBaseTimeOffset)
	buf.Write(u16(1))
	buf.Write(f32(3.0))
	buf.Write(i32(500))

	base := BaseTimeOffsets{Offsets: [2]int64{1_000_000, 2_000_000}, ActiveIndex: 0}
	got, err := Decode(wire.DataPacketFlagNoFlags, buf.Bytes(), base, 0, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := int64(1_000_000 + 500*ticksPerMillisecond)
	if got[0].Timestamp != want {
		t.Errorf("Timestamp = %d, want %d", got[0].Timestamp, want)
	}
}

func TestParseDataPacketHeaderSynchronized(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(i64(555))
	buf.Write(u32(2))
	buf.WriteString("rest")

	ts, count, rest, err := ParseDataPacketHeader(wire.DataPacketFlagSynchronized, buf.Bytes())
	if err != nil {
		t.Fatalf("ParseDataPacketHeader: %v", err)
	}
	if ts != 555 || count != 2 || string(rest) != "rest" {
		t.Fatalf("got (%d, %d, %q), want (555, 2, \"rest\")", ts, count, rest)
	}
}

func TestParseDataPacketHeaderUnsynchronized(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32(1))
	buf.WriteString("body")

	ts, count, rest, err := ParseDataPacketHeader(wire.DataPacketFlagNoFlags, buf.Bytes())
	if err != nil {
		t.Fatalf("ParseDataPacketHeader: %v", err)
	}
	if ts != 0 || count != 1 || string(rest) != "body" {
		t.Fatalf("got (%d, %d, %q), want (0, 1, \"body\")", ts, count, rest)
	}
}

func TestDecodeTruncatedReturnsError(t *testing.T) {
	if _, err := Decode(wire.DataPacketFlagNoFlags, []byte{0, 0}, BaseTimeOffsets{}, 0, false); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestDecodeDiscardedQuality(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32(1))
	buf.WriteByte(wire.CompactFlagDiscarded)
	buf.Write(u16(1))
	buf.Write(f32(0))

	got, err := Decode(wire.DataPacketFlagNoFlags, buf.Bytes(), BaseTimeOffsets{}, 0, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Quality != QualityDiscarded {
		t.Errorf("Quality = %d, want QualityDiscarded", got[0].Quality)
	}
}
