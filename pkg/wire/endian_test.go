package wire

import "testing"

func TestUint16BERoundTrip(t *testing.T) {
	cases := []uint16{0, 1, 0x00FF, 0xFF00, 0xFFFF, 0x1234}
	for _, v := range cases {
		b := make([]byte, 2)
		PutUint16BE(b, v)
		if got := Uint16BE(b); got != v {
			t.Errorf("Uint16BE(PutUint16BE(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF}
	for _, v := range cases {
		be := make([]byte, 4)
		PutUint32BE(be, v)
		if got := Uint32BE(be); got != v {
			t.Errorf("Uint32BE round trip = %d, want %d", got, v)
		}

		le := make([]byte, 4)
		PutUint32LE(le, v)
		if got := Uint32LE(le); got != v {
			t.Errorf("Uint32LE round trip = %d, want %d", got, v)
		}
	}
}

func TestInt64BERoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 1<<62 + 7, -(1 << 40)}
	for _, v := range cases {
		b := make([]byte, 8)
		PutInt64BE(b, v)
		if got := Int64BE(b); got != v {
			t.Errorf("Int64BE round trip = %d, want %d", got, v)
		}
	}
}

func TestFloat32BERoundTrip(t *testing.T) {
	cases := []float32{0, 1.5, -1.5, 3.14159, -0.0001}
	for _, v := range cases {
		b := make([]byte, 4)
		PutFloat32BE(b, v)
		if got := Float32BE(b); got != v {
			t.Errorf("Float32BE round trip = %v, want %v", got, v)
		}
	}
}
