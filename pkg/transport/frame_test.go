package transport

import (
	"bytes"
	"io"
	"testing"
)

// chunkedReader forces reads to return at most chunkSize bytes at a
// time, regardless of how many frames were written contiguously, to
// exercise the "framing round trip regardless of chunking" property.
type chunkedReader struct {
	data      []byte
	pos       int
	chunkSize int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if c.pos+n > len(c.data) {
		n = len(c.data) - c.pos
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

func TestFrameRoundTripRegardlessOfChunking(t *testing.T) {
	frames := [][]byte{
		[]byte("hello"),
		[]byte(""),
		bytes.Repeat([]byte{0x42}, 300),
	}

	var buf bytes.Buffer
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	for chunkSize := 1; chunkSize <= 7; chunkSize++ {
		cr := &chunkedReader{data: buf.Bytes(), chunkSize: chunkSize}
		fr := NewFrameReader(cr, false)
		for i, want := range frames {
			got, err := fr.ReadFrame()
			if err != nil {
				t.Fatalf("chunkSize=%d frame %d: ReadFrame: %v", chunkSize, i, err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("chunkSize=%d frame %d: got %v, want %v", chunkSize, i, got, want)
			}
		}
		if _, err := fr.ReadFrame(); err != io.EOF {
			t.Fatalf("chunkSize=%d: expected EOF after all frames, got %v", chunkSize, err)
		}
	}
}

func TestFrameReaderValidatesMarkerWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("ok")); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF

	fr := NewFrameReader(bytes.NewReader(corrupted), true)
	if _, err := fr.ReadFrame(); err == nil {
		t.Fatal("expected marker validation error")
	}

	fr2 := NewFrameReader(bytes.NewReader(corrupted), false)
	if _, err := fr2.ReadFrame(); err != nil {
		t.Fatalf("lenient reader should ignore marker mismatch, got %v", err)
	}
}
