package tssc

import (
	"math"

	"github.com/gridedge/gsub/pkg/wire"
)

// Encoder is the mirror-image of Decoder, used by tests (and by any
// future publisher-side tooling) to produce packets a Decoder can
// consume. Its internal state-tracking logic must stay in lockstep
// with decodeOne.
type Encoder struct {
	points           map[uint16]*pointState
	lastCodedPointID uint16
	seq              uint16
}

// NewEncoder returns an Encoder starting at sequence 0, matching a
// freshly reset Decoder.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.Reset()
	return e
}

// Reset clears all point state and rewinds the sequence counter to 0,
// mirroring Decoder.reset.
func (e *Encoder) Reset() {
	e.points = make(map[uint16]*pointState)
	e.lastCodedPointID = 0
	e.seq = 0
}

// Encode packs points into one TSSC packet at the encoder's current
// sequence number, then advances it the same way Decoder does.
func (e *Encoder) Encode(points []Point) []byte {
	header := make([]byte, 3)
	header[0] = wire.TSSCVersion
	wire.PutUint16BE(header[1:], e.seq)

	w := &bitWriter{}
	for _, p := range points {
		e.encodeOne(w, p)
	}

	e.seq = nextSequence(e.seq)
	return append(header, w.bytes()...)
}

func (e *Encoder) encodeOne(w *bitWriter, p Point) {
	delta := int64(p.PointID) - int64(e.lastCodedPointID)
	writeVarint(w, zigzag(delta))
	e.lastCodedPointID = p.PointID

	state, ok := e.points[p.PointID]
	if !ok {
		state = &pointState{}
		e.points[p.PointID] = state
	}

	valueBits := math.Float32bits(p.Value)
	if valueBits == state.lastValueBits {
		w.writeBit(false)
	} else {
		w.writeBit(true)
		writeVarint(w, uint64(valueBits^state.lastValueBits))
	}
	state.lastValueBits = valueBits

	if p.Quality == state.lastQuality {
		w.writeBit(false)
	} else {
		w.writeBit(true)
		writeVarint(w, uint64(p.Quality))
	}
	state.lastQuality = p.Quality

	predicted := state.lastTimestamp + state.lastTimeDelta
	if p.Timestamp == predicted {
		w.writeBit(false)
	} else {
		w.writeBit(true)
		delta := p.Timestamp - state.lastTimestamp
		writeVarint(w, zigzag(delta))
		state.lastTimeDelta = delta
	}
	state.lastTimestamp = p.Timestamp
}
