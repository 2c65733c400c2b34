package gep

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gridedge/gsub/pkg/callback"
	"github.com/gridedge/gsub/pkg/dispatch"
	"github.com/gridedge/gsub/pkg/logging"
	"github.com/gridedge/gsub/pkg/sigcache"
	"github.com/gridedge/gsub/pkg/testutil"
	"github.com/gridedge/gsub/pkg/tssc"
	"github.com/gridedge/gsub/pkg/wire"
)

// tsscDataPacketBody prepends the shared DataPacket header (a
// measurement count, since these tests never set Synchronized) that
// ParseDataPacketHeader expects before a TSSC body.
func tsscDataPacketBody(tsscPacket []byte) []byte {
	count := make([]byte, 4)
	wire.PutUint32BE(count, 1)
	return append(count, tsscPacket...)
}

func newTestSubscriber() *Subscriber {
	s := New(DefaultConnectorConfig(), DefaultSubscriptionInfo(), logging.New(LoggingConfig{}), testutil.NewCapturingPublisher())
	s.cache = sigcache.New()
	return s
}

func newRunningPump(t *testing.T) *callback.Pump {
	t.Helper()
	p := callback.NewPump()
	p.Start()
	t.Cleanup(p.Stop)
	return p
}

func TestHandleBaseTimesUpdated(t *testing.T) {
	s := newTestSubscriber()
	s.handleEvent(dispatch.Event{
		Kind:            dispatch.KindBaseTimesUpdated,
		BaseTimeIndex:   1,
		BaseTimeOffsets: [2]int64{1000, 2000},
	})

	got := s.getBaseTimes()
	if got.ActiveIndex != 1 || got.Offsets != [2]int64{1000, 2000} {
		t.Fatalf("getBaseTimes() = %+v, want index=1 offsets=[1000 2000]", got)
	}
}

// TestHandleDataPacketTSSCResolvesMeasurement covers spec scenario 3: a
// SignalIndexCache entry followed by a TSSC packet resolving to one
// measurement delivered through the measurement callback.
func TestHandleDataPacketTSSCResolvesMeasurement(t *testing.T) {
	s := newTestSubscriber()
	s.tsscDecoder = tssc.NewDecoder()
	s.pump = newRunningPump(t)

	signalID := uuid.New()
	s.cache.Load([]sigcache.Entry{
		{SignalIndex: 7, SignalID: signalID, Source: "PPA", ID: 42},
	})

	packet := tssc.NewEncoder().Encode([]tssc.Point{
		{PointID: 7, Timestamp: 123456, Quality: 0, Value: 1.5},
	})

	got := make(chan Measurement, 1)
	s.onMeasurement = func(m Measurement) { got <- m }

	s.handleEvent(dispatch.Event{
		Kind:            dispatch.KindDataPacket,
		DataPacketFlags: wire.DataPacketFlagCompressed,
		DataPacketBody:  tsscDataPacketBody(packet),
	})

	select {
	case m := <-got:
		want := Measurement{SignalID: signalID, Source: "PPA", ID: 42, Timestamp: 123456, Quality: 0, Value: 1.5}
		if m != want {
			t.Fatalf("measurement = %+v, want %+v", m, want)
		}
	case <-time.After(time.Second):
		t.Fatal("measurement callback never fired")
	}
}

// TestHandleDataPacketCompactPathWhenNotCompressed guards against
// routing by a remembered connection-wide codec choice: a DataPacket
// whose flags clear Compressed must decode as Compact even when the
// subscription negotiated TSSC for the connection.
func TestHandleDataPacketCompactPathWhenNotCompressed(t *testing.T) {
	s := newTestSubscriber()
	s.usingTSSC = true
	s.tsscDecoder = tssc.NewDecoder()
	s.pump = newRunningPump(t)

	signalID := uuid.New()
	s.cache.Load([]sigcache.Entry{
		{SignalIndex: 9, SignalID: signalID, Source: "PPA", ID: 1},
	})

	body := make([]byte, 4)
	wire.PutUint32BE(body, 1) // count
	body = append(body, 0)    // compact flags: no time
	sig := make([]byte, 2)
	wire.PutUint16BE(sig, 9)
	body = append(body, sig...)
	val := make([]byte, 4)
	wire.PutFloat32BE(val, 2.5)
	body = append(body, val...)

	got := make(chan Measurement, 1)
	s.onMeasurement = func(m Measurement) { got <- m }

	s.handleEvent(dispatch.Event{
		Kind:            dispatch.KindDataPacket,
		DataPacketFlags: wire.DataPacketFlagNoFlags,
		DataPacketBody:  body,
	})

	select {
	case m := <-got:
		if m.SignalID != signalID || m.Value != 2.5 {
			t.Fatalf("measurement = %+v, want signalID=%v value=2.5", m, signalID)
		}
	case <-time.After(time.Second):
		t.Fatal("measurement callback never fired")
	}
}

func TestHandleDataPacketDropsUnresolvedSignalIndex(t *testing.T) {
	s := newTestSubscriber()
	s.tsscDecoder = tssc.NewDecoder()
	s.pump = newRunningPump(t)
	// Cache deliberately left empty: signal index 7 resolves to nothing.

	called := make(chan struct{}, 1)
	s.onMeasurement = func(Measurement) { called <- struct{}{} }

	packet := tssc.NewEncoder().Encode([]tssc.Point{{PointID: 7, Timestamp: 1, Quality: 0, Value: 1}})
	s.handleEvent(dispatch.Event{
		Kind:            dispatch.KindDataPacket,
		DataPacketFlags: wire.DataPacketFlagCompressed,
		DataPacketBody:  tsscDataPacketBody(packet),
	})

	select {
	case <-called:
		t.Fatal("measurement callback fired for an unresolved signal index")
	case <-time.After(50 * time.Millisecond):
	}

	pub := s.telemetry.(*testutil.CapturingPublisher)
	found := false
	for _, ev := range pub.Snapshot() {
		if ev.EventType() == "measurement_dropped" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a MeasurementDropped telemetry event")
	}
}

func TestHandleSucceededSubscribeSetsStatusAndFlag(t *testing.T) {
	s := newTestSubscriber()
	s.pump = newRunningPump(t)

	got := make(chan string, 1)
	s.onStatus = func(msg string) { got <- msg }

	ev, err := dispatch.Dispatch(append([]byte{0x80, 0x08}, []byte("OK")...))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	s.handleEvent(ev)

	if !s.Subscribed() {
		t.Fatal("expected subscribed == true after Succeeded(Subscribe)")
	}
	select {
	case msg := <-got:
		want := "Received success code in response to server command 0x08: OK"
		if msg != want {
			t.Fatalf("status = %q, want %q", msg, want)
		}
	case <-time.After(time.Second):
		t.Fatal("status callback never fired")
	}
}
