package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

type fakeReader struct{ snap Snapshot }

func (f fakeReader) Snapshot() Snapshot { return f.snap }

func TestSnapshotCollectorExposesCounters(t *testing.T) {
	reader := fakeReader{snap: Snapshot{
		MeasurementsReceived: 10,
		Connected:            true,
		SignalIndexCacheSize: 3,
	}}
	collector := &snapshotCollector{reader: reader}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collector)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var found bool
	for _, mf := range metrics {
		if mf.GetName() == "gsub_measurements_received_total" {
			found = true
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 10 {
				t.Errorf("gsub_measurements_received_total = %v, want 10", got)
			}
		}
	}
	if !found {
		t.Fatal("gsub_measurements_received_total not exposed")
	}
}
