package telemetry

// Snapshot is a point-in-time read of the Aggregator's counters.
type Snapshot struct {
	MeasurementsReceived uint64
	MeasurementsDropped  uint64
	ErrorsTotal          uint64
	ErrorsByContext      map[string]uint64
	ErrorsBySeverity     map[Severity]uint64
	ReconnectAttempts    uint64

	Connected           bool
	Subscribed          bool
	SignalIndexCacheSize int

	MeasurementsPerSecond float64
	UptimeSeconds         float64
	RecentErrors          []string
}

// Reader exposes a read-only Snapshot of accumulated telemetry.
type Reader interface {
	Snapshot() Snapshot
}
