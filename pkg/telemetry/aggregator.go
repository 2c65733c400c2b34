package telemetry

import (
	"context"
	"sync"
	"time"
)

// Clock allows deterministic testing of rate/uptime calculations.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Config tunes the Aggregator's buffers.
type Config struct {
	BufferSize        int
	MaxRecentErrors   int
	RateWindowSeconds int
}

func DefaultConfig() Config {
	return Config{
		BufferSize:        1000,
		MaxRecentErrors:   50,
		RateWindowSeconds: 10,
	}
}

// Aggregator is the stateful telemetry sink: a single goroutine drains
// a buffered event channel and updates counters, decoupling the
// decode/dispatch hot path from whatever reads Snapshot.
type Aggregator struct {
	mu    sync.RWMutex
	clock Clock
	cfg   Config

	measurementsReceived uint64
	measurementsDropped  uint64
	errorsTotal          uint64
	errorsByContext      map[string]uint64
	errorsBySeverity     map[Severity]uint64
	reconnectAttempts    uint64

	connected            bool
	subscribed           bool
	signalIndexCacheSize int

	measurementTimes []time.Time

	recentErrors []string
	errorIndex   int

	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup

	startTime time.Time
}

// NewAggregator creates an Aggregator. clock defaults to RealClock
// when nil.
func NewAggregator(clock Clock, cfg Config) *Aggregator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Aggregator{
		clock:            clock,
		cfg:              cfg,
		errorsByContext:  make(map[string]uint64),
		errorsBySeverity: make(map[Severity]uint64),
		measurementTimes: make([]time.Time, 0, cfg.RateWindowSeconds*10),
		recentErrors:     make([]string, cfg.MaxRecentErrors),
		eventCh:          make(chan Event, cfg.BufferSize),
		done:             make(chan struct{}),
		startTime:        clock.Now(),
	}
}

// Start begins processing telemetry events in a dedicated goroutine.
func (a *Aggregator) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.processEvents(ctx)
}

// Stop shuts the Aggregator down and joins its goroutine.
func (a *Aggregator) Stop() {
	close(a.done)
	a.wg.Wait()
}

// Publish implements Publisher: non-blocking, drops the event if the
// buffer is full rather than stall the caller's hot path.
func (a *Aggregator) Publish(event Event) {
	select {
	case a.eventCh <- event:
	default:
	}
}

// Snapshot implements Reader.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := a.clock.Now()

	errorsByContext := make(map[string]uint64, len(a.errorsByContext))
	for k, v := range a.errorsByContext {
		errorsByContext[k] = v
	}
	errorsBySeverity := make(map[Severity]uint64, len(a.errorsBySeverity))
	for k, v := range a.errorsBySeverity {
		errorsBySeverity[k] = v
	}

	recentErrors := make([]string, 0, len(a.recentErrors))
	for i := 0; i < len(a.recentErrors); i++ {
		idx := (a.errorIndex - i - 1 + len(a.recentErrors)) % len(a.recentErrors)
		if a.recentErrors[idx] != "" {
			recentErrors = append(recentErrors, a.recentErrors[idx])
		}
	}

	return Snapshot{
		MeasurementsReceived:  a.measurementsReceived,
		MeasurementsDropped:   a.measurementsDropped,
		ErrorsTotal:           a.errorsTotal,
		ErrorsByContext:       errorsByContext,
		ErrorsBySeverity:      errorsBySeverity,
		ReconnectAttempts:     a.reconnectAttempts,
		Connected:             a.connected,
		Subscribed:            a.subscribed,
		SignalIndexCacheSize:  a.signalIndexCacheSize,
		MeasurementsPerSecond: a.calculateRate(a.measurementTimes, now),
		UptimeSeconds:         now.Sub(a.startTime).Seconds(),
		RecentErrors:          recentErrors,
	}
}

func (a *Aggregator) processEvents(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case event := <-a.eventCh:
			a.handleEvent(event)
		}
	}
}

func (a *Aggregator) handleEvent(event Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e := event.(type) {
	case MeasurementReceived:
		a.measurementsReceived++
		a.addMeasurementTime(now)

	case MeasurementDropped:
		a.measurementsDropped++

	case ConnectionStatusChanged:
		a.connected = e.Connected
		if !e.Connected {
			a.subscribed = false
		}

	case SubscriptionStatusChanged:
		a.subscribed = e.Subscribed

	case ErrorOccurred:
		a.errorsTotal++
		a.errorsByContext[e.Context]++
		a.errorsBySeverity[e.Severity]++
		a.addRecentError(e.Err.Error())

	case ReconnectAttempted:
		a.reconnectAttempts++

	case SignalIndexCacheUpdated:
		a.signalIndexCacheSize = e.EntryCount
	}
}

func (a *Aggregator) addMeasurementTime(t time.Time) {
	cutoff := t.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	for len(a.measurementTimes) > 0 && a.measurementTimes[0].Before(cutoff) {
		a.measurementTimes = a.measurementTimes[1:]
	}
	a.measurementTimes = append(a.measurementTimes, t)
}

func (a *Aggregator) addRecentError(err string) {
	if len(a.recentErrors) == 0 {
		return
	}
	a.recentErrors[a.errorIndex] = err
	a.errorIndex = (a.errorIndex + 1) % len(a.recentErrors)
}

func (a *Aggregator) calculateRate(times []time.Time, now time.Time) float64 {
	if len(times) == 0 || a.cfg.RateWindowSeconds == 0 {
		return 0.0
	}
	cutoff := now.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	count := 0
	for _, t := range times {
		if t.After(cutoff) {
			count++
		}
	}
	return float64(count) / float64(a.cfg.RateWindowSeconds)
}
