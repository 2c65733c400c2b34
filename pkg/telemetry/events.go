package telemetry

import "time"

// Event is one telemetry occurrence published to an Aggregator: a
// timestamped, self-describing type.
type Event interface {
	Timestamp() time.Time
	EventType() string
}

// MeasurementReceived records one decoded measurement reaching the
// subscriber's callback.
type MeasurementReceived struct {
	timestamp   time.Time
	SignalIndex uint16
}

func (e MeasurementReceived) Timestamp() time.Time { return e.timestamp }
func (e MeasurementReceived) EventType() string    { return "measurement_received" }

func NewMeasurementReceived(signalIndex uint16) MeasurementReceived {
	return MeasurementReceived{timestamp: time.Now(), SignalIndex: signalIndex}
}

// MeasurementDropped records a decoded measurement whose signal index
// could not be resolved against the signal index cache. Decode errors
// are reported as ErrorOccurred, not as this event.
type MeasurementDropped struct {
	timestamp time.Time
	Reason    string
}

func (e MeasurementDropped) Timestamp() time.Time { return e.timestamp }
func (e MeasurementDropped) EventType() string    { return "measurement_dropped" }

func NewMeasurementDropped(reason string) MeasurementDropped {
	return MeasurementDropped{timestamp: time.Now(), Reason: reason}
}

// ConnectionStatusChanged records a transition in the command-channel
// connection state.
type ConnectionStatusChanged struct {
	timestamp time.Time
	Connected bool
}

func (e ConnectionStatusChanged) Timestamp() time.Time { return e.timestamp }
func (e ConnectionStatusChanged) EventType() string    { return "connection_status_changed" }

func NewConnectionStatusChanged(connected bool) ConnectionStatusChanged {
	return ConnectionStatusChanged{timestamp: time.Now(), Connected: connected}
}

// SubscriptionStatusChanged records a successful Subscribe/Unsubscribe
// response.
type SubscriptionStatusChanged struct {
	timestamp  time.Time
	Subscribed bool
}

func (e SubscriptionStatusChanged) Timestamp() time.Time { return e.timestamp }
func (e SubscriptionStatusChanged) EventType() string    { return "subscription_status_changed" }

func NewSubscriptionStatusChanged(subscribed bool) SubscriptionStatusChanged {
	return SubscriptionStatusChanged{timestamp: time.Now(), Subscribed: subscribed}
}

// ErrorOccurred records a protocol, decode, or transport-level error.
type ErrorOccurred struct {
	timestamp time.Time
	Err       error
	Context   string
	Severity  Severity
}

func (e ErrorOccurred) Timestamp() time.Time { return e.timestamp }
func (e ErrorOccurred) EventType() string    { return "error_occurred" }

func NewErrorOccurred(err error, context string, severity Severity) ErrorOccurred {
	return ErrorOccurred{timestamp: time.Now(), Err: err, Context: context, Severity: severity}
}

// ReconnectAttempted records one attempt made by the Reconnector.
type ReconnectAttempted struct {
	timestamp time.Time
	Attempt   int
	Err       error
}

func (e ReconnectAttempted) Timestamp() time.Time { return e.timestamp }
func (e ReconnectAttempted) EventType() string    { return "reconnect_attempted" }

func NewReconnectAttempted(attempt int, err error) ReconnectAttempted {
	return ReconnectAttempted{timestamp: time.Now(), Attempt: attempt, Err: err}
}

// SignalIndexCacheUpdated records a completed signal index cache
// reload, with the number of entries it now holds.
type SignalIndexCacheUpdated struct {
	timestamp  time.Time
	EntryCount int
}

func (e SignalIndexCacheUpdated) Timestamp() time.Time { return e.timestamp }
func (e SignalIndexCacheUpdated) EventType() string    { return "signal_index_cache_updated" }

func NewSignalIndexCacheUpdated(entryCount int) SignalIndexCacheUpdated {
	return SignalIndexCacheUpdated{timestamp: time.Now(), EntryCount: entryCount}
}

// Severity classifies an ErrorOccurred event.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

// Publisher sends telemetry events to an Aggregator. Publish is a
// non-blocking, fire-and-forget call.
type Publisher interface {
	Publish(event Event)
}
