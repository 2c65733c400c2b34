package gep

// MeasurementFunc receives one resolved measurement. Invoked on the
// CallbackPump worker, never concurrently with another callback.
type MeasurementFunc func(m Measurement)

// StatusFunc receives a human-readable status message (command
// successes, processing-complete notices, unsolicited TSSC resets).
type StatusFunc func(message string)

// ErrorFunc receives a protocol, decode, or transport-level error.
// Per-packet errors never imply the connection terminated.
type ErrorFunc func(err error)

// MetadataFunc receives the opaque payload of a MetadataRefresh
// success response; schema parsing is the caller's concern.
type MetadataFunc func(payload []byte)

// ConnectionTerminatedFunc is invoked once per Disconnect, after
// teardown completes and before any auto-reconnect attempt begins.
type ConnectionTerminatedFunc func()

// OnMeasurement registers the measurement callback.
func (s *Subscriber) OnMeasurement(fn MeasurementFunc) {
	s.mu.Lock()
	s.onMeasurement = fn
	s.mu.Unlock()
}

// OnStatus registers the status-message callback.
func (s *Subscriber) OnStatus(fn StatusFunc) {
	s.mu.Lock()
	s.onStatus = fn
	s.mu.Unlock()
}

// OnError registers the error callback.
func (s *Subscriber) OnError(fn ErrorFunc) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// OnMetadata registers the metadata callback.
func (s *Subscriber) OnMetadata(fn MetadataFunc) {
	s.mu.Lock()
	s.onMetadata = fn
	s.mu.Unlock()
}

// OnConnectionTerminated registers the connection-terminated callback.
func (s *Subscriber) OnConnectionTerminated(fn ConnectionTerminatedFunc) {
	s.mu.Lock()
	s.onConnectionTerminated = fn
	s.mu.Unlock()
}
