// Package geptypes holds the domain value types shared across the
// module (Measurement, SubscriptionInfo, ConnectorConfig and its
// nested config structs). It exists as its own leaf package, separate
// from pkg/gep, so that pkg/subscription and pkg/config can depend on
// these types without importing the top-level Subscriber package that
// in turn depends on pkg/subscription.
package geptypes

import "github.com/google/uuid"

// Measurement is one fully resolved, decoded data point, delivered to
// the registered measurement callback.
type Measurement struct {
	SignalID  uuid.UUID
	Source    string
	ID        uint32
	Timestamp int64 // 100-ns ticks since epoch, matching the wire format
	Quality   uint32
	Value     float32
}

// SubscriptionInfo configures a Subscribe command.
type SubscriptionInfo struct {
	RemotelySynchronized            bool
	Throttled                       bool
	UDPDataChannel                  bool
	DataChannelLocalPort            uint16
	IncludeTime                     bool
	LagTime                         float64
	LeadTime                        float64
	UseLocalClockAsRealTime         bool
	UseMillisecondResolution        bool
	ProcessingInterval              int32
	FilterExpression                string
	StartTime                       string
	StopTime                        string
	ConstraintParameters            string
	ExtraConnectionStringParameters string
}

// DefaultSubscriptionInfo returns a SubscriptionInfo populated with the
// documented defaults.
func DefaultSubscriptionInfo() SubscriptionInfo {
	return SubscriptionInfo{
		DataChannelLocalPort: 9500,
		IncludeTime:          true,
		LagTime:              10.0,
		LeadTime:             5.0,
		ProcessingInterval:   -1,
	}
}

// ConnectorConfig configures the TCP endpoint and reconnect behavior of
// a Subscriber.
type ConnectorConfig struct {
	Hostname        string
	Port            uint16
	MaxRetries      int32
	RetryIntervalMs int32
	AutoReconnect   bool

	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// LoggingConfig configures pkg/logging.
type LoggingConfig struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// TelemetryConfig configures pkg/telemetry's optional Prometheus
// exposition.
type TelemetryConfig struct {
	Enabled    bool
	ListenAddr string
}

// DefaultConnectorConfig returns a ConnectorConfig populated with the
// documented defaults.
func DefaultConnectorConfig() ConnectorConfig {
	return ConnectorConfig{
		Port:            6165,
		MaxRetries:      -1,
		RetryIntervalMs: 2000,
		AutoReconnect:   true,
	}
}
