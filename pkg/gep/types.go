package gep

import "github.com/gridedge/gsub/pkg/geptypes"

// These are re-exported as aliases from pkg/geptypes so that
// pkg/subscription and pkg/config can share the same types with the
// public API without pkg/gep importing them back (pkg/gep is the
// Subscriber package and already imports pkg/subscription).
type (
	Measurement     = geptypes.Measurement
	SubscriptionInfo = geptypes.SubscriptionInfo
	ConnectorConfig = geptypes.ConnectorConfig
	LoggingConfig   = geptypes.LoggingConfig
	TelemetryConfig = geptypes.TelemetryConfig
)

// DefaultSubscriptionInfo returns a SubscriptionInfo populated with the
// documented defaults.
func DefaultSubscriptionInfo() SubscriptionInfo { return geptypes.DefaultSubscriptionInfo() }

// DefaultConnectorConfig returns a ConnectorConfig populated with the
// documented defaults.
func DefaultConnectorConfig() ConnectorConfig { return geptypes.DefaultConnectorConfig() }
