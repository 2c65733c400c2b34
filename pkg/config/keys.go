package config

// Viper key constants. These double as the long flag names (flags and
// viper keys must match for BindPFlags to line up) and, via
// AutomaticEnv with the GSUB_ prefix, the environment variable names
// (dashes become underscores, e.g. retry-interval-ms -> GSUB_RETRY_INTERVAL_MS).
const (
	KeyHostname        = "hostname"
	KeyPort            = "port"
	KeyMaxRetries      = "max-retries"
	KeyRetryIntervalMs = "retry-interval-ms"
	KeyAutoReconnect   = "auto-reconnect"

	KeyLogLevel      = "log-level"
	KeyLogFilePath   = "log-file"
	KeyLogMaxSizeMB  = "log-max-size-mb"
	KeyLogMaxBackups = "log-max-backups"
	KeyLogMaxAgeDays = "log-max-age-days"

	KeyTelemetryEnabled    = "telemetry-enabled"
	KeyTelemetryListenAddr = "telemetry-listen-addr"

	KeyRemotelySynchronized     = "remotely-synchronized"
	KeyThrottled                = "throttled"
	KeyUDPDataChannel           = "udp-data-channel"
	KeyDataChannelLocalPort     = "data-channel-local-port"
	KeyIncludeTime              = "include-time"
	KeyLagTime                  = "lag-time"
	KeyLeadTime                 = "lead-time"
	KeyUseLocalClockAsRealTime  = "use-local-clock-as-real-time"
	KeyUseMillisecondResolution = "use-millisecond-resolution"
	KeyProcessingInterval       = "processing-interval"
	KeyFilterExpression         = "filter-expression"
)

const (
	AppName        = "gsub"
	AppDescription = "Subscribe to a GEP/STTP publisher and stream decoded measurements"
	EnvPrefix      = "GSUB"
)
