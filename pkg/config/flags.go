package config

import "github.com/spf13/pflag"

// BindFlags registers every configurable key onto fs so that Load can
// bind them into the Viper instance with BindPFlags, giving CLI flags
// precedence over environment variables and the config file. Exported
// so cmd/gsub-cli can register the same flags on its Cobra command for
// --help output, independent of the FlagSet Load parses internally.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(KeyHostname, "", "GEP publisher hostname")
	fs.Uint16(KeyPort, 0, "GEP publisher port")
	fs.Int32(KeyMaxRetries, 0, "max reconnect attempts, -1 for unbounded")
	fs.Int32(KeyRetryIntervalMs, 0, "delay between reconnect attempts, in milliseconds")
	fs.Bool(KeyAutoReconnect, false, "reconnect automatically after an unexpected disconnect")

	fs.String(KeyLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(KeyLogFilePath, "", "rotate logs to this file instead of stderr")
	fs.Int(KeyLogMaxSizeMB, 0, "max size in megabytes before a log file is rotated")
	fs.Int(KeyLogMaxBackups, 0, "max number of rotated log files to retain")
	fs.Int(KeyLogMaxAgeDays, 0, "max age in days to retain a rotated log file")

	fs.Bool(KeyTelemetryEnabled, false, "expose Prometheus metrics")
	fs.String(KeyTelemetryListenAddr, "", "telemetry HTTP listen address")

	fs.Bool(KeyRemotelySynchronized, false, "request server-side synchronization")
	fs.Bool(KeyThrottled, false, "request the server track only the latest measurement per signal")
	fs.Bool(KeyUDPDataChannel, false, "receive data packets over a separate UDP channel")
	fs.Uint16(KeyDataChannelLocalPort, 0, "local UDP port to bind for the data channel")
	fs.Bool(KeyIncludeTime, false, "include timestamps in data packets")
	fs.Float64(KeyLagTime, 0, "lag time in seconds for remotely synchronized subscriptions")
	fs.Float64(KeyLeadTime, 0, "lead time in seconds for remotely synchronized subscriptions")
	fs.Bool(KeyUseLocalClockAsRealTime, false, "use the local clock instead of the incoming data's timestamps")
	fs.Bool(KeyUseMillisecondResolution, false, "truncate timestamps to millisecond resolution")
	fs.Int32(KeyProcessingInterval, 0, "processing interval in milliseconds, -1 for as-fast-as-possible")
	fs.String(KeyFilterExpression, "", "signal filter expression")
}
