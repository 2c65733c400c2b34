// Package config layers CLI flags, environment variables, a YAML
// config file and documented defaults into a ConnectorConfig and
// SubscriptionInfo, using Viper the way the sibling web-of-trust
// module's pkg/config does for its own relay configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gridedge/gsub/pkg/geptypes"
)

// Config is the fully resolved configuration for a gsub process.
type Config struct {
	Connector    geptypes.ConnectorConfig
	Subscription geptypes.SubscriptionInfo
}

// Load resolves a Config from, in order of precedence, CLI flags in
// args, environment variables prefixed GSUB_, a config.yaml found on
// the search path, and the documented defaults.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/gsub/")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, "gsub"))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{
		Connector: geptypes.ConnectorConfig{
			Hostname:        v.GetString(KeyHostname),
			Port:            uint16(v.GetUint32(KeyPort)),
			MaxRetries:      v.GetInt32(KeyMaxRetries),
			RetryIntervalMs: v.GetInt32(KeyRetryIntervalMs),
			AutoReconnect:   v.GetBool(KeyAutoReconnect),
			Logging: geptypes.LoggingConfig{
				Level:      v.GetString(KeyLogLevel),
				FilePath:   v.GetString(KeyLogFilePath),
				MaxSizeMB:  v.GetInt(KeyLogMaxSizeMB),
				MaxBackups: v.GetInt(KeyLogMaxBackups),
				MaxAgeDays: v.GetInt(KeyLogMaxAgeDays),
			},
			Telemetry: geptypes.TelemetryConfig{
				Enabled:    v.GetBool(KeyTelemetryEnabled),
				ListenAddr: v.GetString(KeyTelemetryListenAddr),
			},
		},
		Subscription: geptypes.SubscriptionInfo{
			RemotelySynchronized:     v.GetBool(KeyRemotelySynchronized),
			Throttled:                v.GetBool(KeyThrottled),
			UDPDataChannel:           v.GetBool(KeyUDPDataChannel),
			DataChannelLocalPort:     uint16(v.GetUint32(KeyDataChannelLocalPort)),
			IncludeTime:              v.GetBool(KeyIncludeTime),
			LagTime:                  v.GetFloat64(KeyLagTime),
			LeadTime:                 v.GetFloat64(KeyLeadTime),
			UseLocalClockAsRealTime:  v.GetBool(KeyUseLocalClockAsRealTime),
			UseMillisecondResolution: v.GetBool(KeyUseMillisecondResolution),
			ProcessingInterval:       v.GetInt32(KeyProcessingInterval),
			FilterExpression:         v.GetString(KeyFilterExpression),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	connDefaults := geptypes.DefaultConnectorConfig()
	subDefaults := geptypes.DefaultSubscriptionInfo()

	v.SetDefault(KeyHostname, "")
	v.SetDefault(KeyPort, connDefaults.Port)
	v.SetDefault(KeyMaxRetries, connDefaults.MaxRetries)
	v.SetDefault(KeyRetryIntervalMs, connDefaults.RetryIntervalMs)
	v.SetDefault(KeyAutoReconnect, connDefaults.AutoReconnect)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogMaxSizeMB, 100)
	v.SetDefault(KeyLogMaxBackups, 3)
	v.SetDefault(KeyLogMaxAgeDays, 28)

	v.SetDefault(KeyTelemetryEnabled, false)
	v.SetDefault(KeyTelemetryListenAddr, ":9090")

	v.SetDefault(KeyDataChannelLocalPort, subDefaults.DataChannelLocalPort)
	v.SetDefault(KeyIncludeTime, subDefaults.IncludeTime)
	v.SetDefault(KeyLagTime, subDefaults.LagTime)
	v.SetDefault(KeyLeadTime, subDefaults.LeadTime)
	v.SetDefault(KeyProcessingInterval, subDefaults.ProcessingInterval)
}
