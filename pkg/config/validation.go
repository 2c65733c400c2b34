package config

import "fmt"

func (c *Config) validate() error {
	if c.Connector.Hostname == "" {
		return fmt.Errorf("config: %s (env %s_%s, flag --%s) is required", KeyHostname, EnvPrefix, "HOSTNAME", KeyHostname)
	}
	if c.Connector.Port == 0 {
		return fmt.Errorf("config: %s must be nonzero", KeyPort)
	}
	if c.Connector.MaxRetries < -1 {
		return fmt.Errorf("config: %s must be -1 (unbounded) or >= 0", KeyMaxRetries)
	}
	if c.Connector.RetryIntervalMs < 0 {
		return fmt.Errorf("config: %s must be >= 0", KeyRetryIntervalMs)
	}
	if c.Subscription.UDPDataChannel && c.Subscription.DataChannelLocalPort == 0 {
		return fmt.Errorf("config: %s is required when %s is set", KeyDataChannelLocalPort, KeyUDPDataChannel)
	}
	return nil
}
