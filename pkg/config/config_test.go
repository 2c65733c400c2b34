package config

import "testing"

func TestLoadRequiresHostname(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatal("expected error when hostname is not provided")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load([]string{"--hostname", "phasor.example.com"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Connector.Port != 6165 {
		t.Errorf("Port = %d, want 6165", cfg.Connector.Port)
	}
	if cfg.Connector.MaxRetries != -1 {
		t.Errorf("MaxRetries = %d, want -1", cfg.Connector.MaxRetries)
	}
	if !cfg.Connector.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}
	if !cfg.Subscription.IncludeTime {
		t.Error("IncludeTime = false, want true")
	}
	if cfg.Subscription.LagTime != 10.0 {
		t.Errorf("LagTime = %v, want 10.0", cfg.Subscription.LagTime)
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Load([]string{
		"--hostname", "phasor.example.com",
		"--port", "6170",
		"--max-retries", "5",
		"--remotely-synchronized",
		"--udp-data-channel",
		"--data-channel-local-port", "9600",
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Connector.Port != 6170 {
		t.Errorf("Port = %d, want 6170", cfg.Connector.Port)
	}
	if cfg.Connector.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Connector.MaxRetries)
	}
	if !cfg.Subscription.RemotelySynchronized {
		t.Error("RemotelySynchronized = false, want true")
	}
	if cfg.Subscription.DataChannelLocalPort != 9600 {
		t.Errorf("DataChannelLocalPort = %d, want 9600", cfg.Subscription.DataChannelLocalPort)
	}
}

func TestLoadRejectsUDPWithoutLocalPort(t *testing.T) {
	_, err := Load([]string{
		"--hostname", "phasor.example.com",
		"--udp-data-channel",
		"--data-channel-local-port", "0",
	})
	if err == nil {
		t.Fatal("expected error when udp-data-channel is set without a local port")
	}
}
