package main

import "testing"

func TestRootCommandRegistersConfigFlags(t *testing.T) {
	for _, name := range []string{"hostname", "port", "max-retries", "telemetry-enabled"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("rootCmd missing expected flag --%s", name)
		}
	}
}

func TestRootCommandHasVersionSubcommand(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Use == "version" {
			return
		}
	}
	t.Fatal("expected a \"version\" subcommand registered on rootCmd")
}
