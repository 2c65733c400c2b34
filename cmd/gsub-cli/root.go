package main

import (
	"github.com/spf13/cobra"

	"github.com/gridedge/gsub/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: config.AppDescription,
	Long: `gsub connects to a GatewayExchangeProtocol (GEP/STTP) publisher, negotiates
operational modes, subscribes to a set of signals, and streams decoded
measurements to stdout until interrupted with Ctrl-C.

Configuration is layered: CLI flags, GSUB_-prefixed environment
variables, a config.yaml on the search path, then documented defaults.`,
	RunE:          runSubscribe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	config.BindFlags(rootCmd.Flags())
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
