package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridedge/gsub/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Info()
		fmt.Printf("gsub version %s, commit %s, built %s\n", info.Version, info.Commit, info.Built)
		return nil
	},
}
