// Command gsub-cli is a thin Cobra wrapper around pkg/gep: it loads
// layered configuration, opens a subscription, and streams decoded
// measurements to stdout until interrupted.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
