package main

import (
	"context"
	"time"

	"github.com/gridedge/gsub/pkg/config"
	"github.com/gridedge/gsub/pkg/gep"
	"github.com/gridedge/gsub/pkg/logging"
	"github.com/gridedge/gsub/pkg/telemetry"
)

// CLI prints periodic telemetry snapshots until ctx is cancelled, then
// tears the subscription down cleanly.
type CLI struct {
	telemetry telemetry.Reader
	config    *config.Config
	logger    *logging.Logger

	lastSnapshot telemetry.Snapshot
}

func newCLI(reader telemetry.Reader, cfg *config.Config, logger *logging.Logger) *CLI {
	return &CLI{telemetry: reader, config: cfg, logger: logger}
}

// run blocks, printing a status line every 10 seconds, until ctx is
// cancelled, then disconnects sub.
func (c *CLI) run(ctx context.Context, sub *gep.Subscriber) error {
	c.logger.Infof("subscribed to %s:%d", c.config.Connector.Hostname, c.config.Connector.Port)

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Infof("shutting down")
			return sub.Disconnect(false)
		case <-ticker.C:
			c.printStatus()
		}
	}
}

func (c *CLI) printStatus() {
	snapshot := c.telemetry.Snapshot()
	if c.shouldPrintStatus(snapshot) {
		c.logger.Infof("status - measurements: received=%d dropped=%d rate=%.1f/s errors=%d",
			snapshot.MeasurementsReceived, snapshot.MeasurementsDropped, snapshot.MeasurementsPerSecond, snapshot.ErrorsTotal)
		c.logger.Infof("connection - connected=%t subscribed=%t cacheSize=%d",
			snapshot.Connected, snapshot.Subscribed, snapshot.SignalIndexCacheSize)
	}
	c.lastSnapshot = snapshot
}

// shouldPrintStatus suppresses repeated identical status lines, only
// printing the first snapshot or one that changed since the last.
func (c *CLI) shouldPrintStatus(snapshot telemetry.Snapshot) bool {
	if c.lastSnapshot.MeasurementsReceived == 0 && c.lastSnapshot.MeasurementsDropped == 0 {
		return true
	}
	if snapshot.MeasurementsReceived != c.lastSnapshot.MeasurementsReceived ||
		snapshot.MeasurementsDropped != c.lastSnapshot.MeasurementsDropped {
		return true
	}
	if snapshot.ErrorsTotal > c.lastSnapshot.ErrorsTotal {
		return true
	}
	if snapshot.Connected != c.lastSnapshot.Connected || snapshot.Subscribed != c.lastSnapshot.Subscribed {
		return true
	}
	return false
}
