package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridedge/gsub/pkg/config"
	"github.com/gridedge/gsub/pkg/gep"
	"github.com/gridedge/gsub/pkg/logging"
	"github.com/gridedge/gsub/pkg/telemetry"
)

func runSubscribe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Connector.Logging)
	aggregator := telemetry.NewAggregator(nil, telemetry.DefaultConfig())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregator.Start(ctx)
	defer aggregator.Stop()

	if cfg.Connector.Telemetry.Enabled {
		exporter := telemetry.NewPrometheusExporter(aggregator, cfg.Connector.Telemetry.ListenAddr)
		exporter.Start(ctx)
		defer exporter.Stop()
		logger.Infof("telemetry listening on %s", cfg.Connector.Telemetry.ListenAddr)
	}

	sub := gep.New(cfg.Connector, cfg.Subscription, logger, aggregator)
	sub.OnMeasurement(func(m gep.Measurement) {
		fmt.Printf("%s source=%s id=%d t=%d q=%d v=%g\n", m.SignalID, m.Source, m.ID, m.Timestamp, m.Quality, m.Value)
	})
	sub.OnStatus(func(msg string) { logger.Infof("%s", msg) })
	sub.OnError(func(err error) { logger.Errorf("%v", err) })
	sub.OnConnectionTerminated(func() { logger.Warnf("connection terminated") })
	sub.OnMetadata(func(payload []byte) { logger.Infof("received metadata refresh, %d bytes", len(payload)) })

	if err := sub.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := sub.Subscribe(cfg.Subscription); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	runner := newCLI(aggregator, cfg, logger)
	return runner.run(ctx, sub)
}
