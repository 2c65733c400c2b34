package telemetry

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter serves the Aggregator's counters as a Prometheus
// text-format endpoint, gated by geptypes.TelemetryConfig.Enabled.
type PrometheusExporter struct {
	reader Reader
	server *http.Server
}

func NewPrometheusExporter(reader Reader, listenAddr string) *PrometheusExporter {
	reg := prometheus.NewRegistry()
	collector := &snapshotCollector{reader: reader}
	reg.MustRegister(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &PrometheusExporter{
		reader: reader,
		server: &http.Server{Addr: listenAddr, Handler: mux},
	}
}

// Start serves /metrics until ctx is cancelled or Stop is called.
func (p *PrometheusExporter) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		p.server.Close()
	}()
	go p.server.ListenAndServe()
}

func (p *PrometheusExporter) Stop() error {
	return p.server.Close()
}

var (
	descMeasurementsReceived = prometheus.NewDesc("gsub_measurements_received_total", "Total measurements delivered to the callback.", nil, nil)
	descMeasurementsDropped  = prometheus.NewDesc("gsub_measurements_dropped_total", "Total measurements dropped before reaching the callback.", nil, nil)
	descErrorsTotal          = prometheus.NewDesc("gsub_errors_total", "Total protocol/decode/transport errors observed.", nil, nil)
	descReconnectAttempts    = prometheus.NewDesc("gsub_reconnect_attempts_total", "Total reconnect attempts made.", nil, nil)
	descConnected            = prometheus.NewDesc("gsub_connected", "1 if the command channel is currently connected.", nil, nil)
	descSubscribed           = prometheus.NewDesc("gsub_subscribed", "1 if a subscription is currently active.", nil, nil)
	descCacheSize            = prometheus.NewDesc("gsub_signal_index_cache_size", "Number of entries in the signal index cache.", nil, nil)
	descMeasurementsPerSec   = prometheus.NewDesc("gsub_measurements_per_second", "Rolling measurement receive rate.", nil, nil)
)

// snapshotCollector adapts a Reader's Snapshot into Prometheus metrics
// on every scrape, rather than keeping a parallel set of counters.
type snapshotCollector struct {
	reader Reader
}

func (c *snapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descMeasurementsReceived
	ch <- descMeasurementsDropped
	ch <- descErrorsTotal
	ch <- descReconnectAttempts
	ch <- descConnected
	ch <- descSubscribed
	ch <- descCacheSize
	ch <- descMeasurementsPerSec
}

func (c *snapshotCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.reader.Snapshot()

	ch <- prometheus.MustNewConstMetric(descMeasurementsReceived, prometheus.CounterValue, float64(s.MeasurementsReceived))
	ch <- prometheus.MustNewConstMetric(descMeasurementsDropped, prometheus.CounterValue, float64(s.MeasurementsDropped))
	ch <- prometheus.MustNewConstMetric(descErrorsTotal, prometheus.CounterValue, float64(s.ErrorsTotal))
	ch <- prometheus.MustNewConstMetric(descReconnectAttempts, prometheus.CounterValue, float64(s.ReconnectAttempts))
	ch <- prometheus.MustNewConstMetric(descConnected, prometheus.GaugeValue, boolToFloat(s.Connected))
	ch <- prometheus.MustNewConstMetric(descSubscribed, prometheus.GaugeValue, boolToFloat(s.Subscribed))
	ch <- prometheus.MustNewConstMetric(descCacheSize, prometheus.GaugeValue, float64(s.SignalIndexCacheSize))
	ch <- prometheus.MustNewConstMetric(descMeasurementsPerSec, prometheus.GaugeValue, s.MeasurementsPerSecond)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
