package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/complyview/complyview/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "metrics")

const shutdownTimeout = 5 * time.Second

// Collector implements domain.MetricsSink with Prometheus gauges.
type Collector struct {
	registry *prometheus.Registry

	policies       *prometheus.GaugeVec
	policiesTotal  prometheus.Gauge
	lastExportTime prometheus.Gauge
}

// New creates a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		policies: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "complyview_policies",
				Help: "Number of evaluated policies by severity.",
			},
			[]string{"severity"},
		),
		policiesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "complyview_policies_evaluated",
				Help: "Number of evaluated policies across all severities.",
			},
		),
		lastExportTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "complyview_last_export_timestamp_seconds",
				Help: "Unix timestamp of the last chart export.",
			},
		),
	}
	c.registry.MustRegister(c.policies, c.policiesTotal, c.lastExportTime)
	return c
}

// Export publishes the chart values. A chart always carries every severity,
// so each series is overwritten in place and never disappears from a scrape.
func (c *Collector) Export(chart domain.SeverityChart) {
	for _, e := range chart.Entries {
		c.policies.WithLabelValues(string(e.Severity)).Set(float64(e.Value))
	}
	c.policiesTotal.Set(float64(chart.Total))
	c.lastExportTime.Set(float64(time.Now().Unix()))
}

// Registry exposes the registry for tests and custom handlers.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics endpoint on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("metrics server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
