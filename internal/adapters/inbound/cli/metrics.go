package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/complyview/complyview/internal/adapters/outbound/cache"
	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/adapters/outbound/gitinfo"
	"github.com/complyview/complyview/internal/adapters/outbound/history"
	"github.com/complyview/complyview/internal/adapters/outbound/metrics"
	"github.com/complyview/complyview/internal/adapters/outbound/report"
	"github.com/complyview/complyview/internal/application"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = log.WithField("package", "cli")

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Prometheus metrics commands",
	}
	cmd.AddCommand(newMetricsServeCmd())
	return cmd
}

func newMetricsServeCmd() *cobra.Command {
	var (
		addr        string
		interval    time.Duration
		projectPath string
	)

	cmd := &cobra.Command{
		Use:   "serve [report]",
		Short: "Serve the severity chart as Prometheus gauges",
		Long: "Chart the report, export it as Prometheus gauges on /metrics and re-read the report " +
			"every interval until interrupted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absProject, err := absPath(projectPath)
			if err != nil {
				return err
			}

			cfg, err := config.New().Load(absProject)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if addr == "" {
				addr = cfg.Metrics.Addr
			}
			if interval == 0 {
				interval = cfg.Metrics.Interval
			}
			if interval <= 0 {
				return fmt.Errorf("--interval must be > 0 (got %s)", interval)
			}

			req := application.OverviewRequest{ProjectPath: absProject}
			if len(args) > 0 {
				if args[0] == report.Stdin {
					return errors.New("metrics serve re-reads the report and cannot read it from stdin")
				}
				req.ReportPath = args[0]
			}

			collector := metrics.New()
			svc := application.NewOverviewService(
				config.New(),
				report.New(),
				cache.New(),
				history.New(),
				gitinfo.New(),
				collector,
			)
			if _, err := svc.Overview(req); err != nil {
				return fmt.Errorf("overview failed: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go refreshLoop(ctx, svc, req, interval)

			logger.WithFields(log.Fields{"addr": addr, "interval": interval}).Info("serving metrics")
			return collector.Serve(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to metrics.addr)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (defaults to metrics.interval)")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project directory holding .complyview.yaml")

	return cmd
}

// refreshLoop re-exports the chart until ctx is done. A failed refresh keeps
// the previous values.
func refreshLoop(ctx context.Context, svc *application.OverviewService, req application.OverviewRequest, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Overview(req); err != nil {
				logger.WithError(err).Warn("refreshing chart")
			}
		}
	}
}
