package cli

import (
	"fmt"

	"github.com/complyview/complyview/internal/adapters/outbound/cache"
	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/adapters/outbound/gitinfo"
	"github.com/complyview/complyview/internal/adapters/outbound/history"
	"github.com/complyview/complyview/internal/adapters/outbound/report"
	"github.com/complyview/complyview/internal/adapters/outbound/tui"
	"github.com/complyview/complyview/internal/application"
	"github.com/complyview/complyview/internal/domain"
	"github.com/spf13/cobra"
)

func newOverviewCmd() *cobra.Command {
	var (
		jsonOutput     bool
		statuses       []string
		showHistory    bool
		lastEvaluation bool
		projectPath    string
	)

	cmd := &cobra.Command{
		Use:   "overview [report]",
		Short: "Chart evaluated policies by severity",
		Long: "Read a per-severity policy report (JSON or YAML, \"-\" for stdin) and chart how many " +
			"policies were evaluated for each severity. Without an argument the report configured " +
			"in .complyview.yaml is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absProject, err := absPath(projectPath)
			if err != nil {
				return err
			}

			svc := application.NewOverviewService(
				config.New(),
				report.NewWithStdin(cmd.InOrStdin()),
				cache.New(),
				history.New(),
				gitinfo.New(),
				nil,
			)

			if showHistory {
				entries, err := svc.History(absProject)
				if err != nil {
					return err
				}
				if jsonOutput {
					return renderJSON(cmd, entries)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			req := application.OverviewRequest{
				ProjectPath:    absProject,
				LastEvaluation: lastEvaluation,
				Record:         true,
			}
			if len(args) > 0 {
				req.ReportPath = args[0]
			}
			if len(statuses) > 0 {
				req.Statuses, err = domain.ParseStatuses(statuses)
				if err != nil {
					return err
				}
			}

			ov, err := svc.Overview(req)
			if err != nil {
				return fmt.Errorf("overview failed: %w", err)
			}

			if ov.Stale {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: cached evaluation was run against other directories, run 'complyview evaluate' to refresh it")
			}
			if jsonOutput {
				return renderJSON(cmd, ov)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderChart(ov.Chart))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the chart as JSON")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Statuses to count (fail,error,pass); overrides statuses in config")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show overview history")
	cmd.Flags().BoolVar(&lastEvaluation, "last-evaluation", false, "Chart the last cached evaluation instead of a report")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project directory holding .complyview.yaml and history")

	return cmd
}
