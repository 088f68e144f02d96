package cli

import (
	"fmt"

	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/domain"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "complyview",
		Short: "Policy compliance overview for your cloud resources",
		Long: "complyview charts how many compliance policies were evaluated per severity, " +
			"evaluates Rego policies against resource documents and drives the \"Create New\" policy menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides log.level")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newOverviewCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newEvaluateCmd())
	cmd.AddCommand(newMetricsCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// setupLogging sends logs to stderr so stdout stays machine-readable. The
// flag wins over log.level from the project config.
func setupLogging(cmd *cobra.Command, flagLevel string) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	level := flagLevel
	if level == "" {
		level = domain.DefaultLogLevel
		if f := cmd.Flags().Lookup("path"); f != nil {
			if cfg, err := config.New().Load(f.Value.String()); err == nil && cfg.Log.Level != "" {
				level = cfg.Log.Level
			}
		}
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}
