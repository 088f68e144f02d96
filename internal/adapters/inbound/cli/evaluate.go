package cli

import (
	"fmt"

	"github.com/complyview/complyview/internal/adapters/outbound/cache"
	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/adapters/outbound/opa"
	"github.com/complyview/complyview/internal/adapters/outbound/tui"
	"github.com/complyview/complyview/internal/application"
	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	var (
		jsonOutput   bool
		policiesDir  string
		resourcesDir string
		projectPath  string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate Rego policies against resource documents",
		Long: "Run every Rego policy against every JSON or YAML resource document, print the " +
			"per-policy results and the severity chart, and cache the evaluation for 'overview --last-evaluation'.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absProject, err := absPath(projectPath)
			if err != nil {
				return err
			}

			svc := application.NewEvaluateService(config.New(), opa.New(), cache.New(), nil)
			res, err := svc.Evaluate(cmd.Context(), application.EvaluateRequest{
				ProjectPath:  absProject,
				PoliciesDir:  policiesDir,
				ResourcesDir: resourcesDir,
			})
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderEvaluation(res.Evaluation, res.Chart))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the evaluation as JSON")
	cmd.Flags().StringVar(&policiesDir, "policies", "", "Directory of .rego policies (defaults to policies_dir)")
	cmd.Flags().StringVar(&resourcesDir, "resources", "", "Directory of resource documents (defaults to resources_dir)")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project directory holding .complyview.yaml and the cache")

	return cmd
}
