package cli

import (
	"fmt"

	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/adapters/outbound/console"
	"github.com/complyview/complyview/internal/adapters/outbound/tui"
	"github.com/complyview/complyview/internal/application"
	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var (
		jsonOutput  bool
		interactive bool
		projectPath string
	)

	cmd := &cobra.Command{
		Use:   "create [single|bulk]",
		Short: "Create new policies",
		Long: "Resolve an entry of the \"Create New\" menu. \"single\" prints the link to the policy " +
			"editor, \"bulk\" opens the bulk upload panel. Without an argument the menu is listed.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"single", "bulk"},
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := menu.New()

			if len(args) == 0 && !interactive {
				if jsonOutput {
					return renderJSON(cmd, controller.Items())
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderMenu(controller.Button(), controller.Items(), true, -1))
				return nil
			}

			absProject, err := absPath(projectPath)
			if err != nil {
				return err
			}
			cfg, err := config.New().Load(absProject)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			navigator, err := console.NewNavigator(cmd.OutOrStdout(), cfg.BaseURL)
			if err != nil {
				return err
			}
			svc := application.NewCreateService(controller, navigator, console.NewPanelHost(cmd.OutOrStdout()))

			if interactive {
				intent, err := tui.RunDropdown(cmd.InOrStdin(), cmd.ErrOrStderr(), controller)
				if err != nil {
					return fmt.Errorf("running menu: %w", err)
				}
				if intent == nil {
					return nil
				}
				return svc.Apply(intent)
			}

			choice, err := domain.ParseCreationChoice(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				intent, err := controller.Select(choice)
				if err != nil {
					return err
				}
				return renderJSON(cmd, intent)
			}

			_, err = svc.Create(choice)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the intent as JSON instead of applying it")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick from the dropdown menu")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project directory holding .complyview.yaml")

	return cmd
}
