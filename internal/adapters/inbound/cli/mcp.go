package cli

import (
	mcpadapter "github.com/complyview/complyview/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the complyview MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start complyview MCP server (stdio)",
		Long:  "Start the complyview MCP server using stdio transport. Assistants can chart the policy overview, list and resolve the \"Create New\" menu and evaluate policies.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absProject, err := absPath(projectPath)
			if err != nil {
				return err
			}
			s := mcpadapter.NewComplyviewMCPServer(absProject)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path (defaults to current working directory)")

	return cmd
}
