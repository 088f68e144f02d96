package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	cacheAdapter "github.com/complyview/complyview/internal/adapters/outbound/cache"
	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/adapters/outbound/console"
	"github.com/complyview/complyview/internal/adapters/outbound/gitinfo"
	"github.com/complyview/complyview/internal/adapters/outbound/history"
	"github.com/complyview/complyview/internal/adapters/outbound/opa"
	"github.com/complyview/complyview/internal/adapters/outbound/report"
	"github.com/complyview/complyview/internal/application"
	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
)

// registerTools registers all complyview MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("complyview_overview",
			mcplib.WithDescription("Returns the policies-by-severity chart (total and one entry per severity) as JSON"),
			mcplib.WithString("report", mcplib.Description("Report file to chart, relative to the project (defaults to the configured report)")),
			mcplib.WithString("statuses", mcplib.Description("Comma-separated statuses to count: fail, error, pass (default: all)")),
			mcplib.WithBoolean("last_evaluation", mcplib.Description("Chart the last cached evaluation instead of a report")),
		),
		handleOverview(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("complyview_menu",
			mcplib.WithDescription("Returns the entries of the \"Create New\" policy menu"),
		),
		handleMenu(),
	)

	s.AddTool(
		mcplib.NewTool("complyview_create",
			mcplib.WithDescription("Resolves a \"Create New\" menu choice to its intent: a link to the policy editor or the bulk upload panel descriptor"),
			mcplib.WithString("choice",
				mcplib.Required(),
				mcplib.Description("Menu choice: single or bulk"),
			),
		),
		handleCreate(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("complyview_evaluate",
			mcplib.WithDescription("Evaluates Rego policies against resource documents and returns per-policy results and the severity chart"),
			mcplib.WithString("policies", mcplib.Description("Directory of .rego policies (defaults to policies_dir)")),
			mcplib.WithString("resources", mcplib.Description("Directory of resource documents (defaults to resources_dir)")),
		),
		handleEvaluate(projectPath),
	)
}

func newOverviewService() *application.OverviewService {
	return application.NewOverviewService(
		config.New(),
		report.New(),
		cacheAdapter.New(),
		history.New(),
		gitinfo.New(),
		nil,
	)
}

func handleOverview(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		req := application.OverviewRequest{ProjectPath: projectPath}
		req.LastEvaluation, _ = args["last_evaluation"].(bool)

		if path, _ := args["report"].(string); path != "" {
			if path == report.Stdin {
				return errorResult("report cannot be read from stdin: it carries the MCP transport"), nil
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(projectPath, path)
			}
			req.ReportPath = path
		}

		if raw, _ := args["statuses"].(string); raw != "" {
			statuses, err := domain.ParseStatuses(splitList(raw))
			if err != nil {
				return errorResult(err.Error()), nil
			}
			req.Statuses = statuses
		}

		ov, err := newOverviewService().Overview(req)
		if err != nil {
			return errorResult(fmt.Sprintf("overview failed: %v", err)), nil
		}
		return jsonResult(ov)
	}
}

type menuView struct {
	Button string      `json:"button"`
	Items  []menu.Item `json:"items"`
}

func currentMenu() menuView {
	c := menu.New()
	return menuView{Button: c.Button(), Items: c.Items()}
}

func handleMenu() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(currentMenu())
	}
}

type createResult struct {
	Choice string                `json:"choice"`
	Intent domain.CreationIntent `json:"intent"`
	Link   string                `json:"link,omitempty"`
}

func handleCreate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("choice")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		choice, err := domain.ParseCreationChoice(raw)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		intent, err := menu.New().Select(choice)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		res := createResult{Choice: choice.String(), Intent: intent}
		if nav, ok := intent.(domain.NavigationIntent); ok {
			cfg, err := config.New().Load(projectPath)
			if err != nil {
				return errorResult(fmt.Sprintf("loading config: %v", err)), nil
			}
			navigator, err := console.NewNavigator(nil, cfg.BaseURL)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			if res.Link, err = navigator.Resolve(nav.Target); err != nil {
				return errorResult(err.Error()), nil
			}
		}
		return jsonResult(res)
	}
}

func handleEvaluate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		req := application.EvaluateRequest{ProjectPath: projectPath}
		req.PoliciesDir, _ = args["policies"].(string)
		req.ResourcesDir, _ = args["resources"].(string)

		svc := application.NewEvaluateService(config.New(), opa.New(), cacheAdapter.New(), nil)
		res, err := svc.Evaluate(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("evaluation failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
