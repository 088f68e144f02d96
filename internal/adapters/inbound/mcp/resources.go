package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/complyview/complyview/internal/application"
	"github.com/complyview/complyview/internal/domain"
)

const severityURIPrefix = "complyview://severities/"

// registerResources registers all complyview MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	s.AddResource(
		mcplib.NewResource(
			"complyview://overview",
			"Policy Overview",
			mcplib.WithResourceDescription("Policies-by-severity chart for the configured report"),
			mcplib.WithMIMEType("application/json"),
		),
		handleOverviewResource(projectPath),
	)

	s.AddResource(
		mcplib.NewResource(
			"complyview://menu",
			"Create New Menu",
			mcplib.WithResourceDescription("Entries of the \"Create New\" policy menu"),
			mcplib.WithMIMEType("application/json"),
		),
		handleMenuResource(),
	)

	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			severityURIPrefix+"{severity}",
			"Severity Entry",
			mcplib.WithTemplateDescription("Chart entry (label, value, color) for one severity"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleSeverityResource(projectPath),
	)
}

func handleOverviewResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		ov, err := newOverviewService().Overview(application.OverviewRequest{ProjectPath: projectPath})
		if err != nil {
			return nil, fmt.Errorf("overview failed: %w", err)
		}
		return jsonContents(request.Params.URI, ov.Chart)
	}
}

func handleMenuResource() server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents(request.Params.URI, currentMenu())
	}
}

func handleSeverityResource(projectPath string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		sev, err := domain.ParseSeverity(templateArg(request, "severity", severityURIPrefix))
		if err != nil {
			return nil, err
		}

		ov, err := newOverviewService().Overview(application.OverviewRequest{ProjectPath: projectPath})
		if err != nil {
			return nil, fmt.Errorf("overview failed: %w", err)
		}

		for _, e := range ov.Chart.Entries {
			if e.Severity == sev {
				return jsonContents(request.Params.URI, e)
			}
		}
		return nil, fmt.Errorf("severity %q not in chart", sev)
	}
}

// templateArg reads a URI template variable. Matched variables may arrive as
// a string or a list; when absent the value is cut from the URI.
func templateArg(request mcplib.ReadResourceRequest, name, prefix string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return strings.TrimPrefix(request.Params.URI, prefix)
}

func jsonContents(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
