package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complyview/complyview/internal/domain"
)

// RenderEvaluation lists every policy with its status, then the chart built
// from the evaluation report.
func RenderEvaluation(ev *domain.Evaluation, chart domain.SeverityChart) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n",
		titleStyle.Render("Policies"),
		dimStyle.Render(fmt.Sprintf("%d policies · %d resources", len(ev.Policies), ev.Resources)),
	)
	b.WriteString("  " + separatorLine + "\n\n")

	if len(ev.Policies) == 0 {
		b.WriteString("  " + dimStyle.Render("No policies found.") + "\n")
	}

	for _, p := range ev.Policies {
		sev := lipgloss.NewStyle().
			Foreground(TokenColor(domain.SeverityColor(p.Severity))).
			Render(padRight(domain.Capitalize(string(p.Severity)), 9))
		fmt.Fprintf(&b, "    %s %s %s  %s\n", statusTag(p.Status), sev, p.Title, faintStyle.Render(p.ID))

		for _, o := range p.Resources {
			switch o.Status {
			case domain.StatusFail:
				for _, msg := range o.Messages {
					fmt.Fprintf(&b, "           %s %s\n", dimStyle.Render(o.Resource+":"), msg)
				}
			case domain.StatusError:
				fmt.Fprintf(&b, "           %s %s\n", dimStyle.Render(o.Resource+":"), errorTagStyle.Render(o.Error))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(RenderChart(chart))
	return b.String()
}

func statusTag(st domain.Status) string {
	switch st {
	case domain.StatusFail:
		return failStyle.Render("fail ")
	case domain.StatusError:
		return errorTagStyle.Render("error")
	default:
		return passStyle.Render("pass ")
	}
}
