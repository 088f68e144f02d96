package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complyview/complyview/internal/domain"
)

// ── Base palette ──
var (
	accent  = lipgloss.Color("#60A5FA") // blue
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

// themeColors maps dashboard color tokens to terminal colors.
var themeColors = map[domain.ColorToken]lipgloss.Color{
	domain.ColorRed300:    lipgloss.Color("#FCA5A5"),
	domain.ColorOrange300: lipgloss.Color("#FDBA74"),
	domain.ColorYellow300: lipgloss.Color("#FDE047"),
	domain.ColorGrey300:   lipgloss.Color("#D1D5DB"),
	domain.ColorGrey100:   lipgloss.Color("#F3F4F6"),
	domain.ColorBlue200:   lipgloss.Color("#BFDBFE"),
}

const barWidth = 32

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(52)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 48))
)

// TokenColor returns the terminal color for a theme token.
func TokenColor(token domain.ColorToken) lipgloss.Color {
	if c, ok := themeColors[token]; ok {
		return c
	}
	return fg
}

// RenderChart draws the summary total next to a horizontal bar per severity.
func RenderChart(chart domain.SeverityChart) string {
	var b strings.Builder

	// ── Summary ──
	total := lipgloss.NewStyle().
		Bold(true).
		Foreground(TokenColor(chart.SummaryColor)).
		Render(fmt.Sprintf("%d", chart.Total))
	b.WriteString(boxStyle.Render(headerStyle.Render(chart.Title) + "\n\n" + total))
	b.WriteString("\n\n")

	// ── Bars ──
	maxValue := chart.Max()
	for _, e := range chart.Entries {
		label := labelStyle.Render(padRight(e.Label, 10))
		bar := coloredBar(e.Value, maxValue, barWidth, TokenColor(e.Color))
		value := lipgloss.NewStyle().Foreground(TokenColor(e.Color)).Render(fmt.Sprintf("%d", e.Value))
		fmt.Fprintf(&b, "  %s %s  %s\n", label, bar, value)
	}

	if chart.Total == 0 {
		b.WriteString("\n  " + dimStyle.Render("No evaluated policies.") + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

// coloredBar scales value against maxValue; a zero maxValue draws an empty bar.
func coloredBar(value, maxValue, width int, color lipgloss.Color) string {
	filled := 0
	if maxValue > 0 {
		filled = max(0, min(value*width/maxValue, width))
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats overview history for terminal output.
func RenderHistory(entries []domain.OverviewEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No overview history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Overview History") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for i, e := range entries {
		hash := domain.GitRef{Hash: e.CommitHash}.ShortHash()
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(padRight(date, 10)),
			faintStyle.Render(hash),
			titleStyle.Render(fmt.Sprintf("%4d", e.Total)),
			severityBreakdown(e.Values),
		)

		if i > 0 {
			diff := e.Total - entries[i-1].Total
			if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func severityBreakdown(values map[domain.Severity]int) string {
	parts := make([]string, 0, len(domain.Severities()))
	for _, sev := range domain.Severities() {
		style := lipgloss.NewStyle().Foreground(TokenColor(domain.SeverityColor(sev)))
		parts = append(parts, style.Render(fmt.Sprintf("%c%d", sev[0], values[sev])))
	}
	return strings.Join(parts, " ")
}
