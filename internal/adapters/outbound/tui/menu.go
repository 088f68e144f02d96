package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
)

var (
	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0B1220")).
			Background(accent).
			Padding(0, 2)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faint).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
)

// RenderMenu draws the dropdown trigger and, when open, its items with the
// cursor on items[cursor].
func RenderMenu(button string, items []menu.Item, open bool, cursor int) string {
	var b strings.Builder

	caret := "▾"
	if open {
		caret = "▴"
	}
	b.WriteString("  " + buttonStyle.Render("+ "+button+" "+caret) + "\n")

	if !open {
		return b.String()
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		marker := "  "
		label := titleStyle.Render(item.Label)
		if i == cursor {
			marker = cursorStyle.Render("› ")
			label = cursorStyle.Render(item.Label)
		}
		lines = append(lines, marker+padRight(label, 8)+"  "+dimStyle.Render(describeItem(item)))
	}
	b.WriteString(indent(menuStyle.Render(strings.Join(lines, "\n")), "  "))
	b.WriteString("\n")
	return b.String()
}

func describeItem(item menu.Item) string {
	switch item.Kind {
	case menu.ItemLink:
		return "open the policy editor"
	case menu.ItemAction:
		return "upload policies in bulk"
	}
	return ""
}

// RenderIntent describes what a selection will do.
func RenderIntent(intent domain.CreationIntent) string {
	switch in := intent.(type) {
	case domain.NavigationIntent:
		return fmt.Sprintf("  %s %s\n", cursorStyle.Render("→ navigate"), in.Target)
	case domain.PanelIntent:
		return fmt.Sprintf("  %s %s %s\n",
			cursorStyle.Render("▣ open panel"),
			in.PanelKind,
			dimStyle.Render("type="+in.Props.Type),
		)
	}
	return "  " + dimStyle.Render("Nothing selected.") + "\n"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
