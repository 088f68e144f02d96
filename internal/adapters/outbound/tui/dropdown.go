package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
)

// Dropdown is the interactive "Create New" menu. It owns the open/closed
// state; selections are resolved by the controller.
type Dropdown struct {
	controller menu.Controller
	items      []menu.Item
	open       bool
	cursor     int
	intent     domain.CreationIntent
	err        error
}

func NewDropdown(c menu.Controller) Dropdown {
	return Dropdown{controller: c, items: c.Items()}
}

func (d Dropdown) Init() tea.Cmd { return nil }

func (d Dropdown) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return d, tea.Quit
	}

	if !d.open {
		switch key.String() {
		case "enter", " ", "down", "j":
			d.open = true
			d.cursor = 0
		}
		return d, nil
	}

	switch key.String() {
	case "esc":
		d.open = false
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.items)-1 {
			d.cursor++
		}
	case "enter", " ":
		d.intent, d.err = d.controller.Select(d.items[d.cursor].Choice)
		d.open = false
		return d, tea.Quit
	}
	return d, nil
}

func (d Dropdown) View() string {
	if d.intent != nil {
		return RenderIntent(d.intent)
	}
	help := dimStyle.Render("enter: open/select · ↑/↓: move · esc: close · q: quit")
	return RenderMenu(d.controller.Button(), d.items, d.open, d.cursor) + "\n  " + help + "\n"
}

// IsOpen reports whether the item list is showing.
func (d Dropdown) IsOpen() bool { return d.open }

// Cursor is the index of the highlighted item.
func (d Dropdown) Cursor() int { return d.cursor }

// Intent is the selection result, nil until an item is chosen.
func (d Dropdown) Intent() domain.CreationIntent { return d.intent }

// RunDropdown runs the menu until the user selects an item or quits. A nil
// intent with a nil error means the user quit without choosing.
func RunDropdown(in io.Reader, out io.Writer, c menu.Controller) (domain.CreationIntent, error) {
	p := tea.NewProgram(NewDropdown(c), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	d := final.(Dropdown)
	return d.intent, d.err
}
