// Package menu resolves selections from the "Create New" policy menu into
// creation intents.
package menu

import (
	"fmt"

	"github.com/complyview/complyview/internal/domain"
)

// ItemKind tells a renderer how a menu item behaves.
type ItemKind string

const (
	// ItemLink navigates away from the current view.
	ItemLink ItemKind = "link"
	// ItemAction stays on the current view and triggers a side effect.
	ItemAction ItemKind = "action"
)

// Item describes one entry of the dropdown.
type Item struct {
	Label  string                `json:"label"`
	Choice domain.CreationChoice `json:"-"`
	Kind   ItemKind              `json:"kind"`
}

// Controller resolves selections from the "Create New" menu. It holds no
// state; whether the menu is open is up to the renderer.
type Controller struct{}

func New() Controller { return Controller{} }

// Button is the label of the dropdown trigger.
func (Controller) Button() string { return "Create New" }

// Items returns the dropdown entries in display order.
func (Controller) Items() []Item {
	return []Item{
		{Label: domain.ChoiceSingle.String(), Choice: domain.ChoiceSingle, Kind: ItemLink},
		{Label: domain.ChoiceBulk.String(), Choice: domain.ChoiceBulk, Kind: ItemAction},
	}
}

// SelectSingle leads to the single-policy creation form.
func (Controller) SelectSingle() domain.NavigationIntent {
	return domain.NavigationIntent{Target: domain.CreatePolicyRoute}
}

// SelectBulk opens the bulk upload panel for policies.
func (Controller) SelectBulk() domain.PanelIntent {
	return domain.PanelIntent{
		PanelKind: domain.PanelKindPolicyBulkUpload,
		Props:     domain.PanelProps{Type: "policy"},
	}
}

// Select resolves a choice to its intent.
func (c Controller) Select(choice domain.CreationChoice) (domain.CreationIntent, error) {
	switch choice {
	case domain.ChoiceSingle:
		return c.SelectSingle(), nil
	case domain.ChoiceBulk:
		return c.SelectBulk(), nil
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrUnknownChoice, int(choice))
}
