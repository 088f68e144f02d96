package domain

import (
	"errors"
	"strings"
)

// CreationChoice is an entry of the "Create New" policy menu.
type CreationChoice int

const (
	ChoiceSingle CreationChoice = iota + 1
	ChoiceBulk
)

var ErrUnknownChoice = errors.New("unknown creation choice")

// CreationChoices returns the menu choices in display order.
func CreationChoices() []CreationChoice {
	return []CreationChoice{ChoiceSingle, ChoiceBulk}
}

func (c CreationChoice) String() string {
	switch c {
	case ChoiceSingle:
		return "Single"
	case ChoiceBulk:
		return "Bulk"
	}
	return "Unknown"
}

// ParseCreationChoice accepts "single" or "bulk" in any casing.
func ParseCreationChoice(raw string) (CreationChoice, error) {
	for _, c := range CreationChoices() {
		if strings.EqualFold(strings.TrimSpace(raw), c.String()) {
			return c, nil
		}
	}
	return 0, unknownValueError(ErrUnknownChoice, raw, []string{"single", "bulk"})
}

// CreatePolicyRoute is where the single-policy creation form lives.
const CreatePolicyRoute = "/cloud-security/policies/new"

// PanelKind identifies a side panel the dashboard can open.
type PanelKind string

const PanelKindPolicyBulkUpload PanelKind = "POLICY_BULK_UPLOAD"

// PanelProps is the payload passed to an opened panel.
type PanelProps struct {
	Type string `json:"type"`
}

// CreationIntent is the outcome of a menu selection. It is implemented only by
// NavigationIntent and PanelIntent; switch on the concrete type to handle it.
type CreationIntent interface {
	Choice() CreationChoice
	creationIntent()
}

// NavigationIntent asks the host to move to Target.
type NavigationIntent struct {
	Target string `json:"target"`
}

func (NavigationIntent) Choice() CreationChoice { return ChoiceSingle }
func (NavigationIntent) creationIntent()        {}

// PanelIntent asks the host to open a side panel.
type PanelIntent struct {
	PanelKind PanelKind  `json:"panelKind"`
	Props     PanelProps `json:"props"`
}

func (PanelIntent) Choice() CreationChoice { return ChoiceBulk }
func (PanelIntent) creationIntent()        {}
