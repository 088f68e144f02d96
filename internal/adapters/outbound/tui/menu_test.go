package tui_test

import (
	"testing"

	"github.com/complyview/complyview/internal/adapters/outbound/tui"
	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
	"github.com/stretchr/testify/assert"
)

func TestRenderMenu_Closed(t *testing.T) {
	c := menu.New()
	output := tui.RenderMenu(c.Button(), c.Items(), false, 0)
	assert.Contains(t, output, "Create New")
	assert.NotContains(t, output, "Single")
	assert.NotContains(t, output, "Bulk")
}

func TestRenderMenu_Open(t *testing.T) {
	c := menu.New()
	output := tui.RenderMenu(c.Button(), c.Items(), true, 1)
	assert.Contains(t, output, "Single")
	assert.Contains(t, output, "Bulk")
	assert.Contains(t, output, "› Bulk")
}

func TestRenderIntent(t *testing.T) {
	c := menu.New()
	assert.Contains(t, tui.RenderIntent(c.SelectSingle()), domain.CreatePolicyRoute)

	panel := tui.RenderIntent(c.SelectBulk())
	assert.Contains(t, panel, "POLICY_BULK_UPLOAD")
	assert.Contains(t, panel, "type=policy")

	assert.Contains(t, tui.RenderIntent(nil), "Nothing selected.")
}
