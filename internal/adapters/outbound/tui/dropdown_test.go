package tui_test

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/complyview/complyview/internal/adapters/outbound/tui"
	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, d tui.Dropdown, msg tea.KeyMsg) (tui.Dropdown, tea.Cmd) {
	t.Helper()
	m, cmd := d.Update(msg)
	next, ok := m.(tui.Dropdown)
	require.True(t, ok)
	return next, cmd
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestDropdown_StartsClosed(t *testing.T) {
	d := tui.NewDropdown(menu.New())
	assert.False(t, d.IsOpen())
	assert.Nil(t, d.Intent())
	assert.Nil(t, d.Init())
	assert.Contains(t, d.View(), "Create New")
}

func TestDropdown_OpenAndClose(t *testing.T) {
	d := tui.NewDropdown(menu.New())

	d, cmd := press(t, d, keyEnter)
	assert.Nil(t, cmd)
	assert.True(t, d.IsOpen())
	assert.Contains(t, d.View(), "Bulk")

	d, _ = press(t, d, keyEsc)
	assert.False(t, d.IsOpen())
	assert.Nil(t, d.Intent())
}

func TestDropdown_CursorStaysInBounds(t *testing.T) {
	d := tui.NewDropdown(menu.New())
	d, _ = press(t, d, keyDown)
	require.True(t, d.IsOpen())

	d, _ = press(t, d, keyUp)
	assert.Equal(t, 0, d.Cursor())

	d, _ = press(t, d, keyDown)
	d, _ = press(t, d, keyDown)
	d, _ = press(t, d, keyDown)
	assert.Equal(t, 1, d.Cursor())
}

func TestDropdown_SelectSingle(t *testing.T) {
	d := tui.NewDropdown(menu.New())
	d, _ = press(t, d, keyEnter)
	d, cmd := press(t, d, keyEnter)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, domain.NavigationIntent{Target: domain.CreatePolicyRoute}, d.Intent())
	assert.False(t, d.IsOpen())
	assert.Contains(t, d.View(), domain.CreatePolicyRoute)
}

func TestDropdown_SelectBulk(t *testing.T) {
	d := tui.NewDropdown(menu.New())
	d, _ = press(t, d, keyEnter)
	d, _ = press(t, d, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	d, cmd := press(t, d, keyEnter)

	require.NotNil(t, cmd)
	assert.Equal(t, menu.New().SelectBulk(), d.Intent())
}

func TestDropdown_Quit(t *testing.T) {
	d := tui.NewDropdown(menu.New())
	d, cmd := press(t, d, keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, d.Intent())
}

func TestDropdown_IgnoresNonKeyMessages(t *testing.T) {
	d := tui.NewDropdown(menu.New())
	m, cmd := d.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, d, m)
}

func TestRunDropdown_SelectsBulk(t *testing.T) {
	var out bytes.Buffer
	intent, err := tui.RunDropdown(strings.NewReader("\rj\r"), &out, menu.New())
	require.NoError(t, err)
	assert.Equal(t, menu.New().SelectBulk(), intent)
}
