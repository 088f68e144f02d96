package console_test

import (
	"bytes"
	"testing"

	"github.com/complyview/complyview/internal/adapters/outbound/console"
	"github.com/complyview/complyview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_ResolvesAgainstBase(t *testing.T) {
	var buf bytes.Buffer
	nav, err := console.NewNavigator(&buf, "https://panther.example.com/app/")
	require.NoError(t, err)

	require.NoError(t, nav.Navigate(domain.CreatePolicyRoute))
	assert.Equal(t, "https://panther.example.com/cloud-security/policies/new\n", buf.String())
}

func TestNavigator_NoBase(t *testing.T) {
	var buf bytes.Buffer
	nav, err := console.NewNavigator(&buf, "")
	require.NoError(t, err)

	require.NoError(t, nav.Navigate(domain.CreatePolicyRoute))
	assert.Equal(t, domain.CreatePolicyRoute+"\n", buf.String())
}

func TestNavigator_BadBase(t *testing.T) {
	_, err := console.NewNavigator(&bytes.Buffer{}, "://bad")
	assert.Error(t, err)
}

func TestPanelHost_PrintsDescriptor(t *testing.T) {
	var buf bytes.Buffer
	host := console.NewPanelHost(&buf)

	require.NoError(t, host.Open(domain.PanelIntent{
		PanelKind: domain.PanelKindPolicyBulkUpload,
		Props:     domain.PanelProps{Type: "policy"},
	}))
	assert.JSONEq(t, `{"panelKind":"POLICY_BULK_UPLOAD","props":{"type":"policy"}}`, buf.String())
}
