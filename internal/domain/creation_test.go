package domain_test

import (
	"testing"

	"github.com/complyview/complyview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreationChoice(t *testing.T) {
	c, err := domain.ParseCreationChoice("Single")
	require.NoError(t, err)
	assert.Equal(t, domain.ChoiceSingle, c)

	c, err = domain.ParseCreationChoice("BULK")
	require.NoError(t, err)
	assert.Equal(t, domain.ChoiceBulk, c)
}

func TestParseCreationChoice_Typo(t *testing.T) {
	_, err := domain.ParseCreationChoice("singel")
	require.ErrorIs(t, err, domain.ErrUnknownChoice)
	assert.Contains(t, err.Error(), `did you mean "single"`)
}

func TestCreationChoice_String(t *testing.T) {
	assert.Equal(t, "Single", domain.ChoiceSingle.String())
	assert.Equal(t, "Bulk", domain.ChoiceBulk.String())
	assert.Equal(t, "Unknown", domain.CreationChoice(9).String())
}
