package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_NoAPIKeyDisablesClient(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "", "")

	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestBuildOverviewPrompt_LanguageSelection(t *testing.T) {
	en := buildOverviewPrompt("en", "Software Engineer")
	assert.Contains(t, en, "English")
	assert.Contains(t, en, "Software Engineer")

	hi := buildOverviewPrompt("hi", "Data Scientist")
	assert.Contains(t, hi, "Hindi")
	assert.Contains(t, hi, "Data Scientist")

	// Unknown language codes default to English rather than failing.
	other := buildOverviewPrompt("", "Product Manager")
	assert.Contains(t, other, "English")
}
