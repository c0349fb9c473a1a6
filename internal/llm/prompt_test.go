package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
)

func TestBuildSystemPrompt_TruncatesWhitelist(t *testing.T) {
	classes := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		classes = append(classes, fmt.Sprintf("c-%d", i))
	}

	system, err := BuildSystemPrompt(classes, "")
	require.NoError(t, err)

	assert.Contains(t, system, "- Available Tailwind classes: "+strings.Join(classes[:WhitelistLimit], ", ")+" (and more)\n")
	assert.Contains(t, system, "- Use these semantic CSS classes: hero, section, feature-grid")
	assert.Contains(t, system, "STRUCTURE:\n1. Hero section")
	assert.NotContains(t, system, "BRAND VOICE")
}

func TestBuildSystemPrompt_ShortWhitelistAndVoice(t *testing.T) {
	system, err := BuildSystemPrompt([]string{"flex", "p-4"}, "Tone: friendly")
	require.NoError(t, err)

	assert.Contains(t, system, "- Available Tailwind classes: flex, p-4\n")
	assert.True(t, strings.HasSuffix(system, "BRAND VOICE:\nTone: friendly\n"))
}

func TestBuildUserPrompt(t *testing.T) {
	user, err := BuildUserPrompt("an artisan coffee roastery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user, "Create a complete, professional landing page for: an artisan coffee roastery\n\n"))
	assert.Contains(t, user, "output ONLY the HTML content")
}

func TestWhitelist(t *testing.T) {
	low := Whitelist(stylelevel.Low)
	full := Whitelist(stylelevel.Full)
	assert.NotEmpty(t, low)
	assert.Greater(t, len(full), len(low))
	assert.Equal(t, full, Whitelist("bogus"))
}
