package generator_test

import (
	"strings"
	"testing"

	"ui_mockups/generator"

	"github.com/stretchr/testify/assert"
)

func TestBuildImagePrompt_Deterministic(t *testing.T) {
	screen := generator.Screen{
		Name:       "Dashboard",
		Goal:       "Track orders",
		Must:       generator.StringList{"Order table", "Export button"},
		Layout:     "Sidebar > Table",
		Components: generator.StringList{"Table", "Button"},
	}
	style := generator.GlobalStyle{Tone: "calm", Typography: "IBM Plex"}

	first := generator.BuildImagePrompt(screen, style, "Web")
	second := generator.BuildImagePrompt(screen, style, "Web")

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, `Design a Web UI mockup for "Dashboard".`))
	assert.Contains(t, first, "GOAL:\nTrack orders\n")
	assert.Contains(t, first, "LAYOUT SKETCH (textual blueprint, respect hierarchy and spacing):\nSidebar > Table\n")
	assert.Contains(t, first, "COMPONENT VOCABULARY:\nTable, Button\n")
	assert.Contains(t, first, "- Typography: IBM Plex\n")
}

func TestBuildImagePrompt_StyleFallback(t *testing.T) {
	t.Run("global style used when screen value is empty", func(t *testing.T) {
		prompt := generator.BuildImagePrompt(generator.Screen{Name: "Login"}, generator.GlobalStyle{Tone: "bold"}, "Web")
		assert.Contains(t, prompt, "- Tone: bold\n")
	})

	t.Run("screen value wins over global style", func(t *testing.T) {
		prompt := generator.BuildImagePrompt(
			generator.Screen{Name: "Login", Color: "dark", Density: "airy"},
			generator.GlobalStyle{Color: "light", Density: "compact"},
			"Web",
		)
		assert.Contains(t, prompt, "- Color: dark\n")
		assert.Contains(t, prompt, "- Density: airy\n")
	})

	t.Run("hardcoded defaults when both are empty", func(t *testing.T) {
		prompt := generator.BuildImagePrompt(generator.Screen{}, generator.GlobalStyle{}, "")
		assert.Contains(t, prompt, "- Tone: "+generator.DefaultTone+"\n")
		assert.Contains(t, prompt, "- Color: "+generator.DefaultColor+"\n")
		assert.Contains(t, prompt, "- Density: "+generator.DefaultDensity+"\n")
		assert.Contains(t, prompt, "- Typography: "+generator.DefaultTypography+"\n")
		assert.Contains(t, prompt, `Design a Web UI mockup for "Screen".`)
		assert.Contains(t, prompt, generator.DefaultGoal)
		assert.Contains(t, prompt, generator.DefaultLayout)
		assert.Contains(t, prompt, "Search, Filter chips, Cards, CTA, Tabs")
	})
}

func TestBuildImagePrompt_MustList(t *testing.T) {
	prompt := generator.BuildImagePrompt(
		generator.Screen{Name: "Login", Must: generator.StringList{"Login button", "Logo"}},
		generator.GlobalStyle{},
		"Mobile",
	)
	assert.Contains(t, prompt, "MUST INCLUDE (no exceptions):\n- Login button\n- Logo\n")
	assert.NotContains(t, prompt, "Visible primary CTA")

	empty := generator.BuildImagePrompt(generator.Screen{Name: "Login", Must: generator.StringList{}}, generator.GlobalStyle{}, "Mobile")
	assert.Contains(t, empty, "MUST INCLUDE (no exceptions):\n- Key labels present\n- Visible primary CTA\n")
}

func TestBuildPlannerPrompt_TruncatesRequirements(t *testing.T) {
	long := strings.Repeat("é", generator.MaxRequirementsChars+500)

	prompt := generator.BuildPlannerPrompt(long)

	assert.Equal(t, 0.2, prompt.Temperature)
	assert.Contains(t, prompt.System, "Return ONLY JSON")
	assert.Equal(t, generator.MaxRequirementsChars, strings.Count(prompt.User, "é"))
	assert.True(t, strings.HasPrefix(prompt.User, "Requirements:\n"))
}

func TestBuildAdherencePrompt(t *testing.T) {
	assert.Equal(t,
		"Check if this UI mockup includes ALL of the following items:\n- Logo\n- Submit",
		generator.BuildAdherencePrompt([]string{"Logo", "Submit"}))
}
