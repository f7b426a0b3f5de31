package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

func loadDefault(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	require.NoError(t, err)
	return table
}

func TestDefault_LoadsEmbeddedTables(t *testing.T) {
	table := loadDefault(t)
	assert.True(t, table.Has(DefaultTheme))
	assert.True(t, table.Has(RepoCardTheme))
	assert.True(t, table.Has("dark"))
	assert.Greater(t, table.Len(), 10)
	assert.Equal(t, "#00ADD8", table.LanguageColor("Go"))
	assert.Equal(t, DefaultLanguageColor, table.LanguageColor("Brainfuck++"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]byte("dark: {title_color: fff}"), nil)
	assert.Error(t, err, "a table without the default preset is rejected")

	_, err = Load([]byte(":::"), nil)
	assert.Error(t, err)
}

func TestTable_Resolve(t *testing.T) {
	table := loadDefault(t)

	testCases := []struct {
		name     string
		opts     domain.ColorOptions
		fallback string
		expected Colors
	}{
		{
			name:     "default theme",
			opts:     domain.ColorOptions{},
			fallback: DefaultTheme,
			expected: Colors{
				Title: "#2f80ed", Icon: "#4c71f2", Text: "#434d58", Border: "#e4e2e2", Ring: "#2f80ed",
				Background: Background{Color: "#fffefe"},
			},
		},
		{
			name:     "named preset fills missing border from default",
			opts:     domain.ColorOptions{Theme: "dark"},
			fallback: DefaultTheme,
			expected: Colors{
				Title: "#fff", Icon: "#79ff97", Text: "#9f9f9f", Border: "#e4e2e2", Ring: "#fff",
				Background: Background{Color: "#151515"},
			},
		},
		{
			name:     "unknown theme uses the fallback preset",
			opts:     domain.ColorOptions{Theme: "no-such-theme"},
			fallback: RepoCardTheme,
			expected: Colors{
				Title: "#2f80ed", Icon: "#586069", Text: "#434d58", Border: "#e4e2e2", Ring: "#2f80ed",
				Background: Background{Color: "#fffefe"},
			},
		},
		{
			name: "overrides win and invalid overrides are ignored",
			opts: domain.ColorOptions{
				Theme: "dark", TitleColor: "ff0000", IconColor: "not-a-color",
				TextColor: "#abc", RingColor: "00ff00", BorderColor: "12345678",
			},
			fallback: DefaultTheme,
			expected: Colors{
				Title: "#ff0000", Icon: "#79ff97", Text: "#9f9f9f", Border: "#12345678", Ring: "#00ff00",
				Background: Background{Color: "#151515"},
			},
		},
		{
			name:     "gradient background",
			opts:     domain.ColorOptions{BgColor: "90,ff0000,0000ff"},
			fallback: DefaultTheme,
			expected: Colors{
				Title: "#2f80ed", Icon: "#4c71f2", Text: "#434d58", Border: "#e4e2e2", Ring: "#2f80ed",
				Background: Background{Angle: 90, Stops: []string{"#ff0000", "#0000ff"}},
			},
		},
		{
			name:     "malformed gradient falls back to preset",
			opts:     domain.ColorOptions{BgColor: "90,ff0000,<script>"},
			fallback: DefaultTheme,
			expected: Colors{
				Title: "#2f80ed", Icon: "#4c71f2", Text: "#434d58", Border: "#e4e2e2", Ring: "#2f80ed",
				Background: Background{Color: "#fffefe"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, table.Resolve(tc.opts, tc.fallback))
		})
	}
}

func TestTable_ResolveGradientPreset(t *testing.T) {
	colors := loadDefault(t).Resolve(domain.ColorOptions{Theme: "ambient_gradient"}, DefaultTheme)
	require.True(t, colors.Background.IsGradient())
	assert.Equal(t, 35.0, colors.Background.Angle)
	assert.Equal(t, []string{"#4158d0", "#c850c0", "#ffcc70"}, colors.Background.Stops)
}

func TestIsValidHex(t *testing.T) {
	for _, ok := range []string{"fff", "ffff", "ffffff", "ffffff00", "A1B2C3"} {
		assert.True(t, IsValidHex(ok), ok)
	}
	for _, bad := range []string{"", "ff", "fffff", "#ffffff", "ggg", "fff\"/><script>"} {
		assert.False(t, IsValidHex(bad), bad)
	}
}
