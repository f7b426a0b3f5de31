// Package theme resolves a theme name and per-slot color overrides into the
// concrete palette a card is drawn with.
package theme

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

const (
	// DefaultTheme backs every slot a preset leaves empty.
	DefaultTheme = "default"
	// RepoCardTheme is the fallback preset of the pinned repository card.
	RepoCardTheme = "default_repocard"
	// DefaultLanguageColor is used for languages without a known color.
	DefaultLanguageColor = "#858585"
)

var (
	//go:embed themes.yaml
	themesYAML []byte
	//go:embed languages.yaml
	languagesYAML []byte

	hexColor = regexp.MustCompile(`^([A-Fa-f0-9]{8}|[A-Fa-f0-9]{6}|[A-Fa-f0-9]{3}|[A-Fa-f0-9]{4})$`)
)

// Preset is one named entry of the theme table, hex values without '#'.
type Preset struct {
	TitleColor  string `yaml:"title_color"`
	IconColor   string `yaml:"icon_color"`
	TextColor   string `yaml:"text_color"`
	BgColor     string `yaml:"bg_color"`
	BorderColor string `yaml:"border_color"`
	RingColor   string `yaml:"ring_color"`
}

// Background is either a solid color or a linear gradient.
type Background struct {
	Color string
	Angle float64
	Stops []string
}

// IsGradient reports whether the background is a gradient.
func (b Background) IsGradient() bool {
	return len(b.Stops) > 0
}

// Colors is a resolved palette. Every color carries its leading '#'.
type Colors struct {
	Title      string
	Icon       string
	Text       string
	Border     string
	Ring       string
	Background Background
}

// Table holds the read-only theme presets and language colors.
type Table struct {
	presets   map[string]Preset
	languages map[string]string
}

// Load parses a theme table and a language color table.
func Load(themes, languages []byte) (*Table, error) {
	t := &Table{}
	if err := yaml.Unmarshal(themes, &t.presets); err != nil {
		return nil, fmt.Errorf("failed to parse themes: %w", err)
	}
	if _, ok := t.presets[DefaultTheme]; !ok {
		return nil, fmt.Errorf("theme table has no %q entry", DefaultTheme)
	}
	if err := yaml.Unmarshal(languages, &t.languages); err != nil {
		return nil, fmt.Errorf("failed to parse language colors: %w", err)
	}
	return t, nil
}

// Default loads the embedded tables.
func Default() (*Table, error) {
	return Load(themesYAML, languagesYAML)
}

// Has reports whether name is a known preset.
func (t *Table) Has(name string) bool {
	_, ok := t.presets[name]
	return ok
}

// Len returns the number of presets.
func (t *Table) Len() int {
	return len(t.presets)
}

// IsValidHex reports whether s is a 3, 4, 6 or 8 digit hex color without '#'.
func IsValidHex(s string) bool {
	return hexColor.MatchString(s)
}

// Resolve picks each slot from the first valid source: the override, the
// named preset (or fallback when the name is unknown), then the default
// preset. The ring color falls back to the resolved title color.
func (t *Table) Resolve(o domain.ColorOptions, fallback string) Colors {
	preset, ok := t.presets[o.Theme]
	if !ok {
		preset = t.presets[fallback]
	}
	base := t.presets[DefaultTheme]

	c := Colors{
		Title:  pick(o.TitleColor, preset.TitleColor, base.TitleColor),
		Icon:   pick(o.IconColor, preset.IconColor, base.IconColor),
		Text:   pick(o.TextColor, preset.TextColor, base.TextColor),
		Border: pick(o.BorderColor, preset.BorderColor, base.BorderColor),
	}
	c.Ring = pick(o.RingColor, preset.RingColor, strings.TrimPrefix(c.Title, "#"))

	c.Background = parseBackground(o.BgColor)
	if c.Background.Color == "" && !c.Background.IsGradient() {
		c.Background = parseBackground(preset.BgColor)
	}
	if c.Background.Color == "" && !c.Background.IsGradient() {
		c.Background = parseBackground(base.BgColor)
	}
	return c
}

func pick(candidates ...string) string {
	for _, c := range candidates {
		if IsValidHex(c) {
			return "#" + c
		}
	}
	return ""
}

// parseBackground accepts "hex" or "angle,hex1,hex2[,...]". Invalid input
// yields the zero Background.
func parseBackground(s string) Background {
	if !strings.Contains(s, ",") {
		if IsValidHex(s) {
			return Background{Color: "#" + s}
		}
		return Background{}
	}

	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return Background{}
	}
	angle, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Background{}
	}
	stops := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if !IsValidHex(p) {
			return Background{}
		}
		stops = append(stops, "#"+p)
	}
	return Background{Angle: angle, Stops: stops}
}

// LanguageColor returns the linguist color of a language, or DefaultLanguageColor.
func (t *Table) LanguageColor(name string) string {
	if c, ok := t.languages[name]; ok {
		return c
	}
	return DefaultLanguageColor
}
