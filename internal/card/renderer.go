// Package card composes SVG cards from normalized stats, a resolved theme and
// localized strings. Rendering is pure: identical input gives identical bytes.
package card

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/locale"
	"github.com/naka-gawa/readme-stats/internal/theme"
)

const (
	paddingX            = 25.0
	paddingY            = 35.0
	defaultBorderRadius = 4.5
	defaultLineHeight   = 25.0
	hiddenTitleOffset   = 30.0
)

// Renderer holds the read-only tables every card consults.
type Renderer struct {
	themes  *theme.Table
	locales *locale.Catalog
}

// NewRenderer creates a Renderer over the given theme and locale tables.
func NewRenderer(themes *theme.Table, locales *locale.Catalog) *Renderer {
	return &Renderer{themes: themes, locales: locales}
}

// frame is the chrome shared by every success card: background, border,
// title and the style block.
type frame struct {
	width      float64
	height     float64
	radius     float64
	colors     theme.Colors
	title      string
	titleIcon  string
	hideTitle  bool
	hideBorder bool
	animated   bool
	css        string
	a11yTitle  string
	a11yDesc   string
}

func newFrame(opts domain.RenderOptions, colors theme.Colors, title string, width, height float64) *frame {
	radius := defaultBorderRadius
	if opts.BorderRadius != nil {
		radius = *opts.BorderRadius
	}
	return &frame{
		width:      width,
		height:     height,
		radius:     radius,
		colors:     colors,
		title:      title,
		hideTitle:  opts.HideTitle,
		hideBorder: opts.HideBorder,
		animated:   !opts.DisableAnimations,
		a11yTitle:  title,
	}
}

func (f *frame) renderTitle() string {
	text := fmt.Sprintf(`<text x="0" y="0" class="header" data-testid="header">%s</text>`, escape(f.title))
	icon := ""
	if f.titleIcon != "" {
		icon = fmt.Sprintf(`<svg class="icon" x="0" y="-13" viewBox="0 0 16 16" version="1.1" width="16" height="16">%s</svg>`, f.titleIcon)
	}
	return fmt.Sprintf(`<g data-testid="card-title" transform="translate(%s, %s)">%s</g>`,
		num(paddingX), num(paddingY), flexLayout([]string{icon, text}, 25, false))
}

func (f *frame) renderGradient() string {
	bg := f.colors.Background
	if !bg.IsGradient() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<defs><linearGradient id="gradient" gradientTransform="rotate(%s)" gradientUnits="userSpaceOnUse">`, num(bg.Angle))
	for i, stop := range bg.Stops {
		offset := 0.0
		if len(bg.Stops) > 1 {
			offset = float64(i) * 100 / float64(len(bg.Stops)-1)
		}
		fmt.Fprintf(&sb, `<stop offset="%s%%" stop-color="%s"/>`, num(offset), stop)
	}
	sb.WriteString(`</linearGradient></defs>`)
	return sb.String()
}

func (f *frame) backgroundFill() string {
	if f.colors.Background.IsGradient() {
		return "url(#gradient)"
	}
	return f.colors.Background.Color
}

func (f *frame) render(body string) string {
	height := f.height
	if f.hideTitle {
		height -= hiddenTitleOffset
	}
	bodyOffset := paddingY + 20
	if f.hideTitle {
		bodyOffset = paddingX
	}
	strokeOpacity := "1"
	if f.hideBorder {
		strokeOpacity = "0"
	}

	headerAnimation := ""
	keyframes := ""
	if f.animated {
		headerAnimation = " animation: fadeInAnimation 0.8s ease-in-out forwards;"
		keyframes = `@keyframes scaleInAnimation { from { transform: translate(-5px, 5px) scale(0); } to { transform: translate(-5px, 5px) scale(1); } } ` +
			`@keyframes fadeInAnimation { from { opacity: 0; } to { opacity: 1; } }`
	}

	title := ""
	if !f.hideTitle {
		title = f.renderTitle()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%s" height="%s" viewBox="0 0 %s %s" fill="none" xmlns="http://www.w3.org/2000/svg" role="img" aria-labelledby="descId">`,
		num(f.width), num(height), num(f.width), num(height))
	fmt.Fprintf(&sb, `<title id="titleId">%s</title>`, escape(f.a11yTitle))
	fmt.Fprintf(&sb, `<desc id="descId">%s</desc>`, escape(f.a11yDesc))
	fmt.Fprintf(&sb, `<style>.header { font: 600 18px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s;%s } `+
		`@supports(-moz-appearance: auto) { .header { font-size: 15.5px; } } %s %s</style>`,
		f.colors.Title, headerAnimation, f.css, keyframes)
	sb.WriteString(f.renderGradient())
	fmt.Fprintf(&sb, `<rect data-testid="card-bg" x="0.5" y="0.5" rx="%s" height="99%%" stroke="%s" width="%s" fill="%s" stroke-opacity="%s"/>`,
		num(f.radius), f.colors.Border, num(f.width-1), f.backgroundFill(), strokeOpacity)
	sb.WriteString(title)
	fmt.Fprintf(&sb, `<g data-testid="main-card-body" transform="translate(0, %s)">%s</g>`, num(bodyOffset), body)
	sb.WriteString(`</svg>`)
	return sb.String()
}

// staggerCSS is the fade-in rule of row groups, or their static end state.
func staggerCSS(animated bool) string {
	if animated {
		return `.stagger { opacity: 0; animation: fadeInAnimation 0.3s ease-in-out forwards; }`
	}
	return `.stagger { opacity: 1; }`
}

// statCSS is the text style shared by the stats, languages and WakaTime cards.
func statCSS(textColor string) string {
	return fmt.Sprintf(`.stat { font: 600 14px 'Segoe UI', Ubuntu, "Helvetica Neue", Sans-Serif; fill: %s; } `+
		`@supports(-moz-appearance: auto) { .stat { font-size:12px; } } `+
		`.not_bold { font-weight: 400 } .bold { font-weight: 700 }`, textColor)
}

// progressCSS animates language progress bars and the compact mask.
func progressCSS(animated bool) string {
	if !animated {
		return ""
	}
	return `@keyframes slideInAnimation { from { width: 0; } to { width: calc(100%-100px); } } ` +
		`@keyframes growWidthAnimation { from { width: 0; } to { width: 100%; } } ` +
		`#rect-mask rect { animation: slideInAnimation 1s ease-in-out forwards; } ` +
		`.lang-progress { animation: growWidthAnimation 0.6s ease-in-out forwards; }`
}
