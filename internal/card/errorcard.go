package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/theme"
)

const (
	errorCardWidth  = 576.5
	errorCardHeight = 120.0
	retryLaterHint  = "Please try again later"
)

// RenderError renders the fixed-layout failure card: a primary line and an
// optional secondary line, colored by the same theme rules as success cards.
func (r *Renderer) RenderError(primary, secondary string, colorOpts domain.ColorOptions) string {
	colors := r.themes.Resolve(colorOpts, theme.DefaultTheme)
	bg := colors.Background.Color
	if colors.Background.IsGradient() {
		bg = colors.Background.Stops[0]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%s" height="%s" viewBox="0 0 %s %s" fill="%s" xmlns="http://www.w3.org/2000/svg">`,
		num(errorCardWidth), num(errorCardHeight), num(errorCardWidth), num(errorCardHeight), bg)
	fmt.Fprintf(&sb, `<style>.text { font: 600 16px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s } `+
		`.small { font: 600 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s } .gray { fill: #858585 }</style>`,
		colors.Title, colors.Text)
	fmt.Fprintf(&sb, `<rect x="0.5" y="0.5" width="%s" height="99%%" rx="4.5" fill="%s" stroke="%s"/>`,
		num(errorCardWidth-1), bg, colors.Border)
	fmt.Fprintf(&sb, `<text x="25" y="45" class="text">%s</text>`, escape(primary))
	if secondary != "" {
		fmt.Fprintf(&sb, `<text data-testid="message" x="25" y="55" class="text small"><tspan x="25" dy="18" class="gray">%s</tspan></text>`,
			escape(secondary))
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// RenderFailure maps any pipeline error onto the error card. Only the
// user-facing text of a domain.CardError is shown; anything else renders a
// generic message.
func (r *Renderer) RenderFailure(err error, colorOpts domain.ColorOptions) string {
	var cardErr *domain.CardError
	if !errors.As(err, &cardErr) {
		return r.RenderError(domain.DefaultErrorMessage, retryLaterHint, colorOpts)
	}

	switch cardErr.Kind {
	case domain.KindValidation, domain.KindBlocked, domain.KindUserNotFound, domain.KindRepoNotFound, domain.KindFetch:
		return r.RenderError(cardErr.Message, cardErr.Secondary, colorOpts)
	default:
		return r.RenderError(domain.DefaultErrorMessage, retryLaterHint, colorOpts)
	}
}
