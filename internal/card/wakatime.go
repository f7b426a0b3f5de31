package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/metrics"
	"github.com/naka-gawa/readme-stats/internal/params"
	"github.com/naka-gawa/readme-stats/internal/theme"
)

const (
	wakatimeCardWidth    = 495.0
	wakatimeCompactWidth = 490.0
)

func wakatimeValue(l domain.WakatimeLanguage, format domain.DisplayFormat) string {
	if format == domain.DisplayFormatPercent {
		return metrics.FormatFixed(l.Percent, 2) + " %"
	}
	return l.Text
}

// filterWakatimeLanguages drops hidden and idle languages, keeps the first
// count entries (at most metrics.MaxLangsCount) and rescales their
// percentages to sum to 100.
func filterWakatimeLanguages(langs []domain.WakatimeLanguage, opts domain.RenderOptions) []domain.WakatimeLanguage {
	hidden := make(map[string]bool, len(opts.Hide))
	for _, h := range opts.Hide {
		hidden[strings.ToLower(strings.TrimSpace(h))] = true
	}

	kept := make([]domain.WakatimeLanguage, 0, len(langs))
	for _, l := range langs {
		if hidden[strings.ToLower(strings.TrimSpace(l.Name))] {
			continue
		}
		kept = append(kept, l)
	}
	if opts.LangsCount > 0 {
		if limit := params.Clamp(opts.LangsCount, 1, metrics.MaxLangsCount); len(kept) > limit {
			kept = kept[:limit]
		}
	}

	percents := make([]float64, len(kept))
	for i, l := range kept {
		percents[i] = l.Percent
	}
	for i, p := range metrics.Renormalize(percents) {
		kept[i].Percent = p
	}

	active := kept[:0]
	for _, l := range kept {
		if l.Hours > 0 || l.Minutes > 0 {
			active = append(active, l)
		}
	}
	return active
}

func wakatimeEmptyMessage(stats *domain.WakatimeStats, key func(string) string) string {
	switch {
	case stats.IsCodingActivityVisible:
		return key("wakatimecard.nocodingactivity")
	case stats.IsOtherUsageVisible:
		return key("wakatimecard.nocodedetails")
	default:
		return key("wakatimecard.notpublic")
	}
}

func wakatimeRow(l domain.WakatimeLanguage, index int, opts domain.RenderOptions, colors theme.Colors) string {
	delay := (index + 3) * 150
	animated := !opts.DisableAnimations
	valueX := 350.0
	bar := ""
	if opts.HideProgress {
		valueX = 170
	} else {
		bar = progressBar(110, 4, 220, l.Percent, colors.Title, colors.Text, delay+300, animated)
	}
	return stagger(delay, animated, ` transform="translate(25, 0)"`) +
		fmt.Sprintf(`<text class="stat bold" y="12.5" data-testid="%s">%s:</text>`, escape(l.Name), escape(l.Name)) +
		fmt.Sprintf(`<text class="stat" x="%s" y="12.5">%s</text>`, num(valueX), escape(wakatimeValue(l, opts.DisplayFormat))) +
		bar + `</g>`
}

func (r *Renderer) wakatimeCompact(langs []domain.WakatimeLanguage, opts domain.RenderOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<mask id="rect-mask"><rect x="25" y="0" width="%s" height="8" fill="white" rx="5"/></mask>`, num(wakatimeCompactWidth-50))
	offset := 0.0
	for _, l := range langs {
		w := (wakatimeCompactWidth - 25) * l.Percent / 100
		fmt.Fprintf(&sb, `<rect mask="url(#rect-mask)" data-testid="lang-progress" x="%s" y="0" width="%s" height="8" fill="%s"/>`,
			num(offset), num(w), r.themes.LanguageColor(l.Name))
		offset += w
	}
	for i, l := range langs {
		x, y := 25.0, 12.5*float64(i)+25
		if i%2 == 1 {
			x, y = 230, 12.5+12.5*float64(i)
		}
		fmt.Fprintf(&sb, `<g transform="translate(%s, %s)"><circle cx="5" cy="6" r="5" fill="%s"/>`+
			`<text data-testid="lang-name" x="15" y="10" class="lang-name">%s - %s</text></g>`,
			num(x), num(y), r.themes.LanguageColor(l.Name), escape(l.Name), escape(wakatimeValue(l, opts.DisplayFormat)))
	}
	return sb.String()
}

// RenderWakatimeCard renders the coding time summary card.
func (r *Renderer) RenderWakatimeCard(stats *domain.WakatimeStats, opts domain.RenderOptions) string {
	strs := r.locales.Strings(opts.Locale)
	colors := r.themes.Resolve(opts.ColorOptions, theme.DefaultTheme)
	animated := !opts.DisableAnimations

	lineHeight := defaultLineHeight
	if opts.LineHeight > 0 {
		lineHeight = opts.LineHeight
	}
	langs := filterWakatimeLanguages(stats.Languages, opts)
	n := float64(len(langs))
	height := math.Max(45+(n+1)*lineHeight, 150)

	var body string
	if opts.Layout == domain.LayoutCompact && len(langs) > 0 {
		height = 90 + math.Round(n/2)*25
		body = r.wakatimeCompact(langs, opts)
	} else if len(langs) == 0 {
		msg := wakatimeEmptyMessage(stats, func(k string) string { return strs.T(k) })
		body = fmt.Sprintf(`<text x="25" y="11" class="stat bold" fill="%s">%s</text>`, colors.Text, escape(msg))
	} else {
		rows := make([]string, len(langs))
		for i, l := range langs {
			rows[i] = wakatimeRow(l, i, opts, colors)
		}
		body = flexLayout(rows, lineHeight, true)
	}

	title := opts.CustomTitle
	if title == "" {
		title = strs.T("wakatimecard.title")
		switch stats.Range {
		case "last_7_days":
			title += " (" + strs.T("wakatimecard.last7days") + ")"
		case "last_year":
			title += " (" + strs.T("wakatimecard.lastyear") + ")"
		}
	}

	width := wakatimeCardWidth
	if opts.CardWidth > 0 {
		width = math.Max(float64(opts.CardWidth), wakatimeCardWidth)
	}

	f := newFrame(opts, colors, title, width, height)
	f.css = strings.Join([]string{
		statCSS(colors.Text),
		fmt.Sprintf(`.lang-name { font: 400 11px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s; }`, colors.Text),
		staggerCSS(animated),
		progressCSS(animated),
	}, " ")
	desc := make([]string, len(langs))
	for i, l := range langs {
		desc[i] = l.Name + ": " + wakatimeValue(l, opts.DisplayFormat)
	}
	f.a11yDesc = strings.Join(desc, ", ")
	return f.render(`<svg x="0" y="0" width="100%">` + body + `</svg>`)
}
