package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/metrics"
	"github.com/naka-gawa/readme-stats/internal/theme"
)

const (
	langsDefaultWidth     = 300.0
	langsMinWidth         = 280.0
	langsCompactBase      = 90.0
	langsChartExtraWidth  = 50.0
	langsProgressPadRight = 95.0
	langsCompactPadRight  = 50.0
)

type langEntry struct {
	name  string
	color string
	share float64
}

// langColor keeps an upstream color only when it is a well-formed hex value.
func langColor(c string) string {
	if strings.HasPrefix(c, "#") && theme.IsValidHex(c[1:]) {
		return c
	}
	return theme.DefaultLanguageColor
}

func compactLangNode(l langEntry, index int, showShare, animated bool) string {
	label := l.name
	if showShare {
		label += " " + metrics.FormatFixed(l.share, 2) + "%"
	}
	return stagger((index+3)*150, animated, "") +
		fmt.Sprintf(`<circle cx="5" cy="6" r="5" fill="%s"/><text data-testid="lang-name" x="15" y="10" class="lang-name">%s</text></g>`,
			l.color, escape(label))
}

// languageColumns lists languages in two columns, the first one taking the odd entry.
func languageColumns(langs []langEntry, showShare, animated bool) string {
	if len(langs) == 0 {
		return ""
	}
	half := (len(langs) + 1) / 2
	longest := langs[0]
	for _, l := range langs[1:] {
		if len(l.name) > len(longest.name) {
			longest = l
		}
	}
	gap := math.Max(150, 20+measureText(longest.name+" "+metrics.FormatFixed(longest.share, 2)+"%", 11))

	columns := make([]string, 0, 2)
	for _, col := range [][]langEntry{langs[:half], langs[half:]} {
		nodes := make([]string, len(col))
		for i, l := range col {
			nodes[i] = compactLangNode(l, i, showShare, animated)
		}
		columns = append(columns, flexLayout(nodes, 25, true))
	}
	return flexLayout(columns, gap, false)
}

func normalLangsLayout(langs []langEntry, width float64, animated bool) string {
	rows := make([]string, len(langs))
	for i, l := range langs {
		delay := (i + 3) * 150
		rows[i] = stagger(delay, animated, "") +
			fmt.Sprintf(`<text data-testid="lang-name" x="2" y="15" class="lang-name">%s</text>`, escape(l.name)) +
			fmt.Sprintf(`<text x="%s" y="34" class="lang-name">%s%%</text>`, num(width-langsProgressPadRight+10), metrics.FormatFixed(l.share, 2)) +
			progressBar(0, 25, width-langsProgressPadRight, l.share, l.color, "#ddd", delay+300, animated) +
			`</g>`
	}
	return flexLayout(rows, 40, true)
}

func compactLangsLayout(langs []langEntry, width float64, hideProgress, animated bool) string {
	var sb strings.Builder
	offsetY := "0"
	if !hideProgress {
		offsetWidth := width - langsCompactPadRight
		fmt.Fprintf(&sb, `<mask id="rect-mask"><rect x="0" y="0" width="%s" height="8" fill="white" rx="5"/></mask>`, num(offsetWidth))
		var offset float64
		for _, l := range langs {
			segment := math.Round(l.share/100*offsetWidth*100) / 100
			w := segment
			if w < 10 {
				w += 10
			}
			fmt.Fprintf(&sb, `<rect mask="url(#rect-mask)" data-testid="lang-progress" x="%s" y="0" width="%s" height="8" fill="%s"/>`,
				num(offset), num(w), l.color)
			offset += segment
		}
		offsetY = "25"
	}
	fmt.Fprintf(&sb, `<g transform="translate(0, %s)">%s</g>`, offsetY, languageColumns(langs, !hideProgress, animated))
	return sb.String()
}

func donutCenterTranslation(n int) float64 {
	return -45 + math.Max(float64(n-5), 0)*16
}

func donutLangsLayout(langs []langEntry, width float64, animated bool) string {
	cx, cy := width/3, width/3
	radius := cx - 60

	var paths strings.Builder
	if len(langs) == 1 {
		fmt.Fprintf(&paths, `<circle cx="%s" cy="%s" r="%s" stroke="%s" fill="none" stroke-width="12" data-testid="lang-donut" size="100"/>`,
			num(cx), num(cy), num(radius), langs[0].color)
	} else {
		var start float64
		for i, l := range langs {
			end := start + 3.6*l.share
			sx, sy := polar(cx, cy, radius, end)
			ex, ey := polar(cx, cy, radius, start)
			largeArc := 0
			if end-start > 180 {
				largeArc = 1
			}
			paths.WriteString(stagger((i+3)*100+300, animated, ""))
			fmt.Fprintf(&paths, `<path data-testid="lang-donut" size="%s" d="M %s %s A %s %s 0 %d 0 %s %s" stroke="%s" fill="none" stroke-width="12"></path></g>`,
				metrics.FormatFixed(l.share, 2), num(sx), num(sy), num(radius), num(radius), largeArc, num(ex), num(ey), l.color)
			start = end
		}
	}

	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = compactLangNode(l, i, true, animated)
	}
	return fmt.Sprintf(`<g transform="translate(0, 0)"><g transform="translate(0, 0)">%s</g>`+
		`<g transform="translate(125, %s)"><svg width="%s" height="%s">%s</svg></g></g>`,
		flexLayout(names, 32, true), num(donutCenterTranslation(len(langs))), num(width), num(width), paths.String())
}

func chartWithNames(testID, chart string, langs []langEntry, animated bool) string {
	return fmt.Sprintf(`<svg data-testid="lang-items"><g transform="translate(0, 0)"><svg data-testid="%s">%s</svg></g>`+
		`<g transform="translate(0, 220)"><svg data-testid="lang-names" x="%s">%s</svg></g></svg>`,
		testID, chart, num(paddingX), languageColumns(langs, true, animated))
}

func donutVerticalLangsLayout(langs []langEntry, animated bool) string {
	const radius = 80.0
	circumference := 2 * math.Pi * radius
	var sb strings.Builder
	var indent float64
	for i, l := range langs {
		sb.WriteString(stagger((i+1)*100, animated, ""))
		fmt.Fprintf(&sb, `<circle cx="150" cy="100" r="%s" fill="transparent" stroke="%s" stroke-width="25" stroke-dasharray="%s" stroke-dashoffset="%s" size="%s" data-testid="lang-donut"/></g>`,
			num(radius), l.color, num(circumference), num(indent), metrics.FormatFixed(l.share, 2))
		indent += circumference * l.share / 100
	}
	return chartWithNames("donut", sb.String(), langs, animated)
}

func pieLangsLayout(langs []langEntry, animated bool) string {
	const radius, cx, cy = 90.0, 150.0, 100.0
	var sb strings.Builder
	if len(langs) == 1 {
		fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" stroke="none" fill="%s" data-testid="lang-pie" size="100"/>`,
			num(cx), num(cy), num(radius), langs[0].color)
		return chartWithNames("pie", sb.String(), langs, animated)
	}
	var start float64
	for i, l := range langs {
		angle := l.share / 100 * 360
		end := start + angle
		sx, sy := polar(cx, cy, radius, start)
		ex, ey := polar(cx, cy, radius, end)
		largeArc := 0
		if angle > 180 {
			largeArc = 1
		}
		sb.WriteString(stagger((i+1)*100, animated, ""))
		fmt.Fprintf(&sb, `<path data-testid="lang-pie" size="%s" d="M %s %s L %s %s A %s %s 0 %d 1 %s %s Z" fill="%s"/></g>`,
			metrics.FormatFixed(l.share, 2), num(cx), num(cy), num(sx), num(sy), num(radius), num(radius), largeArc, num(ex), num(ey), l.color)
		start = end
	}
	return chartWithNames("pie", sb.String(), langs, animated)
}

// RenderTopLanguages renders the most used languages card in the requested layout.
func (r *Renderer) RenderTopLanguages(totals domain.LanguageTotals, opts domain.RenderOptions) string {
	strs := r.locales.Strings(opts.Locale)
	animated := !opts.DisableAnimations

	count := opts.LangsCount
	if count <= 0 {
		count = metrics.DefaultLangsCount(opts.Layout, opts.HideProgress)
	}
	ranked := metrics.TopLanguages(totals, metrics.LanguageQuery{
		SizeWeight:  opts.SizeWeight,
		CountWeight: opts.CountWeight,
		Count:       count,
		Hide:        opts.Hide,
	})
	shares := metrics.Shares(ranked)
	langs := make([]langEntry, len(ranked))
	for i, l := range ranked {
		langs[i] = langEntry{name: l.Name, color: langColor(l.Color), share: shares[i]}
	}

	width := langsDefaultWidth
	if opts.CardWidth > 0 {
		width = math.Max(float64(opts.CardWidth), langsMinWidth)
	}
	n := float64(len(langs))
	height := 45 + (n+1)*40
	colors := r.themes.Resolve(opts.ColorOptions, theme.DefaultTheme)

	var body string
	wrapped := true
	switch {
	case len(langs) == 0:
		height = langsCompactBase
		body = fmt.Sprintf(`<text x="0" y="11" class="stat bold" fill="%s">%s</text>`, colors.Text, escape(strs.T("langcard.nodata")))
	case opts.Layout == domain.LayoutPie:
		height = 300 + math.Round(n/2)*25
		width += langsChartExtraWidth
		body = pieLangsLayout(langs, animated)
		wrapped = false
	case opts.Layout == domain.LayoutDonutVertical:
		height = 300 + math.Round(n/2)*25
		width += langsChartExtraWidth
		body = donutVerticalLangsLayout(langs, animated)
		wrapped = false
	case opts.Layout == domain.LayoutCompact || opts.HideProgress:
		height = langsCompactBase + math.Round(n/2)*25
		if opts.HideProgress {
			height -= 25
		}
		body = compactLangsLayout(langs, width, opts.HideProgress, animated)
	case opts.Layout == domain.LayoutDonut:
		height = 215 + math.Max(n-5, 0)*32
		width += langsChartExtraWidth
		body = donutLangsLayout(langs, width, animated)
	default:
		body = normalLangsLayout(langs, width, animated)
	}
	if wrapped {
		body = fmt.Sprintf(`<svg data-testid="lang-items" x="%s">%s</svg>`, num(paddingX), body)
	}

	title := opts.CustomTitle
	if title == "" {
		title = strs.T("langcard.title")
	}
	f := newFrame(opts, colors, title, width, height)
	f.css = strings.Join([]string{
		statCSS(colors.Text),
		fmt.Sprintf(`.lang-name { font: 400 11px "Segoe UI", Ubuntu, Sans-Serif; fill: %s; }`, colors.Text),
		staggerCSS(animated),
		progressCSS(animated),
	}, " ")
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.name + ": " + metrics.FormatFixed(l.share, 2) + "%"
	}
	f.a11yDesc = strings.Join(names, ", ")
	return f.render(body)
}
