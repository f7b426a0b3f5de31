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
	statsCardMinWidth        = 287.0
	statsCardDefaultWidth    = 287.0
	rankCardMinWidth         = 420.0
	rankCardDefaultWidth     = 450.0
	rankOnlyCardMinWidth     = 290.0
	rankOnlyCardDefaultWidth = 290.0
	statIconWidth            = 17.0
	rankCircleRadius         = 40.0
	valueShift               = 79.01
	longLocaleValueShift     = 50.0
)

type statItem struct {
	key   string
	optIn bool
	icon  string
	label string
	value string
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func buildStatItems(stats *domain.Stats, opts domain.RenderOptions, label func(string) string) []statItem {
	format := func(n int) string { return metrics.FormatNumber(n, opts.NumberFormat) }

	commitsLabel := label("statcard.commits")
	if !stats.IncludeAllCommits && stats.CommitsYear > 0 {
		commitsLabel = fmt.Sprintf("%s (%d)", commitsLabel, stats.CommitsYear)
	}

	all := []statItem{
		{key: "stars", icon: iconStar, label: label("statcard.totalstars"), value: format(stats.TotalStars)},
		{key: "commits", icon: iconCommits, label: commitsLabel, value: format(stats.TotalCommits)},
		{key: "prs", icon: iconPRs, label: label("statcard.prs"), value: format(stats.TotalPRs)},
		{key: "prs_merged", optIn: true, icon: iconPRsMerged, label: label("statcard.prs-merged"), value: format(derefInt(stats.TotalPRsMerged))},
		{key: "prs_merged_percentage", optIn: true, icon: iconPRsMerged, label: label("statcard.prs-merged-percentage"),
			value: metrics.FormatFixed(math.Max(0, derefFloat(stats.MergedPRsPercentage)), 2) + " %"},
		{key: "reviews", optIn: true, icon: iconReviews, label: label("statcard.reviews"), value: format(stats.TotalReviews)},
		{key: "issues", icon: iconIssues, label: label("statcard.issues"), value: format(stats.TotalIssues)},
		{key: "discussions_started", optIn: true, icon: iconDiscussions, label: label("statcard.discussions-started"), value: format(derefInt(stats.TotalDiscussionsStarted))},
		{key: "discussions_answered", optIn: true, icon: iconDiscussions, label: label("statcard.discussions-answered"), value: format(derefInt(stats.TotalDiscussionsAnswered))},
		{key: "contribs", icon: iconRepo, label: label("statcard.contribs"), value: format(stats.ContributedTo)},
	}

	items := make([]statItem, 0, len(all))
	for _, item := range all {
		if opts.Hides(item.key) || (item.optIn && !opts.Shows(item.key)) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func statRow(item statItem, index int, opts domain.RenderOptions, shift float64) string {
	weight := "not_bold"
	if opts.TextBold {
		weight = "bold"
	}
	icon, labelX, valueX := "", "", 120.0
	if opts.ShowIcons {
		icon = fmt.Sprintf(`<svg data-testid="icon" class="icon" viewBox="0 0 16 16" version="1.1" width="16" height="16">%s</svg>`, item.icon)
		labelX = ` x="25"`
		valueX = 140
	}
	return stagger((index+3)*150, !opts.DisableAnimations, ` transform="translate(25, 0)"`) +
		icon +
		fmt.Sprintf(`<text class="stat %s"%s y="12.5">%s:</text>`, weight, labelX, escape(item.label)) +
		fmt.Sprintf(`<text class="stat %s" x="%s" y="12.5" data-testid="%s">%s</text>`, weight, num(valueX+shift), item.key, escape(item.value)) +
		`</g>`
}

func rankIcon(kind domain.RankIcon, rank domain.Rank) string {
	switch kind {
	case domain.RankIconGitHub:
		return `<svg x="-38" y="-30" height="66" width="66" aria-hidden="true" viewBox="0 0 16 16" version="1.1" data-testid="github-rank-icon">` + iconGitHub + `</svg>`
	case domain.RankIconPercentile:
		return `<text x="-5" y="-12" alignment-baseline="central" dominant-baseline="central" text-anchor="middle" data-testid="percentile-top-header" class="rank-percentile-header">Top</text>` +
			fmt.Sprintf(`<text x="-5" y="12" alignment-baseline="central" dominant-baseline="central" text-anchor="middle" data-testid="percentile-rank-value" class="rank-percentile-text">%s%%</text>`,
				metrics.FormatFixed(rank.Percentile, 1))
	default:
		return fmt.Sprintf(`<text x="-5" y="3" alignment-baseline="central" dominant-baseline="central" text-anchor="middle" data-testid="level-rank-icon">%s</text>`,
			escape(rank.Level))
	}
}

// circleOffset is the stroke-dashoffset that leaves (100 - percentile)% of the ring drawn.
func circleOffset(percentile float64) float64 {
	circumference := 2 * math.Pi * rankCircleRadius
	p := math.Max(0, math.Min(100, percentile))
	return p / 100 * circumference
}

func statsCSS(colors theme.Colors, opts domain.RenderOptions, percentile float64) string {
	animated := !opts.DisableAnimations
	iconDisplay := "none"
	if opts.ShowIcons {
		iconDisplay = "block"
	}
	offset := num(circleOffset(percentile))

	rankTextAnimation := ""
	rankCircleMotion := " stroke-dashoffset: " + offset + ";"
	rankKeyframes := ""
	if animated {
		rankTextAnimation = " animation: scaleInAnimation 0.3s ease-in-out forwards;"
		rankCircleMotion = " animation: rankAnimation 1s forwards ease-in-out;"
		rankKeyframes = fmt.Sprintf(`@keyframes rankAnimation { from { stroke-dashoffset: %s; } to { stroke-dashoffset: %s; } }`,
			num(circleOffset(100)), offset)
	}

	return strings.Join([]string{
		statCSS(colors.Text),
		staggerCSS(animated),
		fmt.Sprintf(`.rank-text { font: 800 24px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s;%s }`, colors.Text, rankTextAnimation),
		`.rank-percentile-header { font-size: 14px; } .rank-percentile-text { font-size: 16px; }`,
		fmt.Sprintf(`.icon { fill: %s; display: %s; }`, colors.Icon, iconDisplay),
		fmt.Sprintf(`.rank-circle-rim { stroke: %s; fill: none; stroke-width: 6; opacity: 0.2; }`, colors.Ring),
		fmt.Sprintf(`.rank-circle { stroke: %s; stroke-dasharray: 250; fill: none; stroke-width: 6; stroke-linecap: round; opacity: 0.8; transform-origin: -10px 8px; transform: rotate(-90deg);%s }`,
			colors.Ring, rankCircleMotion),
		rankKeyframes,
	}, " ")
}

// RenderStatsCard renders the profile stats card with its rank circle.
func (r *Renderer) RenderStatsCard(stats *domain.Stats, opts domain.RenderOptions) string {
	strs := r.locales.Strings(opts.Locale)
	items := buildStatItems(stats, opts, func(key string) string { return strs.T(key) })

	if len(items) == 0 && opts.HideRank {
		return r.RenderError("Could not render stats card.", "Either stats or rank are required.", opts.ColorOptions)
	}

	lineHeight := defaultLineHeight
	if opts.LineHeight > 0 {
		lineHeight = opts.LineHeight
	}
	shift := valueShift
	if strs.IsLong() {
		shift += longLocaleValueShift
	}

	name := stats.DisplayName()
	apostrophe := "s"
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), "s") {
		apostrophe = ""
	}
	title := opts.CustomTitle
	if title == "" {
		key := "statcard.title"
		if len(items) == 0 {
			key = "statcard.ranktitle"
		}
		title = strs.T(key, "{name}", name, "{apostrophe}", apostrophe)
	}

	n := float64(len(items))
	minHeight := 0.0
	if !opts.HideRank {
		minHeight = 150
		if len(items) == 0 {
			minHeight = 180
		}
	}
	height := math.Max(45+(n+1)*lineHeight, minHeight)

	iconWidth := 0.0
	if opts.ShowIcons && len(items) > 0 {
		iconWidth = statIconWidth
	}
	var minWidth, defaultWidth float64
	switch {
	case opts.HideRank:
		minWidth = math.Max(50+measureText(title, 10)*2, statsCardMinWidth) + iconWidth
		defaultWidth = statsCardDefaultWidth + iconWidth
	case len(items) > 0:
		minWidth = rankCardMinWidth + iconWidth
		defaultWidth = rankCardDefaultWidth + iconWidth
	default:
		minWidth = rankOnlyCardMinWidth
		defaultWidth = rankOnlyCardDefaultWidth
	}
	width := defaultWidth
	if opts.CardWidth > 0 {
		width = float64(opts.CardWidth)
	}
	width = math.Max(width, minWidth)

	rows := make([]string, len(items))
	desc := make([]string, len(items))
	for i, item := range items {
		rows[i] = statRow(item, i, opts, shift)
		desc[i] = item.label + ": " + item.value
	}

	rank := stats.Rank
	rankCircle := ""
	if !opts.HideRank {
		rankCircle = fmt.Sprintf(`<g data-testid="rank-circle" transform="translate(%s, %s)">`+
			`<circle class="rank-circle-rim" cx="-10" cy="8" r="40"/>`+
			`<circle class="rank-circle" cx="-10" cy="8" r="40"/>`+
			`<g class="rank-text">%s</g></g>`,
			num(rankX(len(items) > 0, width, minWidth, iconWidth)), num(height/2-50), rankIcon(opts.RankIcon, rank))
	}

	colors := r.themes.Resolve(opts.ColorOptions, theme.DefaultTheme)
	f := newFrame(opts, colors, title, width, height)
	f.css = statsCSS(colors, opts, rank.Percentile)
	f.a11yDesc = strings.Join(desc, ", ")
	if !opts.HideRank {
		f.a11yTitle = fmt.Sprintf("%s, Rank: %s", title, rank.Level)
	}

	body := rankCircle + `<svg x="0" y="0">` + flexLayout(rows, lineHeight, true) + `</svg>`
	return f.render(body)
}

// rankX centers the rank circle in the space right of the stat rows.
func rankX(hasStats bool, width, minWidth, iconWidth float64) float64 {
	if !hasStats {
		return width/2 + 20 - 10
	}
	minX := rankCardMinWidth + iconWidth - 70
	if width > rankCardDefaultWidth {
		return minX + (rankCardDefaultWidth-minWidth)/2 + width - rankCardDefaultWidth
	}
	return minX + (width-minWidth)/2
}
