package card

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/metrics"
	"github.com/naka-gawa/readme-stats/internal/params"
	"github.com/naka-gawa/readme-stats/internal/theme"
)

const (
	repoCardWidth        = 400.0
	repoDescriptionWidth = 59
	repoDescriptionLines = 3
	repoTitleMaxLength   = 35
	repoLineHeight       = 10.0
	repoIconSize         = 16.0
)

func repoBadge(label, color string) string {
	return fmt.Sprintf(`<g data-testid="badge" class="badge" transform="translate(320, -18)">`+
		`<rect stroke="%s" stroke-width="1" width="70" height="20" x="-12" y="-14" ry="10" rx="10"></rect>`+
		`<text x="23" y="-5" alignment-baseline="central" dominant-baseline="central" text-anchor="middle" fill="%s">%s</text></g>`,
		color, color, escape(label))
}

// iconWithLabel draws an icon followed by a counter; non-positive counts draw nothing.
func iconWithLabel(icon string, count int, testID string) string {
	if count <= 0 {
		return ""
	}
	iconSVG := fmt.Sprintf(`<svg class="icon" y="-12" viewBox="0 0 16 16" version="1.1" width="%s" height="%s">%s</svg>`,
		num(repoIconSize), num(repoIconSize), icon)
	text := fmt.Sprintf(`<text data-testid="%s" class="gray">%s</text>`, testID, metrics.FormatNumber(count, domain.NumberFormatShort))
	return flexLayout([]string{iconSVG, text}, 20, false)
}

// RenderRepoCard renders the pinned repository card. It never animates.
func (r *Renderer) RenderRepoCard(repo *domain.Repo, opts domain.RenderOptions) string {
	strs := r.locales.Strings(opts.Locale)
	opts.DisableAnimations = true
	opts.HideTitle = false

	header := repo.Name
	if opts.ShowOwner && repo.NameWithOwner != "" {
		header = repo.NameWithOwner
	}

	maxLines := repoDescriptionLines
	if opts.DescriptionLinesCount > 0 {
		maxLines = params.Clamp(opts.DescriptionLinesCount, 1, repoDescriptionLines)
	}
	description := repo.Description
	if strings.TrimSpace(description) == "" {
		description = "No description provided"
	}
	lines := wrapText(description, repoDescriptionWidth, maxLines)
	linesCount := len(lines)
	if opts.DescriptionLinesCount > 0 {
		linesCount = maxLines
	}

	var desc strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&desc, `<tspan dy="1.2em" x="25">%s</tspan>`, escape(line))
	}

	height := 110.0
	if linesCount > 1 {
		height = 120
	}
	height += float64(linesCount) * repoLineHeight

	colors := r.themes.Resolve(opts.ColorOptions, theme.RepoCardTheme)

	langName := repo.PrimaryLanguage
	language := ""
	if langName != "" {
		language = fmt.Sprintf(`<g data-testid="primary-lang"><circle data-testid="lang-color" cx="0" cy="-5" r="6" fill="%s"/>`+
			`<text data-testid="lang-name" class="gray" x="15">%s</text></g>`, langColor(repo.LanguageColor), escape(langName))
	}
	stars := metrics.FormatNumber(repo.StarCount, domain.NumberFormatShort)
	forks := metrics.FormatNumber(repo.ForkCount, domain.NumberFormatShort)
	footer := flexLayout(
		[]string{language, iconWithLabel(iconStar, repo.StarCount, "stargazers"), iconWithLabel(iconFork, repo.ForkCount, "forkcount")},
		25, false,
		measureText(langName, 12), repoIconSize+measureText(stars, 12), repoIconSize+measureText(forks, 12),
	)

	badge := ""
	switch {
	case repo.IsTemplate:
		badge = repoBadge(strs.T("repocard.template"), colors.Text)
	case repo.IsArchived:
		badge = repoBadge(strs.T("repocard.archived"), colors.Text)
	}

	f := newFrame(opts, colors, truncate(header, repoTitleMaxLength), repoCardWidth, height)
	f.titleIcon = iconRepo
	f.a11yDesc = description
	f.css = fmt.Sprintf(`.description { font: 400 13px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s } `+
		`.gray { font: 400 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: %s } `+
		`.icon { fill: %s } .badge { font: 600 11px 'Segoe UI', Ubuntu, Sans-Serif; } .badge rect { opacity: 0.2 }`,
		colors.Text, colors.Text, colors.Icon)

	body := badge +
		fmt.Sprintf(`<text class="description" x="25" y="-5">%s</text>`, desc.String()) +
		fmt.Sprintf(`<g transform="translate(30, %s)">%s</g>`, num(height-75), footer)
	return f.render(body)
}
