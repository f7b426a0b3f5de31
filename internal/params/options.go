package params

import (
	"net/url"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

// Colors extracts the theme parameters shared by every card.
func Colors(q url.Values) domain.ColorOptions {
	return domain.ColorOptions{
		Theme:       q.Get("theme"),
		TitleColor:  q.Get("title_color"),
		IconColor:   q.Get("icon_color"),
		TextColor:   q.Get("text_color"),
		BgColor:     q.Get("bg_color"),
		BorderColor: q.Get("border_color"),
		RingColor:   q.Get("ring_color"),
	}
}

// Resolve builds the render options for a request. It is the only place that
// reads raw option values; every later layer sees typed fields.
func Resolve(q url.Values) domain.RenderOptions {
	opts := domain.RenderOptions{
		ColorOptions: Colors(q),

		Hide: ParseList(q.Get("hide")),
		Show: ParseList(q.Get("show")),

		HideTitle:         Bool(q.Get("hide_title"), false),
		HideBorder:        Bool(q.Get("hide_border"), false),
		HideRank:          Bool(q.Get("hide_rank"), false),
		HideProgress:      Bool(q.Get("hide_progress"), false),
		ShowIcons:         Bool(q.Get("show_icons"), false),
		ShowOwner:         Bool(q.Get("show_owner"), false),
		TextBold:          Bool(q.Get("text_bold"), true),
		IncludeAllCommits: Bool(q.Get("include_all_commits"), false),
		DisableAnimations: Bool(q.Get("disable_animations"), false),

		CustomTitle:   q.Get("custom_title"),
		Locale:        strings.ToLower(strings.TrimSpace(q.Get("locale"))),
		Layout:        domain.Layout(strings.TrimSpace(q.Get("layout"))),
		APIDomain:     strings.TrimSpace(q.Get("api_domain")),
		NumberFormat:  domain.NumberFormatShort,
		RankIcon:      domain.RankIconDefault,
		DisplayFormat: domain.DisplayFormatTime,
		SizeWeight:    1,
	}

	if n, ok := ParseInt(q.Get("card_width")); ok && n > 0 {
		opts.CardWidth = n
	}
	if f, ok := ParseFloat(q.Get("line_height")); ok && f > 0 {
		opts.LineHeight = f
	}
	if f, ok := ParseFloat(q.Get("border_radius")); ok && f >= 0 {
		opts.BorderRadius = &f
	}
	if n, ok := ParseInt(q.Get("langs_count")); ok && n > 0 {
		opts.LangsCount = n
	}
	if n, ok := ParseInt(q.Get("description_lines_count")); ok && n > 0 {
		opts.DescriptionLinesCount = n
	}
	if f, ok := ParseFloat(q.Get("size_weight")); ok && f >= 0 {
		opts.SizeWeight = f
	}
	if f, ok := ParseFloat(q.Get("count_weight")); ok && f >= 0 {
		opts.CountWeight = f
	}

	if strings.EqualFold(q.Get("number_format"), string(domain.NumberFormatLong)) {
		opts.NumberFormat = domain.NumberFormatLong
	}
	switch domain.RankIcon(strings.ToLower(q.Get("rank_icon"))) {
	case domain.RankIconGitHub:
		opts.RankIcon = domain.RankIconGitHub
	case domain.RankIconPercentile:
		opts.RankIcon = domain.RankIconPercentile
	}
	if strings.EqualFold(q.Get("display_format"), string(domain.DisplayFormatPercent)) {
		opts.DisplayFormat = domain.DisplayFormatPercent
	}

	return opts
}
