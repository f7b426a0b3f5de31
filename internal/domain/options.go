package domain

// Layout selects how a language card arranges its entries.
type Layout string

const (
	LayoutNormal        Layout = "normal"
	LayoutCompact       Layout = "compact"
	LayoutDonut         Layout = "donut"
	LayoutDonutVertical Layout = "donut-vertical"
	LayoutPie           Layout = "pie"
)

// Valid reports whether l is one of the supported layouts. The empty layout is valid.
func (l Layout) Valid() bool {
	switch l {
	case "", LayoutNormal, LayoutCompact, LayoutDonut, LayoutDonutVertical, LayoutPie:
		return true
	}
	return false
}

// RankIcon selects what is drawn inside the rank circle.
type RankIcon string

const (
	RankIconDefault    RankIcon = "default"
	RankIconGitHub     RankIcon = "github"
	RankIconPercentile RankIcon = "percentile"
)

// NumberFormat selects how counters are printed.
type NumberFormat string

const (
	NumberFormatShort NumberFormat = "short"
	NumberFormatLong  NumberFormat = "long"
)

// DisplayFormat selects how WakaTime language rows are labelled.
type DisplayFormat string

const (
	DisplayFormatTime    DisplayFormat = "time"
	DisplayFormatPercent DisplayFormat = "percent"
)

// ColorOptions are the theme-related parameters shared by every card,
// including the error card.
type ColorOptions struct {
	Theme       string
	TitleColor  string
	IconColor   string
	TextColor   string
	BgColor     string
	BorderColor string
	RingColor   string
}

// RenderOptions is the fully resolved set of visual and behavioral toggles
// for a single render. Zero values mean "use the card default" unless noted.
type RenderOptions struct {
	ColorOptions

	// Hide lists stat keys (stats card) or language names (language cards) to omit.
	Hide []string
	// Show lists opt-in stat keys: reviews, prs_merged, prs_merged_percentage,
	// discussions_started, discussions_answered.
	Show []string

	HideTitle  bool
	HideBorder bool
	HideRank   bool
	// HideProgress also switches the language card to the compact layout.
	HideProgress bool

	// CardWidth of 0 selects the card default; it is raised to the card minimum.
	CardWidth int
	// LineHeight of 0 selects 25.
	LineHeight float64
	// BorderRadius of nil selects 4.5.
	BorderRadius *float64

	ShowIcons         bool
	ShowOwner         bool
	TextBold          bool
	IncludeAllCommits bool

	CustomTitle  string
	NumberFormat NumberFormat
	RankIcon     RankIcon
	// Locale is lowercase; empty means the base language.
	Locale            string
	DisableAnimations bool

	Layout Layout
	// LangsCount of 0 selects the layout default.
	LangsCount int
	// SizeWeight and CountWeight both zero selects the default weights (1 and 0).
	SizeWeight  float64
	CountWeight float64

	// DescriptionLinesCount of 0 lets the description use up to three lines.
	DescriptionLinesCount int
	DisplayFormat         DisplayFormat
	APIDomain             string
}

// Shows reports whether key was opted into via the show list.
func (o RenderOptions) Shows(key string) bool {
	for _, s := range o.Show {
		if s == key {
			return true
		}
	}
	return false
}

// Hides reports whether key appears in the hide list.
func (o RenderOptions) Hides(key string) bool {
	for _, h := range o.Hide {
		if h == key {
			return true
		}
	}
	return false
}
