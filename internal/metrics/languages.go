package metrics

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/params"
)

const (
	DefaultSizeWeight  = 1.0
	DefaultCountWeight = 0.0
	// MaxLangsCount bounds how many languages any card lists.
	MaxLangsCount = 20
)

// LanguageQuery selects and orders languages out of LanguageTotals.
type LanguageQuery struct {
	SizeWeight  float64
	CountWeight float64
	// Count is clamped to [1, MaxLangsCount].
	Count int
	// Hide names are matched case-insensitively.
	Hide []string
}

// RankedLanguage is a language with its weighted score.
type RankedLanguage struct {
	domain.Language
	Score float64
}

func (q LanguageQuery) weights() (size, count float64) {
	size, count = q.SizeWeight, q.CountWeight
	if size < 0 {
		size = 0
	}
	if count < 0 {
		count = 0
	}
	if size == 0 && count == 0 {
		return DefaultSizeWeight, DefaultCountWeight
	}
	return size, count
}

// TopLanguages scores each language as size*SizeWeight + count*CountWeight,
// sorts by score descending then name ascending, drops hidden names and
// truncates to the requested count.
func TopLanguages(totals domain.LanguageTotals, q LanguageQuery) []RankedLanguage {
	sizeWeight, countWeight := q.weights()

	hidden := make(map[string]bool, len(q.Hide))
	for _, h := range q.Hide {
		hidden[strings.ToLower(strings.TrimSpace(h))] = true
	}

	ranked := make([]RankedLanguage, 0, len(totals))
	for name, lang := range totals {
		if hidden[strings.ToLower(strings.TrimSpace(name))] {
			continue
		}
		if lang.Name == "" {
			lang.Name = name
		}
		ranked = append(ranked, RankedLanguage{
			Language: lang,
			Score:    float64(lang.Size)*sizeWeight + float64(lang.Count)*countWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	limit := params.Clamp(q.Count, 1, MaxLangsCount)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Shares returns each language's percentage of the listed scores, rounded to
// two decimals. A zero total yields zero shares.
func Shares(langs []RankedLanguage) []float64 {
	scores := make(stats.Float64Data, len(langs))
	for i, l := range langs {
		scores[i] = l.Score
	}
	shares := make([]float64, len(langs))
	total, err := stats.Sum(scores)
	if err != nil || total <= 0 {
		return shares
	}
	for i, s := range scores {
		shares[i] = round2(s / total * 100)
	}
	return shares
}

// Renormalize scales percents so they sum to 100, rounded to two decimals.
func Renormalize(percents []float64) []float64 {
	out := make([]float64, len(percents))
	total, err := stats.Sum(stats.Float64Data(percents))
	if err != nil || total <= 0 {
		return out
	}
	weight := round2(100 / total)
	for i, p := range percents {
		out[i] = round2(p * weight)
	}
	return out
}

func round2(f float64) float64 {
	r, err := stats.Round(f, 2)
	if err != nil {
		return f
	}
	return r
}

// DefaultLangsCount is the number of languages a layout lists when the
// request does not say.
func DefaultLangsCount(layout domain.Layout, hideProgress bool) int {
	if hideProgress {
		return 6
	}
	switch layout {
	case domain.LayoutCompact, domain.LayoutDonutVertical, domain.LayoutPie:
		return 6
	default:
		return 5
	}
}
