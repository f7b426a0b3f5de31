package card

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// charWidths are the advance widths of printable ASCII (from ' ' to '~') in
// the card font at 1px, used to size text without a font engine.
var charWidths = []float64{
	0.2796875, 0.2765625, 0.3546875, 0.5546875, 0.5546875, 0.8890625, 0.665625, 0.190625,
	0.3328125, 0.3328125, 0.3890625, 0.5828125, 0.2765625, 0.3328125, 0.2765625, 0.3015625,
	0.5546875, 0.5546875, 0.5546875, 0.5546875, 0.5546875, 0.5546875, 0.5546875, 0.5546875,
	0.5546875, 0.5546875, 0.2765625, 0.2765625, 0.584375, 0.5828125, 0.584375, 0.5546875,
	1.0140625, 0.665625, 0.665625, 0.721875, 0.721875, 0.665625, 0.609375, 0.7765625,
	0.721875, 0.2765625, 0.5, 0.665625, 0.5546875, 0.8328125, 0.721875, 0.7765625,
	0.665625, 0.7765625, 0.721875, 0.665625, 0.609375, 0.721875, 0.665625, 0.94375,
	0.665625, 0.665625, 0.609375, 0.2765625, 0.3546875, 0.2765625, 0.4765625, 0.5546875,
	0.3328125, 0.5546875, 0.5546875, 0.5, 0.5546875, 0.5546875, 0.2765625, 0.5546875,
	0.5546875, 0.221875, 0.240625, 0.5, 0.221875, 0.8328125, 0.5546875, 0.5546875,
	0.5546875, 0.5546875, 0.3328125, 0.5, 0.2765625, 0.5546875, 0.5, 0.721875,
	0.5, 0.5, 0.5, 0.3546875, 0.259375, 0.353125, 0.5890625,
}

const avgCharWidth = 0.5279276315789471

// measureText estimates the rendered width of s at fontSize pixels.
func measureText(s string, fontSize float64) float64 {
	var w float64
	for _, r := range s {
		if r >= ' ' && int(r-' ') < len(charWidths) {
			w += charWidths[r-' ']
		} else {
			w += avgCharWidth
		}
	}
	return w * fontSize
}

// escape makes s safe as XML character data or an attribute value. Invalid
// UTF-8 becomes U+FFFD and characters XML 1.0 forbids are dropped.
func escape(s string) string {
	s = strings.Map(func(r rune) rune {
		if !isXMLChar(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, "\uFFFD"))
	return html.EscapeString(s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	}
	return r <= utf8.MaxRune
}

// num prints a coordinate rounded to two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// flexLayout places items in a row (or column) separated by gap plus each
// item's size. Empty items are skipped together with their size.
func flexLayout(items []string, gap float64, column bool, sizes ...float64) string {
	var sb strings.Builder
	var offset float64
	for i, item := range items {
		if item == "" {
			continue
		}
		if column {
			fmt.Fprintf(&sb, `<g transform="translate(0, %s)">%s</g>`, num(offset), item)
		} else {
			fmt.Fprintf(&sb, `<g transform="translate(%s, 0)">%s</g>`, num(offset), item)
		}
		var size float64
		if i < len(sizes) {
			size = sizes[i]
		}
		offset += size + gap
	}
	return sb.String()
}

// wrapText breaks text on spaces into lines of at most width runes. Words
// longer than width keep their own line. When more than maxLines lines are
// produced the last kept line ends with "...".
func wrapText(text string, width, maxLines int) []string {
	var lines []string
	var current strings.Builder
	currentLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wordLen > width {
			lines = append(lines, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "..."
	}
	return lines
}

// truncate shortens s to at most n runes, appending "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// progressBar draws a rounded bar of width px filled to percent.
func progressBar(x, y, width, percent float64, color, background string, delay int, animated bool) string {
	fill := math.Max(2, math.Min(100, percent))
	style := ""
	if animated {
		style = fmt.Sprintf(` style="animation-delay: %dms;"`, delay)
	}
	return fmt.Sprintf(`<svg width="%s" x="%s" y="%s">`+
		`<rect rx="5" ry="5" x="0" y="0" width="%s" height="8" fill="%s"></rect>`+
		`<svg data-testid="lang-progress" width="%s%%">`+
		`<rect height="8" fill="%s" rx="5" ry="5" x="0" y="0" class="lang-progress"%s/>`+
		`</svg></svg>`,
		num(width), num(x), num(y), num(width), escape(background), num(fill), escape(color), style)
}

// stagger opens a fade-in group. With animations off the group carries no delay.
func stagger(delay int, animated bool, attrs string) string {
	if animated {
		return fmt.Sprintf(`<g class="stagger" style="animation-delay: %dms"%s>`, delay, attrs)
	}
	return fmt.Sprintf(`<g class="stagger"%s>`, attrs)
}

// polar converts an angle in degrees, measured clockwise from 12 o'clock, to a point.
func polar(cx, cy, r, degrees float64) (x, y float64) {
	rad := (degrees - 90) * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}
