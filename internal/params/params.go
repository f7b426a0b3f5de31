// Package params converts raw query-string values into typed, bounded values.
// Nothing in here fails: malformed input degrades to "unset".
package params

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// ParseBool accepts "true" and "false" in any case. Anything else is unset.
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Bool returns the parsed value of s, or def when s is unset or malformed.
func Bool(s string, def bool) bool {
	if v, ok := ParseBool(s); ok {
		return v
	}
	return def
}

// ParseList splits a comma-separated value, trimming entries and dropping empty ones.
// A surrounding pair of brackets is tolerated: "[a,b]" equals "a,b".
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseInt parses a base-10 integer. ok is false for empty or malformed input.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFloat parses a finite decimal number. ok is false for empty, malformed,
// infinite or NaN input.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Clamp returns lo if v < lo, hi if v > hi, and v otherwise.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
