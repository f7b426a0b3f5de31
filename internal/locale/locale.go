// Package locale serves the translated strings of every card.
package locale

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Base is the locale every missing key falls back to.
const Base = "en"

//go:embed translations.yaml
var translationsYAML []byte

// longLocales need extra room between a stat label and its value.
var longLocales = map[string]bool{
	"cn": true, "es": true, "fr": true, "pt-br": true, "ru": true, "uk-ua": true, "id": true,
	"ml": true, "my": true, "pl": true, "de": true, "nl": true, "zh-tw": true, "uz": true,
}

// Catalog is a read-only table of translations.
type Catalog struct {
	messages map[string]map[string]string
}

// Load parses a translation table keyed by locale code, then message key.
func Load(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, &c.messages); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}
	if _, ok := c.messages[Base]; !ok {
		return nil, fmt.Errorf("translations have no %q locale", Base)
	}
	return c, nil
}

// Default loads the embedded translation table.
func Default() (*Catalog, error) {
	return Load(translationsYAML)
}

// IsAvailable reports whether code has translations. The empty code is the base locale.
func (c *Catalog) IsAvailable(code string) bool {
	if code == "" {
		return true
	}
	_, ok := c.messages[strings.ToLower(code)]
	return ok
}

// Codes lists the available locale codes in order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.messages))
	for code := range c.messages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Strings returns the lookup for one locale. Unknown codes resolve to the base locale.
func (c *Catalog) Strings(code string) Strings {
	code = strings.ToLower(code)
	if _, ok := c.messages[code]; !ok {
		code = Base
	}
	return Strings{code: code, primary: c.messages[code], fallback: c.messages[Base]}
}

// Strings translates message keys for a single locale.
type Strings struct {
	code     string
	primary  map[string]string
	fallback map[string]string
}

// Code is the resolved locale code.
func (s Strings) Code() string {
	return s.code
}

// IsLong reports whether the locale's labels need the wider value column.
func (s Strings) IsLong() bool {
	return longLocales[s.code]
}

// T returns the message for key, falling back to the base locale and then to
// the key itself. replacements are placeholder/value pairs such as "{name}", "octo".
func (s Strings) T(key string, replacements ...string) string {
	msg, ok := s.primary[key]
	if !ok {
		msg, ok = s.fallback[key]
	}
	if !ok {
		msg = key
	}
	if len(replacements) >= 2 {
		msg = strings.NewReplacer(replacements[:len(replacements)/2*2]...).Replace(msg)
	}
	return msg
}
