package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	t.Run("availability", func(t *testing.T) {
		assert.True(t, catalog.IsAvailable(""))
		assert.True(t, catalog.IsAvailable("en"))
		assert.True(t, catalog.IsAvailable("PT-BR"))
		assert.False(t, catalog.IsAvailable("xx"))
		assert.Contains(t, catalog.Codes(), "de")
	})

	t.Run("translation with placeholders", func(t *testing.T) {
		en := catalog.Strings("en")
		assert.Equal(t, "octocat's GitHub Stats", en.T("statcard.title", "{name}", "octocat", "{apostrophe}", "s"))
		assert.Equal(t, "Most Used Languages", en.T("langcard.title"))
	})

	t.Run("missing key falls back to base locale", func(t *testing.T) {
		de := catalog.Strings("de")
		assert.Equal(t, "Meist verwendete Sprachen", de.T("langcard.title"))
		assert.Equal(t, "WakaTime user profile not public", de.T("wakatimecard.notpublic"))
	})

	t.Run("unknown key returns the key", func(t *testing.T) {
		assert.Equal(t, "statcard.nope", catalog.Strings("en").T("statcard.nope"))
	})

	t.Run("unknown locale resolves to base", func(t *testing.T) {
		s := catalog.Strings("xx")
		assert.Equal(t, Base, s.Code())
		assert.False(t, s.IsLong())
	})

	t.Run("long locales", func(t *testing.T) {
		assert.True(t, catalog.Strings("de").IsLong())
		assert.False(t, catalog.Strings("it").IsLong())
	})
}

func TestLoad_RequiresBaseLocale(t *testing.T) {
	_, err := Load([]byte("de:\n  langcard.title: Sprachen\n"))
	assert.Error(t, err)
}
