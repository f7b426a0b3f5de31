package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("existing env var", func(t *testing.T) {
		os.Setenv("TEST_KEY", "test_value")
		defer os.Unsetenv("TEST_KEY")

		assert.Equal(t, "test_value", GetEnv("TEST_KEY", "default"))
	})

	t.Run("empty env var", func(t *testing.T) {
		os.Setenv("TEST_KEY_EMPTY", "")
		defer os.Unsetenv("TEST_KEY_EMPTY")

		assert.Equal(t, "default", GetEnv("TEST_KEY_EMPTY", "default"))
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("valid integer", func(t *testing.T) {
		os.Setenv("TEST_INT", " 42 ")
		defer os.Unsetenv("TEST_INT")

		assert.Equal(t, 42, GetEnvInt("TEST_INT", 0))
	})

	t.Run("invalid integer", func(t *testing.T) {
		os.Setenv("TEST_INT_INVALID", "not_a_number")
		defer os.Unsetenv("TEST_INT_INVALID")

		assert.Equal(t, 10, GetEnvInt("TEST_INT_INVALID", 10))
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("valid duration", func(t *testing.T) {
		os.Setenv("TEST_DURATION", "1m30s")
		defer os.Unsetenv("TEST_DURATION")

		assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Setenv("TEST_DURATION_INVALID", "soon")
		defer os.Unsetenv("TEST_DURATION_INVALID")

		assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION_INVALID", time.Second))
	})
}

func TestGetEnvList(t *testing.T) {
	os.Setenv("TEST_LIST", " a, ,b,c ")
	defer os.Unsetenv("TEST_LIST")

	assert.Equal(t, []string{"a", "b", "c"}, GetEnvList("TEST_LIST"))

	os.Unsetenv("TEST_LIST_MISSING")
	assert.Empty(t, GetEnvList("TEST_LIST_MISSING"))
}
