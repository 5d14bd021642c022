package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"eventdeck/pkg/config"
	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(contents), 0o600)
	assert.Nil(t, err)

	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Nil(err)
	assert.Equal(config.Default(), cfg)
	assert.Equal(60, cfg.RefreshSeconds)
	assert.Equal(4, cfg.WaterfallMonthsSpan)
	assert.True(cfg.Notifications.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := writeConfig(t, `
server_url: http://calendar.internal:8080
waterfall_months_span: 6
quick_add: true
notifications:
  enabled: true
  categories:
    action: false
    system: true
    error: true
`)

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal("http://calendar.internal:8080", cfg.ServerURL)
	assert.Equal(6, cfg.WaterfallMonthsSpan)
	assert.True(cfg.QuickAdd)
	assert.False(cfg.Notifications.Categories.Action)
	assert.True(cfg.Notifications.Categories.Error)

	// untouched fields keep their defaults
	assert.Equal(60, cfg.RefreshSeconds)
	assert.Equal(800, cfg.MessageDisplayMS)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := writeConfig(t, "server_url: [unclosed")

	_, err := config.Load(path)
	assert.NotNil(err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tests := []string{
		`server_url: ""`,
		`refresh_seconds: 0`,
		`waterfall_months_span: -1`,
		`message_display_ms: 0`,
	}

	for _, contents := range tests {
		path := writeConfig(t, contents)

		_, err := config.Load(path)
		assert.NotNil(err, contents)
	}
}
