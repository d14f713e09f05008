package config_test

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, 80, cfg.MaxWidth)
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.True(t, cfg.ReorderImportItems)
	assert.False(t, cfg.WrapText)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, config.OutputStdout, cfg.Mode)
	assert.Equal(t, *cfg, config.Default())
}

func TestCollapseSpaces(t *testing.T) {
	cfg := config.Default()
	assert.False(t, cfg.CollapseSpaces())

	cfg.WrapText = true
	assert.True(t, cfg.CollapseSpaces())

	cfg = config.Default()
	cfg.CollapseMarkupSpaces = true
	assert.True(t, cfg.CollapseSpaces())
}

func TestColorModeIsValid(t *testing.T) {
	assert.True(t, config.ColorAlways.IsValid())
	assert.True(t, config.ColorMode("never").IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.MaxWidth = 100
		cfg.Mode = config.OutputCheck

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "max_width: 100")
		assert.Contains(t, string(data), "reorder_import_items: true")
		assert.NotContains(t, string(data), "check")
	})

	t.Run("header is prepended", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader("# hello")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# hello\n\nmax_width: 80")
	})
}

func TestConfigToTOML(t *testing.T) {
	cfg := config.NewConfig()
	cfg.IndentWidth = 4
	cfg.Ignore = []string{"out/**"}
	cfg.Timing = true

	data, err := cfg.ToTOML()
	require.NoError(t, err)

	var decoded map[string]any
	_, err = toml.Decode(string(data), &decoded)
	require.NoError(t, err)
	assert.Equal(t, int64(4), decoded["indent_width"])
	assert.Equal(t, int64(80), decoded["max_width"])
	assert.Equal(t, []any{"out/**"}, decoded["ignore"])
	assert.NotContains(t, decoded, "timing")
	assert.NotContains(t, decoded, "mode")
}

func TestGenerateTemplate(t *testing.T) {
	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(minimal), "max_width: 80")
	assert.NotContains(t, string(minimal), "wrap_text")

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "toml"})
	require.NoError(t, err)
	assert.Contains(t, string(full), "wrap_text = false")
	assert.Contains(t, string(full), "color = \"auto\"")

	var decoded map[string]any
	_, err = toml.Decode(string(full), &decoded)
	require.NoError(t, err)
	assert.Equal(t, int64(80), decoded["max_width"])

	_, err = config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.Error(t, err)
}
