package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/internal/ui/pretty"
	"github.com/yaklabco/typfmt/pkg/config"
)

func TestNewStylesWithoutColor(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "text", styles.Bold.Render("text"))
	assert.Equal(t, "text", styles.DiffAdd.Render("text"))
	assert.Equal(t, "text", styles.Error.Render("text"))
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf), "a buffer is not a terminal")
}

func TestIsColorEnabledHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, os.Stdout))
}

func TestTerminalWidthDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 80, pretty.TerminalWidth(&bytes.Buffer{}))
}
