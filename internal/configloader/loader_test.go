package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/internal/configloader"
	"github.com/yaklabco/typfmt/pkg/config"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) configloader.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func isolated(dir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		LookupEnv:        noEnv,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func ptr[T any](v T) *T { return &v }

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, ".typfmt.yml"), `
max_width: 100
indent_width: 4
reorder_import_items: false
ignore:
  - "vendor/**"
`)

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 100, cfg.MaxWidth)
	assert.Equal(t, 4, cfg.IndentWidth)
	assert.False(t, cfg.ReorderImportItems, "false in a file overrides a true default")
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	assert.Equal(t, []string{filepath.Join(dir, ".typfmt.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, "typfmt.toml"), `
max_width = 60
wrap_text = true
color = "never"
`)

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, 60, result.Config.MaxWidth)
	assert.True(t, result.Config.WrapText)
	assert.Equal(t, config.ColorNever, result.Config.Color)
}

func TestLoad_ProjectSearchWalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".typfmt.yml"), "max_width: 90\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, 90, result.Config.MaxWidth)
}

func TestLoad_SearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".typfmt.yml"), "max_width: 90\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxWidth, result.Config.MaxWidth)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, ".typfmt.yml"), "max_width: 100\nindent_width: 4\njobs: 2\n")
	explicit := filepath.Join(dir, "other.yml")
	writeFile(t, explicit, "indent_width: 3\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.LookupEnv = envMap(map[string]string{
		"TYPFMT_JOBS":      "6",
		"TYPFMT_MAX_WIDTH": "70",
	})
	opts.CLI = &configloader.Layer{MaxWidth: ptr(50)}

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 50, cfg.MaxWidth, "flags beat the environment")
	assert.Equal(t, 3, cfg.IndentWidth, "explicit file beats project file")
	assert.Equal(t, 6, cfg.Jobs, "environment beats files")
	assert.Equal(t, []string{filepath.Join(dir, ".typfmt.yml"), explicit}, result.LoadedFrom)
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := filepath.Join(dir, ".typfmt.yml")
	writeFile(t, path, "max_width: 80\nline_width: 80\n")

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown key "line_width"`)
	assert.Contains(t, result.Warnings[0], path)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			file:    ".typfmt.yml",
			content: "max_width: [1,\n",
			wantErr: "load project config",
		},
		{
			name:    "malformed toml",
			file:    "typfmt.toml",
			content: "max_width = \n",
			wantErr: "load project config",
		},
		{
			name:    "zero width",
			file:    ".typfmt.yml",
			content: "max_width: 0\n",
			wantErr: ".typfmt.yml: max_width",
		},
		{
			name:    "bad color",
			file:    ".typfmt.yml",
			content: "color: sometimes\n",
			wantErr: "color",
		},
		{
			name:    "bad env integer",
			env:     map[string]string{"TYPFMT_INDENT_WIDTH": "two"},
			wantErr: "TYPFMT_INDENT_WIDTH",
		},
		{
			name:    "bad env boolean",
			env:     map[string]string{"TYPFMT_WRAP_TEXT": "maybe"},
			wantErr: "TYPFMT_WRAP_TEXT",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
			if tc.file != "" {
				writeFile(t, filepath.Join(dir, tc.file), tc.content)
			}
			opts := isolated(dir)
			if tc.env != nil {
				opts.LookupEnv = envMap(tc.env)
			}

			_, err := configloader.Load(context.Background(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := isolated(dir)
	opts.IgnoreProjectConfig = true
	opts.ExplicitPath = filepath.Join(dir, "missing.yml")

	_, err := configloader.Load(context.Background(), opts)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLayerFromEnv(t *testing.T) {
	t.Parallel()

	layer, err := configloader.LayerFromEnv(envMap(map[string]string{
		"TYPFMT_COLLAPSE_MARKUP_SPACES": "true",
		"TYPFMT_REORDER_IMPORT_ITEMS":   "0",
		"TYPFMT_IGNORE":                 " a/** , ,b.typ",
		"TYPFMT_LOG_LEVEL":              "debug",
		"TYPFMT_MAX_WIDTH":              "",
	}))
	require.NoError(t, err)

	assert.Nil(t, layer.MaxWidth, "empty variables are ignored")
	assert.Equal(t, ptr(true), layer.CollapseMarkupSpaces)
	assert.Equal(t, ptr(false), layer.ReorderImportItems)
	assert.Equal(t, []string{"a/**", "b.typ"}, layer.Ignore)
	assert.Equal(t, ptr("debug"), layer.LogLevel)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := configloader.ListEnvVars()
	require.NotEmpty(t, vars)
	for _, v := range vars {
		assert.Regexp(t, `^TYPFMT_[A-Z_]+$`, v[0])
		assert.NotEmpty(t, v[1])
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	cfg := configloader.Resolve(
		&configloader.Layer{MaxWidth: ptr(40), Ignore: []string{"a"}},
		nil,
		&configloader.Layer{WrapText: ptr(true), Ignore: []string{}},
	)
	assert.Equal(t, 40, cfg.MaxWidth)
	assert.True(t, cfg.WrapText)
	assert.Equal(t, config.DefaultIndentWidth, cfg.IndentWidth)
	assert.Empty(t, cfg.Ignore, "a later empty list clears the earlier one")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.True(t, configloader.Validate(cfg).Valid())

	cfg.IndentWidth = 0
	cfg.Jobs = -1
	cfg.LogLevel = "loud"
	cfg.Ignore = []string{"[unclosed", ""}
	result := configloader.ValidateWithFile(cfg, "cfg.yml")
	require.False(t, result.Valid())

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
		assert.Equal(t, "cfg.yml", e.FilePath)
	}
	assert.Equal(t, []string{"indent_width", "jobs", "log_level", "ignore[0]", "ignore[1]"}, fields)
	require.ErrorContains(t, result.Err(), "and 4 more")

	wide := config.NewConfig()
	wide.MaxWidth = 2
	wide.IndentWidth = 4
	result = configloader.Validate(wide)
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "indent_width: is wider than max_width (2)", result.Warnings[0].Error())
}
