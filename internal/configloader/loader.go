// Package configloader resolves the formatter configuration from defaults,
// configuration files, the environment, and command-line overrides.
package configloader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/typfmt/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to the
	// current working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config.
	ExplicitPath string

	// IgnoreUserConfig skips $XDG_CONFIG_HOME/typfmt.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the upward project config search.
	IgnoreProjectConfig bool

	// IgnoreEnv skips TYPFMT_* variables.
	IgnoreEnv bool

	// LookupEnv replaces os.LookupEnv, mostly for tests.
	LookupEnv LookupFunc

	// CLI holds values set by command-line flags. It takes precedence over
	// every other source.
	CLI *Layer
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Paths are the discovered configuration files.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal issues such as unknown keys.
	Warnings []string
}

// Load resolves the configuration. Precedence, lowest first:
//  1. Defaults
//  2. User config ($XDG_CONFIG_HOME/typfmt/config.yml)
//  3. Project config (.typfmt.yml upward search)
//  4. Explicit config file (opts.ExplicitPath)
//  5. Environment variables (TYPFMT_*)
//  6. Command-line flags (opts.CLI)
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths := &ConfigPaths{}
	if !opts.IgnoreUserConfig {
		paths.User = findUserConfig()
	}
	if !opts.IgnoreProjectConfig {
		project, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths.Project = project
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	var layers []*Layer

	for _, src := range []struct{ kind, path string }{
		{"user", paths.User},
		{"project", paths.Project},
		{"explicit", paths.Explicit},
	} {
		if src.path == "" {
			continue
		}
		layer, unknown, err := LoadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.kind, err)
		}
		if err := ValidateWithFile(Resolve(layer), src.path).Err(); err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.kind, err)
		}
		for _, key := range unknown {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: unknown key %q", src.path, key))
		}
		layers = append(layers, layer)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		layer, err := LayerFromEnv(opts.LookupEnv)
		if err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		layers = append(layers, layer)
	}
	layers = append(layers, opts.CLI)

	cfg := Resolve(layers...)

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile decodes a configuration file into a layer. TOML is chosen by
// the .toml extension, YAML otherwise. Unknown keys are returned sorted
// rather than rejected.
func LoadFile(path string) (*Layer, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return decodeTOML(path, data)
	}
	return decodeYAML(path, data)
}

func decodeTOML(path string, data []byte) (*Layer, []string, error) {
	layer := &Layer{}
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(layer)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		if len(key) > 0 {
			unknown = append(unknown, key[0])
		}
	}
	slices.Sort(unknown)
	return layer, slices.Compact(unknown), nil
}

func decodeYAML(path string, data []byte) (*Layer, []string, error) {
	layer := &Layer{}
	if err := yaml.Unmarshal(data, layer); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var unknown []string
	for key := range raw {
		if !isKnownKey(key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return layer, unknown, nil
}
