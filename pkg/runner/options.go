// Package runner formats many files concurrently.
package runner

import (
	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/pipeline"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to format. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and ignore globs. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions lists the file extensions, lowercase with leading dot,
	// that directory walks pick up. Defaults to DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip matching files and directories. Patterns use '/'
	// as separator and support "**".
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of files formatted at once. Zero or less
	// means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration.
	Config *config.Config

	// Pipeline holds per-file options.
	Pipeline pipeline.Options
}

// DefaultExtensions returns the extensions of Typst sources.
func DefaultExtensions() []string {
	return []string{".typ"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
