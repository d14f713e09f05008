package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/typfmt/internal/configloader"
	"github.com/yaklabco/typfmt/internal/logging"
	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/pipeline"
	"github.com/yaklabco/typfmt/pkg/reporter"
	"github.com/yaklabco/typfmt/pkg/runner"
)

// stdinPath names standard input in reports.
const stdinPath = "<stdin>"

type formatFlags struct {
	inplace     bool
	check       bool
	diff        bool
	lineWidth   int
	indentWidth int
	noReorder   bool
	wrapText    bool
	ast         bool
	prettyDoc   bool
	timing      bool
	jobs        int
}

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	f := cmd.Flags()

	f.BoolVarP(&flags.inplace, "inplace", "i", false, "format files in place")
	f.BoolVar(&flags.check, "check", false, "report files that would change and exit 1")
	f.BoolVar(&flags.diff, "diff", false, "print a unified diff of the changes and exit 1 on changes")
	cmd.MarkFlagsMutuallyExclusive("inplace", "check", "diff")

	f.IntVarP(&flags.lineWidth, "line-width", "l", config.DefaultMaxWidth, "maximum line width")
	f.IntVarP(&flags.lineWidth, "column", "c", config.DefaultMaxWidth, "alias for --line-width")
	f.IntVarP(&flags.indentWidth, "indent-width", "t", config.DefaultIndentWidth, "spaces per indentation level")
	f.IntVar(&flags.indentWidth, "tab-width", config.DefaultIndentWidth, "alias for --indent-width")
	_ = f.MarkHidden("column")
	_ = f.MarkHidden("tab-width")

	f.BoolVar(&flags.noReorder, "no-reorder-import-items", false, "keep import items in source order")
	f.BoolVar(&flags.wrapText, "wrap-text", false, "rewrap prose to the line width")

	f.BoolVarP(&flags.ast, "ast", "a", false, "print the syntax tree instead of formatting")
	f.BoolVarP(&flags.prettyDoc, "pretty-doc", "p", false, "print the layout document instead of formatting")
	cmd.MarkFlagsMutuallyExclusive("ast", "pretty-doc")
	f.BoolVar(&flags.timing, "timing", false, "log the time spent on each file")

	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
}

func (f *formatFlags) mode() config.OutputMode {
	switch {
	case f.inplace:
		return config.OutputInPlace
	case f.check:
		return config.OutputCheck
	case f.diff:
		return config.OutputDiff
	default:
		return config.OutputStdout
	}
}

func (f *formatFlags) dump() pipeline.Dump {
	switch {
	case f.ast:
		return pipeline.DumpAST
	case f.prettyDoc:
		return pipeline.DumpDoc
	default:
		return pipeline.DumpNone
	}
}

// layer collects the flags the user actually set.
func (f *formatFlags) layer(cmd *cobra.Command, global *globalFlags) *configloader.Layer {
	changed := func(names ...string) bool {
		for _, name := range names {
			if cmd.Flags().Changed(name) {
				return true
			}
		}
		return false
	}

	layer := &configloader.Layer{}
	if changed("line-width", "column") {
		layer.MaxWidth = &f.lineWidth
	}
	if changed("indent-width", "tab-width") {
		layer.IndentWidth = &f.indentWidth
	}
	if changed("no-reorder-import-items") {
		reorder := !f.noReorder
		layer.ReorderImportItems = &reorder
	}
	if changed("wrap-text") {
		layer.WrapText = &f.wrapText
	}
	if changed("jobs") {
		layer.Jobs = &f.jobs
	}
	if changed("color") {
		color := config.ColorMode(global.color)
		layer.Color = &color
	}
	return layer
}

func runFormat(cmd *cobra.Command, args []string, global *globalFlags, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	mode := flags.mode()
	if mode == config.OutputInPlace && len(args) == 0 {
		return usageErrorf("--inplace requires at least one path")
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.LevelFor("", global.verbose, global.quiet))

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLI:          flags.layer(cmd, global),
	})
	if err != nil {
		return usageError(fmt.Errorf("load configuration: %w", err))
	}

	cfg := loaded.Config
	cfg.Mode = mode
	cfg.Timing = flags.timing
	dump := flags.dump()
	if dump != pipeline.DumpNone {
		cfg.Mode = config.OutputStdout
	}

	logger.SetLevel(logging.ParseLevel(logging.LevelFor(cfg.LogLevel, global.verbose, global.quiet)))
	ctx = logging.WithLogger(ctx, logger)

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldMode, cfg.Mode,
		logging.FieldMaxWidth, cfg.MaxWidth,
		logging.FieldIndentWidth, cfg.IndentWidth,
		logging.FieldJobs, cfg.Jobs,
	)

	logger.Debug("starting run", logging.FieldPaths, args, logging.FieldWorkingDir, workDir)

	var result *runner.Result
	if len(args) == 0 {
		result, err = formatStdin(ctx, cmd.InOrStdin(), cfg, dump)
	} else {
		result, err = runner.Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
			Config:       cfg,
			Pipeline:     pipeline.Options{Dump: dump},
		})
	}
	if err != nil {
		return usageError(err)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesFormatted, result.Stats.FilesFormatted,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
	)
	if cfg.Timing {
		logTiming(logger, result)
	}

	rep, err := reporter.New(cfg.Mode, reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Color:       cfg.Color,
		ShowSummary: !global.quiet,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, cfg.Mode)
}

// formatStdin formats standard input as a single-file run.
func formatStdin(ctx context.Context, in io.Reader, cfg *config.Config, dump pipeline.Dump) (*runner.Result, error) {
	src, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}

	res, err := pipeline.ProcessContent(ctx, stdinPath, string(src), cfg, pipeline.Options{Dump: dump})
	if err != nil && !errors.Is(err, pipeline.ErrFormatFailure) {
		return nil, err
	}
	return runner.NewResult(runner.FileOutcome{Path: stdinPath, Result: res, Error: err}), nil
}

// logTiming prints the formatting time of each file regardless of the log
// level.
func logTiming(logger *log.Logger, result *runner.Result) {
	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		logger.Print("timing",
			logging.FieldPath, file.Path,
			logging.FieldElapsed, file.Result.Elapsed,
			logging.FieldChanged, file.Result.Changed,
		)
	}
}
