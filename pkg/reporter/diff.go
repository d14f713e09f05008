package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/typfmt/pkg/diff"
	"github.com/yaklabco/typfmt/pkg/runner"
)

// DiffReporter prints a unified diff for every file that would change.
type DiffReporter struct{ base }

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		return nil
	}

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	var files, added, removed int
	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || file.Result.Diff.Empty() {
			continue
		}
		files++
		added += file.Result.Diff.Added
		removed += file.Result.Diff.Removed
		r.writeDiff(out, file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeStat(out, files, added, removed)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush diff: %w", err)
	}
	return r.failures(result)
}

func (r *DiffReporter) writeDiff(out *bufio.Writer, u *diff.Unified) {
	path := strings.TrimPrefix(r.display(u.Path), "/")

	fmt.Fprintln(out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(out, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range u.Hunks {
		fmt.Fprintln(out, r.styles.DiffHunk.Render(h.Header()))
		for _, line := range h.Lines {
			text := line.Kind.Prefix() + line.Text
			switch line.Kind {
			case diff.Add:
				fmt.Fprintln(out, r.styles.DiffAdd.Render(text))
			case diff.Remove:
				fmt.Fprintln(out, r.styles.DiffRemove.Render(text))
			default:
				fmt.Fprintln(out, r.styles.DiffContext.Render(text))
			}
			if line.NoEOL {
				fmt.Fprintln(out, r.styles.Dim.Render("\\ No newline at end of file"))
			}
		}
	}
	fmt.Fprintln(out)
}

// writeStat writes a git-style "N files changed" line.
func (r *DiffReporter) writeStat(out *bufio.Writer, files, added, removed int) {
	parts := []string{plural(files, "file", "files") + " changed"}
	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(added, "insertion", "insertions")+"(+)"))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(removed, "deletion", "deletions")+"(-)"))
	}
	fmt.Fprintln(out, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
