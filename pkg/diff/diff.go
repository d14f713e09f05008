// Package diff produces unified diffs between a source file and its
// formatted form.
package diff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// LineKind tells whether a diff line is kept, added, or removed.
type LineKind int

const (
	Context LineKind = iota
	Add
	Remove
)

// Prefix returns the unified-diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case Add:
		return "+"
	case Remove:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk, without its line terminator.
type Line struct {
	Kind LineKind
	Text string
	// NoEOL marks the last line of a file that lacks a final newline.
	NoEOL bool
}

// Hunk is a run of changes with surrounding context. Start lines are
// 1-based. A hunk with zero lines on one side starts at the line before.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Unified is the diff of one file.
type Unified struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Compute diffs before and after line by line. It returns nil when the two
// are identical.
func Compute(path, before, after string) *Unified {
	if before == after {
		return nil
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []Line
	for _, d := range diffs {
		kind := Context
		switch d.Type {
		case diffpatch.DiffInsert:
			kind = Add
		case diffpatch.DiffDelete:
			kind = Remove
		}
		ops = appendLines(ops, kind, d.Text)
	}

	u := &Unified{Path: path, Hunks: group(ops, ContextLines)}
	for _, op := range ops {
		switch op.Kind {
		case Add:
			u.Added++
		case Remove:
			u.Removed++
		}
	}
	return u
}

func appendLines(ops []Line, kind LineKind, text string) []Line {
	for text != "" {
		line, rest, found := strings.Cut(text, "\n")
		ops = append(ops, Line{Kind: kind, Text: line, NoEOL: !found})
		text = rest
	}
	return ops
}

// group collects changed lines into hunks, merging changes whose context
// would overlap.
func group(ops []Line, context int) []Hunk {
	type position struct{ old, new int }
	starts := make([]position, len(ops)+1)
	pos := position{1, 1}
	for i, op := range ops {
		starts[i] = pos
		if op.Kind != Add {
			pos.old++
		}
		if op.Kind != Remove {
			pos.new++
		}
	}
	starts[len(ops)] = pos

	var hunks []Hunk
	for i := 0; i < len(ops); {
		if ops[i].Kind == Context {
			i++
			continue
		}

		first := max(0, i-context)
		end := i
		for {
			for end < len(ops) && ops[end].Kind != Context {
				end++
			}
			next := end
			for next < len(ops) && ops[next].Kind == Context {
				next++
			}
			if next == len(ops) || next-end > 2*context {
				break
			}
			end = next
		}
		last := min(len(ops), end+context)

		h := Hunk{
			OldStart: starts[first].old,
			NewStart: starts[first].new,
			Lines:    ops[first:last],
		}
		h.OldCount = starts[last].old - h.OldStart
		h.NewCount = starts[last].new - h.NewStart
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}
		hunks = append(hunks, h)
		i = last
	}
	return hunks
}

// Empty reports whether the diff has no changes.
func (u *Unified) Empty() bool {
	return u == nil || len(u.Hunks) == 0
}

// String renders the diff in unified format with a/ and b/ path prefixes.
func (u *Unified) String() string {
	if u.Empty() {
		return ""
	}

	var b strings.Builder
	path := strings.TrimPrefix(u.Path, "/")
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range u.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, line := range h.Lines {
			b.WriteString(line.Kind.Prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
			if line.NoEOL {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return b.String()
}
