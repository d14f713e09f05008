package syntax

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dump writes an indented outline of the tree to w, one node per line.
// Leaves show their quoted text; erroneous nodes are flagged.
func Dump(w io.Writer, root *Node) error {
	return dumpNode(w, root, 0)
}

func dumpNode(w io.Writer, n *Node, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.kind.String())
	fmt.Fprintf(&b, " %d..%d", n.start, n.end)
	if n.IsLeaf() {
		fmt.Fprintf(&b, " %q", n.Text())
	}
	if n.message != "" {
		fmt.Fprintf(&b, " (%s)", n.message)
	} else if n.erroneous && n.kind != KindError {
		b.WriteString(" !")
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("dump %s: %w", n.kind, err)
	}
	for _, child := range n.children {
		if err := dumpNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Diagnostic is a parse error with its location.
type Diagnostic struct {
	Start   int
	End     int
	Line    int
	Column  int
	Message string
}

// Errors collects the parse errors in the tree in source order.
func Errors(root *Node) []Diagnostic {
	if root == nil || !root.erroneous {
		return nil
	}

	index := NewLineIndex(root.src)
	var out []Diagnostic
	_ = Walk(root, func(n *Node) error {
		if n.kind != KindError {
			return nil
		}
		line, col := index.Position(n.start)
		msg := n.message
		if msg == "" {
			msg = "syntax error"
		}
		out = append(out, Diagnostic{Start: n.start, End: n.end, Line: line, Column: col, Message: msg})
		return nil
	})
	return out
}

// LineIndex maps byte offsets to line and column numbers.
type LineIndex struct {
	starts []int
}

// NewLineIndex indexes the line starts of src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the 1-based line and byte column of offset.
func (li *LineIndex) Position(offset int) (int, int) {
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return line + 1, offset - li.starts[line] + 1
}
