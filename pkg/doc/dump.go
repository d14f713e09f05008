package doc

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a readable tree of d's structure to w, one constructor per line.
// It is meant for debugging layouts before they are rendered.
func Dump(w io.Writer, a *Arena, d Doc) error {
	var b strings.Builder
	dump(&b, a, d, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dump(b *strings.Builder, a *Arena, d Doc, depth int) {
	pad := strings.Repeat("  ", depth)
	n := a.node(d)

	switch n.kind {
	case kindNil:
		fmt.Fprintf(b, "%sNil\n", pad)
	case kindText:
		fmt.Fprintf(b, "%sText(%s)\n", pad, strconv.Quote(n.text))
	case kindVerbatim:
		fmt.Fprintf(b, "%sVerbatim(%s)\n", pad, strconv.Quote(n.text))
	case kindSpaces:
		fmt.Fprintf(b, "%sSpaces(%d)\n", pad, n.n)
	case kindHardline:
		fmt.Fprintf(b, "%sHardline(%d)\n", pad, n.n)
	case kindLine:
		fmt.Fprintf(b, "%sLine\n", pad)
	case kindLineOrNil:
		fmt.Fprintf(b, "%sLineOrNil\n", pad)
	case kindConcat:
		fmt.Fprintf(b, "%sConcat\n", pad)
		for _, child := range n.docs {
			dump(b, a, child, depth+1)
		}
	case kindNest:
		fmt.Fprintf(b, "%sNest(%d)\n", pad, n.n)
		dump(b, a, n.docs[0], depth+1)
	case kindGroup:
		fmt.Fprintf(b, "%sGroup\n", pad)
		dump(b, a, n.docs[0], depth+1)
	case kindAlt:
		fmt.Fprintf(b, "%sFlatAlt\n", pad)
		fmt.Fprintf(b, "%s  broken:\n", pad)
		dump(b, a, n.docs[0], depth+2)
		fmt.Fprintf(b, "%s  flat:\n", pad)
		dump(b, a, n.docs[1], depth+2)
	}
}
