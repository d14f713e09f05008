package format

import (
	"strings"

	"github.com/yaklabco/typfmt/pkg/doc"
	"github.com/yaklabco/typfmt/pkg/syntax"
)

// mathRow is one row of an aligned equation: either cells separated by
// alignment points, or a line comment standing on its own line.
type mathRow struct {
	comment *syntax.Node
	cells   [][]*syntax.Node
}

type cellShape uint8

const (
	cellEmpty cellShape = iota
	cellSingleLine
	cellMultiLine
)

// mathCell is a cell rendered to text. Widths include the padding its
// position in the row needs: one column at the edges of the grid and two
// inside it.
type mathCell struct {
	shape  cellShape
	lines  []string
	widths []int
}

// width is the padded width of the last line.
func (c mathCell) width() int {
	if len(c.widths) == 0 {
		return 0
	}
	return c.widths[len(c.widths)-1]
}

// maxWidth is the padded width of the widest line.
func (c mathCell) maxWidth() int {
	widest := 0
	for _, w := range c.widths {
		widest = max(widest, w)
	}
	return widest
}

type mathGrid struct {
	rows      [][]mathCell
	comments  []*syntax.Node
	colWidths []int // padded like the cell widths
	numCols   int
}

// convertMathAligned lays out a math body as a grid whose columns line up
// across rows. It reports false when the body cannot be aligned or the grid
// would not fit the line width; the caller then converts it sequentially.
func (p *printer) convertMathAligned(ctx Context, n *syntax.Node) (doc.Doc, bool) {
	if ctx.Align == AlignNever || !p.store.AlignmentEligible(n) {
		return doc.Nil, false
	}

	rows, trailingBackslash, ok := p.collectMathRows(n)
	if !ok {
		return doc.Nil, false
	}

	grid, ok := p.measureMathGrid(ctx.Aligned(AlignOuter), rows)
	if !ok {
		return doc.Nil, false
	}
	return p.printMathGrid(grid, trailingBackslash), true
}

// flattenMath lists the nodes of a math body, splicing in the contents of
// nested bodies that carry alignment points of their own.
func (p *printer) flattenMath(n *syntax.Node, out []*syntax.Node) []*syntax.Node {
	for _, child := range n.Children() {
		switch child.Kind() {
		case syntax.KindMath, syntax.KindMathDelimited:
			if p.store.HasAlignmentMarker(child) {
				out = p.flattenMath(child, out)
				continue
			}
		}
		out = append(out, child)
	}
	return out
}

func (p *printer) collectMathRows(n *syntax.Node) ([]mathRow, bool, bool) {
	var lines [][]*syntax.Node
	var line []*syntax.Node
	for _, node := range p.flattenMath(n, nil) {
		if node.Kind() == syntax.KindLinebreak {
			lines = append(lines, line)
			line = nil
			continue
		}
		line = append(line, node)
	}
	lines = append(lines, line)

	// A last line holding nothing but spaces counts as empty, so `c \ $`
	// keeps its backslash however the closing space was parsed.
	trailingBackslash := false
	if len(lines) > 1 && len(trimSpaces(lines[len(lines)-1])) == 0 {
		trailingBackslash = true
		lines = lines[:len(lines)-1]
	}

	var rows []mathRow
	for _, line := range lines {
		var cells [][]*syntax.Node
		var cell []*syntax.Node
		for _, node := range line {
			switch {
			case node.Kind() == syntax.KindMathAlignPoint:
				cells = append(cells, trimSpaces(cell))
				cell = nil
			case node.Kind() == syntax.KindSpace:
				if len(cell) > 0 {
					cell = append(cell, node)
				}
			case node.Kind() == syntax.KindLineComment && len(cells) == 0 && len(cell) == 0:
				rows = append(rows, mathRow{comment: node})
			default:
				cell = append(cell, node)
			}
		}
		cells = append(cells, trimSpaces(cell))
		rows = append(rows, mathRow{cells: cells})
	}

	// A comment on the last line leaves an empty row behind it. Dropping
	// that row makes the comment last, which has no place to go.
	if n := len(rows); n >= 2 && rows[n-2].comment != nil && isBlankRow(rows[n-1]) {
		rows = rows[:n-1]
	}
	if len(rows) == 0 || rows[len(rows)-1].comment != nil {
		return nil, false, false
	}
	return rows, trailingBackslash, true
}

func isBlankRow(row mathRow) bool {
	return row.comment == nil && len(row.cells) == 1 && len(row.cells[0]) == 0
}

func trimSpaces(nodes []*syntax.Node) []*syntax.Node {
	for len(nodes) > 0 && nodes[0].Kind() == syntax.KindSpace {
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && nodes[len(nodes)-1].Kind() == syntax.KindSpace {
		nodes = nodes[:len(nodes)-1]
	}
	return nodes
}

// measureMathGrid renders every cell and computes the column widths. It
// gives up as soon as the grid is known to exceed the line width.
func (p *printer) measureMathGrid(ctx Context, rows []mathRow) (*mathGrid, bool) {
	numCols := 0
	for _, row := range rows {
		numCols = max(numCols, len(row.cells))
	}
	if numCols > p.cfg.MaxWidth {
		return nil, false
	}

	grid := &mathGrid{
		colWidths: make([]int, numCols),
		numCols:   numCols,
	}
	gridWidth := numCols

	for _, row := range rows {
		if row.comment != nil {
			grid.rows = append(grid.rows, nil)
			grid.comments = append(grid.comments, row.comment)
			continue
		}

		cells := make([]mathCell, len(row.cells))
		for j, nodes := range row.cells {
			padding := 2
			if j == 0 || j == numCols-1 {
				padding = 1
			}
			if hasVerbatimBreak(nodes) {
				return nil, false
			}
			cells[j] = p.measureMathCell(ctx, nodes, padding)
			if grow := cells[j].width() - grid.colWidths[j]; grow > 0 {
				grid.colWidths[j] = cells[j].width()
				gridWidth += grow
				if gridWidth > p.cfg.MaxWidth {
					return nil, false
				}
			}
		}
		grid.rows = append(grid.rows, cells)
		grid.comments = append(grid.comments, nil)
	}
	return grid, true
}

// hasVerbatimBreak reports whether a line break inside nodes is part of
// their text, as in block comments and strings. The grid indents every line
// of a cell, which would change such text.
func hasVerbatimBreak(nodes []*syntax.Node) bool {
	found := false
	for _, n := range nodes {
		_ = syntax.Walk(n, func(n *syntax.Node) error {
			if n.IsLeaf() && n.Kind() != syntax.KindSpace && n.HasNewline() {
				found = true
			}
			return nil
		})
	}
	return found
}

// measureMathCell renders a cell on its own at the full line width. The
// grid prints exactly these lines.
func (p *printer) measureMathCell(ctx Context, nodes []*syntax.Node, padding int) mathCell {
	if len(nodes) == 0 {
		return mathCell{shape: cellEmpty}
	}

	rendered := doc.Render(p.arena, p.convertMathNodes(ctx, nodes), p.cfg.MaxWidth)
	if nodes[len(nodes)-1].Kind() == syntax.KindLineComment {
		// Whatever follows must start on a fresh line.
		rendered += "\n "
	}
	if rendered == "" {
		return mathCell{shape: cellEmpty}
	}

	lines := strings.Split(rendered, "\n")
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = doc.Width(line) + padding
	}
	shape := cellSingleLine
	if len(lines) > 1 {
		shape = cellMultiLine
	}
	return mathCell{shape: shape, lines: lines, widths: widths}
}

// printMathGrid renders the measured rows. Even columns are right-aligned
// and odd columns left-aligned, so that relations line up around the
// alignment points. A single column is left-aligned.
func (p *printer) printMathGrid(grid *mathGrid, trailingBackslash bool) doc.Doc {
	a := p.arena
	var parts []doc.Doc

	// offsets[j] is the sum of the padded widths of the columns before j.
	offsets := make([]int, grid.numCols+1)
	for j, w := range grid.colWidths {
		offsets[j+1] = offsets[j] + w
	}

	for i, cells := range grid.rows {
		lastRow := i == len(grid.rows)-1
		if comment := grid.comments[i]; comment != nil {
			parts = append(parts, p.verbatim(comment), a.Hardline())
			continue
		}

		prevEmpty := false
		for j, cell := range cells {
			empty := cell.shape == cellEmpty
			if j > 0 {
				if !prevEmpty {
					parts = append(parts, a.Space())
				}
				parts = append(parts, a.Text("&"))
				if !empty {
					parts = append(parts, a.Space())
				}
			}
			parts = append(parts, p.printMathCell(grid, offsets, j, cell, j == len(cells)-1))
			prevEmpty = empty
		}

		if !lastRow || trailingBackslash {
			if len(cells) == 1 && prevEmpty {
				parts = append(parts, a.Text("\\"))
			} else {
				parts = append(parts, a.Text(" \\"))
			}
		}
		if !lastRow {
			parts = append(parts, a.Hardline())
		}
	}
	return a.Concat(parts...)
}

// printMathCell pads cell j to its column width. The last cell of a row is
// not padded on the right, and an empty last cell not at all.
func (p *printer) printMathCell(grid *mathGrid, offsets []int, j int, cell mathCell, last bool) doc.Doc {
	a := p.arena
	colWidth := grid.colWidths[j]
	rightAligned := j%2 == 0 && grid.numCols > 1

	switch cell.shape {
	case cellEmpty:
		if last {
			return doc.Nil
		}
		return a.Spaces(colWidth)
	case cellSingleLine:
		pad := colWidth - cell.width()
		switch {
		case rightAligned:
			return a.Concat(a.Spaces(pad), a.Text(cell.lines[0]))
		case last:
			return a.Text(cell.lines[0])
		default:
			return a.Concat(a.Text(cell.lines[0]), a.Spaces(pad))
		}
	}

	padLeft := 0
	if rightAligned {
		padLeft = max(0, colWidth-cell.maxWidth())
	}
	indent := offsets[j] + j + padLeft
	if j > 0 {
		indent++
	}
	padRight := 0
	if !last {
		padRight = max(0, colWidth-padLeft-cell.width())
	}

	lines := make([]doc.Doc, len(cell.lines))
	for k, line := range cell.lines {
		lines[k] = a.Text(line)
	}
	return a.Nest(a.Concat(
		a.Spaces(padLeft),
		a.Intersperse(lines, a.Hardline()),
		a.Spaces(padRight),
	), indent)
}
