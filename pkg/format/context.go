package format

// Mode is the syntactic mode a node is converted in.
type Mode uint8

const (
	ModeMarkup Mode = iota
	ModeCode
	ModeMath
)

// String returns the mode's name.
func (m Mode) String() string {
	switch m {
	case ModeMarkup:
		return "markup"
	case ModeCode:
		return "code"
	case ModeMath:
		return "math"
	default:
		return "unknown"
	}
}

// AlignMode controls whether math bodies may be laid out as an aligned grid.
type AlignMode uint8

const (
	// AlignNever disables grid layout, as inside inline equations.
	AlignNever AlignMode = iota
	// AlignOuter is used while converting the cells of an enclosing grid.
	AlignOuter
	// AlignInner allows a math body to become a grid.
	AlignInner
)

// Context is the conversion state threaded through the tree. It is passed
// by value; the With methods return modified copies.
type Context struct {
	Mode  Mode
	Align AlignMode
}

// NewContext returns the context a document root is converted in.
func NewContext() Context {
	return Context{Mode: ModeMarkup, Align: AlignInner}
}

// WithMode returns a copy of c in mode m.
func (c Context) WithMode(m Mode) Context {
	c.Mode = m
	return c
}

// Aligned returns a copy of c with alignment mode a.
func (c Context) Aligned(a AlignMode) Context {
	c.Align = a
	return c
}
