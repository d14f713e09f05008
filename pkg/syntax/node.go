// Package syntax parses Typst source into a lossless concrete syntax tree.
// Concatenating the text of all leaves reproduces the input byte for byte.
package syntax

import "strings"

// ID identifies a node within one parsed tree. IDs are assigned in pre-order
// starting at zero, so they are dense and can index side tables.
type ID int32

// Node is an immutable node of the syntax tree. Leaves carry source text;
// inner nodes carry children. Both expose the exact text of their span.
type Node struct {
	kind      Kind
	id        ID
	src       string
	start     int
	end       int
	children  []*Node
	erroneous bool
	message   string
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// ID returns the node's identifier within its tree.
func (n *Node) ID() ID {
	return n.id
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	return n.src[n.start:n.end]
}

// Span returns the byte offsets of the node in the source.
func (n *Node) Span() (int, int) {
	return n.start, n.end
}

// Children returns the node's children in source order.
// The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Erroneous reports whether the node is, or contains, a parse error.
func (n *Node) Erroneous() bool {
	return n.erroneous
}

// Message returns the error message of an Error node.
func (n *Node) Message() string {
	return n.message
}

// ChildOf returns the first child of kind k, or nil.
func (n *Node) ChildOf(k Kind) *Node {
	for _, child := range n.children {
		if child.kind == k {
			return child
		}
	}
	return nil
}

// HasChild reports whether any child has kind k.
func (n *Node) HasChild(k Kind) bool {
	return n.ChildOf(k) != nil
}

// Exprs returns the children that are expressions.
func (n *Node) Exprs() []*Node {
	var out []*Node
	for _, child := range n.children {
		if child.kind.IsExpr() {
			out = append(out, child)
		}
	}
	return out
}

// NonTrivia returns the children that are not spaces or comments.
func (n *Node) NonTrivia() []*Node {
	var out []*Node
	for _, child := range n.children {
		if !child.kind.IsTrivia() {
			out = append(out, child)
		}
	}
	return out
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	total := 1
	for _, child := range n.children {
		total += Count(child)
	}
	return total
}

func number(n *Node, next ID) ID {
	n.id = next
	next++
	for _, child := range n.children {
		next = number(child, next)
	}
	return next
}

// ChildrenOf returns the children of kind k.
func (n *Node) ChildrenOf(k Kind) []*Node {
	var out []*Node
	for _, child := range n.children {
		if child.kind == k {
			out = append(out, child)
		}
	}
	return out
}

// IsBlockEquation reports whether n is an equation whose body is set off
// from both dollar signs by whitespace.
func (n *Node) IsBlockEquation() bool {
	if n.kind != KindEquation || len(n.children) < 4 {
		return false
	}
	return n.children[1].kind == KindSpace && n.children[len(n.children)-2].kind == KindSpace
}

// HasNewline reports whether the node's text contains a line break.
func (n *Node) HasNewline() bool {
	return strings.ContainsAny(n.Text(), "\r\n")
}
