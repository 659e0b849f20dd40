// Package dom describes the tree capability the editor walks (parent pointer
// plus name/kind accessors) and ships an in-memory element tree for hosts
// that do not have one of their own.
package dom

import "strings"

type Kind int

const (
	ElementNode Kind = iota + 1
	TextNode
)

// TextName is the Name of every text node.
const TextName = "#text"

// Node is the read-only view of a tree node. Implementations must be
// comparable with == (pointer types), since the editor compares nodes
// against its root.
type Node interface {
	Parent() Node
	Name() string
	Kind() Kind
	Attr(name string) (string, bool)
}

// Ancestors walks from `from` (inclusive) up to `root` (exclusive) and returns
// the nodes accepted by keep, innermost first. A nil keep accepts every node.
func Ancestors(from, root Node, keep func(Node) bool) []Node {
	var out []Node
	for n := from; !isNil(n) && n != root; n = n.Parent() {
		if keep == nil || keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Names returns the lower-cased names of nodes.
func Names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = strings.ToLower(n.Name())
	}
	return out
}

// IsElement reports whether n is an element node.
func IsElement(n Node) bool {
	return !isNil(n) && n.Kind() == ElementNode
}

// isNil catches typed nil pointers stored in the interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	if e, ok := n.(*Element); ok {
		return e == nil
	}
	return false
}

// IsNil reports whether n is nil, including a nil *Element.
func IsNil(n Node) bool {
	return isNil(n)
}
