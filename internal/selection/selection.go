// Package selection owns the editor's current text range. All selection
// reads and writes go through the Tracker.
package selection

import "github.com/kobzarvs/pen/internal/dom"

// Rect is a bounding box in viewport coordinates.
type Rect struct {
	Top, Left, Width, Height float64
}

// Range is the host's handle to a start/end position pair.
type Range interface {
	StartContainer() dom.Node
	Collapsed() bool
	BoundingBox() Rect
	SelectNode(n dom.Node)
	Collapse(toStart bool)
	SetStartAfter(n dom.Node)
	SetEndAfter(n dom.Node)
	InsertNode(n dom.Node)
}

// Host is the platform selection primitive.
type Host interface {
	// ActiveRange returns the first range of the selection, or nil.
	ActiveRange() Range
	// SetActiveRange replaces every range of the selection with r.
	SetActiveRange(r Range)
	RemoveAllRanges()
	FocusNode() dom.Node
	// String is the selected plain text.
	String() string
}

type Tracker struct {
	host    Host
	root    dom.Node
	current Range
}

func NewTracker(host Host, root dom.Node) *Tracker {
	return &Tracker{host: host, root: root}
}

// Capture stores the host's active range as current. When there is none it
// returns nil and keeps the last known range.
func (t *Tracker) Capture() Range {
	r := t.host.ActiveRange()
	if r == nil {
		return nil
	}
	t.current = r
	return r
}

func (t *Tracker) Current() Range {
	return t.current
}

// Restore applies r, else the last captured range, else collapses the
// host's active range to its end.
func (t *Tracker) Restore(r Range) {
	if r == nil {
		r = t.current
	}
	if r == nil {
		r = t.host.ActiveRange()
		if r != nil {
			r.Collapse(false)
		}
	}
	if r == nil {
		return
	}
	t.host.SetActiveRange(r)
}

// Clear drops the current range and empties the host selection.
func (t *Tracker) Clear() {
	t.current = nil
	t.host.RemoveAllRanges()
}

// Collapsed reports whether the last known range is empty. No range counts
// as collapsed.
func (t *Tracker) Collapsed() bool {
	return t.current == nil || t.current.Collapsed()
}

func (t *Tracker) Text() string {
	return t.host.String()
}

func (t *Tracker) FocusNode() dom.Node {
	return t.host.FocusNode()
}

func (t *Tracker) BoundingBox() (Rect, bool) {
	if t.current == nil {
		return Rect{}, false
	}
	return t.current.BoundingBox(), true
}

// AnchorNode returns the element holding the start of the selection. With
// byRoot it climbs further to the child of the editable root, which is the
// block the selection sits in.
func (t *Tracker) AnchorNode(byRoot bool) dom.Node {
	if t.current == nil {
		t.Capture()
	}
	if t.current == nil {
		return nil
	}
	node := t.current.StartContainer()
	if node == t.root {
		return node
	}
	for !dom.IsNil(node) && node.Kind() != dom.ElementNode && node.Parent() != t.root {
		node = node.Parent()
	}
	for !dom.IsNil(node) && byRoot && node.Parent() != t.root {
		node = node.Parent()
	}
	if dom.IsNil(node) {
		return nil
	}
	return node
}

// MoveAfter collapses the selection to the point right after node.
func (t *Tracker) MoveAfter(node dom.Node) bool {
	r := t.current
	if r == nil || dom.IsNil(node) {
		return false
	}
	r.SelectNode(node)
	r.Collapse(false)
	t.host.SetActiveRange(r)
	return true
}

// BreakAfter inserts fresh right after node and places the caret after it.
func (t *Tracker) BreakAfter(node, fresh dom.Node) bool {
	r := t.current
	if r == nil || dom.IsNil(node) || dom.IsNil(fresh) {
		return false
	}
	r.SetStartAfter(node)
	r.SetEndAfter(node)
	r.InsertNode(fresh)
	r.SetStartAfter(fresh)
	r.SetEndAfter(fresh)
	t.host.SetActiveRange(r)
	return true
}
