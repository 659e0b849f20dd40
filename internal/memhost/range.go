package memhost

import (
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/selection"
)

// Point is a boundary position. In a text node Offset counts runes, in an
// element it counts children.
type Point struct {
	Node   *dom.Element
	Offset int
}

// Range is an in-memory selection.Range over a dom.Element tree. Box is what
// BoundingBox reports; there is no layout to measure.
type Range struct {
	Start Point
	End   Point
	Box   selection.Rect
}

// Select returns a range from (start, so) to (end, eo).
func Select(start *dom.Element, so int, end *dom.Element, eo int) *Range {
	return &Range{Start: Point{start, so}, End: Point{end, eo}}
}

// Caret returns a collapsed range at (node, offset).
func Caret(node *dom.Element, offset int) *Range {
	return Select(node, offset, node, offset)
}

// SelectText selects all of text node t.
func SelectText(t *dom.Element) *Range {
	return Select(t, 0, t, utf8.RuneCountInString(t.Data()))
}

func (r *Range) StartContainer() dom.Node {
	if r.Start.Node == nil {
		return nil
	}
	return r.Start.Node
}

func (r *Range) EndContainer() dom.Node {
	if r.End.Node == nil {
		return nil
	}
	return r.End.Node
}

func (r *Range) Collapsed() bool {
	return r.Start == r.End
}

func (r *Range) BoundingBox() selection.Rect {
	return r.Box
}

func (r *Range) SelectNode(n dom.Node) {
	el, ok := n.(*dom.Element)
	if !ok || el.ParentElement() == nil {
		return
	}
	idx := el.Index()
	r.Start = Point{el.ParentElement(), idx}
	r.End = Point{el.ParentElement(), idx + 1}
}

func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.End = r.Start
	} else {
		r.Start = r.End
	}
}

func (r *Range) SetStartAfter(n dom.Node) {
	if p, ok := after(n); ok {
		r.Start = p
		if compare(r.End, r.Start) < 0 {
			r.End = r.Start
		}
	}
}

func (r *Range) SetEndAfter(n dom.Node) {
	if p, ok := after(n); ok {
		r.End = p
		if compare(r.End, r.Start) < 0 {
			r.Start = r.End
		}
	}
}

// InsertNode puts n at the start of the range. A start inside a text node
// splits it.
func (r *Range) InsertNode(n dom.Node) {
	el, ok := n.(*dom.Element)
	if !ok || r.Start.Node == nil {
		return
	}
	start := r.Start
	if start.Node.Kind() == dom.TextNode {
		parent := start.Node.ParentElement()
		if parent == nil {
			return
		}
		data := []rune(start.Node.Data())
		off := clamp(start.Offset, len(data))
		idx := start.Node.Index() + 1
		if off < len(data) {
			start.Node.SetData(string(data[:off]))
			parent.InsertAt(idx, dom.NewText(string(data[off:])))
		}
		parent.InsertAt(idx, el)
		return
	}
	start.Node.InsertAt(start.Offset, el)
}

// Text is the plain text covered by the range.
func (r *Range) Text() string {
	if r.Start.Node == nil || r.End.Node == nil || r.Collapsed() {
		return ""
	}
	top := topOf(r.Start.Node)
	if topOf(r.End.Node) != top {
		return ""
	}
	var b strings.Builder
	for _, t := range top.Texts() {
		data := []rune(t.Data())
		from, to := 0, len(data)
		if t == r.Start.Node {
			from = clamp(r.Start.Offset, len(data))
		} else if compare(Point{t, 0}, r.Start) < 0 {
			from = len(data)
		}
		if t == r.End.Node {
			to = clamp(r.End.Offset, len(data))
		} else if compare(Point{t, len(data)}, r.End) > 0 {
			to = 0
		}
		if from < to {
			b.WriteString(string(data[from:to]))
		}
	}
	return b.String()
}

func after(n dom.Node) (Point, bool) {
	el, ok := n.(*dom.Element)
	if !ok || el.ParentElement() == nil {
		return Point{}, false
	}
	return Point{el.ParentElement(), el.Index() + 1}, true
}

// compare orders points by their child-index path from the tree top with
// the offset as the last step.
func compare(a, b Point) int {
	ka, kb := key(a), key(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return 0
}

func key(p Point) []int {
	var path []int
	for n := p.Node; n != nil && n.ParentElement() != nil; n = n.ParentElement() {
		path = append(path, n.Index())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return append(path, p.Offset)
}

func topOf(n *dom.Element) *dom.Element {
	for n.ParentElement() != nil {
		n = n.ParentElement()
	}
	return n
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
