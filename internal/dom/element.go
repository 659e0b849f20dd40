package dom

import (
	"strings"
)

type Attribute struct {
	Name  string
	Value string
}

// Element is a mutable in-memory tree node. Text nodes are Elements with
// Kind TextNode and no children.
type Element struct {
	kind     Kind
	tag      string
	data     string
	attrs    []Attribute
	children []*Element
	parent   *Element
}

func NewElement(tag string, attrs ...Attribute) *Element {
	e := &Element{kind: ElementNode, tag: strings.ToLower(tag)}
	for _, a := range attrs {
		e.SetAttr(a.Name, a.Value)
	}
	return e
}

func NewText(data string) *Element {
	return &Element{kind: TextNode, tag: TextName, data: data}
}

// Parent returns nil (not a typed nil) at the top of the tree.
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *Element) ParentElement() *Element { return e.parent }
func (e *Element) Name() string            { return e.tag }
func (e *Element) Kind() Kind              { return e.kind }
func (e *Element) Data() string            { return e.data }
func (e *Element) SetData(s string)        { e.data = s }

func (e *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attribute{Name: name, Value: value})
}

func (e *Element) RemoveAttr(name string) bool {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return true
		}
	}
	return false
}

func (e *Element) Attrs() []Attribute {
	return append([]Attribute(nil), e.attrs...)
}

func (e *Element) HasClass(class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(classes ...string) {
	v, _ := e.Attr("class")
	fields := strings.Fields(v)
	for _, class := range classes {
		for _, c := range strings.Fields(class) {
			if !contains(fields, c) {
				fields = append(fields, c)
			}
		}
	}
	e.SetAttr("class", strings.Join(fields, " "))
}

func (e *Element) RemoveClass(class string) {
	v, ok := e.Attr("class")
	if !ok {
		return
	}
	fields := strings.Fields(v)
	kept := fields[:0]
	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

func (e *Element) LastChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[len(e.children)-1]
}

// Index returns the position of e among its siblings, or -1 when detached.
func (e *Element) Index() int {
	if e.parent == nil {
		return -1
	}
	for i, c := range e.parent.children {
		if c == e {
			return i
		}
	}
	return -1
}

func (e *Element) AppendChild(c *Element) *Element {
	c.Remove()
	c.parent = e
	e.children = append(e.children, c)
	return c
}

// InsertAt places c at position i among the children, clamping i.
func (e *Element) InsertAt(i int, c *Element) *Element {
	c.Remove()
	if i < 0 {
		i = 0
	}
	if i > len(e.children) {
		i = len(e.children)
	}
	c.parent = e
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = c
	return c
}

// InsertAfter places c right after ref, which must be a child of e.
func (e *Element) InsertAfter(c, ref *Element) *Element {
	if ref == nil || ref.parent != e {
		return e.AppendChild(c)
	}
	idx := ref.Index()
	if c == ref {
		return c
	}
	if c.parent == e && c.Index() < idx {
		idx--
	}
	return e.InsertAt(idx+1, c)
}

func (e *Element) RemoveChild(c *Element) bool {
	for i, child := range e.children {
		if child == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// RemoveChildren detaches every child.
func (e *Element) RemoveChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Contains reports whether n is e or one of its descendants.
func (e *Element) Contains(n *Element) bool {
	for ; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the node's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		c.Walk(fn)
	}
}

// FindAll returns the descendants (not e itself) named tag.
func (e *Element) FindAll(tag string) []*Element {
	tag = strings.ToLower(tag)
	return e.descendants(func(n *Element) bool { return n.kind == ElementNode && n.tag == tag })
}

// WithAttr returns the descendants carrying attribute name.
func (e *Element) WithAttr(name string) []*Element {
	return e.descendants(func(n *Element) bool {
		_, ok := n.Attr(name)
		return ok
	})
}

func (e *Element) descendants(match func(*Element) bool) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if match(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Texts returns the text nodes below e in document order.
func (e *Element) Texts() []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if n.kind == TextNode {
			out = append(out, n)
		}
		return true
	})
	return out
}

// InnerText approximates the rendered text: text data, a newline for <br>
// and after every block element.
func (e *Element) InnerText() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, c := range e.children {
		switch {
		case c.kind == TextNode:
			b.WriteString(c.data)
		case c.tag == "br":
			b.WriteByte('\n')
		default:
			c.writeText(b)
			if blockTags[c.tag] {
				b.WriteByte('\n')
			}
		}
	}
}

func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := Parse(markup)
	if err != nil {
		return err
	}
	e.RemoveChildren()
	for _, n := range nodes {
		e.AppendChild(n)
	}
	return nil
}

var blockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true, "pre": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "hr": true,
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
