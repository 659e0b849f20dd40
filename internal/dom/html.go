package dom

import (
	"context"
	"fmt"
	"html"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tshtml "github.com/smacker/go-tree-sitter/html"
)

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// rawTextTags keep their content verbatim.
var rawTextTags = map[string]bool{"script": true, "style": true}

func (e *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		c.writeHTML(&b)
	}
	return b.String()
}

func (e *Element) OuterHTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

func (e *Element) writeHTML(b *strings.Builder) {
	if e.kind == TextNode {
		if e.parent != nil && rawTextTags[e.parent.tag] {
			b.WriteString(e.data)
			return
		}
		b.WriteString(escapeText(e.data))
		return
	}
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if voidTags[e.tag] {
		return
	}
	for _, c := range e.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// Parse turns an HTML fragment into detached top-level nodes. Comments,
// doctypes and stray end tags are dropped.
func Parse(markup string) ([]*Element, error) {
	if markup == "" {
		return nil, nil
	}
	src := []byte(markup)
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tshtml.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}
	defer tree.Close()

	holder := &Element{kind: ElementNode}
	b := builder{src: src}
	root := tree.RootNode()
	b.children(holder, root, int(root.StartByte()), int(root.EndByte()))
	nodes := holder.Children()
	holder.RemoveChildren()
	return nodes, nil
}

type builder struct {
	src []byte
}

// children appends the content of n found between start and end. Text is
// taken from the gaps between child elements so whitespace survives.
func (b builder) children(parent *Element, n *sitter.Node, start, end int) {
	pos := start
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		cs, ce := int(c.StartByte()), int(c.EndByte())
		if cs < start || ce > end {
			continue
		}
		switch c.Type() {
		case "element", "script_element", "style_element":
			b.text(parent, pos, cs)
			el, rest := b.element(c)
			if el != nil {
				parent.AppendChild(el)
			}
			if rest >= 0 {
				b.children(parent, c, rest, ce)
			}
			pos = ce
		case "comment", "doctype", "end_tag", "erroneous_end_tag":
			b.text(parent, pos, cs)
			pos = ce
		}
	}
	b.text(parent, pos, end)
}

func (b builder) text(parent *Element, start, end int) {
	if end <= start {
		return
	}
	raw := string(b.src[start:end])
	if rawTextTags[parent.tag] {
		parent.AppendChild(NewText(raw))
		return
	}
	parent.AppendChild(NewText(html.UnescapeString(raw)))
}

// element builds the node for n. The grammar keeps whatever follows a void
// tag inside that tag's node, so for void elements rest is the offset where
// the content belonging to the parent starts; otherwise it is -1.
func (b builder) element(n *sitter.Node) (el *Element, rest int) {
	var tag *sitter.Node
	var closing *sitter.Node
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "start_tag", "self_closing_tag":
			if tag == nil {
				tag = c
			}
		case "end_tag":
			closing = c
		}
	}
	if tag == nil {
		return nil, -1
	}
	el = &Element{kind: ElementNode}
	b.tag(el, tag)
	if tag.Type() == "self_closing_tag" || voidTags[el.tag] {
		rest = int(tag.EndByte())
		if el.tag == "" {
			return nil, rest
		}
		return el, rest
	}
	if el.tag == "" {
		return nil, -1
	}
	end := int(n.EndByte())
	if closing != nil {
		end = int(closing.StartByte())
	}
	b.children(el, n, int(tag.EndByte()), end)
	return el, -1
}

func (b builder) tag(el *Element, n *sitter.Node) {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "tag_name":
			el.tag = strings.ToLower(c.Content(b.src))
		case "attribute":
			name, value := b.attribute(c)
			if name != "" {
				el.SetAttr(name, value)
			}
		}
	}
}

func (b builder) attribute(n *sitter.Node) (string, string) {
	var name, value string
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "attribute_name":
			name = c.Content(b.src)
		case "attribute_value":
			value = html.UnescapeString(c.Content(b.src))
		case "quoted_attribute_value":
			raw := c.Content(b.src)
			if len(raw) >= 2 {
				raw = raw[1 : len(raw)-1]
			}
			value = html.UnescapeString(raw)
		}
	}
	return name, value
}
