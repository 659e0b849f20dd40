package dom

import (
	"reflect"
	"strings"
	"testing"
)

func buildQuote() (root, quote, p, b, text *Element) {
	root = NewElement("div")
	quote = root.AppendChild(NewElement("blockquote"))
	p = quote.AppendChild(NewElement("p"))
	b = p.AppendChild(NewElement("b"))
	text = b.AppendChild(NewText("text"))
	return
}

func TestAncestorsStopsAtRoot(t *testing.T) {
	root, _, _, _, text := buildQuote()
	got := Names(Ancestors(text, root, IsElement))
	want := []string{"b", "p", "blockquote"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ancestors = %v, want %v", got, want)
	}
	if got := Ancestors(nil, root, nil); got != nil {
		t.Fatalf("Ancestors(nil) = %v, want nil", got)
	}
	if got := Ancestors(root, root, nil); len(got) != 0 {
		t.Fatalf("Ancestors(root) = %v, want empty", got)
	}
}

func TestParentAtTopIsUntypedNil(t *testing.T) {
	e := NewElement("div")
	if e.Parent() != nil {
		t.Fatalf("Parent() = %#v, want nil", e.Parent())
	}
	var typed *Element
	if !IsNil(typed) {
		t.Fatalf("IsNil(typed nil) = false")
	}
}

func TestClassHelpers(t *testing.T) {
	e := NewElement("div", Attribute{Name: "class", Value: "a"})
	e.AddClass("pen", "a")
	if v, _ := e.Attr("class"); v != "a pen" {
		t.Fatalf("class = %q, want %q", v, "a pen")
	}
	if !e.HasClass("pen") {
		t.Fatalf("HasClass(pen) = false")
	}
	e.RemoveClass("a")
	if v, _ := e.Attr("CLASS"); v != "pen" {
		t.Fatalf("class = %q, want %q", v, "pen")
	}
}

func TestInsertAfterAndRemove(t *testing.T) {
	root := NewElement("div")
	a := root.AppendChild(NewElement("p"))
	b := root.AppendChild(NewElement("h2"))
	c := NewElement("hr")
	root.InsertAfter(c, a)
	if got := Names(nodesOf(root.Children())); !reflect.DeepEqual(got, []string{"p", "hr", "h2"}) {
		t.Fatalf("children = %v", got)
	}
	root.InsertAfter(a, b)
	if got := Names(nodesOf(root.Children())); !reflect.DeepEqual(got, []string{"hr", "h2", "p"}) {
		t.Fatalf("children after move = %v", got)
	}
	c.Remove()
	if c.ParentElement() != nil || len(root.Children()) != 2 {
		t.Fatalf("Remove did not detach")
	}
}

func TestFindAllAndWithAttrSkipSelf(t *testing.T) {
	root, err := fragment(`<p style="x">one <span style="y">two</span></p><script>bad()</script>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root.SetAttr("style", "keep")
	if got := len(root.WithAttr("style")); got != 2 {
		t.Fatalf("WithAttr(style) = %d, want 2", got)
	}
	if got := len(root.FindAll("SCRIPT")); got != 1 {
		t.Fatalf("FindAll(script) = %d, want 1", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		`<p>Hello <b>world</b></p>`,
		`<p><br></p>`,
		`<blockquote><p>quoted</p></blockquote><hr><p>after</p>`,
		`<p><a href="http://x.y/?a=1&amp;b=2">link</a> &amp; more</p>`,
		`<ul><li>one</li><li>two</li></ul>`,
		`<p>a<br>b</p>`,
		`<p>a<br>b<br>c</p>`,
		`<p>x<img src="i.png">y</p>`,
		`<p><b>bold</b><br><i>next</i> tail</p>`,
	}
	for _, in := range cases {
		root, err := fragment(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := root.InnerHTML(); got != in {
			t.Fatalf("round trip = %q, want %q", got, in)
		}
	}
}

func TestParseKeepsTextAfterVoidElements(t *testing.T) {
	root, err := fragment(`<p>one<hr>two</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(root.FindAll("hr")); got != 1 {
		t.Fatalf("FindAll(hr) = %d, want 1", got)
	}
	text := root.InnerText()
	if !strings.Contains(text, "one") || !strings.Contains(text, "two") {
		t.Fatalf("InnerText = %q, want both one and two", text)
	}

	root, err = fragment(`<p>a<br/>b</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := root.InnerHTML(); got != "<p>a<br>b</p>" {
		t.Fatalf("InnerHTML = %q, want %q", got, "<p>a<br>b</p>")
	}
}

func TestParseAttributesAndEntities(t *testing.T) {
	root, err := fragment(`<p><a href="http://x.y/?a=1&amp;b=2" title=plain>a &lt; b</a></p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	links := root.FindAll("a")
	if len(links) != 1 {
		t.Fatalf("links = %d, want 1", len(links))
	}
	if href, _ := links[0].Attr("href"); href != "http://x.y/?a=1&b=2" {
		t.Fatalf("href = %q", href)
	}
	if title, _ := links[0].Attr("title"); title != "plain" {
		t.Fatalf("title = %q, want %q", title, "plain")
	}
	if got := links[0].InnerText(); got != "a < b" {
		t.Fatalf("text = %q, want %q", got, "a < b")
	}
}

func TestParseEmpty(t *testing.T) {
	nodes, err := Parse("")
	if err != nil || nodes != nil {
		t.Fatalf("Parse(\"\") = %v, %v", nodes, err)
	}
}

func TestInnerText(t *testing.T) {
	root, err := fragment(`<p>a<br>b</p><p>c</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := root.InnerText(); got != "a\nb\nc\n" {
		t.Fatalf("InnerText = %q", got)
	}
}

func fragment(markup string) (*Element, error) {
	root := NewElement("div")
	return root, root.SetInnerHTML(markup)
}

func nodesOf(els []*Element) []Node {
	out := make([]Node, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}
