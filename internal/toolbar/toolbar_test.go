package toolbar_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/memhost"
	"github.com/kobzarvs/pen/internal/selection"
	"github.com/kobzarvs/pen/internal/toolbar"
)

func TestPlaceCentersAbove(t *testing.T) {
	p := toolbar.Place(selection.Rect{Top: 100, Left: 200, Width: 100, Height: 20}, 80, 30, 10)
	want := toolbar.Placement{Top: 60, Left: 210, PointerCentered: true}
	if p != want {
		t.Fatalf("Place = %+v, want %+v", p, want)
	}
}

func TestPlaceClampsLeftAndKeepsPointerOnCenter(t *testing.T) {
	p := toolbar.Place(selection.Rect{Top: 100, Left: 0, Width: 20, Height: 20}, 200, 30, 10)
	if p.Left != 0 || p.PointerCentered || p.Pointer != 10 {
		t.Fatalf("Place = %+v, want left 0 and pointer at 10", p)
	}
}

func TestPlaceFlipsBelow(t *testing.T) {
	p := toolbar.Place(selection.Rect{Top: 5, Left: 300, Width: 40, Height: 18}, 100, 30, 10)
	if !p.Below || p.Top != 33 {
		t.Fatalf("Place = %+v, want below at 33", p)
	}
}

func TestHighlightMapsTags(t *testing.T) {
	link := dom.NewElement("a", dom.Attribute{Name: "href", Value: "http://x.io"})
	chain := []dom.Node{
		dom.NewElement("b"), dom.NewElement("i"), dom.NewElement("u"), link,
		dom.NewElement("code"), dom.NewElement("li"), dom.NewElement("ol"),
		dom.NewElement("ol"), dom.NewElement("blockquote"), dom.NewElement("span"),
	}
	actions, href := toolbar.Highlight(chain)
	want := []string{"blockquote", "bold", "code", "createlink", "indent", "insertorderedlist", "italic", "underline"}
	if !reflect.DeepEqual(actions, want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	if href != "http://x.io" {
		t.Fatalf("href = %q", href)
	}
}

func TestComputeIsPure(t *testing.T) {
	box := selection.Rect{Top: 100, Left: 50, Width: 60, Height: 16}
	chain := []dom.Node{dom.NewElement("ul")}
	a := toolbar.Compute(box, 120, 30, 10, chain)
	b := toolbar.Compute(box, 120, 30, 10, chain)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Compute differs for the same input: %+v vs %+v", a, b)
	}
	if !a.Visible || !reflect.DeepEqual(a.Active, []string{"insertunorderedlist"}) {
		t.Fatalf("Compute = %+v", a)
	}
}

var actions = []string{"blockquote", "bold", "italic", "createlink"}

type fixture struct {
	page *memhost.Page
	root *dom.Element
	tr   *selection.Tracker
	menu *memhost.Menu
	c    *toolbar.Controller
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()
	p, err := memhost.NewPage(markup)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	root := p.Surface("ed").Element()
	tr := selection.NewTracker(p.Selection, root)
	menu := p.Menus.NewMenu("pen-menu", actions).(*memhost.Menu)
	return &fixture{
		page: p,
		root: root,
		tr:   tr,
		menu: menu,
		c:    toolbar.New(menu, tr, root, p.Clock, 10),
	}
}

func (f *fixture) selectText(n *dom.Element, box selection.Rect) {
	r := memhost.SelectText(n)
	r.Box = box
	f.page.Selection.Select(r)
}

func TestToggleShowsAfterDelay(t *testing.T) {
	f := newFixture(t, `<div id="ed"><blockquote><b>hi</b></blockquote></div>`)
	f.selectText(f.root.Texts()[0], selection.Rect{Top: 100, Left: 100, Width: 40, Height: 16})

	f.c.Toggle(400 * time.Millisecond)
	f.page.Clock.Advance(399 * time.Millisecond)
	if f.menu.Visible() {
		t.Fatalf("menu shown before the delay")
	}
	f.page.Clock.Advance(time.Millisecond)
	if !f.menu.Visible() {
		t.Fatalf("menu not shown after the delay")
	}
	if got := f.menu.ActiveActions(); !reflect.DeepEqual(got, []string{"blockquote", "bold"}) {
		t.Fatalf("active = %v", got)
	}
	if f.menu.Top != 100-10-30 || f.menu.Left != 120-100 {
		t.Fatalf("menu at %v,%v", f.menu.Top, f.menu.Left)
	}
}

func TestToggleLastCallWins(t *testing.T) {
	f := newFixture(t, `<div id="ed"><p>hi</p></div>`)
	f.selectText(f.root.Texts()[0], selection.Rect{Top: 100, Left: 100, Width: 40, Height: 16})

	f.c.Toggle(400 * time.Millisecond)
	f.page.Clock.Advance(300 * time.Millisecond)
	f.c.Toggle(400 * time.Millisecond)
	f.page.Clock.Advance(300 * time.Millisecond)
	if f.menu.Visible() {
		t.Fatalf("first toggle was not replaced")
	}
	f.page.Clock.Advance(100 * time.Millisecond)
	if !f.menu.Visible() {
		t.Fatalf("second toggle never fired")
	}
	if f.page.Clock.Pending() != 0 {
		t.Fatalf("pending = %d", f.page.Clock.Pending())
	}
}

func TestCollapsedHidesImmediatelyAndCancels(t *testing.T) {
	f := newFixture(t, `<div id="ed"><p>hi</p></div>`)
	text := f.root.Texts()[0]
	f.selectText(text, selection.Rect{Top: 100, Left: 100, Width: 40, Height: 16})
	f.c.Toggle(0)
	f.page.Clock.Flush()
	if !f.menu.Visible() {
		t.Fatalf("menu not shown")
	}

	f.c.Toggle(400 * time.Millisecond)
	f.page.Selection.Select(memhost.Caret(text, 1))
	f.c.Toggle(400 * time.Millisecond)
	if f.menu.Visible() || f.c.State().Visible {
		t.Fatalf("collapsed selection did not hide synchronously")
	}
	f.page.Clock.Flush()
	if f.menu.Visible() {
		t.Fatalf("cancelled show still fired")
	}
}

func TestToggleWithoutRangeHides(t *testing.T) {
	f := newFixture(t, `<div id="ed"><p>hi</p></div>`)
	f.selectText(f.root.Texts()[0], selection.Rect{Top: 100, Left: 100, Width: 40, Height: 16})
	f.c.Toggle(0)
	f.page.Clock.Flush()
	if !f.menu.Visible() {
		t.Fatalf("menu not shown")
	}

	f.page.Selection.RemoveAllRanges()
	f.c.Toggle(400 * time.Millisecond)
	if f.menu.Visible() || f.page.Clock.Pending() != 0 {
		t.Fatalf("visible=%v pending=%d, want hidden with nothing pending", f.menu.Visible(), f.page.Clock.Pending())
	}
}

func TestRenderResetsLinkInputAndFlags(t *testing.T) {
	f := newFixture(t, `<div id="ed"><p><a href="/doc"><i>x</i></a>y</p></div>`)
	texts := f.root.Texts()
	f.selectText(texts[0], selection.Rect{Top: 100, Left: 100, Width: 10, Height: 16})
	f.c.Toggle(0)
	f.page.Clock.Flush()

	in := f.menu.Input()
	if got := f.menu.ActiveActions(); !reflect.DeepEqual(got, []string{"italic", "createlink"}) {
		t.Fatalf("active = %v", got)
	}
	if in.Value() != "/doc" {
		t.Fatalf("link input = %q, want /doc", in.Value())
	}

	in.Show()
	f.selectText(texts[1], selection.Rect{Top: 100, Left: 100, Width: 10, Height: 16})
	f.c.Toggle(0)
	f.page.Clock.Flush()
	if len(f.menu.ActiveActions()) != 0 {
		t.Fatalf("stale flags: %v", f.menu.ActiveActions())
	}
	if in.Visible() || in.Value() != "" {
		t.Fatalf("link input not reset: visible=%v value=%q", in.Visible(), in.Value())
	}
}

func TestRefreshOnlyWhenVisible(t *testing.T) {
	f := newFixture(t, `<div id="ed"><p>hi</p></div>`)
	r := memhost.SelectText(f.root.Texts()[0])
	r.Box = selection.Rect{Top: 100, Left: 100, Width: 40, Height: 16}
	f.page.Selection.Select(r)
	f.tr.Capture()

	f.c.Refresh()
	if f.menu.Visible() {
		t.Fatalf("Refresh showed a hidden menu")
	}
	f.c.Show()
	r.Box.Top = 300
	f.c.Refresh()
	if f.menu.Top != 300-10-30 {
		t.Fatalf("Refresh left the menu at %v", f.menu.Top)
	}
}

func TestNormalizeLink(t *testing.T) {
	cases := map[string]string{
		"  example.com ":        "http://example.com",
		"me@example.com":        "mailto:me@example.com",
		"mailto:me@example.com": "mailto:me@example.com",
		"https://example.com":   "https://example.com",
		"ftp://host/file":       "ftp://host/file",
		"/docs":                 "/docs",
		"./docs":                "./docs",
		"#top":                  "#top",
		"?q=1":                  "?q=1",
		"example.com/me@x.io":   "http://example.com/me@x.io",
		"   ":                   "",
	}
	for in, want := range cases {
		if got := toolbar.NormalizeLink(in); got != want {
			t.Fatalf("NormalizeLink(%q) = %q, want %q", in, got, want)
		}
	}
}
