package termhost

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/pen/internal/config"
	"github.com/kobzarvs/pen/internal/editor"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/memhost"
	"github.com/kobzarvs/pen/internal/selection"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func cellAt(s tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, w, _ := s.GetContents()
	return cells[y*w+x]
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	c := cellAt(s, x, y)
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestSizeCountsLabelCells(t *testing.T) {
	s := newScreen(t, 40, 10)
	m := NewMenu(s, StylesFromTheme(config.Default().Theme), "pen-menu", []string{"bold", "italic", "createlink"})
	w, h := m.Size()
	if w != 12 || h != 2 {
		t.Fatalf("Size = %vx%v, want 12x2", w, h)
	}
}

func TestDrawPlacesBarPointerAndActive(t *testing.T) {
	s := newScreen(t, 40, 10)
	styles := StylesFromTheme(config.Default().Theme)
	m := NewMenu(s, styles, "pen-menu", []string{"bold", "italic", "createlink"})
	m.Show()
	m.MoveTo(3, 2)
	m.SetActive("italic", true)
	m.Draw()
	s.Show()

	if got := runeAt(s, 3, 3); got != 'B' {
		t.Fatalf("bar rune = %q, want 'B'", got)
	}
	if got := cellAt(s, 6, 3).Style; got != styles.Active {
		t.Fatalf("italic not drawn active")
	}
	if got := runeAt(s, 2+6, 4); got != '▼' {
		t.Fatalf("pointer = %q, want '▼' under the middle", got)
	}

	m.SetBelow(true)
	m.SetPointer(4, false)
	s.Clear()
	m.Draw()
	s.Show()
	if got := runeAt(s, 4, 3); got != '▲' {
		t.Fatalf("below pointer = %q, want '▲' at column 4", got)
	}
	if got := runeAt(s, 3, 4); got != 'B' {
		t.Fatalf("below bar rune = %q, want 'B'", got)
	}
}

func TestHiddenMenuDrawsNothing(t *testing.T) {
	s := newScreen(t, 20, 5)
	m := NewMenu(s, Styles{}, "pen-menu", []string{"bold"})
	m.MoveTo(1, 1)
	m.Draw()
	s.Show()
	if got := runeAt(s, 2, 1); got == 'B' {
		t.Fatalf("hidden menu was drawn")
	}
	if _, ok := m.ActionAt(2, 1); ok {
		t.Fatalf("hidden menu hit-tested")
	}
}

func TestHandleMouseDispatchesClick(t *testing.T) {
	s := newScreen(t, 40, 10)
	m := NewMenu(s, Styles{}, "pen-menu", []string{"bold", "italic"})
	m.Show()
	m.MoveTo(3, 2)
	var got string
	m.AddEventListener(event.Click, func(ev *event.Event) { got = ev.Action })

	if !m.HandleMouse(tcell.NewEventMouse(6, 3, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("click on italic not handled")
	}
	if got != "italic" {
		t.Fatalf("clicked %q, want italic", got)
	}
	if m.HandleMouse(tcell.NewEventMouse(6, 7, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("click off the bar handled")
	}
}

func TestHandleKeyEditsFocusedInput(t *testing.T) {
	s := newScreen(t, 40, 10)
	m := NewMenu(s, Styles{}, "pen-menu", []string{"createlink"})
	in := m.Input()
	entered := 0
	in.AddEventListener(event.KeyPress, func(ev *event.Event) {
		if ev.Key == event.KeyEnter {
			entered++
		}
	})

	if m.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatalf("hidden input took a key")
	}
	in.Show()
	in.Focus()
	for _, r := range "ab" {
		m.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	m.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	m.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if in.Value() != "a" || entered != 1 {
		t.Fatalf("value = %q entered = %d", in.Value(), entered)
	}
}

func TestParseColor(t *testing.T) {
	if got := parseColor("#1ABF89", tcell.ColorRed); got != tcell.NewRGBColor(0x1a, 0xbf, 0x89) {
		t.Fatalf("hex color = %v", got)
	}
	if got := parseColor("nope", tcell.ColorRed); got != tcell.ColorRed {
		t.Fatalf("unknown color = %v, want fallback", got)
	}
	if got := parseColor("default", tcell.ColorRed); got != tcell.ColorDefault {
		t.Fatalf("default = %v", got)
	}
}

func TestEditorDrivesTerminalToolbar(t *testing.T) {
	s := newScreen(t, 80, 24)
	p, err := memhost.NewPage(`<div id="ed"><p>hello</p></div>`)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	menus := &Menus{Screen: s, Styles: StylesFromTheme(config.Default().Theme)}
	cfg := config.Default()
	cfg.Editor.Target = "#ed"
	cfg.Toolbar.List = []string{"bold", "italic"}
	ed, err := editor.New(cfg, editor.Host{
		Document:  p.Doc,
		Selection: p.Selection,
		Primitive: p.Primitive,
		Window:    p.Window,
		Menus:     menus,
		Scheduler: p.Clock,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r := memhost.SelectText(ed.Element().Texts()[0])
	r.Box = selection.Rect{Top: 10, Left: 20, Width: 5, Height: 1}
	p.Selection.Select(r)
	surface := p.Surface("ed")
	surface.Fire(event.MouseDown)
	surface.Fire(event.MouseUp)
	p.Clock.Advance(time.Millisecond)

	menus.Draw()
	s.Show()
	m := menus.Created[0]
	if !m.Visible() {
		t.Fatalf("terminal toolbar not shown")
	}
	// Two rows do not fit above row 10 with a padding of 10, so the menu
	// flips below the selection.
	bar, ptr := m.rows()
	if !m.below || ptr != 21 || bar != 22 || m.left != 20 {
		t.Fatalf("menu below=%v pointer row %d bar row %d left %d", m.below, ptr, bar, m.left)
	}
	if !m.HandleMouse(tcell.NewEventMouse(m.left+1, bar, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("click on bold not handled")
	}
	if c, _ := p.Primitive.Last(); c.Op != "bold" {
		t.Fatalf("last call = %+v, want bold", c)
	}
}
