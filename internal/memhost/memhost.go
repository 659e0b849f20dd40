// Package memhost is an in-memory page for driving an editor without a
// browser: element tree, selection, editing primitive, toolbar widgets and
// a manual clock. Tests and headless tools use it.
package memhost

import (
	"github.com/kobzarvs/pen/internal/command"
	"github.com/kobzarvs/pen/internal/debounce"
	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/page"
	"github.com/kobzarvs/pen/internal/selection"
	"github.com/kobzarvs/pen/internal/toolbar"
)

// Surface is an editable element.
type Surface struct {
	event.Emitter
	el      *dom.Element
	Focused bool
}

func NewSurface(el *dom.Element) *Surface {
	return &Surface{el: el}
}

func (s *Surface) Element() *dom.Element { return s.el }
func (s *Surface) Focus()                { s.Focused = true }

// Document resolves surfaces by id under Body.
type Document struct {
	Body     *dom.Element
	surfaces map[*dom.Element]*Surface
}

func NewDocument(body *dom.Element) *Document {
	return &Document{Body: body, surfaces: map[*dom.Element]*Surface{}}
}

// Surface returns the one surface wrapping el.
func (d *Document) Surface(el *dom.Element) *Surface {
	if s, ok := d.surfaces[el]; ok {
		return s
	}
	s := NewSurface(el)
	d.surfaces[el] = s
	return s
}

func (d *Document) ElementByID(id string) page.Surface {
	var found *dom.Element
	d.Body.Walk(func(n *dom.Element) bool {
		if found != nil {
			return false
		}
		if v, ok := n.Attr("id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.Surface(found)
}

// Selection is the page selection. Applied counts SetActiveRange calls.
type Selection struct {
	ranges  []*Range
	Applied int
}

func (s *Selection) ActiveRange() selection.Range {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[0]
}

// Range is the active range in its concrete type, or nil.
func (s *Selection) Range() *Range {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[0]
}

func (s *Selection) SetActiveRange(r selection.Range) {
	mr, ok := r.(*Range)
	if !ok || mr == nil {
		return
	}
	s.Applied++
	s.ranges = []*Range{mr}
}

// Select replaces the selection with r, as a user gesture would.
func (s *Selection) Select(r *Range) {
	s.ranges = []*Range{r}
}

func (s *Selection) RemoveAllRanges() {
	s.ranges = nil
}

// FocusNode is the end container of the active range.
func (s *Selection) FocusNode() dom.Node {
	r := s.Range()
	if r == nil {
		return nil
	}
	return r.EndContainer()
}

func (s *Selection) String() string {
	if r := s.Range(); r != nil {
		return r.Text()
	}
	return ""
}

type Call struct {
	Op    string
	Value string
}

// Primitive records every editing operation. Ops listed in Fail report
// failure; OnApply, when set, runs for the others so a test can mutate the
// tree the way a browser would.
type Primitive struct {
	Calls   []Call
	Fail    map[string]bool
	OnApply func(op, value string)
}

var _ command.Primitive = (*Primitive)(nil)

func (p *Primitive) Apply(op, value string) bool {
	p.Calls = append(p.Calls, Call{Op: op, Value: value})
	if p.Fail[op] {
		return false
	}
	if p.OnApply != nil {
		p.OnApply(op, value)
	}
	return true
}

// Last is the most recent call.
func (p *Primitive) Last() (Call, bool) {
	if len(p.Calls) == 0 {
		return Call{}, false
	}
	return p.Calls[len(p.Calls)-1], true
}

// Window is the page window. Leave runs the before-unload handler.
type Window struct {
	event.Emitter
	unload page.BeforeUnload
}

func (w *Window) BeforeUnload() page.BeforeUnload     { return w.unload }
func (w *Window) SetBeforeUnload(h page.BeforeUnload) { w.unload = h }

func (w *Window) Leave() string {
	if w.unload == nil {
		return ""
	}
	return w.unload()
}

// LinkInput is the toolbar URL field.
type LinkInput struct {
	event.Emitter
	Shown   bool
	Focused bool
	value   string
}

func (in *LinkInput) Show()             { in.Shown = true }
func (in *LinkInput) Focus()            { in.Focused = true }
func (in *LinkInput) Visible() bool     { return in.Shown }
func (in *LinkInput) Value() string     { return in.value }
func (in *LinkInput) SetValue(v string) { in.value = v }

func (in *LinkInput) Hide() {
	in.Shown = false
	in.Focused = false
}

// Submit types v and presses Enter.
func (in *LinkInput) Submit(v string) {
	in.value = v
	in.Dispatch(&event.Event{Type: event.KeyPress, Key: event.KeyEnter})
}

// Menu is a toolbar widget with a fixed size.
type Menu struct {
	event.Emitter
	Class    string
	Width    float64
	Height   float64
	Shown    bool
	Top      float64
	Left     float64
	Below    bool
	Pointer  float64
	Centered bool
	Removed  bool

	actions []string
	active  map[string]bool
	input   *LinkInput
}

func NewMenu(class string, actions []string, w, h float64) *Menu {
	m := &Menu{Class: class, Width: w, Height: h, actions: append([]string(nil), actions...), active: map[string]bool{}}
	for _, a := range actions {
		if a == command.CreateLink {
			m.input = &LinkInput{}
			break
		}
	}
	return m
}

func (m *Menu) Show()                    { m.Shown = true }
func (m *Menu) Hide()                    { m.Shown = false }
func (m *Menu) Visible() bool            { return m.Shown }
func (m *Menu) Size() (float64, float64) { return m.Width, m.Height }
func (m *Menu) MoveTo(top, left float64) { m.Top, m.Left = top, left }
func (m *Menu) SetBelow(below bool)      { m.Below = below }
func (m *Menu) Actions() []string        { return append([]string(nil), m.actions...) }

func (m *Menu) Remove() {
	m.Removed = true
	m.Shown = false
}

func (m *Menu) SetPointer(offset float64, centered bool) {
	m.Pointer, m.Centered = offset, centered
}

func (m *Menu) SetActive(action string, on bool) {
	for _, a := range m.actions {
		if a == action {
			m.active[action] = on
			return
		}
	}
}

func (m *Menu) Active(action string) bool { return m.active[action] }

// ActiveActions lists the highlighted actions in menu order.
func (m *Menu) ActiveActions() []string {
	var out []string
	for _, a := range m.actions {
		if m.active[a] {
			out = append(out, a)
		}
	}
	return out
}

func (m *Menu) LinkInput() toolbar.LinkInput {
	if m.input == nil {
		return nil
	}
	return m.input
}

// Input is the concrete link input, or nil.
func (m *Menu) Input() *LinkInput { return m.input }

// Click presses the icon for action.
func (m *Menu) Click(action string) {
	m.Dispatch(&event.Event{Type: event.Click, Action: action})
}

// Menus builds Width×Height menus and remembers them.
type Menus struct {
	Width   float64
	Height  float64
	Created []*Menu
}

func (f *Menus) NewMenu(class string, actions []string) toolbar.Menu {
	m := NewMenu(class, actions, f.Width, f.Height)
	f.Created = append(f.Created, m)
	return m
}

// Current is the most recently built menu.
func (f *Menus) Current() *Menu {
	if len(f.Created) == 0 {
		return nil
	}
	return f.Created[len(f.Created)-1]
}

// Page bundles everything a single editor needs.
type Page struct {
	Body      *dom.Element
	Doc       *Document
	Selection *Selection
	Primitive *Primitive
	Window    *Window
	Menus     *Menus
	Clock     *debounce.Manual
}

// NewPage parses markup into a body element.
func NewPage(markup string) (*Page, error) {
	body := dom.NewElement("body")
	if err := body.SetInnerHTML(markup); err != nil {
		return nil, err
	}
	return &Page{
		Body:      body,
		Doc:       NewDocument(body),
		Selection: &Selection{},
		Primitive: &Primitive{},
		Window:    &Window{},
		Menus:     &Menus{Width: 200, Height: 30},
		Clock:     debounce.NewManual(),
	}, nil
}

// Surface wraps the element with the given id.
func (p *Page) Surface(id string) *Surface {
	s := p.Doc.ElementByID(id)
	if s == nil {
		return nil
	}
	return s.(*Surface)
}
