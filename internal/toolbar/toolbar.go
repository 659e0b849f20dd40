// Package toolbar drives the floating menu: when it shows, where it sits and
// which of its actions light up for the current selection.
package toolbar

import (
	"sort"
	"strings"
	"time"

	"github.com/kobzarvs/pen/internal/command"
	"github.com/kobzarvs/pen/internal/debounce"
	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/selection"
)

// Menu is the host widget that renders the toolbar. It delivers "click"
// events whose Action names the pressed icon.
type Menu interface {
	event.Target
	Show()
	Hide()
	Visible() bool
	// Size is only meaningful while shown.
	Size() (width, height float64)
	MoveTo(top, left float64)
	SetBelow(below bool)
	// SetPointer places the indicator at offset, or in the middle when
	// centered.
	SetPointer(offset float64, centered bool)
	SetActive(action string, on bool)
	Actions() []string
	// LinkInput is nil when the menu has no createlink icon.
	LinkInput() LinkInput
	Remove()
}

// LinkInput is the URL field that belongs to createlink. It delivers
// "keypress" events.
type LinkInput interface {
	event.Target
	Show()
	Hide()
	Focus()
	Visible() bool
	Value() string
	SetValue(v string)
}

// Factory builds a fresh menu for an editor (on construction and rebuild).
type Factory interface {
	NewMenu(class string, actions []string) Menu
}

type Placement struct {
	Top             float64
	Left            float64
	Below           bool
	Pointer         float64
	PointerCentered bool
}

// Place centers a w×h menu above box, padding away from it. A menu that
// would leave the viewport on the left is pinned to 0 with the pointer kept
// on the box center; one that would leave it on top flips below the box.
func Place(box selection.Rect, w, h, padding float64) Placement {
	center := box.Left + box.Width/2
	p := Placement{
		Top:             box.Top - padding - h,
		Left:            center - w/2,
		PointerCentered: true,
	}
	if p.Left < 0 {
		p.Left = 0
		p.Pointer = center
		p.PointerCentered = false
	}
	if p.Top < 0 {
		p.Below = true
		p.Top = box.Top + box.Height + padding
	}
	return p
}

var tagActions = map[string]string{
	"a":    command.CreateLink,
	"i":    "italic",
	"u":    "underline",
	"b":    "bold",
	"code": command.Code,
	"ul":   "insertunorderedlist",
	"ol":   "insertorderedlist",
	"li":   command.Indent,
}

// Highlight maps a formatting chain to the actions to mark active, sorted,
// and the href of the innermost link.
func Highlight(chain []dom.Node) (actions []string, href string) {
	seen := map[string]bool{}
	linked := false
	for _, n := range chain {
		if !command.IsEffect(n) {
			continue
		}
		tag := strings.ToLower(n.Name())
		action, ok := tagActions[tag]
		if !ok {
			action = tag
		}
		if tag == "a" && !linked {
			href, _ = n.Attr("href")
			linked = true
		}
		if !seen[action] {
			seen[action] = true
			actions = append(actions, action)
		}
	}
	sort.Strings(actions)
	return actions, href
}

// State is the last computed toolbar state.
type State struct {
	Visible bool
	Placement
	Active []string
	Link   string
}

// Compute derives the whole visible state from the selection box, the menu
// size and the formatting chain around the focus node.
func Compute(box selection.Rect, w, h, padding float64, chain []dom.Node) State {
	actions, href := Highlight(chain)
	return State{Visible: true, Placement: Place(box, w, h, padding), Active: actions, Link: href}
}

type Controller struct {
	menu    Menu
	tracker *selection.Tracker
	root    dom.Node
	padding float64
	toggle  *debounce.Debouncer
	state   State
}

func New(menu Menu, tracker *selection.Tracker, root dom.Node, sched debounce.Scheduler, padding float64) *Controller {
	c := &Controller{menu: menu, tracker: tracker, root: root, padding: padding}
	c.toggle = debounce.New(sched, c.settle)
	menu.Hide()
	return c
}

func (c *Controller) Menu() Menu   { return c.menu }
func (c *Controller) State() State { return c.state }

// Toggle re-reads the selection. A missing or empty selection hides the
// menu at once; a non-empty one shows it after delay.
func (c *Controller) Toggle(delay time.Duration) {
	if c.tracker.Capture() == nil || c.tracker.Collapsed() {
		c.toggle.Cancel()
		c.Hide()
		return
	}
	c.toggle.Call(delay)
}

func (c *Controller) settle() {
	if c.tracker.Collapsed() {
		c.Hide()
		return
	}
	c.Show()
}

// Show positions the menu over the selection and highlights it.
func (c *Controller) Show() {
	box, ok := c.tracker.BoundingBox()
	if !ok {
		return
	}
	// The menu has to be displayed before it can be measured.
	c.menu.Show()
	w, h := c.menu.Size()
	c.Render(Compute(box, w, h, c.padding, command.EffectChain(c.tracker.FocusNode(), c.root)))
}

func (c *Controller) Hide() {
	c.Render(State{})
}

// Refresh moves a visible menu back over the selection, e.g. after scroll
// or resize. Highlights and the link input are left alone.
func (c *Controller) Refresh() {
	if !c.menu.Visible() {
		return
	}
	box, ok := c.tracker.BoundingBox()
	if !ok {
		return
	}
	w, h := c.menu.Size()
	c.state.Placement = Place(box, w, h, c.padding)
	c.move(c.state.Placement)
}

// Cancel drops a pending show.
func (c *Controller) Cancel() {
	c.toggle.Cancel()
}

// Render applies s to the menu: every active flag is cleared and the link
// input hidden and reset before the new highlights go on.
func (c *Controller) Render(s State) {
	c.state = s
	if !s.Visible {
		c.menu.Hide()
		return
	}
	c.menu.Show()
	c.move(s.Placement)
	for _, a := range c.menu.Actions() {
		c.menu.SetActive(a, false)
	}
	if in := c.menu.LinkInput(); in != nil {
		in.Hide()
		in.SetValue(s.Link)
	}
	for _, a := range s.Active {
		c.menu.SetActive(a, true)
	}
}

func (c *Controller) move(p Placement) {
	c.menu.SetPointer(p.Pointer, p.PointerCentered)
	c.menu.SetBelow(p.Below)
	c.menu.MoveTo(p.Top, p.Left)
}
