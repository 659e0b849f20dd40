// Package termhost draws the editor toolbar on a terminal screen. One cell
// is one unit of toolbar geometry.
package termhost

import (
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/pen/internal/command"
	"github.com/kobzarvs/pen/internal/config"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/toolbar"
)

type Styles struct {
	Bar     tcell.Style
	Active  tcell.Style
	Input   tcell.Style
	Pointer tcell.Style
}

func StylesFromTheme(t config.Theme) Styles {
	barFg := parseColor(t.ToolbarForeground, tcell.ColorWhite)
	barBg := parseColor(t.ToolbarBackground, tcell.ColorBlack)
	return Styles{
		Bar:     tcell.StyleDefault.Foreground(barFg).Background(barBg),
		Active:  tcell.StyleDefault.Foreground(parseColor(t.ActiveForeground, barBg)).Background(parseColor(t.ActiveBackground, barFg)),
		Input:   tcell.StyleDefault.Foreground(parseColor(t.InputForeground, barFg)).Background(parseColor(t.InputBackground, barBg)),
		Pointer: tcell.StyleDefault.Foreground(parseColor(t.PointerForeground, barBg)),
	}
}

var labels = map[string]string{
	"blockquote":           "❝",
	"insertorderedlist":    "1.",
	"insertunorderedlist":  "•",
	"inserthorizontalrule": "—",
	"indent":               "→",
	"outdent":              "←",
	"bold":                 "B",
	"italic":               "I",
	"underline":            "U",
	"createlink":           "link",
	"unlink":               "unlink",
	"insertimage":          "img",
}

// Label is the text drawn for action.
func Label(action string) string {
	if l, ok := labels[action]; ok {
		return l
	}
	return action
}

// Menu is a toolbar drawn on screen. Call Draw after every change the host
// wants to show; the menu never calls Show on the screen itself.
type Menu struct {
	event.Emitter
	screen  tcell.Screen
	styles  Styles
	class   string
	actions []string
	active  map[string]bool
	input   *LinkInput

	visible  bool
	below    bool
	top      int
	left     int
	pointer  int
	centered bool
	removed  bool
}

var _ toolbar.Menu = (*Menu)(nil)

func NewMenu(s tcell.Screen, styles Styles, class string, actions []string) *Menu {
	m := &Menu{
		screen:   s,
		styles:   styles,
		class:    class,
		actions:  append([]string(nil), actions...),
		active:   map[string]bool{},
		centered: true,
	}
	for _, a := range actions {
		if a == command.CreateLink {
			m.input = &LinkInput{}
			break
		}
	}
	return m
}

func (m *Menu) Show()         { m.visible = !m.removed }
func (m *Menu) Hide()         { m.visible = false }
func (m *Menu) Visible() bool { return m.visible }
func (m *Menu) Class() string { return m.class }

// Size is the bar width in cells by two rows: the bar and its pointer.
func (m *Menu) Size() (float64, float64) {
	return float64(m.width()), 2
}

func (m *Menu) width() int {
	w := 0
	for _, a := range m.actions {
		w += cellWidth(Label(a)) + 2
	}
	return w
}

func (m *Menu) MoveTo(top, left float64) {
	m.top, m.left = cell(top), cell(left)
}

func (m *Menu) SetBelow(below bool) { m.below = below }

func (m *Menu) SetPointer(offset float64, centered bool) {
	m.pointer, m.centered = cell(offset), centered
}

func (m *Menu) SetActive(action string, on bool) {
	for _, a := range m.actions {
		if a == action {
			m.active[a] = on
			return
		}
	}
}

func (m *Menu) Active(action string) bool { return m.active[action] }
func (m *Menu) Actions() []string         { return append([]string(nil), m.actions...) }

func (m *Menu) LinkInput() toolbar.LinkInput {
	if m.input == nil {
		return nil
	}
	return m.input
}

// Input is the concrete link input, or nil.
func (m *Menu) Input() *LinkInput { return m.input }

func (m *Menu) Remove() {
	m.visible = false
	m.removed = true
}

func (m *Menu) rows() (bar, pointer int) {
	if m.below {
		return m.top + 1, m.top
	}
	return m.top, m.top + 1
}

// Draw paints the menu, its pointer and, when open, the link input.
func (m *Menu) Draw() {
	if !m.visible {
		return
	}
	bar, ptr := m.rows()
	x := m.left
	for _, a := range m.actions {
		style := m.styles.Bar
		if m.active[a] {
			style = m.styles.Active
		}
		x = m.put(x, bar, " "+Label(a)+" ", style)
	}

	px := m.pointer
	if m.centered {
		px = m.left + m.width()/2
	}
	mark := '▼'
	if m.below {
		mark = '▲'
	}
	m.screen.SetContent(px, ptr, mark, nil, m.styles.Pointer)

	if m.input != nil && m.input.visible {
		row := bar + 1
		if !m.below {
			row = bar - 1
		}
		w := m.width()
		for col := m.left; col < m.left+w; col++ {
			m.screen.SetContent(col, row, ' ', nil, m.styles.Input)
		}
		text := m.input.value
		if text == "" {
			text = "http://"
		}
		m.put(m.left+1, row, text, m.styles.Input)
	}
}

func (m *Menu) put(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		m.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// ActionAt is the action whose label covers screen cell (x, y).
func (m *Menu) ActionAt(x, y int) (string, bool) {
	bar, _ := m.rows()
	if !m.visible || y != bar {
		return "", false
	}
	col := m.left
	for _, a := range m.actions {
		w := cellWidth(Label(a)) + 2
		if x >= col && x < col+w {
			return a, true
		}
		col += w
	}
	return "", false
}

// HandleMouse turns a primary click on an icon into a "click" event. It
// reports whether the menu took the event.
func (m *Menu) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons() != tcell.Button1 {
		return false
	}
	x, y := ev.Position()
	action, ok := m.ActionAt(x, y)
	if !ok {
		return false
	}
	m.Dispatch(&event.Event{Type: event.Click, Action: action})
	return true
}

// HandleKey feeds keys to a focused link input.
func (m *Menu) HandleKey(ev *tcell.EventKey) bool {
	in := m.input
	if in == nil || !in.visible || !in.focused {
		return false
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		in.Dispatch(&event.Event{Type: event.KeyPress, Key: event.KeyEnter})
	case tcell.KeyEscape:
		in.Hide()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(in.value); len(r) > 0 {
			in.value = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		in.value += string(ev.Rune())
	default:
		return false
	}
	return true
}

// LinkInput is the URL field under createlink.
type LinkInput struct {
	event.Emitter
	visible bool
	focused bool
	value   string
}

func (in *LinkInput) Show()             { in.visible = true }
func (in *LinkInput) Focus()            { in.focused = true }
func (in *LinkInput) Visible() bool     { return in.visible }
func (in *LinkInput) Focused() bool     { return in.focused }
func (in *LinkInput) Value() string     { return in.value }
func (in *LinkInput) SetValue(v string) { in.value = v }

func (in *LinkInput) Hide() {
	in.visible = false
	in.focused = false
}

// Menus builds terminal menus on one screen.
type Menus struct {
	Screen  tcell.Screen
	Styles  Styles
	Created []*Menu
}

func (f *Menus) NewMenu(class string, actions []string) toolbar.Menu {
	m := NewMenu(f.Screen, f.Styles, class, actions)
	f.Created = append(f.Created, m)
	return m
}

// Draw paints every live menu.
func (f *Menus) Draw() {
	for _, m := range f.Created {
		m.Draw()
	}
}

func cell(v float64) int {
	return int(math.Round(v))
}

func cellWidth(s string) int {
	return len([]rune(s))
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
