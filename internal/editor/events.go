package editor

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kobzarvs/pen/internal/command"
	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/toolbar"
)

// Enter inside these blocks leaves them instead of adding a line.
var breakoutTags = map[string]bool{"blockquote": true, "pre": true, "div": true}

func (e *Editor) initEvents() {
	if w := e.host.Window; w != nil {
		e.events.On(w, event.Resize, func(*event.Event) { e.bar.Refresh() })
		e.events.On(w, event.Scroll, func(*event.Event) { e.bar.Refresh() })
	}

	e.selecting = false
	e.events.On(e.surface, event.MouseDown, func(*event.Event) {
		e.selecting = true
	})
	e.events.On(e.surface, event.MouseLeave, func(*event.Event) {
		if e.selecting {
			e.toggle(e.cfg.Toolbar.KeyDelay())
		}
		e.selecting = false
	})
	e.events.On(e.surface, event.MouseUp, func(*event.Event) {
		if e.selecting {
			e.toggle(e.cfg.Toolbar.MouseUpDelay())
		}
		e.selecting = false
	})

	e.events.On(e.surface, event.KeyUp, e.onKeyUp)
	e.events.On(e.surface, event.KeyDown, e.onKeyDown)

	menu := e.bar.Menu()
	e.events.On(menu, event.Click, e.onMenuClick)
	if in := menu.LinkInput(); in != nil {
		e.events.On(in, event.KeyPress, func(ev *event.Event) {
			if ev.Key == event.KeyEnter {
				e.createLink(in)
			}
		})
	}

	e.events.On(e.surface, event.Focus, func(*event.Event) {
		if e.root.HasClass(placeholderClass) || e.IsEmpty() {
			e.reset()
		}
		e.root.RemoveClass(placeholderClass)
	})
	e.events.On(e.surface, event.Blur, func(*event.Event) {
		e.Placeholder("")
		e.changes.Check()
	})

	// The pasted markup only lands after the event, so clean on the next tick.
	e.events.On(e.surface, event.Paste, func(*event.Event) {
		e.paste.Call(0)
	})
}

// toggle treats a zero delay as the shortest configured one.
func (e *Editor) toggle(delay time.Duration) {
	if delay <= 0 {
		delay = e.cfg.Toolbar.ToggleDelay()
	}
	e.bar.Toggle(delay)
}

func (e *Editor) onKeyUp(ev *event.Event) {
	if ev.Key == event.KeyBackspace && e.IsEmpty() {
		e.reset()
		e.bar.Hide()
		e.tracker.Restore(nil)
		return
	}
	e.toggle(e.cfg.Toolbar.KeyDelay())
}

func (e *Editor) onKeyDown(ev *event.Event) {
	if ev.Key != event.KeyEnter || ev.Shift {
		return
	}
	node := e.tracker.AnchorNode(true)
	if !dom.IsElement(node) || node == dom.Node(e.root) || !breakoutTags[strings.ToLower(node.Name())] {
		return
	}
	block, ok := node.(*dom.Element)
	if !ok {
		return
	}
	ev.PreventDefault()
	e.lineBreak(block)
}

// lineBreak starts an empty paragraph right after block.
func (e *Editor) lineBreak(block *dom.Element) {
	fresh := dom.NewElement("p")
	fresh.AppendChild(dom.NewElement("br"))
	if !e.tracker.BreakAfter(block, fresh) {
		e.diag("no range for line break", zap.String("block", block.Name()))
		return
	}
	_ = e.dispatch.Apply(command.FormatBlock, command.Paragraph)
}

func (e *Editor) onMenuClick(ev *event.Event) {
	action := ev.Action
	if action == "" {
		return
	}
	if action != command.CreateLink {
		e.menuApply(action, "")
		return
	}
	in := e.bar.Menu().LinkInput()
	if in == nil {
		e.diag("toolbar has no link input")
		return
	}
	in.Show()
	in.Focus()
}

// createLink applies what the user typed, or unlinks when it is blank.
func (e *Editor) createLink(in toolbar.LinkInput) {
	in.Hide()
	if href := toolbar.NormalizeLink(in.Value()); href != "" {
		e.menuApply(command.CreateLink, href)
		return
	}
	e.menuApply(command.Unlink, "")
}

func (e *Editor) menuApply(action, value string) {
	_ = e.Exec(action, value)
	if e.tracker.Capture() != nil && !e.tracker.Collapsed() {
		e.bar.Show()
	}
}

// reset leaves a single empty paragraph.
func (e *Editor) reset() {
	if err := e.root.SetInnerHTML(emptyContent); err != nil {
		e.log.Warn("reset content", zap.Error(err))
	}
}
