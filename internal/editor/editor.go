// Package editor turns a page element into an in-place rich-text editor with
// a floating formatting toolbar.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kobzarvs/pen/internal/change"
	"github.com/kobzarvs/pen/internal/command"
	"github.com/kobzarvs/pen/internal/config"
	"github.com/kobzarvs/pen/internal/debounce"
	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/logger"
	"github.com/kobzarvs/pen/internal/page"
	"github.com/kobzarvs/pen/internal/selection"
	"github.com/kobzarvs/pen/internal/toolbar"
)

// ErrConfiguration is returned by New when the editor cannot be set up.
var ErrConfiguration = errors.New("editor: invalid configuration")

const (
	placeholderClass = "pen-placeholder"
	emptyContent     = "<p><br></p>"
)

// Host bundles the page capabilities an editor runs on. Surface may be left
// nil when the config names a "#id" target and Document can resolve it.
// Window is optional; without it there are no resize, scroll or stay hooks.
// Scheduler is required and must run callbacks on the goroutine that
// delivers host events.
type Host struct {
	Surface   page.Surface
	Document  page.Document
	Selection selection.Host
	Primitive command.Primitive
	Window    page.Window
	Menus     toolbar.Factory
	Scheduler debounce.Scheduler
}

type Option func(*Editor)

// WithLogger sets the diagnostic logger. The default is logger.L.
func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// Editor is not safe for concurrent use. Every call, including scheduled
// callbacks, must come from the host's event goroutine.
type Editor struct {
	cfg     config.Config
	host    Host
	surface page.Surface
	root    *dom.Element
	log     *zap.Logger

	tracker  *selection.Tracker
	dispatch *command.Dispatcher
	events   *event.Registry
	changes  *change.Detector
	bar      *toolbar.Controller
	paste    *debounce.Debouncer

	placeholder string
	selecting   bool
	destroyed   bool
}

func New(cfg config.Config, host Host, opts ...Option) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	surface := host.Surface
	if surface == nil {
		surface = resolve(cfg.Editor.Target, host.Document)
	}
	if surface == nil || surface.Element() == nil {
		return nil, fmt.Errorf("%w: can't find editor", ErrConfiguration)
	}
	if host.Selection == nil || host.Primitive == nil || host.Menus == nil || host.Scheduler == nil {
		return nil, fmt.Errorf("%w: host needs a selection, a primitive, a menu factory and a scheduler", ErrConfiguration)
	}

	e := &Editor{
		cfg:     cfg,
		host:    host,
		surface: surface,
		root:    surface.Element(),
		log:     logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("pen")

	e.root.AddClass(cfg.Editor.Class)
	e.root.SetAttr("contenteditable", "true")

	e.tracker = selection.NewTracker(host.Selection, e.root)
	e.dispatch = command.NewDispatcher(e.tracker, host.Primitive, e.root, e.log, cfg.Editor.Debug)
	e.events = event.NewRegistry(event.Change)
	e.paste = debounce.New(host.Scheduler, e.CleanDefault)

	e.initToolbar()
	e.initPlaceholder()
	e.initEvents()

	e.changes = change.New(e.Content, func(current, previous string) {
		e.events.Trigger(event.Change, &event.Event{Args: []string{current, previous}})
	})

	if cfg.StayEnabled() {
		e.stay()
	}
	e.diag("editor ready", zap.String("class", cfg.Editor.Class), zap.Strings("toolbar", cfg.Toolbar.List))
	return e, nil
}

// resolve looks up a "#id" target.
func resolve(target string, doc page.Document) page.Surface {
	if doc == nil || len(target) < 2 || target[0] != '#' || strings.ContainsAny(target, " \t\r\n") {
		return nil
	}
	return doc.ElementByID(target[1:])
}

func (e *Editor) initToolbar() {
	menu := e.host.Menus.NewMenu(e.cfg.Editor.Class+"-menu pen-menu", e.cfg.Toolbar.List)
	e.bar = toolbar.New(menu, e.tracker, e.root, e.host.Scheduler, float64(e.cfg.Toolbar.Padding))
}

func (e *Editor) initPlaceholder() {
	e.placeholder = e.cfg.Editor.Placeholder
	if v, ok := e.root.Attr("data-placeholder"); ok {
		e.placeholder = v
	}
	e.Placeholder("")
}

func (e *Editor) Config() config.Config        { return e.cfg }
func (e *Editor) Element() *dom.Element        { return e.root }
func (e *Editor) Toolbar() *toolbar.Controller { return e.bar }
func (e *Editor) Destroyed() bool              { return e.destroyed }

// On registers l on the editable surface, or as an internal listener for
// event.Change.
func (e *Editor) On(typ string, l event.Listener) *Editor {
	e.events.On(e.surface, typ, l)
	return e
}

// OnChange registers fn for content changes.
func (e *Editor) OnChange(fn func(current, previous string)) *Editor {
	return e.On(event.Change, func(ev *event.Event) {
		if len(ev.Args) == 2 {
			fn(ev.Args[0], ev.Args[1])
		}
	})
}

// Content is the surface markup, or "" while it shows the placeholder or
// has no visible content.
func (e *Editor) Content() string {
	if e.root.HasClass(placeholderClass) || e.IsEmpty() {
		return ""
	}
	return e.root.InnerHTML()
}

// SetContent replaces the markup and runs the default sanitation pass.
func (e *Editor) SetContent(markup string) error {
	if err := e.root.SetInnerHTML(markup); err != nil {
		return fmt.Errorf("set content: %w", err)
	}
	e.CleanDefault()
	return nil
}

// Exec runs a formatting action on the current selection. The error is
// informational; failures are already logged.
func (e *Editor) Exec(name, value string) error {
	err := e.dispatch.Execute(name, value)
	if strings.EqualFold(name, command.Indent) {
		e.changes.Check()
	} else {
		e.Clean([]string{"style"}, nil)
	}
	return err
}

// Clean strips attrs from every descendant and removes every descendant
// named in tags, then refreshes the placeholder and checks for a change.
func (e *Editor) Clean(attrs, tags []string) *Editor {
	for _, attr := range attrs {
		for _, el := range e.root.WithAttr(attr) {
			el.RemoveAttr(attr)
		}
	}
	for _, tag := range tags {
		for _, el := range e.root.FindAll(tag) {
			el.Remove()
		}
	}
	e.Placeholder("")
	e.changes.Check()
	return e
}

// CleanDefault cleans with the configured attributes and tags.
func (e *Editor) CleanDefault() {
	e.Clean(e.cfg.Clean.Attrs, e.cfg.Clean.Tags)
}

// Focus focuses the surface. Unless start is set the caret goes back to
// the saved range, or to the end of the current one.
func (e *Editor) Focus(start bool) *Editor {
	e.surface.Focus()
	if !start {
		e.tracker.Restore(nil)
	}
	return e
}

// Placeholder optionally replaces the placeholder text, then shows it when
// the surface is empty. It reports whether the placeholder is showing.
func (e *Editor) Placeholder(text string) bool {
	if text != "" {
		e.placeholder = text
	}
	if e.placeholder != "" && (e.root.HasClass(placeholderClass) || e.IsEmpty()) {
		if err := e.root.SetInnerHTML(e.placeholder); err != nil {
			e.root.RemoveChildren()
			e.root.AppendChild(dom.NewText(e.placeholder))
		}
		e.root.AddClass(placeholderClass)
		return true
	}
	e.root.RemoveClass(placeholderClass)
	return false
}

// IsEmpty reports whether the surface shows no text and no image.
func (e *Editor) IsEmpty() bool {
	if strings.TrimSpace(e.root.InnerText()) != "" {
		return false
	}
	return len(e.root.FindAll("img")) == 0
}

// Destroy detaches every listener, drops pending timers, removes the
// toolbar and makes the surface read-only. Calling it twice is a no-op.
func (e *Editor) Destroy() *Editor {
	if e.destroyed {
		return e
	}
	e.events.RemoveAll()
	e.bar.Cancel()
	e.paste.Cancel()
	e.tracker.Clear()
	e.bar.Menu().Remove()
	e.root.RemoveAttr("contenteditable")
	e.destroyed = true
	e.diag("editor destroyed")
	return e
}

// Rebuild brings a destroyed editor back with a fresh toolbar and fresh
// listeners. Listeners registered through On must be registered again.
func (e *Editor) Rebuild() *Editor {
	if !e.destroyed {
		e.Destroy()
	}
	e.initToolbar()
	e.initPlaceholder()
	e.initEvents()
	e.root.SetAttr("contenteditable", "true")
	e.changes.Reset()
	e.destroyed = false
	e.diag("editor rebuilt")
	return e
}

// diag writes a line that is only wanted while debugging.
func (e *Editor) diag(msg string, fields ...zap.Field) {
	if e.cfg.Editor.Debug {
		e.log.Info(msg, fields...)
	}
}
