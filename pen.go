// Package pen is an in-place rich-text editor controller. It turns an
// element of a host page into an editable surface with a floating toolbar
// that follows the selection and applies formatting through the host's own
// text-editing primitive.
package pen

import (
	"go.uber.org/zap"

	"github.com/kobzarvs/pen/internal/command"
	"github.com/kobzarvs/pen/internal/config"
	"github.com/kobzarvs/pen/internal/debounce"
	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/editor"
	"github.com/kobzarvs/pen/internal/event"
	"github.com/kobzarvs/pen/internal/logger"
	"github.com/kobzarvs/pen/internal/page"
	"github.com/kobzarvs/pen/internal/selection"
	"github.com/kobzarvs/pen/internal/toolbar"
)

type (
	Editor = editor.Editor
	Host   = editor.Host
	Option = editor.Option
	Config = config.Config

	Surface      = page.Surface
	Document     = page.Document
	Window       = page.Window
	BeforeUnload = page.BeforeUnload

	Selection = selection.Host
	Range     = selection.Range
	Rect      = selection.Rect
	Primitive = command.Primitive

	Menu         = toolbar.Menu
	LinkInput    = toolbar.LinkInput
	MenuFactory  = toolbar.Factory
	ToolbarState = toolbar.State

	Scheduler = debounce.Scheduler
	Timer     = debounce.Timer

	Event    = event.Event
	Listener = event.Listener
	Target   = event.Target

	Node    = dom.Node
	Element = dom.Element
)

// Change is the event type fired with (current, previous) content.
const Change = event.Change

var (
	ErrConfiguration     = editor.ErrConfiguration
	ErrUnsupportedAction = command.ErrUnsupportedAction
	ErrPrimitiveFailed   = command.ErrPrimitiveFailed
)

// New attaches an editor to host.
func New(cfg Config, host Host, opts ...Option) (*Editor, error) {
	return editor.New(cfg, host, opts...)
}

// InitLogging opens the diagnostic log file (PEN_LOG_FILE, or pen.log in the
// config directory). Editors created afterwards log there unless given
// WithLogger.
func InitLogging(debug bool) error {
	return logger.Init(debug)
}

func CloseLogging() {
	logger.Close()
}

func WithLogger(l *zap.Logger) Option {
	return editor.WithLogger(l)
}

func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads config.toml from the config directory over the defaults.
func LoadConfig() (Config, error) {
	return config.Load()
}

// ParseHTML parses a markup fragment into detached elements.
func ParseHTML(markup string) ([]*Element, error) {
	return dom.Parse(markup)
}

// NormalizeLink turns typed link input into an href.
func NormalizeLink(raw string) string {
	return toolbar.NormalizeLink(raw)
}
