package command

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/selection"
)

var (
	// ErrUnsupportedAction means the classifier does not know the action.
	ErrUnsupportedAction = errors.New("command: unsupported action")

	// ErrPrimitiveFailed means the host primitive reported failure.
	ErrPrimitiveFailed = errors.New("command: host primitive failed")
)

// Primitive is the host text-editing capability: apply op with an optional
// value to the current selection.
type Primitive interface {
	Apply(op, value string) bool
}

// PrimitiveFunc adapts a function to Primitive.
type PrimitiveFunc func(op, value string) bool

func (f PrimitiveFunc) Apply(op, value string) bool { return f(op, value) }

var effectTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "ul": true, "ol": true, "li": true,
	"b": true, "i": true, "u": true, "a": true, "code": true,
}

// IsEffect reports whether n is an element whose tag carries formatting the
// toolbar can show.
func IsEffect(n dom.Node) bool {
	return dom.IsElement(n) && effectTags[strings.ToLower(n.Name())]
}

// EffectChain is the formatting elements between from and root, innermost
// first.
func EffectChain(from, root dom.Node) []dom.Node {
	return dom.Ancestors(from, root, IsEffect)
}

type Dispatcher struct {
	tracker *selection.Tracker
	prim    Primitive
	root    dom.Node
	log     *zap.Logger
	debug   bool
}

func NewDispatcher(tracker *selection.Tracker, prim Primitive, root dom.Node, log *zap.Logger, debug bool) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{tracker: tracker, prim: prim, root: root, log: log, debug: debug}
}

// Execute restores the selection and runs name according to its category.
// The returned error is informational; it has already been logged.
func (d *Dispatcher) Execute(name, value string) error {
	name = strings.ToLower(name)
	d.tracker.Restore(nil)

	cat, ok := Classify(name)
	if !ok {
		d.log.Warn("no command for action", zap.String("action", name), zap.String("value", value))
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, name)
	}

	switch cat {
	case Block:
		return d.block(name)
	case Inline, Source:
		return d.apply(name, value)
	case Insert:
		return d.insert(name)
	case Wrap:
		return d.wrap(name)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedAction, name)
}

// block toggles back to a paragraph when the tag already wraps the selection.
func (d *Dispatcher) block(tag string) error {
	names := dom.Names(EffectChain(d.tracker.AnchorNode(false), d.root))
	for _, n := range names {
		if n == tag {
			tag = Paragraph
			break
		}
	}
	return d.apply(FormatBlock, tag)
}

// insert lands after the current block instead of splitting it.
func (d *Dispatcher) insert(name string) error {
	node := d.tracker.AnchorNode(true)
	if dom.IsNil(node) {
		d.diag("no anchor for insert", zap.String("action", name))
		return nil
	}
	if node != d.root {
		d.tracker.MoveAfter(node)
	}
	return d.apply(name, "")
}

func (d *Dispatcher) wrap(tag string) error {
	markup := "<" + tag + ">" + html.EscapeString(d.tracker.Text()) + "</" + tag + ">"
	return d.apply(InsertHTML, markup)
}

// Apply runs op on the primitive directly, skipping classification.
func (d *Dispatcher) Apply(op, value string) error {
	return d.apply(op, value)
}

func (d *Dispatcher) apply(op, value string) error {
	if d.prim.Apply(op, value) {
		d.diag("exec succeeded", zap.String("action", op), zap.String("value", value))
		return nil
	}
	d.log.Warn("exec failed", zap.String("action", op), zap.String("value", value))
	return fmt.Errorf("%w: %s %q", ErrPrimitiveFailed, op, value)
}

// diag writes a line that is only wanted while debugging.
func (d *Dispatcher) diag(msg string, fields ...zap.Field) {
	if d.debug {
		d.log.Info(msg, fields...)
	}
}
