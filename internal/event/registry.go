// Package event keeps the bookkeeping for every listener an editor attaches,
// so that one call can tear all of them down again.
package event

// Change is the internal notification fired when editor content changes.
const Change = "change"

// Platform event types the editor listens for.
const (
	Resize     = "resize"
	Scroll     = "scroll"
	MouseDown  = "mousedown"
	MouseLeave = "mouseleave"
	MouseUp    = "mouseup"
	KeyUp      = "keyup"
	KeyDown    = "keydown"
	KeyPress   = "keypress"
	Click      = "click"
	Focus      = "focus"
	Blur       = "blur"
	Paste      = "paste"
)

// Key codes carried by keyboard events.
const (
	KeyBackspace = 8
	KeyEnter     = 13
)

// Event is what listeners receive. Platform events fill the fields they
// have; internal notifications carry their payload in Args.
type Event struct {
	Type   string
	Key    int
	Shift  bool
	Action string
	Value  string
	Args   []string

	prevented bool
}

func (e *Event) PreventDefault()        { e.prevented = true }
func (e *Event) DefaultPrevented() bool { return e.prevented }

type Listener func(*Event)

// Target is anything that delivers platform events. AddEventListener returns
// the function that detaches the listener again. Targets are compared by
// identity, so implementations should be pointer types.
type Target interface {
	AddEventListener(typ string, l Listener) (remove func())
}

type entry struct {
	listener Listener
	remove   func()
}

// Registry is owned by one editor instance.
type Registry struct {
	internal map[string][]Listener
	targets  []Target
	cache    []map[string][]entry
}

// NewRegistry creates a registry where the given types are internal
// notifications instead of platform events.
func NewRegistry(internal ...string) *Registry {
	r := &Registry{internal: make(map[string][]Listener, len(internal))}
	for _, typ := range internal {
		r.internal[typ] = nil
	}
	return r
}

// On records l. Internal types are only queued for Trigger; anything else is
// attached to target and indexed by target then type.
func (r *Registry) On(target Target, typ string, l Listener) {
	if l == nil {
		return
	}
	if list, ok := r.internal[typ]; ok {
		r.internal[typ] = append(list, l)
		return
	}
	if target == nil {
		return
	}
	idx := r.indexOf(target)
	if idx < 0 {
		r.targets = append(r.targets, target)
		r.cache = append(r.cache, map[string][]entry{})
		idx = len(r.targets) - 1
	}
	remove := target.AddEventListener(typ, l)
	r.cache[idx][typ] = append(r.cache[idx][typ], entry{listener: l, remove: remove})
}

// Trigger calls the internal listeners for typ in registration order.
func (r *Registry) Trigger(typ string, ev *Event) {
	list, ok := r.internal[typ]
	if !ok {
		return
	}
	if ev == nil {
		ev = &Event{}
	}
	ev.Type = typ
	for _, l := range append([]Listener(nil), list...) {
		l(ev)
	}
}

// RemoveAll detaches every platform listener and empties the internal
// lists. Safe to call repeatedly.
func (r *Registry) RemoveAll() {
	for typ := range r.internal {
		r.internal[typ] = nil
	}
	for _, byType := range r.cache {
		for _, entries := range byType {
			for _, e := range entries {
				if e.remove != nil {
					e.remove()
				}
			}
		}
	}
	r.targets = nil
	r.cache = nil
}

// Len is the number of attached platform listeners.
func (r *Registry) Len() int {
	n := 0
	for _, byType := range r.cache {
		for _, entries := range byType {
			n += len(entries)
		}
	}
	return n
}

// Internal is the number of listeners queued for the internal type typ.
func (r *Registry) Internal(typ string) int {
	return len(r.internal[typ])
}

// Listeners returns the recorded listeners for (target, typ) in order.
func (r *Registry) Listeners(target Target, typ string) []Listener {
	idx := r.indexOf(target)
	if idx < 0 {
		return nil
	}
	entries := r.cache[idx][typ]
	out := make([]Listener, len(entries))
	for i, e := range entries {
		out[i] = e.listener
	}
	return out
}

func (r *Registry) indexOf(target Target) int {
	for i, t := range r.targets {
		if t == target {
			return i
		}
	}
	return -1
}
