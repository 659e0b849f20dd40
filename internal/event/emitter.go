package event

// Emitter is a Target that keeps its own listener lists. Hosts embed it in
// their widgets and call Dispatch when the platform delivers an event.
type Emitter struct {
	listeners map[string][]*Listener
}

func (t *Emitter) AddEventListener(typ string, l Listener) func() {
	if t.listeners == nil {
		t.listeners = map[string][]*Listener{}
	}
	p := &l
	t.listeners[typ] = append(t.listeners[typ], p)
	return func() {
		list := t.listeners[typ]
		for i, q := range list {
			if q == p {
				t.listeners[typ] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to the listeners of ev.Type and reports whether the
// default action still applies.
func (t *Emitter) Dispatch(ev *Event) bool {
	for _, l := range append([]*Listener(nil), t.listeners[ev.Type]...) {
		(*l)(ev)
	}
	return !ev.DefaultPrevented()
}

// Fire dispatches a bare event of type typ.
func (t *Emitter) Fire(typ string) bool {
	return t.Dispatch(&Event{Type: typ})
}

// Listening is the number of listeners attached for typ, or for every type
// when typ is "".
func (t *Emitter) Listening(typ string) int {
	if typ != "" {
		return len(t.listeners[typ])
	}
	n := 0
	for _, l := range t.listeners {
		n += len(l)
	}
	return n
}
