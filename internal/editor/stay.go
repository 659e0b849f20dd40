package editor

// stay claims the page's before-unload slot so leaving asks for
// confirmation. The first editor on a page keeps the slot; once it is
// destroyed leaving no longer asks.
func (e *Editor) stay() {
	w := e.host.Window
	if w == nil {
		return
	}
	if w.BeforeUnload() != nil {
		e.diag("before-unload already claimed")
		return
	}
	msg := e.cfg.Editor.StayMessage
	w.SetBeforeUnload(func() string {
		if e.destroyed {
			return ""
		}
		return msg
	})
}
