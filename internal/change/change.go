// Package change notices when the editor content differs from what was
// last reported.
package change

// Detector compares the content against the last seen snapshot. It is not
// safe for concurrent use.
type Detector struct {
	content  func() string
	emit     func(current, previous string)
	previous string
}

// New takes the baseline from content right away.
func New(content func() string, emit func(current, previous string)) *Detector {
	d := &Detector{content: content, emit: emit}
	d.Reset()
	return d
}

// Check emits (current, previous) once per distinct transition and reports
// whether it did.
func (d *Detector) Check() bool {
	current := d.content()
	if current == d.previous {
		return false
	}
	previous := d.previous
	d.previous = current
	if d.emit != nil {
		d.emit(current, previous)
	}
	return true
}

// Reset re-reads the baseline without emitting.
func (d *Detector) Reset() {
	d.previous = d.content()
}

func (d *Detector) Previous() string {
	return d.previous
}
