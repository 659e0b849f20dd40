// Package page describes the parts of the hosting page an editor attaches
// to. Hosts implement these; the editor only consumes them.
package page

import (
	"github.com/kobzarvs/pen/internal/dom"
	"github.com/kobzarvs/pen/internal/event"
)

// Surface is the editable element. It delivers the keyboard, mouse, focus
// and paste events typed by the user.
type Surface interface {
	event.Target
	Element() *dom.Element
	Focus()
}

// Document resolves surfaces by element id. ElementByID returns nil when
// nothing matches.
type Document interface {
	ElementByID(id string) Surface
}

// BeforeUnload returns the confirmation to show when the user leaves the
// page, or "" to let them go.
type BeforeUnload func() string

// Window delivers resize and scroll events and owns the page-wide
// before-unload slot.
type Window interface {
	event.Target
	BeforeUnload() BeforeUnload
	SetBeforeUnload(h BeforeUnload)
}
