// Package input turns SDL events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Kind identifies a viewer event.
type Kind int

const (
	None   Kind = iota
	Quit        // Window closed
	Resize      // Drawable size may have changed
	Key         // Key pressed
	Drag        // Mouse moved with the left button held
	Zoom        // Wheel scrolled
	Drop        // File dropped onto the window
)

// Event is one viewer event.
type Event struct {
	Kind   Kind
	Key    sdl.Scancode
	Repeat bool    // Key auto-repeat
	DX, DY float32 // Drag distance in pixels
	Steps  float32 // Wheel notches, positive away from the user
	Path   string  // Dropped file
}

var leftButton = uint32(1) << (sdl.BUTTON_LEFT - 1)

// Translate maps one SDL event to a viewer event. Events the viewer does not
// react to report false.
func Translate(ev sdl.Event) (Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return Event{Kind: Quit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Kind: Resize}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return Event{Kind: Key, Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}, true
		}

	case *sdl.MouseMotionEvent:
		if e.State&leftButton != 0 {
			return Event{Kind: Drag, DX: float32(e.XRel), DY: float32(e.YRel)}, true
		}

	case *sdl.MouseWheelEvent:
		steps := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			steps = -steps
		}
		if steps != 0 {
			return Event{Kind: Zoom, Steps: steps}, true
		}

	case *sdl.DropEvent:
		if e.Type == sdl.DROPFILE && e.File != "" {
			return Event{Kind: Drop, Path: e.File}, true
		}
	}
	return Event{}, false
}

// Queue collects the viewer events of one frame.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Poll drains pending SDL events and returns the translated ones. The slice
// is reused by the next Poll.
func (q *Queue) Poll() []Event {
	q.events = q.events[:0]
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e, ok := Translate(ev); ok {
			q.events = append(q.events, e)
		}
	}
	return q.events
}
