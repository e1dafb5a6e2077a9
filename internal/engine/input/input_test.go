package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   sdl.Event
		want Event
		ok   bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Kind: Quit}, true},
		{"size changed", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480}, Event{Kind: Resize}, true},
		{"window moved", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED}, Event{}, false},
		{"key down", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F}}, Event{Kind: Key, Key: sdl.SCANCODE_F}, true},
		{"key repeat", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_LEFT}, Repeat: 1}, Event{Kind: Key, Key: sdl.SCANCODE_LEFT, Repeat: true}, true},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F}}, Event{}, false},
		{"drag", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, State: leftButton, XRel: 3, YRel: -2}, Event{Kind: Drag, DX: 3, DY: -2}, true},
		{"hover", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -2}, Event{}, false},
		{"wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2}, Event{Kind: Zoom, Steps: 2}, true},
		{"wheel flipped", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED}, Event{Kind: Zoom, Steps: -2}, true},
		{"horizontal wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, X: 1}, Event{}, false},
		{"drop file", &sdl.DropEvent{Type: sdl.DROPFILE, File: "cube.ply"}, Event{Kind: Drop, Path: "cube.ply"}, true},
		{"drop text", &sdl.DropEvent{Type: sdl.DROPTEXT, File: "hello"}, Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.in)
			if ok != tt.ok {
				t.Fatalf("Translate() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
