// Package input polls SDL2 events and tracks which keys are held.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Key is a game key, independent of the SDL scancode layout.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyEnter
	KeyLeft
	KeyRight
	KeyP
	KeyEscape
	KeyF12
)

var scancodes = map[sdl.Scancode]Key{
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
	sdl.SCANCODE_SPACE:  KeySpace,
	sdl.SCANCODE_RETURN: KeyEnter,
	sdl.SCANCODE_LEFT:   KeyLeft,
	sdl.SCANCODE_RIGHT:  KeyRight,
	sdl.SCANCODE_P:      KeyP,
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_F12:    KeyF12,
}

// FromScancode maps an SDL scancode to a Key.
func FromScancode(sc sdl.Scancode) Key {
	return scancodes[sc]
}

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDrag
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	DX, DY int
}

// Input collects events each frame and remembers held keys.
type Input struct {
	events  []Event
	held    map[Key]bool
	pressed map[Key]bool
	quit    bool
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		held:    make(map[Key]bool),
		pressed: make(map[Key]bool),
	}
}

// Update polls SDL events for this frame.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.BeginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			i.Apply(e)
		}
	}
	return i.quit
}

// BeginFrame clears per-frame state.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	clear(i.pressed)
}

// Apply records one event.
func (i *Input) Apply(e Event) {
	i.events = append(i.events, e)
	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		if !i.held[e.Key] {
			i.pressed[e.Key] = true
		}
		i.held[e.Key] = true
	case EventKeyUp:
		delete(i.held, e.Key)
	}
}

// Events returns the events of the current frame.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether k is down.
func (i *Input) Held(k Key) bool {
	return i.held[k]
}

// Pressed reports whether k went down this frame. Key repeat does not count.
func (i *Input) Pressed(k Key) bool {
	return i.pressed[k]
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		k := FromScancode(e.Keysym.Scancode)
		if k == KeyUnknown {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: k}, true
		}
		if e.Type == sdl.KEYUP {
			return Event{Type: EventKeyUp, Key: k}, true
		}

	case *sdl.MouseMotionEvent:
		if e.State&sdl.ButtonRMask() != 0 {
			return Event{Type: EventMouseDrag, DX: int(e.XRel), DY: int(e.YRel)}, true
		}
	}
	return Event{}, false
}
