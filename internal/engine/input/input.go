// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lathe/internal/engine/camera"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	WheelY float32
	Button uint8
}

// KeyTurnRate is how fast Q/E turn the camera, in mouse pixels per second.
const KeyTurnRate = 600

// ClickSlop is how far, in pixels, the mouse may move between press and
// release of the left button for the release to still count as a click.
const ClickSlop = 4

// Input turns SDL events into per-frame events and held state.
type Input struct {
	events   []Event
	held     map[sdl.Scancode]bool
	buttons  map[uint8]bool
	dragX    float32
	dragY    float32
	wheel    float32
	quitSeen bool

	// left button travel since press, and this frame's click
	pressTravel int
	click       *Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		held:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.BeginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := translate(event); ok {
			i.Handle(ev)
		}
	}
	return i.quitSeen
}

// BeginFrame clears the previous frame's events and deltas. Held keys and
// buttons persist.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	i.dragX, i.dragY, i.wheel = 0, 0, 0
	i.click = nil
}

// Handle folds one event into the frame state.
func (i *Input) Handle(ev Event) {
	switch ev.Type {
	case EventQuit:
		i.quitSeen = true
	case EventKeyDown:
		i.held[ev.Key] = true
	case EventKeyUp:
		delete(i.held, ev.Key)
	case EventMouseDown:
		i.buttons[ev.Button] = true
		if ev.Button == sdl.BUTTON_LEFT {
			i.pressTravel = 0
		}
	case EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT && i.buttons[ev.Button] && i.pressTravel <= ClickSlop {
			click := ev
			i.click = &click
		}
		delete(i.buttons, ev.Button)
	case EventMouseMove:
		if i.Dragging() {
			i.dragX += float32(ev.RelX)
			i.dragY += float32(ev.RelY)
		}
		if i.buttons[sdl.BUTTON_LEFT] {
			i.pressTravel += abs(ev.RelX) + abs(ev.RelY)
		}
	case EventMouseWheel:
		i.wheel += ev.WheelY
	}
	i.events = append(i.events, ev)
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{
			Key:    e.Keysym.Scancode,
			Repeat: e.Repeat != 0,
		}
		if e.Type == sdl.KEYDOWN {
			ev.Type = EventKeyDown
		} else {
			ev.Type = EventKeyUp
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			RelX:   int(e.XRel),
			RelY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = EventMouseDown
		} else {
			ev.Type = EventMouseUp
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventMouseWheel, WheelY: y}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame. Auto-repeat
// does not count.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Dragging reports whether the left or right mouse button is down.
func (i *Input) Dragging() bool {
	return i.buttons[sdl.BUTTON_LEFT] || i.buttons[sdl.BUTTON_RIGHT]
}

// DragDelta returns the mouse motion accumulated this frame while dragging.
func (i *Input) DragDelta() (float32, float32) {
	return i.dragX, i.dragY
}

// Clicked returns the position of a left click released this frame.
func (i *Input) Clicked() (x, y int, ok bool) {
	if i.click == nil {
		return 0, 0, false
	}
	return i.click.MouseX, i.click.MouseY, true
}

// Wheel returns the wheel clicks accumulated this frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}

// Controls maps the held keys, drag and wheel of this frame to camera input.
// W/S move forward and back, A/D strafe, Space/LShift rise and sink, Q/E turn.
func (i *Input) Controls(dt float32) camera.Controls {
	return camera.Controls{
		Forward: i.axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		Right:   i.axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		Up:      i.axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LSHIFT),
		LookX:   i.dragX + i.axis(sdl.SCANCODE_E, sdl.SCANCODE_Q)*KeyTurnRate*dt,
		LookY:   i.dragY,
		Zoom:    i.wheel,
	}
}

func (i *Input) axis(pos, neg sdl.Scancode) float32 {
	var v float32
	if i.held[pos] {
		v++
	}
	if i.held[neg] {
		v--
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
