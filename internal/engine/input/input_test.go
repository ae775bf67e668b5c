package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lathe/internal/engine/camera"
)

func keyDown(k sdl.Scancode) Event { return Event{Type: EventKeyDown, Key: k} }
func keyUp(k sdl.Scancode) Event   { return Event{Type: EventKeyUp, Key: k} }

func TestHeldKeysToControls(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   camera.Controls
	}{
		{"none", nil, camera.Controls{}},
		{"forward", []Event{keyDown(sdl.SCANCODE_W)}, camera.Controls{Forward: 1}},
		{"back", []Event{keyDown(sdl.SCANCODE_S)}, camera.Controls{Forward: -1}},
		{"opposing keys cancel", []Event{keyDown(sdl.SCANCODE_W), keyDown(sdl.SCANCODE_S)}, camera.Controls{}},
		{"strafe left", []Event{keyDown(sdl.SCANCODE_A)}, camera.Controls{Right: -1}},
		{"rise", []Event{keyDown(sdl.SCANCODE_SPACE)}, camera.Controls{Up: 1}},
		{"sink", []Event{keyDown(sdl.SCANCODE_LSHIFT)}, camera.Controls{Up: -1}},
		{"released", []Event{keyDown(sdl.SCANCODE_D), keyUp(sdl.SCANCODE_D)}, camera.Controls{}},
		{"turn right", []Event{keyDown(sdl.SCANCODE_E)}, camera.Controls{LookX: KeyTurnRate * 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			for _, ev := range tt.events {
				in.Handle(ev)
			}
			if got := in.Controls(0.5); got != tt.want {
				t.Errorf("Controls = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHeldKeysSurviveFrames(t *testing.T) {
	in := New()
	in.Handle(keyDown(sdl.SCANCODE_W))
	in.BeginFrame()

	if !in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("W should still be held")
	}
	if in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("W press belongs to the previous frame")
	}
}

func TestIsKeyPressedIgnoresRepeat(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F, Repeat: true})
	if in.IsKeyPressed(sdl.SCANCODE_F) {
		t.Error("auto-repeat should not count as a press")
	}
	in.Handle(keyDown(sdl.SCANCODE_F))
	if !in.IsKeyPressed(sdl.SCANCODE_F) {
		t.Error("F should be pressed")
	}
}

func TestDragOnlyWhileButtonHeld(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventMouseMove, RelX: 5, RelY: 5})
	if x, y := in.DragDelta(); x != 0 || y != 0 {
		t.Errorf("drag without button = (%v, %v), want 0", x, y)
	}

	in.Handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT})
	in.Handle(Event{Type: EventMouseMove, RelX: 3, RelY: -2})
	in.Handle(Event{Type: EventMouseMove, RelX: 4, RelY: 1})
	if x, y := in.DragDelta(); x != 7 || y != -1 {
		t.Errorf("drag = (%v, %v), want (7, -1)", x, y)
	}

	c := in.Controls(0)
	if c.LookX != 7 || c.LookY != -1 {
		t.Errorf("look = (%v, %v), want (7, -1)", c.LookX, c.LookY)
	}

	in.BeginFrame()
	if x, y := in.DragDelta(); x != 0 || y != 0 {
		t.Errorf("drag after new frame = (%v, %v), want 0", x, y)
	}
	if !in.Dragging() {
		t.Error("button should still be held")
	}
	in.Handle(Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT})
	if in.Dragging() {
		t.Error("button released")
	}
}

func TestWheelAccumulates(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventMouseWheel, WheelY: 1})
	in.Handle(Event{Type: EventMouseWheel, WheelY: 0.5})
	if got := in.Controls(0).Zoom; got != 1.5 {
		t.Errorf("zoom = %v, want 1.5", got)
	}
	in.BeginFrame()
	if got := in.Wheel(); got != 0 {
		t.Errorf("wheel after new frame = %v, want 0", got)
	}
}

func TestClick(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   bool
	}{
		{
			name: "press and release",
			events: []Event{
				{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 10, MouseY: 20},
				{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 10, MouseY: 20},
			},
			want: true,
		},
		{
			name: "small jitter",
			events: []Event{
				{Type: EventMouseDown, Button: sdl.BUTTON_LEFT},
				{Type: EventMouseMove, RelX: 1, RelY: -2},
				{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 10, MouseY: 20},
			},
			want: true,
		},
		{
			name: "drag",
			events: []Event{
				{Type: EventMouseDown, Button: sdl.BUTTON_LEFT},
				{Type: EventMouseMove, RelX: 30},
				{Type: EventMouseUp, Button: sdl.BUTTON_LEFT},
			},
			want: false,
		},
		{
			name: "right button",
			events: []Event{
				{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT},
				{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT},
			},
			want: false,
		},
		{
			name:   "release without press",
			events: []Event{{Type: EventMouseUp, Button: sdl.BUTTON_LEFT}},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			for _, ev := range tt.events {
				in.Handle(ev)
			}
			x, y, ok := in.Clicked()
			if ok != tt.want {
				t.Fatalf("Clicked ok = %v, want %v", ok, tt.want)
			}
			if ok && (x != 10 || y != 20) {
				t.Errorf("click at (%d, %d), want (10, 20)", x, y)
			}
			in.BeginFrame()
			if _, _, ok := in.Clicked(); ok {
				t.Error("click should not survive the frame")
			}
		})
	}
}
