package canvas

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDragDeadZone     = 4.0 // pixels
	defaultDoubleClickPolls = 18  // 0.3s at 60 TPS
)

// InputSampler turns Ebitengine mouse state into canvas MouseEvents. The
// screen rectangle Bounds is mapped onto a canvas view of ViewWidth x
// ViewHeight units; zero view dimensions map 1:1.
type InputSampler struct {
	Bounds                Rect
	ViewWidth, ViewHeight float64

	// DragDeadZone is the distance in canvas units a pressed pointer must
	// travel before movement is reported as EventDrag and the release no
	// longer produces EventClick. Zero uses 4.
	DragDeadZone float64

	// DoubleClickPolls is the maximum number of Poll calls between two
	// clicks of the same button reported as EventDblClick. Zero uses 18.
	DoubleClickPolls int

	initialized    bool
	inside         bool
	down           bool
	dragging       bool
	button         MouseButton
	startX, startY float64
	lastX, lastY   float64
	polls          int
	lastClick      int
	lastClickBtn   MouseButton
	events         []MouseEvent
	injectQueue    []syntheticPointer
}

// Poll reads the current Ebitengine input state and returns the resulting
// events. Queued synthetic input (see InjectPress) takes precedence over the
// real mouse. The returned slice is reused by the next call.
func (s *InputSampler) Poll() []MouseEvent {
	mods := readModifiers()
	if evs, ok := s.pollInjected(mods); ok {
		return evs
	}
	mx, my := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	_, wheel := ebiten.Wheel()
	return s.sample(float64(mx), float64(my), [3]bool{left, right, middle}, wheel, mods)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// toCanvas maps screen coordinates into canvas view coordinates.
func (s *InputSampler) toCanvas(sx, sy float64) (float64, float64) {
	x, y := sx-s.Bounds.X, sy-s.Bounds.Y
	if s.ViewWidth > 0 && s.Bounds.Width > 0 {
		x *= s.ViewWidth / s.Bounds.Width
	}
	if s.ViewHeight > 0 && s.Bounds.Height > 0 {
		y *= s.ViewHeight / s.Bounds.Height
	}
	return x, y
}

// sample runs the pointer state machine for one frame of input.
func (s *InputSampler) sample(sx, sy float64, pressed [3]bool, wheel float64, mods KeyModifiers) []MouseEvent {
	s.events = s.events[:0]
	s.polls++
	x, y := s.toCanvas(sx, sy)
	if !s.initialized {
		s.initialized = true
		s.lastX, s.lastY = x, y
		s.lastClick = -1
	}
	dx, dy := x-s.lastX, y-s.lastY

	state := 0
	anyPressed := false
	for i, p := range pressed {
		if p {
			state |= 1 << i
			anyPressed = true
		}
	}

	inside := s.Bounds.Contains(sx, sy)
	if inside != s.inside {
		typ := EventMouseLeave
		if inside {
			typ = EventMouseEnter
		}
		s.emit(typ, x, y, dx, dy, s.button, state, mods, 0)
		s.inside = inside
	}

	deadZone := s.DragDeadZone
	if deadZone == 0 {
		deadZone = defaultDragDeadZone
	}

	switch {
	case anyPressed && !s.down:
		if !inside {
			break
		}
		s.down = true
		s.dragging = false
		s.button = firstPressed(pressed)
		s.startX, s.startY = x, y
		s.emit(EventMouseDown, x, y, dx, dy, s.button, state, mods, 0)
	case !anyPressed && s.down:
		s.down = false
		s.emit(EventMouseUp, x, y, dx, dy, s.button, state, mods, 0)
		if !s.dragging && inside {
			s.emit(EventClick, x, y, dx, dy, s.button, state, mods, 0)
			s.detectDoubleClick(x, y, dx, dy, state, mods)
		}
		s.dragging = false
	case anyPressed && s.down:
		if !s.dragging && math.Hypot(x-s.startX, y-s.startY) > deadZone {
			s.dragging = true
		}
		if s.dragging && (dx != 0 || dy != 0) {
			s.emit(EventDrag, x, y, dx, dy, s.button, state, mods, 0)
		}
	default:
		if inside && (dx != 0 || dy != 0) {
			s.emit(EventMouseMove, x, y, dx, dy, s.button, state, mods, 0)
		}
	}

	if wheel != 0 && inside {
		s.emit(EventWheel, x, y, dx, dy, s.button, state, mods, wheel)
	}

	s.lastX, s.lastY = x, y
	return s.events
}

// detectDoubleClick emits EventDblClick when the click just emitted follows
// a previous one of the same button closely enough. A third click starts a
// new pair.
func (s *InputSampler) detectDoubleClick(x, y, dx, dy float64, state int, mods KeyModifiers) {
	window := s.DoubleClickPolls
	if window == 0 {
		window = defaultDoubleClickPolls
	}
	if s.lastClick >= 0 && s.lastClickBtn == s.button && s.polls-s.lastClick <= window {
		s.emit(EventDblClick, x, y, dx, dy, s.button, state, mods, 0)
		s.lastClick = -1
		return
	}
	s.lastClick = s.polls
	s.lastClickBtn = s.button
}

func (s *InputSampler) emit(typ MouseEventType, x, y, dx, dy float64, button MouseButton, state int, mods KeyModifiers, scroll float64) {
	s.events = append(s.events, MouseEvent{
		Type:   typ,
		X:      x,
		Y:      y,
		DX:     dx,
		DY:     dy,
		Button: button,
		State:  state,
		Mod:    mods,
		Scroll: scroll,
	})
}

// firstPressed returns the lowest pressed button.
func firstPressed(pressed [3]bool) MouseButton {
	for i, p := range pressed {
		if p {
			return MouseButton(i)
		}
	}
	return MouseButtonLeft
}
