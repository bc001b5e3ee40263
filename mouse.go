package canvas

// MouseEventType identifies the kind of pointer event.
type MouseEventType uint8

const (
	EventUnknown    MouseEventType = iota
	EventMouseDown                 // a button was pressed
	EventMouseUp                   // a button was released
	EventClick                     // press and release without dragging
	EventDblClick                  // second click within the double-click interval
	EventDrag                      // movement with a button held
	EventWheel                     // scroll wheel movement
	EventMouseMove                 // movement without buttons
	EventMouseEnter                // pointer entered the canvas
	EventMouseLeave                // pointer left the canvas
)

var mouseEventNames = [...]string{
	EventUnknown:    "unknown",
	EventMouseDown:  "mousedown",
	EventMouseUp:    "mouseup",
	EventClick:      "click",
	EventDblClick:   "dblclick",
	EventDrag:       "drag",
	EventWheel:      "wheel",
	EventMouseMove:  "mousemove",
	EventMouseEnter: "mouseenter",
	EventMouseLeave: "mouseleave",
}

func (t MouseEventType) String() string {
	if int(t) < len(mouseEventNames) {
		return mouseEventNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// MouseEvent is a pointer event in canvas coordinates.
type MouseEvent struct {
	Type   MouseEventType
	X, Y   float64
	DX, DY float64
	Button MouseButton
	// State is the bitmask of buttons held after the event (bit n = button n).
	State  int
	Mod    KeyModifiers
	Scroll float64
}

// EntityStore is the interface for optional ECS integration.
// When set, every pointer event dispatched to a canvas is forwarded.
type EntityStore interface {
	EmitEvent(event PointerEvent)
}

// PointerEvent carries a dispatched mouse event for the ECS bridge.
type PointerEvent struct {
	// Canvas is the property path of the receiving canvas.
	Canvas  string
	Event   MouseEvent
	Handled bool
}

// HandleMouseEvent mirrors ev into the "mouse" subtree of the canvas node
// and forwards it to the drawing group. The event type is written last so
// listeners on "mouse/event" observe a complete record. Reports whether the
// group handled the event; false when there is no group.
func (c *Canvas) HandleMouseEvent(ev *MouseEvent) bool {
	if c.destroyed {
		return false
	}
	m := c.node.GetChild("mouse", 0, true)
	m.SetValueAt("x", ev.X)
	m.SetValueAt("y", ev.Y)
	m.SetValueAt("dx", ev.DX)
	m.SetValueAt("dy", ev.DY)
	m.SetValueAt("button", int(ev.Button))
	m.SetValueAt("state", ev.State)
	m.SetValueAt("mod", int(ev.Mod))
	m.SetValueAt("scroll", ev.Scroll)
	m.SetValueAt("event", int(ev.Type))

	handled := false
	if c.group != nil {
		handled = c.group.HandleMouseEvent(ev)
	}
	if c.store != nil {
		c.store.EmitEvent(PointerEvent{Canvas: c.node.Path(), Event: *ev, Handled: handled})
	}
	return handled
}

// SetEntityStore sets the optional ECS bridge.
func (c *Canvas) SetEntityStore(store EntityStore) {
	c.store = store
}
