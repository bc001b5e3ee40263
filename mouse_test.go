package canvas

import (
	"testing"

	"github.com/phanxgames/canvas/props"
)

// mouseRecorder snapshots the mouse subtree whenever "mouse/event" changes.
type mouseRecorder struct {
	names    []string
	snapshot map[string]float64
}

func (r *mouseRecorder) ValueChanged(n *props.Node) {
	r.names = append(r.names, n.Name())
	if n.Name() != "event" {
		return
	}
	m := n.Parent()
	r.snapshot = map[string]float64{}
	for _, c := range m.Children() {
		r.snapshot[c.Name()] = c.FloatValue()
	}
}

func (r *mouseRecorder) ChildAdded(_, _ *props.Node)   {}
func (r *mouseRecorder) ChildRemoved(_, _ *props.Node) {}

type storeRecorder struct {
	events []PointerEvent
}

func (s *storeRecorder) EmitEvent(ev PointerEvent) { s.events = append(s.events, ev) }

// --- Mirroring ---

func TestHandleMouseEventMirrorsFields(t *testing.T) {
	f := newFixture(t)
	rec := &mouseRecorder{}
	f.node.AddListener(rec)

	ev := &MouseEvent{
		Type:   EventDrag,
		X:      10,
		Y:      20,
		DX:     1.5,
		DY:     -2,
		Button: MouseButtonRight,
		State:  2,
		Mod:    ModShift | ModCtrl,
		Scroll: 0.5,
	}
	f.canvas.HandleMouseEvent(ev)

	if len(rec.names) == 0 || rec.names[len(rec.names)-1] != "event" {
		t.Fatalf("event not written last: %v", rec.names)
	}
	want := map[string]float64{
		"x":      10,
		"y":      20,
		"dx":     1.5,
		"dy":     -2,
		"button": float64(MouseButtonRight),
		"state":  2,
		"mod":    float64(ModShift | ModCtrl),
		"scroll": 0.5,
		"event":  float64(EventDrag),
	}
	for name, v := range want {
		if got, ok := rec.snapshot[name]; !ok || got != v {
			t.Errorf("mouse/%s at event time = %v (present %v), want %v", name, got, ok, v)
		}
	}
	if got := f.node.GetInt("mouse/event", -1); got != int(EventDrag) {
		t.Errorf("mouse/event = %d", got)
	}
}

func TestHandleMouseEventForwardsToGroup(t *testing.T) {
	f := newFixture(t)
	if f.canvas.HandleMouseEvent(&MouseEvent{Type: EventClick}) {
		t.Error("unhandled event reported handled")
	}
	f.group.handled = true
	if !f.canvas.HandleMouseEvent(&MouseEvent{Type: EventMouseDown}) {
		t.Error("handled event reported unhandled")
	}
	if len(f.group.mouse) != 2 || f.group.mouse[1] != EventMouseDown {
		t.Errorf("group saw %v", f.group.mouse)
	}
}

func TestHandleMouseEventWithoutGroup(t *testing.T) {
	f := newFixture(t)
	f.canvas.Destroy()
	if f.canvas.HandleMouseEvent(&MouseEvent{Type: EventClick}) {
		t.Error("destroyed canvas handled event")
	}
}

func TestHandleMouseEventEmitsToStore(t *testing.T) {
	f := newFixture(t)
	store := &storeRecorder{}
	f.canvas.SetEntityStore(store)
	f.group.handled = true

	f.canvas.HandleMouseEvent(&MouseEvent{Type: EventWheel, X: 3, Y: 4, Scroll: -1})

	if len(store.events) != 1 {
		t.Fatalf("store got %d events, want 1", len(store.events))
	}
	got := store.events[0]
	if got.Canvas != "/texture" || got.Event.Type != EventWheel || !got.Handled || got.Event.Scroll != -1 {
		t.Errorf("PointerEvent = %+v", got)
	}
}

func TestMouseEventTypeString(t *testing.T) {
	tests := []struct {
		typ  MouseEventType
		want string
	}{
		{EventMouseDown, "mousedown"},
		{EventClick, "click"},
		{EventMouseLeave, "mouseleave"},
		{MouseEventType(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
