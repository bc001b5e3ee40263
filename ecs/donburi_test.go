package ecs

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/canvas"
	"github.com/phanxgames/canvas/props"
)

// nopGroup keeps these tests independent of Ebitengine images.
type nopGroup struct{ handled bool }

func (g *nopGroup) Update(float64)                           {}
func (g *nopGroup) HandleMouseEvent(*canvas.MouseEvent) bool { return g.handled }
func (g *nopGroup) ValueChanged(*props.Node)                 {}
func (g *nopGroup) ChildAdded(_, _ *props.Node)              {}
func (g *nopGroup) ChildRemoved(_, _ *props.Node)            {}
func (g *nopGroup) CreateChild(string, string) *props.Node   { return nil }
func (g *nopGroup) Draw(*ebiten.Image, ebiten.GeoM)          {}
func (g *nopGroup) Dispose()                                 {}

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []canvas.PointerEvent
	PointerEventType.Subscribe(world, func(w donburi.World, e canvas.PointerEvent) {
		received = append(received, e)
	})

	store.EmitEvent(canvas.PointerEvent{
		Canvas: "/texture",
		Event: canvas.MouseEvent{
			Type:   canvas.EventMouseDown,
			X:      100,
			Y:      200,
			Button: canvas.MouseButtonLeft,
		},
		Handled: true,
	})
	store.EmitEvent(canvas.PointerEvent{
		Canvas: "/texture[1]",
		Event:  canvas.MouseEvent{Type: canvas.EventWheel, Scroll: -1},
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	PointerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Event.Type != canvas.EventMouseDown || !e0.Handled || e0.Canvas != "/texture" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Event.X != 100 || e0.Event.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.Event.X, e0.Event.Y)
	}
	e1 := received[1]
	if e1.Event.Type != canvas.EventWheel || e1.Event.Scroll != -1 || e1.Handled {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ReceivesCanvasEvents(t *testing.T) {
	world := donburi.NewWorld()
	root := props.NewRoot()
	g := &nopGroup{handled: true}
	c := canvas.New(root.AddChild("texture"), canvas.Config{
		NewGroup: func(*canvas.Canvas, *props.Node) canvas.Group { return g },
		Store:    NewDonburiStore(world),
	})
	defer c.Destroy()

	var got []canvas.PointerEvent
	PointerEventType.Subscribe(world, func(w donburi.World, e canvas.PointerEvent) {
		got = append(got, e)
	})

	c.HandleMouseEvent(&canvas.MouseEvent{Type: canvas.EventClick, X: 3, Y: 4})
	events.ProcessAllEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Canvas != "/texture" || got[0].Event.Type != canvas.EventClick || !got[0].Handled {
		t.Errorf("event: %+v", got[0])
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	PointerEventType.Subscribe(world, func(w donburi.World, e canvas.PointerEvent) {
		count1++
	})
	PointerEventType.Subscribe(world, func(w donburi.World, e canvas.PointerEvent) {
		count2++
	})

	store.EmitEvent(canvas.PointerEvent{Event: canvas.MouseEvent{Type: canvas.EventClick}})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_ForCanvasesFiltersByPath(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world, ForCanvases("/ui/texture[1]", "/hud/"))

	var got []string
	PointerEventType.Subscribe(world, func(w donburi.World, e canvas.PointerEvent) {
		got = append(got, e.Canvas)
	})

	for _, path := range []string{
		"/ui/texture[1]",
		"/ui/texture[10]",
		"/ui/texture",
		"/hud/texture[2]",
		"/hudx/texture",
	} {
		store.EmitEvent(canvas.PointerEvent{Canvas: path, Event: canvas.MouseEvent{Type: canvas.EventMouseMove}})
	}
	events.ProcessAllEvents(world)

	want := []string{"/ui/texture[1]", "/hud/texture[2]"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("delivered %v, want %v", got, want)
	}
	if CanvasEntity(store, "/ui/texture[10]") != nil {
		t.Error("filtered canvas got a pointer entity")
	}
}

func TestDonburiStore_UnhandledOnly(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world, UnhandledOnly())

	var count int
	PointerEventType.Subscribe(world, func(w donburi.World, e canvas.PointerEvent) {
		count++
	})
	store.EmitEvent(canvas.PointerEvent{Canvas: "/texture", Handled: true})
	store.EmitEvent(canvas.PointerEvent{Canvas: "/texture"})
	events.ProcessAllEvents(world)

	if count != 1 {
		t.Errorf("delivered %d events, want 1", count)
	}
}

func TestDonburiStore_TracksCanvasPointerState(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	store.EmitEvent(canvas.PointerEvent{
		Canvas: "/texture",
		Event:  canvas.MouseEvent{Type: canvas.EventMouseDown, X: 5, Y: 6, State: 1},
	})
	store.EmitEvent(canvas.PointerEvent{
		Canvas:  "/texture",
		Event:   canvas.MouseEvent{Type: canvas.EventMouseUp, X: 7, Y: 8},
		Handled: true,
	})
	store.EmitEvent(canvas.PointerEvent{Canvas: "/texture[1]", Event: canvas.MouseEvent{Type: canvas.EventMouseMove}})

	entry := CanvasEntity(store, "/texture")
	if entry == nil {
		t.Fatal("no pointer entity for /texture")
	}
	state := CanvasPointerComponent.Get(entry)
	if state.Events != 2 || state.Last != canvas.EventMouseUp || state.X != 7 || state.Y != 8 || state.State != 0 || !state.Handled {
		t.Errorf("state = %+v", *state)
	}
	if n := donburi.NewQuery(filter.Contains(CanvasPointerComponent)).Count(world); n != 2 {
		t.Errorf("%d pointer entities, want one per canvas", n)
	}

	// A removed entity is recreated on the next event.
	world.Remove(entry.Entity())
	store.EmitEvent(canvas.PointerEvent{Canvas: "/texture", Event: canvas.MouseEvent{Type: canvas.EventMouseMove}})
	entry = CanvasEntity(store, "/texture")
	if entry == nil || CanvasPointerComponent.Get(entry).Events != 1 {
		t.Error("pointer entity not recreated after removal")
	}

	if CanvasEntity(&otherStore{}, "/texture") != nil {
		t.Error("CanvasEntity on a foreign store should be nil")
	}
}

type otherStore struct{}

func (otherStore) EmitEvent(canvas.PointerEvent) {}
