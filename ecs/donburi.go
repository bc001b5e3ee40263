package ecs

import (
	"strings"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/canvas"
)

// PointerEventType is the Donburi event type for canvas pointer events.
var PointerEventType = events.NewEventType[canvas.PointerEvent]()

// CanvasPointer is the per-canvas pointer state kept on one entity per canvas.
type CanvasPointer struct {
	Canvas  string
	X, Y    float64
	State   int
	Last    canvas.MouseEventType
	Handled bool
	Events  int
}

// CanvasPointerComponent holds a canvas's latest pointer state.
var CanvasPointerComponent = donburi.NewComponentType[CanvasPointer]()

// Option configures a store created by NewDonburiStore.
type Option func(*donburiStore)

// ForCanvases keeps only events from the canvases at the given property
// paths or below them. "/" accepts every canvas.
func ForCanvases(paths ...string) Option {
	return func(s *donburiStore) {
		s.paths = append(s.paths, paths...)
	}
}

// UnhandledOnly drops events a drawing group already consumed.
func UnhandledOnly() Option {
	return func(s *donburiStore) { s.unhandledOnly = true }
}

type donburiStore struct {
	world         donburi.World
	paths         []string
	unhandledOnly bool
	entities      map[string]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Accepted events update the CanvasPointer entity of their canvas right
// away and are queued on PointerEventType for ProcessEvents.
func NewDonburiStore(world donburi.World, opts ...Option) canvas.EntityStore {
	s := &donburiStore{world: world, entities: make(map[string]donburi.Entity)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *donburiStore) EmitEvent(event canvas.PointerEvent) {
	if !s.accepts(event) {
		return
	}
	s.track(event)
	PointerEventType.Publish(s.world, event)
}

func (s *donburiStore) accepts(event canvas.PointerEvent) bool {
	if s.unhandledOnly && event.Handled {
		return false
	}
	if len(s.paths) == 0 {
		return true
	}
	for _, p := range s.paths {
		if underPath(event.Canvas, p) {
			return true
		}
	}
	return false
}

// track updates the canvas entity, recreating it if the world removed it.
func (s *donburiStore) track(event canvas.PointerEvent) {
	ent, ok := s.entities[event.Canvas]
	if !ok || !s.world.Valid(ent) {
		ent = s.world.Create(CanvasPointerComponent)
		s.entities[event.Canvas] = ent
	}
	state := CanvasPointerComponent.Get(s.world.Entry(ent))
	state.Canvas = event.Canvas
	state.X, state.Y = event.Event.X, event.Event.Y
	state.State = event.Event.State
	state.Last = event.Event.Type
	state.Handled = event.Handled
	state.Events++
}

// CanvasEntity returns the CanvasPointer entry for the canvas at path, or
// nil when the store has seen no event from it.
func CanvasEntity(store canvas.EntityStore, path string) *donburi.Entry {
	s, ok := store.(*donburiStore)
	if !ok {
		return nil
	}
	ent, ok := s.entities[path]
	if !ok || !s.world.Valid(ent) {
		return nil
	}
	return s.world.Entry(ent)
}

func underPath(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}
