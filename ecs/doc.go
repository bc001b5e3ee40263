// Package ecs provides ECS adapters for canvas pointer events.
//
// The primary adapter is [NewDonburiStore], which publishes pointer events
// dispatched to canvases into a [Donburi] world as a typed event and keeps
// one [CanvasPointer] entity per canvas with its latest pointer state.
// Subscribe to [PointerEventType] in your ECS systems to receive the events,
// or query [CanvasPointerComponent] for the state.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world, ecs.ForCanvases("/texture[0]"))
//	mgr.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
