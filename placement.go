package canvas

import (
	"slices"
	"sync"

	"github.com/phanxgames/canvas/props"
)

// DefaultPlacementType is used for placement nodes without a "type" child.
const DefaultPlacementType = "object"

// Placement status messages written to "placement[i]/status-msg".
const (
	MsgPlacementOK      = "Ok"
	MsgPlacementNoMatch = "No match"
	MsgPlacementUnknown = "Unknown placement type"
)

// Placement binds a canvas texture into the wider scene. Dispose detaches it;
// it is called when its slot is re-synchronized, removed, or the canvas is destroyed.
type Placement interface {
	Dispose()
}

// PlacementFunc adapts a plain function to the Placement interface. The
// function is called on Dispose.
type PlacementFunc func()

// Dispose calls f.
func (f PlacementFunc) Dispose() { f() }

// PlacementFactory creates the placements described by node for canvas c.
// Returning no placements is valid and reported as "No match".
type PlacementFactory func(node *props.Node, c *Canvas) []Placement

// PlacementRegistry maps placement type names to factories. Registration is
// expected to happen during startup; lookups happen every time a placement
// is synchronized.
type PlacementRegistry struct {
	mu        sync.RWMutex
	factories map[string]PlacementFactory
}

// NewPlacementRegistry creates an empty registry.
func NewPlacementRegistry() *PlacementRegistry {
	return &PlacementRegistry{factories: make(map[string]PlacementFactory)}
}

// Register links a type name to a factory. Registering a type again replaces
// the previous factory and logs a warning.
func (r *PlacementRegistry) Register(typeName string, factory PlacementFactory) {
	if typeName == "" || factory == nil {
		Logger().Warn("canvas: ignoring invalid placement factory registration", "type", typeName)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[typeName]; exists {
		Logger().Warn("canvas: replacing existing placement factory", "type", typeName)
	}
	r.factories[typeName] = factory
}

// Lookup returns the factory for typeName.
func (r *PlacementRegistry) Lookup(typeName string) (PlacementFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typeName]
	return f, ok
}

// Types returns the registered type names in sorted order.
func (r *PlacementRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// --- Canvas placement slots ---

// Placements returns the live placements created for placement[index].
// The returned slice MUST NOT be mutated.
func (c *Canvas) Placements(index int) []Placement {
	return c.placements[index]
}

// NumPlacementSlots returns one past the highest placement index seen.
// Slots are addressed by index and never compacted.
func (c *Canvas) NumPlacementSlots() int {
	return c.numSlots
}

// PendingPlacements returns the number of placement nodes waiting for
// synchronization on the next Update.
func (c *Canvas) PendingPlacements() int {
	return len(c.dirtyPlacements)
}

// queuePlacement adds n to the worklist unless it is already queued.
func (c *Canvas) queuePlacement(n *props.Node) {
	for _, queued := range c.dirtyPlacements {
		if queued == n {
			return
		}
	}
	c.dirtyPlacements = append(c.dirtyPlacements, n)
}

// unqueuePlacement drops n from the worklist.
func (c *Canvas) unqueuePlacement(n *props.Node) {
	for i, queued := range c.dirtyPlacements {
		if queued == n {
			copy(c.dirtyPlacements[i:], c.dirtyPlacements[i+1:])
			c.dirtyPlacements[len(c.dirtyPlacements)-1] = nil
			c.dirtyPlacements = c.dirtyPlacements[:len(c.dirtyPlacements)-1]
			return
		}
	}
}

// clearPlacements disposes the placements of a slot. The slot itself stays addressable.
func (c *Canvas) clearPlacements(index int) {
	for _, p := range c.placements[index] {
		p.Dispose()
	}
	delete(c.placements, index)
}

// syncPlacements drains the worklist in arrival order. Failures are reported
// through each placement's "status-msg" and never stop the drain. Nodes
// queued by the factories themselves are left for the next frame.
func (c *Canvas) syncPlacements() {
	if len(c.dirtyPlacements) == 0 {
		return
	}
	pending := c.dirtyPlacements
	c.dirtyPlacements = nil
	for _, n := range pending {
		if c.destroyed {
			return
		}
		idx := n.Index()
		if idx >= c.numSlots {
			c.numSlots = idx + 1
		} else {
			c.clearPlacements(idx)
		}

		typeName := n.GetString("type", DefaultPlacementType)
		factory, ok := c.registry.Lookup(typeName)
		if !ok {
			Logger().Debug("canvas: unknown placement type", "path", n.Path(), "type", typeName)
			n.SetValueAt("status-msg", MsgPlacementUnknown)
			continue
		}

		placements := factory(n, c)
		if c.destroyed {
			// The factory destroyed its own canvas.
			for _, p := range placements {
				p.Dispose()
			}
			return
		}
		if len(placements) == 0 {
			n.SetValueAt("status-msg", MsgPlacementNoMatch)
			continue
		}
		c.placements[idx] = placements
		Logger().Debug("canvas: placement synchronized", "path", n.Path(), "type", typeName, "count", len(placements))
		n.SetValueAt("status-msg", MsgPlacementOK)
	}
}
