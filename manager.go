package canvas

import (
	"github.com/phanxgames/canvas/props"
)

// Manager owns the canvases described by the "texture" children of a
// property node. Adding texture[i] creates a canvas for it and replays the
// values already present below it; removing the child destroys the canvas.
//
// Like Canvas, a Manager is not safe for concurrent use.
type Manager struct {
	node     *props.Node
	cfg      Config
	canvases map[int]*Canvas
	order    []int
}

// NewManager creates a manager listening on node. Existing texture children
// are turned into canvases immediately.
func NewManager(node *props.Node, cfg Config) *Manager {
	if node == nil {
		panic("canvas: nil property node")
	}
	m := &Manager{
		node:     node,
		cfg:      cfg.withDefaults(),
		canvases: make(map[int]*Canvas),
	}
	node.AddListener(m)
	for _, child := range node.ChildrenNamed("texture") {
		m.add(child)
	}
	return m
}

// Node returns the property node the manager listens on.
func (m *Manager) Node() *props.Node { return m.node }

// Registry returns the placement registry shared by all canvases.
func (m *Manager) Registry() *PlacementRegistry { return m.cfg.Registry }

// CreateCanvas adds a new texture child and returns its canvas.
func (m *Manager) CreateCanvas() *Canvas {
	child := m.node.AddChild("texture")
	return m.canvases[child.Index()]
}

// Canvas returns the canvas for texture[index], or nil.
func (m *Manager) Canvas(index int) *Canvas {
	return m.canvases[index]
}

// Canvases returns the live canvases ordered by texture index.
func (m *Manager) Canvases() []*Canvas {
	out := make([]*Canvas, 0, len(m.order))
	for _, idx := range m.order {
		out = append(out, m.canvases[idx])
	}
	return out
}

// Len returns the number of live canvases.
func (m *Manager) Len() int { return len(m.order) }

// Update advances every canvas by one frame in texture index order.
func (m *Manager) Update(dt float64) {
	for _, idx := range m.order {
		if c := m.canvases[idx]; c != nil {
			c.Update(dt)
		}
	}
}

// Draw repaints every EbitenTarget whose canvas decided to render this frame.
// Returns the number of targets drawn.
func (m *Manager) Draw() int {
	drawn := 0
	for _, idx := range m.order {
		c := m.canvases[idx]
		if c == nil {
			continue
		}
		if t, ok := c.Target().(*EbitenTarget); ok && t.Draw() {
			drawn++
		}
	}
	return drawn
}

// SetEntityStore sets the ECS bridge on the manager and every canvas.
func (m *Manager) SetEntityStore(store EntityStore) {
	m.cfg.Store = store
	for _, c := range m.canvases {
		c.SetEntityStore(store)
	}
}

// Destroy destroys every canvas and stops listening on the node.
func (m *Manager) Destroy() {
	m.node.RemoveListener(m)
	for _, idx := range m.order {
		m.canvases[idx].Destroy()
	}
	clear(m.canvases)
	m.order = nil
}

// --- props.Listener ---

// ChildAdded implements props.Listener.
func (m *Manager) ChildAdded(parent, child *props.Node) {
	if parent == m.node && child.Name() == "texture" {
		m.add(child)
	}
}

// ChildRemoved implements props.Listener.
func (m *Manager) ChildRemoved(parent, child *props.Node) {
	if parent != m.node || child.Name() != "texture" {
		return
	}
	c := m.canvases[child.Index()]
	if c == nil || c.Node() != child {
		return
	}
	c.Destroy()
	m.remove(child.Index())
}

// ValueChanged implements props.Listener. Values are handled by the canvases.
func (m *Manager) ValueChanged(*props.Node) {}

func (m *Manager) add(child *props.Node) {
	idx := child.Index()
	if old := m.canvases[idx]; old != nil {
		if old.Node() == child {
			return
		}
		old.Destroy()
		m.remove(idx)
	}
	c := New(child, m.cfg)
	m.canvases[idx] = c
	m.insert(idx)
	child.FireCreatedRecursive()
	Logger().Debug("canvas: created", "path", child.Path())
}

// insert keeps order sorted by texture index.
func (m *Manager) insert(idx int) {
	pos := len(m.order)
	for i, cur := range m.order {
		if cur > idx {
			pos = i
			break
		}
	}
	m.order = append(m.order, 0)
	copy(m.order[pos+1:], m.order[pos:])
	m.order[pos] = idx
}

func (m *Manager) remove(idx int) {
	delete(m.canvases, idx)
	for i, cur := range m.order {
		if cur == idx {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
