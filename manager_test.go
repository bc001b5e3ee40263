package canvas

import (
	"testing"

	"github.com/phanxgames/canvas/props"
)

func newTestManager(t *testing.T, root *props.Node) (*Manager, *[]*fakeTarget) {
	t.Helper()
	var targets []*fakeTarget
	m := NewManager(root, Config{NewTarget: func() RenderTarget {
		tg := &fakeTarget{}
		targets = append(targets, tg)
		return tg
	}})
	t.Cleanup(m.Destroy)
	return m, &targets
}

// --- Lifecycle ---

func TestManagerAdoptsExistingTextures(t *testing.T) {
	root := props.NewRoot()
	tex := root.AddChild("texture")
	tex.SetValueAt("size[0]", 64)
	tex.SetValueAt("size[1]", 32)
	tex.SetValueAt("view[0]", 320)
	root.AddChild("other")

	m, _ := newTestManager(t, root)
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	c := m.Canvas(0)
	if c == nil || c.Node() != tex {
		t.Fatal("canvas for texture[0] missing")
	}
	if c.SizeX() != 64 || c.SizeY() != 32 || c.ViewWidth() != 320 {
		t.Errorf("existing values not applied: size=(%d,%d) view=%d", c.SizeX(), c.SizeY(), c.ViewWidth())
	}
}

func TestManagerCreateAndRemove(t *testing.T) {
	root := props.NewRoot()
	m, targets := newTestManager(t, root)

	a := m.CreateCanvas()
	b := m.CreateCanvas()
	if a == nil || b == nil || a == b {
		t.Fatal("CreateCanvas failed")
	}
	if a.Node().Index() != 0 || b.Node().Index() != 1 {
		t.Errorf("indices = %d, %d", a.Node().Index(), b.Node().Index())
	}
	if len(*targets) != 2 {
		t.Errorf("targets = %d, want 2", len(*targets))
	}

	root.RemoveChild("texture", 0)
	if !a.IsDestroyed() {
		t.Error("removed canvas not destroyed")
	}
	if m.Canvas(0) != nil || m.Len() != 1 {
		t.Errorf("Canvas(0) = %v Len = %d", m.Canvas(0), m.Len())
	}
	if !(*targets)[0].disposed {
		t.Error("target not disposed")
	}

	// Nested texture nodes are not canvases of this manager.
	b.Node().AddChild("texture")
	if m.Len() != 1 {
		t.Errorf("nested texture adopted, Len = %d", m.Len())
	}
}

func TestManagerUpdateOrder(t *testing.T) {
	root := props.NewRoot()
	m, _ := newTestManager(t, root)

	for _, idx := range []int{2, 0, 1} {
		tex := root.GetChild("texture", idx, true)
		tex.SetValueAt("size[0]", 8)
		tex.SetValueAt("size[1]", 8)
	}

	var order []int
	for _, c := range m.Canvases() {
		order = append(order, c.Node().Index())
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("Canvases order = %v, want [0 1 2]", order)
	}

	m.Update(0.016)
	for _, c := range m.Canvases() {
		if c.StatusMessage() != MsgOK {
			t.Errorf("%s: %q", c.Node().Path(), c.StatusMessage())
		}
	}
	if got := m.Draw(); got != 0 {
		t.Errorf("Draw with non-Ebitengine targets = %d, want 0", got)
	}
}

func TestManagerSharedRegistry(t *testing.T) {
	root := props.NewRoot()
	m, _ := newTestManager(t, root)
	cf := &countingFactory{n: 1}
	m.Registry().Register("screen", cf.create)

	c := m.CreateCanvas()
	if c.Registry() != m.Registry() {
		t.Fatal("canvas does not share the manager registry")
	}
	c.Node().SetValueAt("size[0]", 8)
	c.Node().SetValueAt("size[1]", 8)
	c.Node().SetValueAt("placement/type", "screen")
	m.Update(0)
	if cf.calls != 1 {
		t.Errorf("factory calls = %d, want 1", cf.calls)
	}
}

func TestManagerMerge(t *testing.T) {
	root := props.NewRoot()
	m, _ := newTestManager(t, root)

	props.Merge(root, map[string]any{
		"texture": map[string]any{
			"size":          []any{128, 64},
			"render-always": true,
			"placement":     map[string]any{"type": "screen"},
		},
	})

	c := m.Canvas(0)
	if c == nil {
		t.Fatal("merge did not create a canvas")
	}
	if c.SizeX() != 128 || c.SizeY() != 64 || !c.RenderAlways() {
		t.Errorf("size=(%d,%d) always=%v", c.SizeX(), c.SizeY(), c.RenderAlways())
	}
	if c.PendingPlacements() != 1 {
		t.Errorf("PendingPlacements = %d, want 1", c.PendingPlacements())
	}
}

func TestManagerEntityStore(t *testing.T) {
	root := props.NewRoot()
	m, _ := newTestManager(t, root)
	a := m.CreateCanvas()
	store := &storeRecorder{}
	m.SetEntityStore(store)
	b := m.CreateCanvas()

	a.HandleMouseEvent(&MouseEvent{Type: EventClick})
	b.HandleMouseEvent(&MouseEvent{Type: EventClick})
	if len(store.events) != 2 {
		t.Errorf("store events = %d, want 2", len(store.events))
	}
}

func TestManagerDestroy(t *testing.T) {
	root := props.NewRoot()
	m, _ := newTestManager(t, root)
	c := m.CreateCanvas()
	m.Destroy()

	if !c.IsDestroyed() || m.Len() != 0 {
		t.Error("Destroy left canvases alive")
	}
	root.AddChild("texture")
	if m.Len() != 0 {
		t.Error("destroyed manager still listening")
	}
}
