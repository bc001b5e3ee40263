package canvas

import (
	"weak"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/canvas/props"
)

// Config controls how a canvas is assembled. The zero value is usable: a
// private placement registry, an EbitenTarget and an ElementGroup are used.
type Config struct {
	// Registry resolves placement types. Share one registry between all
	// canvases of an application; register factories before creating canvases.
	Registry *PlacementRegistry

	// NewTarget creates the render target. Defaults to NewEbitenTarget.
	NewTarget func() RenderTarget

	// NewGroup creates the root drawing group for node. Defaults to NewElementGroup.
	NewGroup func(c *Canvas, node *props.Node) Group

	// Store receives dispatched pointer events. Optional.
	Store EntityStore
}

func (cfg Config) withDefaults() Config {
	if cfg.Registry == nil {
		cfg.Registry = NewPlacementRegistry()
	}
	if cfg.NewTarget == nil {
		cfg.NewTarget = func() RenderTarget { return NewEbitenTarget() }
	}
	if cfg.NewGroup == nil {
		cfg.NewGroup = func(_ *Canvas, node *props.Node) Group { return NewElementGroup(node) }
	}
	return cfg
}

// Canvas is a render target driven by a property node. Sizes, sampling,
// background and placements are read from the node and its children; status
// and mouse state are written back to it.
//
// A Canvas is not safe for concurrent use. Property notifications and Update
// must be serialized by the caller.
type Canvas struct {
	node     *props.Node
	self     weak.Pointer[Canvas]
	registry *PlacementRegistry
	target   RenderTarget
	group    Group
	store    EntityStore

	sizeX, sizeY          int
	viewWidth, viewHeight int

	status    Status
	statusMsg string

	renderDirty   bool
	visible       bool
	renderAlways  bool
	samplingDirty bool

	dependents map[CanvasRef]struct{}

	placements      map[int][]Placement
	numSlots        int
	dirtyPlacements []*props.Node

	destroyed bool
}

// New creates a canvas for node and attaches it: the render target and root
// group are created and the canvas starts listening to node. Values already
// present below node are not replayed; call node.FireCreatedRecursive (the
// Manager does) to apply them.
func New(node *props.Node, cfg Config) *Canvas {
	if node == nil {
		panic("canvas: nil property node")
	}
	cfg = cfg.withDefaults()
	c := &Canvas{
		node:        node,
		registry:    cfg.Registry,
		store:       cfg.Store,
		sizeX:       -1,
		sizeY:       -1,
		viewWidth:   -1,
		viewHeight:  -1,
		renderDirty: true,
		visible:     true,
		dependents:  make(map[CanvasRef]struct{}),
		placements:  make(map[int][]Placement),
	}
	c.setStatusFlags(MissingSizeX|MissingSizeY, true)
	c.attach(cfg)
	return c
}

// attach runs once the canvas is fully constructed, so the target, group and
// listener may hold references back to it.
func (c *Canvas) attach(cfg Config) {
	c.self = weak.Make(c)
	c.target = cfg.NewTarget()
	c.group = cfg.NewGroup(c, c.node)
	c.node.AddListener(c)
}

// Destroy detaches the canvas from its node and releases placements, group
// and render target. References obtained through Ref expire. Destroy is idempotent.
func (c *Canvas) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.node.RemoveListener(c)
	for idx := range c.placements {
		c.clearPlacements(idx)
	}
	c.dirtyPlacements = nil
	c.dependents = nil
	if c.target != nil {
		if cam := c.target.Camera(); cam != nil && c.group != nil {
			cam.RemoveContent(c.group)
		}
		c.target.Dispose()
	}
	if c.group != nil {
		c.group.Dispose()
		c.group = nil
	}
}

// IsDestroyed reports whether Destroy has been called.
func (c *Canvas) IsDestroyed() bool {
	return c.destroyed
}

// Node returns the property node driving the canvas.
func (c *Canvas) Node() *props.Node { return c.node }

// Registry returns the placement registry.
func (c *Canvas) Registry() *PlacementRegistry { return c.registry }

// Target returns the render target.
func (c *Canvas) Target() RenderTarget { return c.target }

// Group returns the root drawing group, or nil after Destroy.
func (c *Canvas) Group() Group { return c.group }

// Texture returns the rendered image, or nil while the target is not serviceable.
func (c *Canvas) Texture() *ebiten.Image {
	if c.target == nil {
		return nil
	}
	return c.target.Texture()
}

// CreateGroup creates a "group" child of the canvas node through the root group.
func (c *Canvas) CreateGroup(name string) *props.Node {
	if c.group == nil {
		return nil
	}
	return c.group.CreateChild("group", name)
}

func (c *Canvas) serviceable() bool {
	return c.target != nil && c.target.Serviceable()
}

// --- Size ---

// SetSizeX sets the target width. Values <= 0 flag MissingSizeX. Any change
// clears CreateFailed so that allocation is retried; an already allocated
// target keeps its size.
func (c *Canvas) SetSizeX(sx int) {
	if c.sizeX == sx {
		return
	}
	c.sizeX = sx
	c.setStatusFlags(MissingSizeX, sx <= 0)
	c.setStatusFlags(CreateFailed, false)
}

// SetSizeY sets the target height. See SetSizeX.
func (c *Canvas) SetSizeY(sy int) {
	if c.sizeY == sy {
		return
	}
	c.sizeY = sy
	c.setStatusFlags(MissingSizeY, sy <= 0)
	c.setStatusFlags(CreateFailed, false)
}

// SizeX returns the configured width, -1 when unset.
func (c *Canvas) SizeX() int { return c.sizeX }

// SizeY returns the configured height, -1 when unset.
func (c *Canvas) SizeY() int { return c.sizeY }

// SetViewWidth sets the logical view width and forwards the view size to the target.
func (c *Canvas) SetViewWidth(w int) {
	if c.viewWidth == w {
		return
	}
	c.viewWidth = w
	c.target.SetViewSize(c.viewWidth, c.viewHeight)
}

// SetViewHeight sets the logical view height and forwards the view size to the target.
func (c *Canvas) SetViewHeight(h int) {
	if c.viewHeight == h {
		return
	}
	c.viewHeight = h
	c.target.SetViewSize(c.viewWidth, c.viewHeight)
}

// ViewWidth returns the logical view width, -1 when unset.
func (c *Canvas) ViewWidth() int { return c.viewWidth }

// ViewHeight returns the logical view height, -1 when unset.
func (c *Canvas) ViewHeight() int { return c.viewHeight }

// --- Render flags ---

// EnableRendering marks the canvas visible so the next Update may draw it.
// force additionally marks the content dirty; without it an unchanged canvas
// is not redrawn.
func (c *Canvas) EnableRendering(force bool) {
	c.visible = true
	if force {
		c.renderDirty = true
	}
}

// IsRenderDirty reports whether the content changed since the last draw.
func (c *Canvas) IsRenderDirty() bool { return c.renderDirty }

// IsVisible reports whether the canvas was marked visible since the last Update.
func (c *Canvas) IsVisible() bool { return c.visible }

// RenderAlways reports the "render-always" override.
func (c *Canvas) RenderAlways() bool { return c.renderAlways }

// VisibilityHook returns a function that re-enables rendering of the canvas
// (without forcing a redraw). Placements call it whenever they show the
// canvas texture. The hook holds only a weak reference and does nothing once
// the canvas is gone.
func (c *Canvas) VisibilityHook() func() {
	ref := c.Ref()
	return func() {
		if cv := ref.Get(); cv != nil {
			cv.EnableRendering(false)
		}
	}
}
