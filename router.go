package canvas

import (
	"strings"

	"github.com/phanxgames/canvas/props"
)

// ChildAdded implements props.Listener. Placement children of the canvas node
// are queued for synchronization; everything else goes to the drawing group.
func (c *Canvas) ChildAdded(parent, child *props.Node) {
	if parent == c.node && child.Name() == "placement" {
		c.queuePlacement(child)
		return
	}
	if c.group != nil {
		c.group.ChildAdded(parent, child)
	}
}

// ChildRemoved implements props.Listener. Any removal marks the canvas dirty.
// Removing a placement child disposes its placements; the slot index stays
// reserved.
func (c *Canvas) ChildRemoved(parent, child *props.Node) {
	c.renderDirty = true

	if parent == c.node && child.Name() == "placement" {
		c.clearPlacements(child.Index())
		c.unqueuePlacement(child)
		return
	}
	if c.group != nil {
		c.group.ChildRemoved(parent, child)
	}
}

// ValueChanged implements props.Listener.
//
// Writes to "status*" nodes and anything below "bounding-box" are ignored so
// that the canvas' own diagnostics never trigger a redraw. Every other change
// marks the canvas dirty, then:
//   - placement[i]/* re-queues placement[i] (at most once per frame),
//   - direct children of the canvas node are applied to the canvas,
//   - the rest is forwarded to the drawing group.
func (c *Canvas) ValueChanged(n *props.Node) {
	if strings.HasPrefix(n.Name(), "status") || c.underBoundingBox(n) {
		return
	}
	c.renderDirty = true

	parent := n.Parent()
	handled := false
	switch {
	case parent == nil:
	case parent.Parent() == c.node && parent.Name() == "placement":
		c.queuePlacement(parent)
		handled = true
	case parent == c.node:
		handled = c.applyValue(n)
	}

	if !handled && c.group != nil {
		c.group.ValueChanged(n)
	}
}

// applyValue handles a value set directly on the canvas node. Reports whether
// the name is one the canvas owns.
func (c *Canvas) applyValue(n *props.Node) bool {
	switch n.Name() {
	case "background":
		if cam := c.target.Camera(); cam != nil {
			if col, err := ParseColor(n.StringValue()); err == nil {
				cam.ClearColor = col
			}
		}
	case "mipmapping", "coverage-samples", "color-samples":
		c.samplingDirty = true
	case "render-always":
		c.renderAlways = n.BoolValue()
	case "size":
		switch n.Index() {
		case 0:
			c.SetSizeX(n.IntValue())
		case 1:
			c.SetSizeY(n.IntValue())
		}
	case "view":
		switch n.Index() {
		case 0:
			c.SetViewWidth(n.IntValue())
		case 1:
			c.SetViewHeight(n.IntValue())
		}
	case "freeze":
		// Bypasses the visible/dirty bookkeeping until the next Update.
		on := n.BoolValue()
		c.target.SetRender(on)
		if rc, ok := c.target.(renderCanceler); ok && !on {
			rc.CancelRender()
		}
	default:
		return false
	}
	return true
}

// underBoundingBox reports whether n lies below a "bounding-box" node inside
// the canvas subtree.
func (c *Canvas) underBoundingBox(n *props.Node) bool {
	for p := n.Parent(); p != nil && p != c.node; p = p.Parent() {
		if p.Name() == "bounding-box" {
			return true
		}
	}
	return false
}
