package canvas

// Update advances the canvas by one frame. It finishes a pending render
// target allocation, decides whether this frame is drawn, cascades dirtiness
// to dependent canvases, updates the drawing group, applies sampling changes
// and synchronizes dirty placements.
//
// While the target is not serviceable and the status is not OK (missing size
// or failed creation) Update does nothing.
func (c *Canvas) Update(dt float64) {
	if c.destroyed {
		return
	}
	if !c.target.Serviceable() {
		if c.status != StatusOK {
			return
		}
		if !c.allocate() {
			return
		}
	}

	if c.visible || c.renderAlways {
		if c.renderDirty {
			// One hop per frame; longer chains settle over consecutive frames.
			c.markDependentsDirty()
		}
		c.target.SetRender(c.renderDirty)
		c.renderDirty = false
		c.visible = false
	} else {
		c.target.SetRender(false)
	}

	if c.group != nil {
		c.group.Update(dt)
	}

	if c.samplingDirty {
		c.target.SetSampling(
			c.node.GetBool("mipmapping", false),
			c.node.GetInt("coverage-samples", 0),
			c.node.GetInt("color-samples", 0),
		)
		c.samplingDirty = false
		c.renderDirty = true
	}

	c.syncPlacements()
}

// allocate creates the render target with the current size and attaches the
// root group. Reports whether the target is serviceable.
func (c *Canvas) allocate() bool {
	c.target.SetSize(c.sizeX, c.sizeY)
	c.target.UseImageCoords(true)
	c.target.UseStencil(true)
	c.target.Allocate()

	if cam := c.target.Camera(); cam != nil {
		cam.ClearColor = c.clearColor()
		if c.group != nil {
			cam.AddContent(c.group)
		}
		cam.TraversalOrder = true
	}

	if !c.target.Serviceable() {
		Logger().Warn("canvas: creating render target failed",
			"path", c.node.Path(), "width", c.sizeX, "height", c.sizeY)
		c.setStatusFlags(CreateFailed, true)
		return false
	}
	Logger().Debug("canvas: render target allocated",
		"path", c.node.Path(), "width", c.sizeX, "height", c.sizeY)
	c.setStatusFlags(StatusOK, true)
	return true
}

// clearColor parses "background", falling back to opaque black.
func (c *Canvas) clearColor() Color {
	s := c.node.GetString("background", "")
	if s == "" {
		return ColorBlack
	}
	col, err := ParseColor(s)
	if err != nil {
		Logger().Debug("canvas: invalid background", "path", c.node.Path(), "err", err)
		return ColorBlack
	}
	return col
}
