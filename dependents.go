package canvas

import "weak"

// CanvasRef is a non-owning reference to a canvas. It does not keep the
// canvas alive and expires when the canvas is destroyed or collected.
// CanvasRef values are comparable and usable as map keys.
type CanvasRef struct {
	p weak.Pointer[Canvas]
}

// Ref returns a weak reference to c.
func (c *Canvas) Ref() CanvasRef {
	return CanvasRef{p: c.self}
}

// Get returns the canvas, or nil once it has expired.
func (r CanvasRef) Get() *Canvas {
	c := r.p.Value()
	if c == nil || c.destroyed {
		return nil
	}
	return c
}

// Expired reports whether the referenced canvas is gone.
func (r CanvasRef) Expired() bool {
	return r.Get() == nil
}

// AddDependentCanvas registers a canvas that uses this canvas' texture as
// input. Whenever this canvas redraws, the dependent is marked dirty.
// Expired references are ignored with a warning.
func (c *Canvas) AddDependentCanvas(ref CanvasRef) {
	if ref.Expired() {
		Logger().Warn("canvas: ignoring expired dependent canvas", "path", c.node.Path())
		return
	}
	if c.dependents == nil {
		return
	}
	c.dependents[ref] = struct{}{}
}

// RemoveDependentCanvas unregisters a dependent canvas.
func (c *Canvas) RemoveDependentCanvas(ref CanvasRef) {
	delete(c.dependents, ref)
}

// NumDependents returns the number of registered dependents, including
// expired ones not yet pruned.
func (c *Canvas) NumDependents() int {
	return len(c.dependents)
}

// markDependentsDirty forces renderDirty on every live dependent. Expired
// references are pruned without being dereferenced.
func (c *Canvas) markDependentsDirty() {
	for ref := range c.dependents {
		if d := ref.Get(); d != nil {
			d.renderDirty = true
		} else {
			delete(c.dependents, ref)
		}
	}
}
