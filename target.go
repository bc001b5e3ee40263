package canvas

import "github.com/hajimehoshi/ebiten/v2"

// RenderTarget is the offscreen surface a canvas draws into. Implementations
// may defer all work until Allocate; Serviceable reports whether the last
// allocation produced a usable surface.
type RenderTarget interface {
	SetSize(w, h int)
	UseImageCoords(on bool)
	UseStencil(on bool)
	Allocate()
	Serviceable() bool

	// SetSampling configures filtering and multisampling. Values are applied
	// as given; the canvas batches changes to at most one call per frame.
	SetSampling(mipmap bool, coverageSamples, colorSamples int)

	// SetRender enables or disables drawing on the next frame.
	SetRender(on bool)

	// SetViewSize sets the logical coordinate range mapped onto the surface.
	SetViewSize(w, h int)

	// Camera returns the view used to draw the surface, or nil before the
	// first allocation attempt.
	Camera() *TargetCamera

	// Texture returns the surface image, or nil when not serviceable.
	Texture() *ebiten.Image

	Dispose()
}

// renderCanceler is implemented by targets that keep a repaint request
// across SetRender(false). "freeze" off uses it to drop the request too.
type renderCanceler interface {
	CancelRender()
}

// TargetCamera holds what a RenderTarget draws: a clear color and an ordered
// list of content groups.
type TargetCamera struct {
	ClearColor Color

	// TraversalOrder requests that content be drawn exactly in attachment
	// and traversal order, with no reordering between groups. EbitenTarget
	// never reorders content, so for it the flag is only recorded.
	TraversalOrder bool

	content []Group
}

// AddContent appends g to the drawn content. Adding the same group twice is a no-op.
func (cam *TargetCamera) AddContent(g Group) {
	for _, cur := range cam.content {
		if cur == g {
			return
		}
	}
	cam.content = append(cam.content, g)
}

// RemoveContent detaches g.
func (cam *TargetCamera) RemoveContent(g Group) {
	for i, cur := range cam.content {
		if cur == g {
			copy(cam.content[i:], cam.content[i+1:])
			cam.content[len(cam.content)-1] = nil
			cam.content = cam.content[:len(cam.content)-1]
			return
		}
	}
}

// Content returns the attached groups. The returned slice MUST NOT be mutated.
func (cam *TargetCamera) Content() []Group {
	return cam.content
}
