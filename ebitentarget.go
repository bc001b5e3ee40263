package canvas

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxTextureSize is the largest edge length EbitenTarget will allocate.
// Larger requests leave the target unserviceable.
const MaxTextureSize = 8192

// EbitenTarget is the default RenderTarget, backed by a persistent offscreen
// *ebiten.Image. Unlike pooled images it is owned by its canvas and is not
// recycled between frames.
type EbitenTarget struct {
	image  *ebiten.Image
	camera *TargetCamera

	w, h         int
	viewW, viewH int

	imageCoords bool
	stencil     bool
	render      bool
	pending     bool

	mipmap          bool
	coverageSamples int
	colorSamples    int

	draws int
}

// NewEbitenTarget creates an unallocated target.
func NewEbitenTarget() *EbitenTarget {
	return &EbitenTarget{}
}

// SetSize sets the size used by the next Allocate. An allocated image is not resized.
func (t *EbitenTarget) SetSize(w, h int) {
	t.w, t.h = w, h
}

// UseImageCoords selects a top-left origin with Y pointing down. When off,
// content is flipped so Y points up.
func (t *EbitenTarget) UseImageCoords(on bool) {
	t.imageCoords = on
}

// UseStencil records whether content expects a stencil buffer. Ebitengine
// manages stencil state internally, so this only affects Stencil.
func (t *EbitenTarget) UseStencil(on bool) {
	t.stencil = on
}

// Stencil reports the value passed to UseStencil.
func (t *EbitenTarget) Stencil() bool {
	return t.stencil
}

// Allocate creates the offscreen image, replacing any previous one. The
// camera is created on the first attempt and kept across reallocations.
// Sizes that are not positive or exceed MaxTextureSize leave the target
// unserviceable.
func (t *EbitenTarget) Allocate() {
	if t.camera == nil {
		t.camera = &TargetCamera{ClearColor: ColorBlack}
	}
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
	if t.w <= 0 || t.h <= 0 || t.w > MaxTextureSize || t.h > MaxTextureSize {
		return
	}
	t.image = ebiten.NewImageWithOptions(image.Rect(0, 0, t.w, t.h), nil)
}

// Serviceable reports whether an image is allocated.
func (t *EbitenTarget) Serviceable() bool {
	return t.image != nil
}

// SetSampling stores the sampling configuration. Mipmapping selects linear
// filtering when the texture is drawn; coverage samples enable anti-aliasing
// for triangle content. Ebitengine offers no per-image multisampling, so
// colorSamples is only recorded (see ColorSamples).
func (t *EbitenTarget) SetSampling(mipmap bool, coverageSamples, colorSamples int) {
	t.mipmap = mipmap
	t.coverageSamples = coverageSamples
	t.colorSamples = colorSamples
}

// Filter returns the filter to use when drawing the texture elsewhere.
func (t *EbitenTarget) Filter() ebiten.Filter {
	if t.mipmap {
		return ebiten.FilterLinear
	}
	return ebiten.FilterNearest
}

// AntiAlias reports whether content should be drawn anti-aliased.
func (t *EbitenTarget) AntiAlias() bool {
	return t.coverageSamples > 0
}

// ColorSamples returns the recorded color sample count.
func (t *EbitenTarget) ColorSamples() int {
	return t.colorSamples
}

// SetRender enables or disables drawing in Draw. Enabling also requests one
// repaint that survives a later SetRender(false): Ebitengine may run several
// updates before the next draw, and the request is only consumed by Draw.
func (t *EbitenTarget) SetRender(on bool) {
	t.render = on
	if on {
		t.pending = true
	}
}

// CancelRender drops the render flag and any requested repaint.
func (t *EbitenTarget) CancelRender() {
	t.render = false
	t.pending = false
}

// RenderEnabled reports the last value passed to SetRender.
func (t *EbitenTarget) RenderEnabled() bool {
	return t.render
}

// RenderPending reports whether Draw will repaint.
func (t *EbitenTarget) RenderPending() bool {
	return t.render || t.pending
}

// SetViewSize sets the logical coordinate range. Zero or negative values map
// content 1:1 onto pixels.
func (t *EbitenTarget) SetViewSize(w, h int) {
	t.viewW, t.viewH = w, h
}

// Camera returns the target camera, or nil before the first Allocate.
func (t *EbitenTarget) Camera() *TargetCamera {
	return t.camera
}

// Texture returns the offscreen image, or nil when not allocated.
func (t *EbitenTarget) Texture() *ebiten.Image {
	return t.image
}

// Width returns the allocated width in pixels, or 0.
func (t *EbitenTarget) Width() int {
	if t.image == nil {
		return 0
	}
	return t.image.Bounds().Dx()
}

// Height returns the allocated height in pixels, or 0.
func (t *EbitenTarget) Height() int {
	if t.image == nil {
		return 0
	}
	return t.image.Bounds().Dy()
}

// Draws returns how many times Draw has repainted the image.
func (t *EbitenTarget) Draws() int {
	return t.draws
}

// Draw repaints the image when rendering is enabled or a repaint is still
// pending: it fills the clear color and draws every content group in
// attachment order. Reports whether it drew.
func (t *EbitenTarget) Draw() bool {
	if !t.RenderPending() || t.image == nil || t.camera == nil {
		return false
	}
	t.pending = false
	t.image.Fill(t.camera.ClearColor.toRGBA())
	geo := t.viewGeoM()
	for _, g := range t.camera.content {
		g.Draw(t.image, geo)
	}
	t.draws++
	return true
}

// DrawTo draws the texture onto dst with the given transform, using the
// configured filter. No-op when not allocated.
func (t *EbitenTarget) DrawTo(dst *ebiten.Image, geo ebiten.GeoM) {
	if t.image == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geo
	op.Filter = t.Filter()
	dst.DrawImage(t.image, &op)
}

// viewGeoM maps view coordinates onto image pixels.
func (t *EbitenTarget) viewGeoM() ebiten.GeoM {
	var geo ebiten.GeoM
	if t.viewW > 0 && t.viewH > 0 {
		geo.Scale(float64(t.w)/float64(t.viewW), float64(t.h)/float64(t.viewH))
	}
	if !t.imageCoords {
		geo.Scale(1, -1)
		geo.Translate(0, float64(t.h))
	}
	return geo
}

// Dispose deallocates the image. The target can be allocated again.
func (t *EbitenTarget) Dispose() {
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
	t.camera = nil
	t.CancelRender()
}
