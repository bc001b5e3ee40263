package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

const defaultScreenshotDir = "screenshots"

// screenSource marks a capture of the composited screen instead of a canvas.
const screenSource = -1

// ErrNoTexture is returned when a canvas has no allocated texture to capture.
var ErrNoTexture = errors.New("canvas: no texture")

type shotRequest struct {
	label  string
	source int // texture index, or screenSource
}

// Screenshot queues a labeled capture of the composited screen, taken at the
// end of the current frame's Draw.
func (g *Game) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, shotRequest{label: label, source: screenSource})
}

// ScreenshotCanvas queues a labeled capture of the manager's canvas for
// texture[index]. The image is the canvas texture after this frame's repaint,
// scaled to the canvas view size when one is set.
func (g *Game) ScreenshotCanvas(index int, label string) {
	g.screenshotQueue = append(g.screenshotQueue, shotRequest{label: label, source: index})
}

// flushScreenshots writes one PNG per queued request. Files are numbered in
// capture order: 0001_screen_<label>.png, 0002_texture3_<label>.png, ...
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	dir := g.ScreenshotDir
	if dir == "" {
		dir = defaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Warn("canvas: screenshot directory", "dir", dir, "error", err)
		return
	}

	var screenImg image.Image
	for _, req := range g.screenshotQueue {
		var (
			img    image.Image
			source string
			err    error
		)
		if req.source == screenSource {
			if screenImg == nil {
				b := screen.Bounds()
				screenImg = straighten(readImage(screen), b.Dx(), b.Dy())
			}
			img, source = screenImg, "screen"
		} else {
			source = fmt.Sprintf("texture%d", req.source)
			img, err = g.snapshotCanvas(req.source)
		}
		if err != nil {
			Logger().Warn("canvas: screenshot", "source", source, "label", req.label, "error", err)
			continue
		}
		g.shotSeq++
		path := filepath.Join(dir, shotFileName(g.shotSeq, source, req.label))
		if err := writePNG(path, img); err != nil {
			Logger().Warn("canvas: screenshot", "error", err)
			continue
		}
		Logger().Debug("canvas: screenshot written", "path", path)
	}
}

func (g *Game) snapshotCanvas(index int) (image.Image, error) {
	if g.Manager == nil {
		return nil, ErrNoTexture
	}
	c := g.Manager.Canvas(index)
	if c == nil {
		return nil, fmt.Errorf("canvas: no canvas for texture[%d]", index)
	}
	return c.Snapshot()
}

// Snapshot returns a straight-alpha copy of the rendered texture. When a view
// size is set the copy is scaled to it, so the image matches what placements
// show at 1:1.
func (c *Canvas) Snapshot() (*image.NRGBA, error) {
	tex := c.Texture()
	if tex == nil || !c.serviceable() {
		return nil, ErrNoTexture
	}
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if c.viewWidth > 0 {
		w = c.viewWidth
	}
	if c.viewHeight > 0 {
		h = c.viewHeight
	}
	return straighten(readImage(tex), w, h), nil
}

func readImage(img *ebiten.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(rgba.Pix)
	return rgba
}

// straighten converts premultiplied pixels into a w×h straight-alpha image,
// resampling bilinearly when the sizes differ.
func straighten(src *image.RGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Size() == dst.Bounds().Size() {
		xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func shotFileName(seq int, source, label string) string {
	return fmt.Sprintf("%04d_%s_%s.png", seq, source, sanitizeLabel(label))
}

// writePNG encodes img next to path and renames it into place, so a reader
// never sees a partial file.
func writePNG(path string, img image.Image) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".shot-*.png")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
