package canvas

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/canvas/props"
)

// --- Naming ---

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-click", "after-click"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShotFileName(t *testing.T) {
	if got := shotFileName(3, "texture2", "after click"); got != "0003_texture2_after_click.png" {
		t.Errorf("shotFileName = %q", got)
	}
	if got := shotFileName(12, "screen", ""); got != "0012_screen_unlabeled.png" {
		t.Errorf("shotFileName = %q", got)
	}
}

// --- Queue ---

func TestScreenshotQueue(t *testing.T) {
	g := &Game{}
	g.Screenshot("a")
	g.ScreenshotCanvas(2, "b")
	want := []shotRequest{{"a", screenSource}, {"b", 2}}
	if len(g.screenshotQueue) != len(want) {
		t.Fatalf("queue = %v, want %v", g.screenshotQueue, want)
	}
	for i := range want {
		if g.screenshotQueue[i] != want[i] {
			t.Errorf("queue[%d] = %v, want %v", i, g.screenshotQueue[i], want[i])
		}
	}
}

func TestScreenshotCanvasWithoutTextureIsSkipped(t *testing.T) {
	root := props.NewRoot()
	m, _ := newTestManager(t, root)
	m.CreateCanvas() // fake targets never hand out a texture
	buf := captureLogs(t)

	dir := t.TempDir()
	g := &Game{Manager: m, ScreenshotDir: dir}
	g.ScreenshotCanvas(0, "blank")
	g.ScreenshotCanvas(5, "missing")
	g.flushScreenshots(nil)

	if len(g.screenshotQueue) != 0 {
		t.Errorf("queue not drained: %v", g.screenshotQueue)
	}
	if g.shotSeq != 0 {
		t.Errorf("shotSeq = %d, want 0", g.shotSeq)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("wrote %d files, want none", len(entries))
	}
	logs := buf.String()
	if !strings.Contains(logs, "source=texture0") || !strings.Contains(logs, ErrNoTexture.Error()) {
		t.Errorf("missing texture warning, logs:\n%s", logs)
	}
	if !strings.Contains(logs, "source=texture5") {
		t.Errorf("missing canvas warning, logs:\n%s", logs)
	}
}

func TestCanvasSnapshotWithoutTexture(t *testing.T) {
	f := newFixture(t)
	if img, err := f.canvas.Snapshot(); err != ErrNoTexture || img != nil {
		t.Errorf("Snapshot = %v, %v; want nil, ErrNoTexture", img, err)
	}
}

// --- Pixel conversion ---

func TestStraighten(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	copy(src.Pix, []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // clear
	})
	img := straighten(src, 3, 1)
	want := []byte{
		255, 127, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestStraightenScalesToView(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []byte{200, 100, 50, 255})
	}
	img := straighten(src, 4, 6)
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 4x6", b)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 4; x++ {
			c := img.NRGBAAt(x, y)
			if c.R != 200 || c.G != 100 || c.B != 50 || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v", x, y, c)
			}
		}
	}
}

// --- Files ---

func TestWritePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(src.Pix, []byte{255, 0, 0, 255, 0, 255, 0, 255})
	img := straighten(src, 2, 1)

	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds = %v", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries", len(entries))
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), img); err == nil {
		t.Error("writePNG into a missing directory succeeded")
	}
}
