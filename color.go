package canvas

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorBlack is the clear color used when "background" is unset or invalid.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorWhite is the default rectangle fill.
	ColorWhite = Color{1, 1, 1, 1}
)

// ErrInvalidColor is wrapped by every ParseColor error.
var ErrInvalidColor = errors.New("canvas: invalid color")

// ParseColor parses a color string. Accepted forms are "#rgb", "#rrggbb",
// "#rrggbbaa", "rgb(r, g, b)" and "rgba(r, g, b, a)" with channels in 0-255
// and alpha in 0-1, and the SVG/CSS color keywords.
func ParseColor(s string) (Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "":
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	case strings.HasPrefix(str, "#"):
		return parseHexColor(str)
	case strings.HasPrefix(str, "rgba(") || strings.HasPrefix(str, "rgb("):
		return parseFuncColor(str)
	}
	if c, ok := colornames.Map[str]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(str string) (Color, error) {
	alpha := 1.0
	switch len(str) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(str[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, str)
		}
		alpha = float64(a) / 255
		str = str[:7]
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, str)
	}
	c, err := colorful.Hex(str)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, str, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func parseFuncColor(str string) (Color, error) {
	open := strings.IndexByte(str, '(')
	if !strings.HasSuffix(str, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, str)
	}
	fn := str[:open]
	args := strings.Split(str[open+1:len(str)-1], ",")
	want := 3
	if fn == "rgba" {
		want = 4
	}
	if len(args) != want {
		return Color{}, fmt.Errorf("%w: %q: want %d components", ErrInvalidColor, str, want)
	}
	var v [4]float64
	v[3] = 1
	for i, arg := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, str, err)
		}
		if i < 3 {
			f /= 255
		}
		v[i] = clamp01(f)
	}
	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// String formats c as "rgba(r, g, b, a)", a form ParseColor accepts.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		channel255(c.R), channel255(c.G), channel255(c.B),
		strconv.FormatFloat(clamp01(c.A), 'f', -1, 64))
}

func channel255(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}

// RGBA implements color.Color with premultiplied alpha.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
