package canvas

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	lineSpacing     = 1.2 // multiple of the font size
)

var (
	fontMu     sync.Mutex
	fontSource *text.GoTextFaceSource
)

// LoadFont replaces the TrueType or OpenType font used by text elements.
// Elements created earlier pick the new font up on their next draw.
func LoadFont(data []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("canvas: parse font: %w", err)
	}
	fontMu.Lock()
	fontSource = src
	fontMu.Unlock()
	return nil
}

// textFaceSource returns the current font, loading Go Regular on first use.
func textFaceSource() *text.GoTextFaceSource {
	fontMu.Lock()
	defer fontMu.Unlock()
	if fontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("canvas: embedded font: %v", err))
		}
		fontSource = src
	}
	return fontSource
}

// face returns the text face for a text element.
func (e *Element) face() *text.GoTextFace {
	size := e.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	return &text.GoTextFace{Source: textFaceSource(), Size: size}
}

// measureText returns the size of the element's text laid out with its face.
func (e *Element) measureText() (float64, float64) {
	if e.Text == "" {
		return 0, 0
	}
	f := e.face()
	return text.Measure(e.Text, f, f.Size*lineSpacing)
}

func (e *Element) drawText(dst *ebiten.Image, geo ebiten.GeoM) {
	if e.Text == "" || e.Fill.A <= 0 {
		return
	}
	f := e.face()
	op := &text.DrawOptions{}
	op.LineSpacing = f.Size * lineSpacing
	op.GeoM.Translate(e.X, e.Y)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleWithColor(e.Fill)
	text.Draw(dst, e.Text, f, op)
}
