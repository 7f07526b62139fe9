// Package text measures, draws and wraps description text for sigils and cards.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts holds one parsed TrueType font. It is safe for concurrent use; faces
// created from it are not, so every render creates its own.
type Fonts struct {
	font *opentype.Font
}

// Load parses a TrueType or OpenType file.
func Load(path string) (*Fonts, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	f, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return &Fonts{font: f}, nil
}

// Embedded returns the Go Regular font bundled with x/image.
func Embedded() *Fonts {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("parsing embedded font: %v", err))
	}
	return &Fonts{font: f}
}

// Face returns a face whose em is size pixels tall. Callers close it.
func (f *Fonts) Face(size int) (font.Face, error) {
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Width is the advance of s in pixels.
func Width(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// Draw writes s with its ascender line at y.
func Draw(dst draw.Image, face font.Face, s string, x float64, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.I(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}
