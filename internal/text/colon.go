package text

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

// Colon builds a colon glyph from two stacked periods of face, so that it sits
// on the description baseline regardless of the font's own colon shape.
func Colon(face font.Face, c color.NRGBA, height int) *image.NRGBA {
	w := Width(face, ".")
	iw := int(w)
	if iw < 1 {
		iw = 1
	}
	img := imagepkg.Blank(iw, height)
	Draw(img, face, ".", 0, 0, c)
	Draw(img, face, ".", 0, -int(w*2.5), c)
	return img
}
