package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Upscale is the factor between pixel-art sources and the exported card.
const Upscale = 10

// ErrStripe is returned when a temple sprite sheet cannot be split evenly.
var ErrStripe = errors.New("invalid temple sprite sheet")

var transparent = color.NRGBA{}

// Blank returns a fully transparent canvas.
func Blank(w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	return imaging.New(w, h, transparent)
}

// TempleVariant crops the stripe belonging to temple out of a sheet that stacks one
// variant per temple vertically, in the order of temples.
func TempleVariant(sheet image.Image, temples []string, temple string) (*image.NRGBA, error) {
	idx := -1
	for i, t := range temples {
		if t == temple {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q is not a valid temple", ErrStripe, temple)
	}
	b := sheet.Bounds()
	if b.Dy()%len(temples) != 0 {
		return nil, fmt.Errorf("%w: height %d not divisible by %d temples", ErrStripe, b.Dy(), len(temples))
	}
	h := b.Dy() / len(temples)
	top := b.Min.Y + idx*h
	return imaging.Crop(sheet, image.Rect(b.Min.X, top, b.Max.X, top+h)), nil
}

// Scale enlarges pixel art by an integer factor without smoothing.
func Scale(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// ScaleRatio resizes by a fractional ratio, rounding the target size.
func ScaleRatio(img image.Image, ratio float64) *image.NRGBA {
	b := img.Bounds()
	w := int(float64(b.Dx())*ratio + 0.5)
	h := int(float64(b.Dy())*ratio + 0.5)
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(img)
	}
	if w <= 0 || h <= 0 {
		return Blank(0, 0)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// ResizeToHeight keeps the aspect ratio, truncating the new width like the icon tables expect.
func ResizeToHeight(img image.Image, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dy() == 0 {
		return Blank(0, 0)
	}
	w := b.Dx() * height / b.Dy()
	if w <= 0 {
		w = 1
	}
	return imaging.Resize(img, w, height, imaging.Lanczos)
}

// IsBlack reports whether c needs no recoloring.
func IsBlack(c color.NRGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Recolor returns a copy of img with every pixel's RGB replaced by c. Alpha is kept.
func Recolor(img image.Image, c color.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = c.R
		out.Pix[i+1] = c.G
		out.Pix[i+2] = c.B
	}
	return out
}

// Over alpha-composites img onto dst at pt and returns the result.
func Over(dst image.Image, img image.Image, pt image.Point) *image.NRGBA {
	if img == nil || img.Bounds().Empty() {
		return imaging.Clone(dst)
	}
	return imaging.Overlay(dst, img, pt, 1.0)
}

// Grow returns a w x h transparent canvas holding src at the origin.
func Grow(src image.Image, w, h int) *image.NRGBA {
	return imaging.Paste(Blank(w, h), src, image.Pt(0, 0))
}
