package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Sheet layout in pixels.
const (
	SheetMargin  = 48
	SheetGap     = 8
	SheetThumbW  = 215
	SheetThumbH  = 300
	SheetQRSize  = 400
	sheetColumns = 5
)

var sheetBackground = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// ComposeSheet lays card images out as a print-and-play proof sheet: a grid of
// thumbnails with an optional QR code below the last row.
func ComposeSheet(cards []image.Image, qr image.Image, columns int) *image.NRGBA {
	if columns <= 0 {
		columns = sheetColumns
	}
	rows := (len(cards) + columns - 1) / columns
	w := 2*SheetMargin + columns*SheetThumbW + (columns-1)*SheetGap
	h := 2*SheetMargin + rows*SheetThumbH
	if rows > 1 {
		h += (rows - 1) * SheetGap
	}
	if qr != nil {
		h += SheetQRSize + SheetGap
	}
	canvas := imaging.New(w, h, sheetBackground)

	for i, c := range cards {
		x := SheetMargin + (i%columns)*(SheetThumbW+SheetGap)
		y := SheetMargin + (i/columns)*(SheetThumbH+SheetGap)
		thumb := imaging.Fit(c, SheetThumbW, SheetThumbH, imaging.Lanczos)
		tb := thumb.Bounds()
		pt := image.Pt(x+(SheetThumbW-tb.Dx())/2, y+(SheetThumbH-tb.Dy())/2)
		canvas = imaging.Overlay(canvas, thumb, pt, 1.0)
	}

	if qr != nil {
		q := imaging.Resize(qr, SheetQRSize, SheetQRSize, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(w-SheetMargin-SheetQRSize, h-SheetMargin-SheetQRSize))
	}
	return canvas
}
