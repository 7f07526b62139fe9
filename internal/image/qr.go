package imagepkg

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRImage returns a square QR code for text, ready for composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}
