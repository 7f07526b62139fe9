package imagepkg

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/youruser/cardgen/internal/util"
)

// DownloadImage downloads an image from URL and returns it decoded.
func DownloadImage(url string) (image.Image, error) {
	body, err := util.GetBytes(url)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(body))
}

// Decode decodes any registered format, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// OpenImage loads an image file from disk.
func OpenImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if err := util.EnsureParent(path); err != nil {
		return err
	}
	return imaging.Save(img, path)
}
