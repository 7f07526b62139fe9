// Package assets resolves symbolic asset names such as "sigils/Airborne" or
// "cardbacks/CommonCardback" to decoded images.
package assets

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/util"
)

// ErrNotFound is wrapped by every source when an asset does not exist.
var ErrNotFound = errors.New("asset not found")

// Source loads images by name. Names use forward slashes and omit the extension.
// Implementations must be safe for concurrent use.
type Source interface {
	Image(name string) (image.Image, error)
}

// Dir loads PNG files below a root directory.
type Dir struct {
	Root string
}

func (d Dir) Image(name string) (image.Image, error) {
	p := filepath.Join(d.Root, filepath.FromSlash(name)+".png")
	img, err := imagepkg.OpenImage(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", p, err)
	}
	return img, nil
}

// HTTP fetches PNG files relative to a base URL.
type HTTP struct {
	BaseURL string
}

func (h HTTP) Image(name string) (image.Image, error) {
	u := strings.TrimRight(h.BaseURL, "/") + "/" + path.Clean(name) + ".png"
	img, err := imagepkg.DownloadImage(u)
	var se *util.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", u, err)
	}
	return img, nil
}

// Memory serves preloaded images. It is read-only once built.
type Memory map[string]image.Image

func (m Memory) Image(name string) (image.Image, error) {
	img, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return img, nil
}

// New picks the HTTP source when a base URL is configured, otherwise the asset dir.
// A missing asset dir is reported immediately.
func New(dir, baseURL string) (Source, error) {
	if baseURL != "" {
		return HTTP{BaseURL: baseURL}, nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("asset dir %s is not a directory", dir)
	}
	return Dir{Root: dir}, nil
}

var nameStripper = strings.NewReplacer(" ", "", "'", "", ",", "", "-", "", "!", "", "?", "")

// FileName strips the characters that asset file names never contain.
func FileName(name string) string {
	return nameStripper.Replace(name)
}

// Stripe loads a temple sprite sheet and crops the temple's variant.
func Stripe(src Source, name string, temples []string, temple string) (image.Image, error) {
	sheet, err := src.Image(name)
	if err != nil {
		return nil, err
	}
	v, err := imagepkg.TempleVariant(sheet, temples, temple)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
