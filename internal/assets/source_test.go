package assets

import (
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

func writePNG(t *testing.T, root, name string, img image.Image) {
	t.Helper()
	if err := imagepkg.SavePNG(img, filepath.Join(root, filepath.FromSlash(name)+".png")); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "sigils/Airborne", imaging.New(3, 4, color.NRGBA{A: 255}))

	src, err := New(root, "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	img, err := src.Image("sigils/Airborne")
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 4 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if _, err := src.Image("sigils/Nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewRejectsMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
		t.Fatal("expected error")
	}
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(f, ""); err == nil {
		t.Fatal("expected error for a file")
	}
}

func TestHTTP(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "icons/bones", imaging.New(5, 5, color.NRGBA{A: 255}))
	srv := httptest.NewServer(http.FileServer(http.Dir(root)))
	defer srv.Close()

	src, err := New("ignored", srv.URL+"/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	img, err := src.Image("icons/bones")
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if img.Bounds().Dx() != 5 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if _, err := src.Image("icons/missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStripe(t *testing.T) {
	sheet := imaging.New(4, 4, color.NRGBA{R: 255, A: 255})
	sheet = imaging.Paste(sheet, imaging.New(4, 2, color.NRGBA{B: 255, A: 255}), image.Pt(0, 2))
	src := Memory{"cardbacks/Traitlines": sheet}

	img, err := Stripe(src, "cardbacks/Traitlines", []string{"Beast", "Undead"}, "Undead")
	if err != nil {
		t.Fatalf("stripe: %v", err)
	}
	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b == 0 {
		t.Fatalf("expected the Undead stripe, got %v", img.At(0, 0))
	}
	if _, err := Stripe(src, "cardbacks/Traitlines", []string{"Beast", "Undead"}, "Tech"); !errors.Is(err, imagepkg.ErrStripe) {
		t.Fatalf("expected ErrStripe, got %v", err)
	}
	if _, err := Stripe(src, "cardbacks/Missing", []string{"Beast"}, "Beast"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Double Strike":   "DoubleStrike",
		"Hoarder's Pack!": "HoardersPack",
		"Trinket-Bearer?": "TrinketBearer",
		"Ant, Queen":      "AntQueen",
	}
	for in, want := range tests {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}
