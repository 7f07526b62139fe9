package text

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

func TestTokenize(t *testing.T) {
	icons := map[string]bool{"sigil": true, "bones": false}
	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{"plain", "Deal 1 damage", []Token{
			{Word, "Deal"}, {Word, "1"}, {Word, "damage"},
		}},
		{"colon", "Sacrifice: draw", []Token{
			{Word, "Sacrifice"}, {ColonSep, ":"}, {Word, "draw"},
		}},
		{"enabled icon", "Gains [sigil:Airborne] now", []Token{
			{Word, "Gains "}, {Icon, "sigil:Airborne"}, {Word, "now"},
		}},
		{"disabled icon dropped", "Pay [bones] more", []Token{
			{Word, "Pay"}, {Word, "more"},
		}},
		{"unknown marker dropped", "Pay [energy] more", []Token{
			{Word, "Pay"}, {Word, "more"},
		}},
		{"quotes", `Say "hi"`, []Token{
			{Word, "Say"}, {Word, "''hi''"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in, icons)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenAssetName(t *testing.T) {
	tests := map[string]string{
		"sigil:Airborne": "sigils/Airborne",
		"bones":          "icons/bones",
		"stat:health":    "icons/health",
	}
	for in, want := range tests {
		if got := (Token{Kind: Icon, Text: in}).AssetName(); got != want {
			t.Errorf("AssetName(%q) = %q, want %q", in, got, want)
		}
	}
}

func newWrapper(t *testing.T, limit int) *Wrapper {
	t.Helper()
	face, err := Embedded().Face(20)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	black := color.NRGBA{A: 255}
	return &Wrapper{
		Face:       face,
		LineHeight: 20,
		Limit:      limit,
		Color:      black,
		Icon: func(Token) (image.Image, error) {
			return imaging.New(15, 15, black), nil
		},
		Colon: Colon(face, black, 20),
	}
}

func TestWriteSingleLine(t *testing.T) {
	w := newWrapper(t, 1000)
	canvas := imagepkg.Blank(1000, 20)
	y, out, err := w.Write(canvas, 0, 0, 0, Tokenize("a short line", nil))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if y != 0 {
		t.Fatalf("expected one line, last y %d", y)
	}
	if out.Bounds().Dy() != w.LineHeight {
		t.Fatalf("expected height %d, got %d", w.LineHeight, out.Bounds().Dy())
	}
}

func TestWriteWraps(t *testing.T) {
	w := newWrapper(t, 120)
	canvas := imagepkg.Blank(120, 20)
	tokens := Tokenize("this description is far too long for one narrow line [sigil:X] end", map[string]bool{"sigil": true})
	y, out, err := w.Write(canvas, 0, 0, 0, tokens)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if y == 0 {
		t.Fatal("expected wrapping")
	}
	if out.Bounds().Dy() != y+w.LineHeight {
		t.Fatalf("canvas height %d does not cover last line at %d", out.Bounds().Dy(), y)
	}
	if out.Bounds().Dx() != w.Limit {
		t.Fatalf("canvas width %d, want %d", out.Bounds().Dx(), w.Limit)
	}
}

func TestWriteTruncatesLongWord(t *testing.T) {
	w := newWrapper(t, 60)
	got := w.fit("Supercalifragilistic", 60)
	if len(got) < 3 || got[len(got)-3:] != "..." {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if Width(w.Face, got) > 60 {
		t.Fatalf("%q is still too wide", got)
	}
	if w.fit("ok", 60) != "ok" {
		t.Fatal("short word should be untouched")
	}
}

func TestCentered(t *testing.T) {
	w := newWrapper(t, 200)
	one, err := w.Centered(Tokenize("short", nil))
	if err != nil {
		t.Fatalf("centered: %v", err)
	}
	if one.Bounds().Dx() != 200 || one.Bounds().Dy() != 20 {
		t.Fatalf("expected 200x20, got %v", one.Bounds())
	}
	// Centering leaves the left edge clear.
	for y := 0; y < 20; y++ {
		if one.NRGBAAt(0, y).A != 0 {
			t.Fatalf("expected blank left edge at y=%d", y)
		}
	}

	many, err := w.Centered(Tokenize("a much longer trait text that wraps over several centered lines", nil))
	if err != nil {
		t.Fatalf("centered: %v", err)
	}
	if many.Bounds().Dy() <= 20 || many.Bounds().Dy()%20 != 0 {
		t.Fatalf("expected several whole lines, got height %d", many.Bounds().Dy())
	}
}

func TestColon(t *testing.T) {
	face, err := Embedded().Face(30)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	defer face.Close()
	c := Colon(face, color.NRGBA{A: 255}, 30)
	if c.Bounds().Dy() != 30 || c.Bounds().Dx() < 1 {
		t.Fatalf("unexpected colon bounds %v", c.Bounds())
	}
}
