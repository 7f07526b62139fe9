package text

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

const ellipsis = "..."

// IconFunc returns the ready-to-paste image for an icon token.
type IconFunc func(Token) (image.Image, error)

// Wrapper lays a token stream out in lines of at most Limit pixels. The canvas
// grows by LineHeight for every new line; nothing else signals overflow.
type Wrapper struct {
	Face       font.Face
	LineHeight int
	Limit      int
	Color      color.NRGBA
	Icon       IconFunc
	Colon      image.Image
}

func (w *Wrapper) glyph(tok Token) (image.Image, error) {
	switch tok.Kind {
	case Icon:
		if w.Icon == nil {
			return nil, fmt.Errorf("no icon resolver for %q", tok.Text)
		}
		return w.Icon(tok)
	case ColonSep:
		if w.Colon == nil {
			return nil, fmt.Errorf("no colon glyph")
		}
		return w.Colon, nil
	}
	return nil, fmt.Errorf("token %s has no glyph", tok.Kind)
}

func (w *Wrapper) grow(canvas *image.NRGBA) *image.NRGBA {
	return imagepkg.Grow(canvas, w.Limit, canvas.Bounds().Dy()+w.LineHeight)
}

// Write continues the text on canvas at (start, y). Lines after the first start
// at xOffset. It returns the y of the last line and the canvas, which is
// reallocated whenever a line is added.
func (w *Wrapper) Write(canvas *image.NRGBA, xOffset, y int, start float64, tokens []Token) (int, *image.NRGBA, error) {
	size := start
	left := float64(xOffset)
	limit := float64(w.Limit)

	for _, tok := range tokens {
		if tok.Kind != Word {
			img, err := w.glyph(tok)
			if err != nil {
				return y, canvas, err
			}
			iw := float64(img.Bounds().Dx())
			if size+iw > limit {
				y += w.LineHeight
				canvas = w.grow(canvas)
				size = left
			}
			canvas = imagepkg.Over(canvas, img, image.Pt(int(size), y))
			size += iw
			continue
		}

		spaced := " " + tok.Text
		sw := Width(w.Face, spaced)
		if size+sw <= limit {
			Draw(canvas, w.Face, spaced, size, y, w.Color)
			size += sw
			continue
		}
		y += w.LineHeight
		canvas = w.grow(canvas)
		word := w.fit(tok.Text, limit-left)
		Draw(canvas, w.Face, word, left, y, w.Color)
		size = left + Width(w.Face, word)
	}
	return y, canvas, nil
}

// fit shortens a word that cannot fit even an empty line, cutting at the last
// space when there is one and appending an ellipsis.
func (w *Wrapper) fit(word string, max float64) string {
	if Width(w.Face, word) <= max {
		return word
	}
	for word != "" {
		if i := strings.LastIndex(strings.TrimRight(word, " "), " "); i > 0 {
			word = word[:i]
		} else {
			_, n := utf8.DecodeLastRuneInString(word)
			word = word[:len(word)-n]
		}
		if Width(w.Face, word+ellipsis) <= max {
			break
		}
	}
	return word + ellipsis
}

// Centered lays the tokens out with every line horizontally centered in a
// canvas Limit pixels wide. Line breaks are decided up front so each line's
// total width is known before it is drawn.
func (w *Wrapper) Centered(tokens []Token) (*image.NRGBA, error) {
	limit := float64(w.Limit)
	glyphs := make([]image.Image, len(tokens))

	lengths := []float64{0}
	counts := []int{0}
	add := func(width, bare float64) {
		last := len(lengths) - 1
		if counts[last] > 0 && lengths[last]+width > limit {
			lengths = append(lengths, bare)
			counts = append(counts, 1)
			return
		}
		lengths[last] += width
		counts[last]++
	}
	for i, tok := range tokens {
		if tok.Kind != Word {
			img, err := w.glyph(tok)
			if err != nil {
				return nil, err
			}
			glyphs[i] = img
			iw := float64(img.Bounds().Dx())
			add(iw, iw)
			continue
		}
		add(Width(w.Face, " "+tok.Text), Width(w.Face, tok.Text))
	}

	canvas := imagepkg.Blank(w.Limit, w.LineHeight)
	line, y, n := 0, 0, 0
	x := float64(int((limit - lengths[0]) / 2))
	next := func() {
		line++
		y += w.LineHeight
		canvas = w.grow(canvas)
		x = float64(int((limit - lengths[line]) / 2))
		n = 0
	}

	for i, tok := range tokens {
		if tok.Kind != Word {
			if n >= counts[line] {
				next()
			}
			canvas = imagepkg.Over(canvas, glyphs[i], image.Pt(int(x), y))
			x += float64(glyphs[i].Bounds().Dx())
		} else if n < counts[line] {
			s := " " + tok.Text
			Draw(canvas, w.Face, s, x, y, w.Color)
			x += Width(w.Face, s)
		} else {
			next()
			Draw(canvas, w.Face, tok.Text, x, y, w.Color)
			x += Width(w.Face, tok.Text)
		}
		n++
	}
	return canvas, nil
}
