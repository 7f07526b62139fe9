package sigils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/text"
)

// captionGap separates the icon from its caption in base-game images.
const captionGap = 5

// Renderer turns sigil and trait instances into images. It holds no mutable
// state and may be shared between goroutines.
type Renderer struct {
	cfg   *config.Config
	src   assets.Source
	fonts *text.Fonts
}

func NewRenderer(cfg *config.Config, src assets.Source, fonts *text.Fonts) *Renderer {
	return &Renderer{cfg: cfg, src: src, fonts: fonts}
}

// Icon loads the sigil's icon scaled by sigil_img_scale. Non-black colors
// recolor it; the outline variant is used instead when outlines are forced or
// the sigil cannot be colored.
func (r *Renderer) Icon(d Definition, c color.NRGBA) (*image.NRGBA, error) {
	name := "sigils/" + assets.FileName(d.Name)
	var img image.Image
	if r.cfg.Flags.ShowOutlineOnly || (!imagepkg.IsBlack(c) && !d.CanBeColored) {
		o, err := r.src.Image(name + "_outline")
		switch {
		case err == nil:
			img = o
		case !errors.Is(err, assets.ErrNotFound):
			return nil, err
		}
	}
	if img == nil {
		var err error
		if img, err = r.src.Image(name); err != nil {
			return nil, err
		}
	}
	out := imagepkg.ScaleRatio(img, float64(r.cfg.Layout.SigilImgScale)/100)
	if !imagepkg.IsBlack(c) {
		out = imagepkg.Recolor(out, c)
	}
	return out, nil
}

// Render returns the image of inst in mode, rendering and memoizing it on a miss.
func (r *Renderer) Render(inst *Instance, c color.NRGBA, mode Mode) (*image.NRGBA, error) {
	if img, ok := inst.Cached(mode, c); ok {
		return img, nil
	}

	var (
		img *image.NRGBA
		err error
	)
	switch {
	case inst.IsTrait && mode == ModeBaseGame:
		img = imagepkg.Blank(0, 0)
	case inst.IsTrait:
		img, err = r.trait(inst, c)
	default:
		var icon *image.NRGBA
		if icon, err = r.Icon(inst.Definition, c); err != nil {
			break
		}
		if mode == ModeBaseGame {
			img, err = r.baseGame(inst, icon, c)
		} else {
			img, err = r.sigil(inst, icon, c, mode == ModeShortened)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rendering %s (%s): %w", inst.Name, mode, err)
	}
	inst.store(mode, c, img)
	return img, nil
}

func (r *Renderer) inlineIcon(height int, c color.NRGBA) text.IconFunc {
	return func(tok text.Token) (image.Image, error) {
		img, err := r.src.Image(tok.AssetName())
		if err != nil {
			return nil, err
		}
		out := imagepkg.ResizeToHeight(img, height)
		if !imagepkg.IsBlack(c) {
			out = imagepkg.Recolor(out, c)
		}
		return out, nil
	}
}

func (r *Renderer) faces(sizes ...int) ([]font.Face, func(), error) {
	faces := make([]font.Face, 0, len(sizes))
	closeAll := func() {
		for _, f := range faces {
			f.Close()
		}
	}
	for _, s := range sizes {
		f, err := r.fonts.Face(s)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		faces = append(faces, f)
	}
	return faces, closeAll, nil
}

func (r *Renderer) sigil(inst *Instance, icon *image.NRGBA, c color.NRGBA, shortened bool) (*image.NRGBA, error) {
	l := r.cfg.Layout
	descSpace := l.SigilDescSpace()
	faces, done, err := r.faces(l.SigilName, l.SigilDescription)
	if err != nil {
		return nil, err
	}
	defer done()
	nameFace, descFace := faces[0], faces[1]

	tokens := text.Tokenize(inst.Text(), r.cfg.Icons)
	w := &text.Wrapper{
		Face:       descFace,
		LineHeight: l.SigilDescription,
		Limit:      descSpace,
		Color:      c,
		Icon:       r.inlineIcon(l.SigilDescriptionIconSize, c),
		Colon:      text.Colon(descFace, c, l.SigilDescription),
	}

	canvas := imagepkg.Blank(descSpace, l.SigilName)
	text.Draw(canvas, nameFace, inst.Name, 0, 0, c)
	size := math.Round(text.Width(nameFace, inst.Name))

	var y int
	if shortened {
		colon := text.Colon(nameFace, c, l.SigilDescription)
		canvas = imagepkg.Over(canvas, colon, image.Pt(int(size), 0))
		size += float64(colon.Bounds().Dx())
		y, canvas, err = w.Write(canvas, 0, l.SigilName-l.SigilDescription-1, size, tokens)
	} else {
		// The description gets its own line below the name. Its first word is
		// placed directly so it lines up with the wrapped lines below it.
		canvas = imagepkg.Grow(canvas, descSpace, 2*l.SigilName)
		size = float64(l.SigilDescription)
		if len(tokens) > 0 && tokens[0].Kind == text.Word {
			text.Draw(canvas, descFace, tokens[0].Text, size, l.SigilName, c)
			size += text.Width(descFace, tokens[0].Text)
			tokens = tokens[1:]
		}
		y, canvas, err = w.Write(canvas, l.SigilDescription, l.SigilName, size, tokens)
	}
	if err != nil {
		return nil, err
	}

	textH := y + l.SigilDescription
	ib := icon.Bounds()
	finalH := max(textH, ib.Dy())
	out := imagepkg.Blank(l.SigilSpace, finalH)
	out = imagepkg.Over(out, icon, image.Pt((l.SigilImgSpace-ib.Dx())/2, min((finalH-ib.Dy())/2, 10)))
	block := imaging.Crop(canvas, image.Rect(0, 0, canvas.Bounds().Dx(), textH))
	out = imagepkg.Over(out, block, image.Pt(l.SigilImgSpace, (finalH-textH)/2))
	return out, nil
}

func (r *Renderer) baseGame(inst *Instance, icon *image.NRGBA, c color.NRGBA) (*image.NRGBA, error) {
	l := r.cfg.Layout
	face, err := r.fonts.Face(l.SigilName)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	caption := imagepkg.Blank(l.SigilDescSpace(), l.SigilName)
	text.Draw(caption, face, inst.Name, 0, 0, c)
	tw := int(math.Round(text.Width(face, inst.Name)))
	caption = imaging.Crop(caption, image.Rect(0, 0, tw, l.SigilName))

	ib, cb := icon.Bounds(), caption.Bounds()
	w := max(ib.Dx(), cb.Dx())
	out := imagepkg.Blank(w, ib.Dy()+cb.Dy()+captionGap)
	out = imagepkg.Over(out, icon, image.Pt((w-ib.Dx())/2, 0))
	out = imagepkg.Over(out, caption, image.Pt((w-cb.Dx())/2, ib.Dy()+captionGap))
	return out, nil
}

func (r *Renderer) trait(inst *Instance, c color.NRGBA) (*image.NRGBA, error) {
	l := r.cfg.Layout
	face, err := r.fonts.Face(l.TraitDescription)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	w := &text.Wrapper{
		Face:       face,
		LineHeight: l.TraitDescription,
		Limit:      l.SigilSpace - 10,
		Color:      c,
		Icon:       r.inlineIcon(l.TraitDescriptionIconSize, c),
		Colon:      text.Colon(face, c, l.TraitDescription),
	}
	return w.Centered(text.Tokenize(inst.Text(), r.cfg.Icons))
}

// DescriptionIcon is the icon resized to an inline description height, as
// exported alongside sigils.
func (r *Renderer) DescriptionIcon(d Definition, c color.NRGBA, height int) (*image.NRGBA, error) {
	icon, err := r.Icon(d, c)
	if err != nil {
		return nil, err
	}
	return imagepkg.ResizeToHeight(icon, height), nil
}
