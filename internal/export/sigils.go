package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/youruser/cardgen/internal/assets"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/sigils"
)

const traitlineGrid = 10

type format struct {
	enabled bool
	mode    sigils.Mode
	dir     string
}

func (e *Exporter) formats() []format {
	x := e.cfg.Export
	return []format{
		{x.NormalFormatting, sigils.ModeDefault, "sigils"},
		{x.ShorterFormatting, sigils.ModeShortened, "short sigils"},
		{x.BaseGameFormatting, sigils.ModeBaseGame, "base game sigils"},
	}
}

func (e *Exporter) exportSigil(j job) (output, error) {
	name := j.rec.Name()
	def, ok := e.cards.Registry().Sigil(name)
	if !ok {
		return output{}, fmt.Errorf("sigil %q not registered", name)
	}
	r := e.cards.Sigils()
	c := e.cfg.Export.Color.NRGBA()
	inst := def.NewInstance()

	for _, f := range e.formats() {
		if !f.enabled {
			continue
		}
		img, err := r.Render(inst, c, f.mode)
		if err != nil {
			return output{}, err
		}
		if err := imagepkg.SavePNG(img, e.path(f.dir, fileName(name))); err != nil {
			return output{}, err
		}
	}

	if e.cfg.Export.SigilPatches {
		if err := e.exportPatch(def, c); err != nil {
			return output{}, err
		}
	}

	l := e.cfg.Layout
	icons := []struct {
		enabled bool
		height  int
		suffix  string
	}{
		{e.cfg.Export.SigilDescriptionIcon, l.SigilDescriptionIconSize, "_icon"},
		{e.cfg.Export.TraitDescriptionIcon, l.TraitDescriptionIconSize, "_trait-icon"},
	}
	for _, ic := range icons {
		if !ic.enabled {
			continue
		}
		img, err := r.DescriptionIcon(def, c, ic.height)
		if err != nil {
			return output{}, err
		}
		if err := imagepkg.SavePNG(img, e.path("sigil icons", fileName(name+ic.suffix))); err != nil {
			return output{}, err
		}
	}
	return output{index: j.index, name: name}, nil
}

// exportPatch centers the sigil icon on the embroidered patch backdrop.
func (e *Exporter) exportPatch(def sigils.Definition, c color.NRGBA) error {
	patch, err := e.src.Image("patch")
	if err != nil {
		return fmt.Errorf("patch backdrop: %w", err)
	}
	icon, err := e.cards.Sigils().Icon(def, c)
	if err != nil {
		return err
	}
	pb, ib := patch.Bounds(), icon.Bounds()
	img := imagepkg.Over(patch, icon, image.Pt((pb.Dx()-ib.Dx())/2, (pb.Dy()-ib.Dy())/2))
	return imagepkg.SavePNG(img, e.path("sigil patches", fileName(def.Name)))
}

func (e *Exporter) exportTrait(j job) (output, error) {
	name := j.rec.Name()
	def, ok := e.cards.Registry().Trait(name)
	if !ok {
		return output{}, fmt.Errorf("trait %q not registered", name)
	}
	img, err := e.traitImage(def)
	if err != nil {
		return output{}, err
	}
	if err := imagepkg.SavePNG(img, e.path("traits", fileName(name))); err != nil {
		return output{}, err
	}
	return output{index: j.index, name: name}, nil
}

// traitImage renders a trait, under its temple's banner when a traitline
// temple is configured.
func (e *Exporter) traitImage(def sigils.Definition) (*image.NRGBA, error) {
	temple := e.cfg.Export.Traitline
	withBanner := e.cfg.HasTemple(temple)
	c := color.NRGBA{A: 0xff}
	if withBanner {
		c = e.cfg.TextColor(temple)
	}
	img, err := e.cards.Sigils().Render(def.NewInstance(), c, sigils.ModeDefault)
	if err != nil {
		return nil, err
	}
	if !withBanner {
		return img, nil
	}

	tl, err := assets.Stripe(e.src, "cardbacks/Traitlines", e.cfg.Temples, temple)
	if err != nil {
		return nil, err
	}
	banner := imagepkg.Scale(tl, imagepkg.Upscale)
	bb, ib := banner.Bounds(), img.Bounds()
	w := max(bb.Dx(), ib.Dx())
	bx := (w - bb.Dx()) / 2
	bx -= bx % traitlineGrid
	out := imagepkg.Blank(w, bb.Dy()+ib.Dy())
	out = imagepkg.Over(out, banner, image.Pt(bx, 0))
	out = imagepkg.Over(out, img, image.Pt(0, bb.Dy()))
	return out, nil
}
