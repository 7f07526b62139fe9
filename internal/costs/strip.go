package costs

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
)

// Energy pip placement on the energy bar.
const (
	pipStep = 40
	pipTop  = 20
)

var gemColors = map[string]string{
	"emeralds":  "emerald",
	"sapphires": "sapphire",
	"rubies":    "ruby",
	"topazes":   "topaz",
	"amethysts": "amethyst",
	"garnets":   "garnet",
	"prisms":    "prism",
}

// Assembler renders cost glyphs from temple-striped sprite sheets.
type Assembler struct {
	Src     assets.Source
	Temples []string
	Cfg     config.Costs
}

func NewAssembler(src assets.Source, cfg *config.Config) *Assembler {
	return &Assembler{Src: src, Temples: cfg.Temples, Cfg: cfg.Costs}
}

// Strip renders every component left to right, Cfg.Margin pixels apart, each
// vertically centered on the tallest one.
func (a *Assembler) Strip(costs []Cost, temple string) (*image.NRGBA, error) {
	imgs := make([]image.Image, 0, len(costs))
	w, h := 0, 0
	for i, c := range costs {
		img, err := a.Image(c, temple)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		if i > 0 {
			w += a.Cfg.Margin
		}
		w += b.Dx()
		if b.Dy() > h {
			h = b.Dy()
		}
		imgs = append(imgs, img)
	}
	out := imagepkg.Blank(w, h)
	x := 0
	for _, img := range imgs {
		b := img.Bounds()
		out = imagepkg.Over(out, img, image.Pt(x, (h-b.Dy())/2))
		x += b.Dx() + a.Cfg.Margin
	}
	return out, nil
}

// Image renders a single component.
func (a *Assembler) Image(c Cost, temple string) (image.Image, error) {
	switch x := c.(type) {
	case Blood:
		return a.units("costs/blood/blood", x.Amount, a.Cfg.Blood, temple)
	case Bones:
		return a.units("costs/bones/bones", x.Amount, a.Cfg.Bones, temple)
	case Distress:
		return a.distress(x.Amount, temple)
	case Energy:
		return a.energy(x, temple)
	case Gems:
		return a.gems(x, temple)
	}
	return nil, fmt.Errorf("no image rule for %s cost", c.Kind())
}

func (a *Assembler) stripe(name, temple string) (image.Image, error) {
	return assets.Stripe(a.Src, name, a.Temples, temple)
}

func (a *Assembler) units(name string, n int, kind config.CostKind, temple string) (image.Image, error) {
	if kind.BigThreshold > 0 && n > kind.BigThreshold {
		return a.stripe(name+strconv.Itoa(n), temple)
	}
	unit, err := a.stripe(name, temple)
	if err != nil {
		return nil, err
	}
	return repeat([]image.Image{unit}, n, kind.Overlap), nil
}

// repeat tiles glyphs n times in a row, each overlapping the previous one by
// overlap pixels. A single glyph slice is reused for every position.
func repeat(glyphs []image.Image, n, overlap int) *image.NRGBA {
	if n <= 0 || len(glyphs) == 0 {
		return imagepkg.Blank(0, 0)
	}
	at := func(i int) image.Image { return glyphs[i%len(glyphs)] }
	w, h := 0, 0
	for i := 0; i < n; i++ {
		b := at(i).Bounds()
		w += b.Dx()
		if i > 0 {
			w -= overlap
		}
		if b.Dy() > h {
			h = b.Dy()
		}
	}
	out := imagepkg.Blank(w, h)
	x := 0
	for i := 0; i < n; i++ {
		g := at(i)
		b := g.Bounds()
		y := (h - b.Dy()) / 2
		if i == 0 {
			out = imaging.Paste(out, g, image.Pt(x, y))
		} else {
			out = imagepkg.Over(out, g, image.Pt(x, y))
		}
		x += b.Dx() - overlap
	}
	return out
}

// distress joins bar segments edge to edge, trimming the inner ends of each bar
// so the result reads as one continuous bar.
func (a *Assembler) distress(n int, temple string) (image.Image, error) {
	kind := a.Cfg.Distress
	if kind.BigThreshold > 0 && n > kind.BigThreshold {
		return a.stripe("costs/insanity/distress"+strconv.Itoa(n), temple)
	}
	bar, err := a.stripe("costs/insanity/distress_bar", temple)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return bar, nil
	}
	if n <= 0 {
		return imagepkg.Blank(0, 0), nil
	}
	b := bar.Bounds()
	right := kind.Overlap * 2 / 3
	left := kind.Overlap - right
	out := imagepkg.Blank(n*(b.Dx()-kind.Overlap)+kind.Overlap, b.Dy())
	x := 0
	for i := 0; i < n; i++ {
		r := image.Rect(b.Min.X+left, b.Min.Y, b.Max.X-right, b.Max.Y)
		switch i {
		case 0:
			r.Min.X = b.Min.X
		case n - 1:
			r.Max.X = b.Max.X
		}
		seg := imaging.Crop(bar, r)
		out = imaging.Paste(out, seg, image.Pt(x, 0))
		x += seg.Bounds().Dx()
	}
	return out, nil
}

func (a *Assembler) energy(e Energy, temple string) (image.Image, error) {
	if e.Current > a.Cfg.Energy.BigThreshold {
		cur, err := a.stripe("costs/energy/energy"+strconv.Itoa(e.Current), temple)
		if err != nil {
			return nil, err
		}
		if e.Max <= 0 {
			return cur, nil
		}
		over, err := a.stripe("costs/energy/overcharge"+strconv.Itoa(e.Max), temple)
		if err != nil {
			return nil, err
		}
		cb, ob := cur.Bounds(), over.Bounds()
		out := imaging.Paste(imagepkg.Blank(cb.Dx()+ob.Dx(), cb.Dy()), cur, image.Pt(0, 0))
		return imaging.Paste(out, over, image.Pt(cb.Dx(), 0)), nil
	}

	bar, err := a.stripe("costs/energy/energy_bar", temple)
	if err != nil {
		return nil, err
	}
	out := imaging.Clone(bar)
	x := bar.Bounds().Dx() - pipStep
	if e.Max > 0 {
		pip, err := a.Src.Image("costs/energy/overcharge")
		if err != nil {
			return nil, err
		}
		for i := 0; i < e.Max; i++ {
			out = imaging.Paste(out, pip, image.Pt(x, pipTop))
			x -= pipStep
		}
	}
	if e.Current > e.Max {
		pip, err := a.Src.Image("costs/energy/energy")
		if err != nil {
			return nil, err
		}
		for i := 0; i < e.Current-e.Max; i++ {
			out = imaging.Paste(out, pip, image.Pt(x, pipTop))
			x -= pipStep
		}
	}
	return out, nil
}

// GemAsset maps an entry such as "2 rubies" or "1 shattered emerald" to its
// asset name and quantity.
func GemAsset(entry string) (string, int, error) {
	fields := strings.Fields(entry)
	if len(fields) < 2 {
		return "", 0, &ParseError{Clause: entry}
	}
	qty, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", 0, &ParseError{Clause: entry, Err: err}
	}
	c := strings.ToLower(fields[len(fields)-1])
	if singular, ok := gemColors[c]; ok {
		c = singular
	}
	prefix := ""
	if strings.Contains(entry, "shattered") {
		prefix = "shattered_"
	}
	return "costs/gems/" + prefix + c, qty, nil
}

func (a *Assembler) gems(g Gems, temple string) (image.Image, error) {
	var glyphs []image.Image
	for _, entry := range g.Entries {
		name, qty, err := GemAsset(entry)
		if err != nil {
			return nil, err
		}
		img, err := a.stripe(name, temple)
		if err != nil {
			return nil, err
		}
		for i := 0; i < qty; i++ {
			glyphs = append(glyphs, img)
		}
	}
	return repeat(glyphs, len(glyphs), a.Cfg.Gems.Overlap), nil
}
