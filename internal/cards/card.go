package cards

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/config"
	"github.com/youruser/cardgen/internal/costs"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/sigils"
	"github.com/youruser/cardgen/internal/text"
)

var black = color.NRGBA{A: 0xff}

// Renderer composes card images. It is safe for concurrent use: all per-card
// state lives in the layout built by each Render call.
type Renderer struct {
	cfg   *config.Config
	src   assets.Source
	fonts *text.Fonts
	reg   *sigils.Registry
	sig   *sigils.Renderer
	costs *costs.Assembler
}

func NewRenderer(cfg *config.Config, src assets.Source, fonts *text.Fonts, reg *sigils.Registry) *Renderer {
	return &Renderer{
		cfg:   cfg,
		src:   src,
		fonts: fonts,
		reg:   reg,
		sig:   sigils.NewRenderer(cfg, src, fonts),
		costs: costs.NewAssembler(src, cfg),
	}
}

// Sigils exposes the sigil renderer shared with the card renderer.
func (r *Renderer) Sigils() *sigils.Renderer { return r.sig }

// Costs exposes the cost assembler shared with the card renderer.
func (r *Renderer) Costs() *costs.Assembler { return r.costs }

// Config is the configuration the renderer was built with.
func (r *Renderer) Config() *config.Config { return r.cfg }

// Registry returns the definitions the renderer resolves names against.
func (r *Renderer) Registry() *sigils.Registry { return r.reg }

// Render parses a card table row and composes its image.
func (r *Renderer) Render(rec Record) (*image.NRGBA, Card, error) {
	c, err := ParseCard(rec)
	if err != nil {
		return nil, c, err
	}
	img, _, err := r.RenderCard(c)
	return img, c, err
}

// RenderCard composes one card and reports how its sigils were laid out.
func (r *Renderer) RenderCard(c Card) (*image.NRGBA, Resolution, error) {
	cfg := r.cfg
	var res Resolution
	if !cfg.HasTemple(c.Temple) {
		return nil, res, &DataError{Card: c.Name, Field: "Temple", Err: fmt.Errorf("%q is not a valid temple", c.Temple)}
	}
	if _, err := BottomOutlineY(cfg.Layout, cfg.Flags, c.Tier, c.Temple, false); err != nil {
		return nil, res, &DataError{Card: c.Name, Field: "Tier", Err: err}
	}

	lo := &layout{
		r:         r,
		card:      c,
		fileTier:  c.Tier,
		bloodless: c.Bloodless() && cfg.Flags.BloodlessOutline,
		textColor: cfg.TextColor(c.Temple),
	}
	if c.Tier == TierSideDeck {
		lo.fileTier = TierCommon
	}
	if lo.bloodless {
		lo.sac = "Terrain"
	}

	backName := "cardbacks/" + lo.fileTier + lo.sac + "Cardback"
	back, err := assets.Stripe(r.src, backName, cfg.Temples, c.Temple)
	if err != nil {
		return nil, res, &AssetError{Card: c.Name, Asset: backName, Err: err}
	}
	lo.img = imagepkg.Scale(back, imagepkg.Upscale)

	cost, err := costs.Parse(c.Cost)
	if err != nil {
		return nil, res, &DataError{Card: c.Name, Field: "Cost", Err: err}
	}

	if cfg.Flags.TextOverArt {
		if err := lo.pasteArt(cost); err != nil {
			return nil, res, err
		}
	}

	if contains(c.Tribes, "Conduit") && cfg.Flags.ConduitTribeOverlay {
		lo.conduit = "NullConduit"
	}
	lo.collectElements()
	if lo.conduit != "" {
		name := "conduit_indicators/" + lo.conduit
		img, err := r.src.Image(name)
		if err != nil {
			return nil, res, &AssetError{Card: c.Name, Asset: name, Err: err}
		}
		lo.conduitIm = img
	}

	if err := lo.drawText(); err != nil {
		return nil, res, err
	}

	lo.top = cfg.Layout.SigilTopHeight
	if lo.conduitIm != nil {
		lo.top += lo.conduitIm.Bounds().Dy()
	}
	res, err = lo.Resolve()
	if err != nil {
		return nil, res, wrapAsset(c.Name, err)
	}

	if !cfg.Flags.TextOverArt {
		if err := lo.pasteArt(cost); err != nil {
			return nil, res, err
		}
	}
	if err := lo.drawStats(); err != nil {
		return nil, res, err
	}
	return lo.img, res, nil
}

// wrapAsset tags missing-asset failures from sigil rendering as card asset errors.
func wrapAsset(card string, err error) error {
	var ae *AssetError
	var de *DataError
	if errors.As(err, &ae) || errors.As(err, &de) {
		return err
	}
	if errors.Is(err, assets.ErrNotFound) {
		return &AssetError{Card: card, Asset: "sigil", Err: err}
	}
	return err
}

// collectElements copies each named sigil and trait into fresh instances,
// hands out tokens in order and picks the conduit indicator.
func (lo *layout) collectElements() {
	c := lo.card
	showBloodless := lo.r.cfg.Flags.ShowBloodlessText
	tok := 0
	add := func(d sigils.Definition, list *[]*sigils.Instance) {
		inst := d.NewInstance()
		if inst.NeedsToken() && len(c.Tokens) > 0 {
			inst.SetToken(c.Tokens[tok%len(c.Tokens)])
			tok++
		}
		if inst.IsAttackSigil {
			lo.hasAttack = true
		}
		*list = append(*list, inst)
	}

	for _, name := range c.Sigils {
		if name == "Bloodless" && !showBloodless {
			continue
		}
		d, ok := lo.r.reg.Lookup(name)
		if !ok {
			log.Printf("card %q: unknown sigil %q, skipping", c.Name, name)
			continue
		}
		if d.IsTrait {
			add(d, &lo.traits)
			continue
		}
		add(d, &lo.sigils)
		if strings.Contains(name, "Conduit") && !(lo.conduit != "" && name == "Null Conduit") {
			lo.conduit = assets.FileName(name)
		}
	}
	for _, name := range c.Traits {
		if name == "Bloodless" && !showBloodless {
			continue
		}
		d, ok := lo.r.reg.Trait(name)
		if !ok {
			log.Printf("card %q: unknown trait %q, skipping", c.Name, name)
			continue
		}
		add(d, &lo.traits)
	}
}

// pasteArt draws the card art and the cost strip.
func (lo *layout) pasteArt(cost []costs.Cost) error {
	art, err := lo.loadArt()
	if err != nil {
		return err
	}
	lo.over(art, 0, 0)

	if len(cost) == 0 {
		return nil
	}
	strip, err := lo.r.costs.Strip(cost, lo.card.Temple)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return &AssetError{Card: lo.card.Name, Asset: "costs", Err: err}
		}
		return &DataError{Card: lo.card.Name, Field: "Cost", Err: err}
	}
	l := lo.r.cfg.Layout
	b := strip.Bounds()
	lo.over(strip, l.CostRightBorder-b.Dx(), l.CostBottom-b.Dy()-lo.r.cfg.Costs.Margin)
	return nil
}

// loadArt prefers the full-size "-alt" art for alternate cards and falls back
// to the pixel art, which is upscaled.
func (lo *layout) loadArt() (image.Image, error) {
	name := lo.card.Name
	file := assets.FileName(strings.ReplaceAll(name, "_alt", ""))
	if strings.Contains(name, "_alt") {
		img, err := lo.r.src.Image("card_art/" + file + "-alt")
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, assets.ErrNotFound) {
			return nil, &AssetError{Card: name, Asset: "card_art/" + file + "-alt", Err: err}
		}
		log.Printf("card %q: no alternate art, using card_art/%s", name, file)
	}
	img, err := lo.r.src.Image("card_art/" + file)
	if err != nil {
		return nil, &AssetError{Card: name, Asset: "card_art/" + file, Err: err}
	}
	return imagepkg.Scale(img, imagepkg.Upscale), nil
}
