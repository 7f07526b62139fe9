package cards

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/sigils"
)

// Vertical spacing in pixels.
const (
	sigilGap      = 5
	traitlineGap  = 6
	traitlineGrid = 10
)

// State is a stage of the sigil layout.
type State int

const (
	StateDefault State = iota
	StateShortened
	StateBaseGame
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateShortened:
		return "shortened"
	case StateBaseGame:
		return "base-game"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) mode() sigils.Mode {
	switch s {
	case StateShortened:
		return sigils.ModeShortened
	case StateBaseGame:
		return sigils.ModeBaseGame
	}
	return sigils.ModeDefault
}

// BottomOutlineY is the lowest y the sigil stack may reach before the card
// back's decorated bottom has to be replaced. Terrain thresholds apply to
// bloodless cards when bloodless outlines are enabled.
func BottomOutlineY(l config.Layout, f config.Flags, tier, temple string, bloodless bool) (int, error) {
	terrain := bloodless && f.BloodlessOutline
	switch tier {
	case TierCommon, TierSideDeck, TierTalking:
		if terrain {
			return l.MaxCommonTerrainHeight, nil
		}
		return l.MaxCommonHeight, nil
	case TierUncommon:
		if terrain {
			return l.MaxUncommonTerrainHeight, nil
		}
		return l.MaxUncommonHeight, nil
	case TierRare:
		if terrain {
			if y, ok := l.MaxRareTerrainHeight[temple]; ok {
				return y, nil
			}
			return l.MaxCommonTerrainHeight, nil
		}
		if y, ok := l.MaxRareHeight[temple]; ok {
			return y, nil
		}
		return l.MaxCommonHeight, nil
	}
	return 0, fmt.Errorf("tier not recognized: %q", tier)
}

// Evaluation is the measured height of a sigil stack in one formatting mode.
type Evaluation struct {
	// Bottom is the y reached after every sigil, banner and trait.
	Bottom int
	// TraitHeight covers the banner and all traits.
	TraitHeight int
	// Overflow is set when any element crosses the card's bottom edge.
	Overflow bool
	// UseEmptyBottom is set when Bottom passes the bottom outline.
	UseEmptyBottom bool
}

// Stage records one attempt of the layout state machine.
type Stage struct {
	State   State
	CanDraw bool
	Eval    Evaluation
}

// Resolution is the outcome of laying out one card's sigils and traits.
type Resolution struct {
	Stages []Stage
	Final  State
}

// layout is the per-card state of the resolver.
type layout struct {
	r         *Renderer
	card      Card
	fileTier  string
	sac       string
	bloodless bool
	textColor color.NRGBA
	sigils    []*sigils.Instance
	traits    []*sigils.Instance
	hasAttack bool
	conduit   string
	conduitIm image.Image
	traitline image.Image
	img       *image.NRGBA
	top       int
}

func (lo *layout) bottomY() (int, error) {
	return BottomOutlineY(lo.r.cfg.Layout, lo.r.cfg.Flags, lo.card.Tier, lo.card.Temple, lo.bloodless)
}

// Evaluate measures the stack in the given text mode without drawing.
func (lo *layout) Evaluate(st State) (Evaluation, error) {
	var ev Evaluation
	cardH := lo.img.Bounds().Dy()
	y := lo.top
	for _, s := range lo.sigils {
		img, err := lo.r.sig.Render(s, black, st.mode())
		if err != nil {
			return ev, err
		}
		h := img.Bounds().Dy()
		if y+h > cardH {
			ev.Overflow = true
		}
		y += h + sigilGap
	}

	if len(lo.traits) > 0 {
		tl, err := lo.loadTraitline()
		if err != nil {
			return ev, err
		}
		ev.TraitHeight = tl.Bounds().Dy()*imagepkg.Upscale + traitlineGap
	}
	for _, t := range lo.traits {
		img, err := lo.r.sig.Render(t, lo.textColor, sigils.ModeDefault)
		if err != nil {
			return ev, err
		}
		h := img.Bounds().Dy()
		if y+ev.TraitHeight+h > cardH {
			ev.Overflow = true
		}
		ev.TraitHeight += h
	}
	y += ev.TraitHeight
	ev.Bottom = y

	limit, err := lo.bottomY()
	if err != nil {
		return ev, &DataError{Card: lo.card.Name, Field: "Tier", Err: err}
	}
	ev.UseEmptyBottom = y > limit
	return ev, nil
}

func (lo *layout) loadTraitline() (image.Image, error) {
	if lo.traitline != nil {
		return lo.traitline, nil
	}
	tl, err := assets.Stripe(lo.r.src, "cardbacks/Traitlines", lo.r.cfg.Temples, lo.card.Temple)
	if err != nil {
		return nil, &AssetError{Card: lo.card.Name, Asset: "cardbacks/Traitlines", Err: err}
	}
	lo.traitline = tl
	return tl, nil
}

// decide applies the bottom-removal policy to an evaluation.
func (lo *layout) decide(ev Evaluation, st State) bool {
	f := lo.r.cfg.Flags
	if ev.UseEmptyBottom {
		if !f.AllowCardBottomRemoval {
			return false
		}
		if !f.PrioritizeRemovingBottom && st == StateDefault {
			return false
		}
	}
	return !ev.Overflow
}

// Resolve walks Default -> Shortened -> BaseGame over the enabled states and
// draws the first layout that fits. The last enabled text state draws even
// when it does not fit, so every card gets its sigils; the result may overflow
// visibly in that case.
func (lo *layout) Resolve() (Resolution, error) {
	f := lo.r.cfg.Flags
	var states []State
	if f.AllowDefaultFormatting {
		states = append(states, StateDefault)
	}
	if f.AllowShorterFormatting {
		states = append(states, StateShortened)
	}

	var res Resolution
	for i, st := range states {
		ev, err := lo.Evaluate(st)
		if err != nil {
			res.Final = StateFailed
			return res, err
		}
		can := lo.decide(ev, st)
		if !can && i == len(states)-1 && !f.AllowBaseGameDisplay {
			can = true
		}
		res.Stages = append(res.Stages, Stage{State: st, CanDraw: can, Eval: ev})
		if !can {
			continue
		}
		if err := lo.draw(st, ev); err != nil {
			res.Final = StateFailed
			return res, err
		}
		res.Final = st
		return res, nil
	}

	if f.AllowBaseGameDisplay {
		if err := lo.drawBaseGame(); err != nil {
			res.Final = StateFailed
			return res, err
		}
		res.Stages = append(res.Stages, Stage{State: StateBaseGame, CanDraw: true})
		res.Final = StateBaseGame
		return res, nil
	}
	res.Final = StateFailed
	return res, fmt.Errorf("card %q: no formatting mode enabled", lo.card.Name)
}

func (lo *layout) over(img image.Image, x, y int) {
	lo.img = imagepkg.Over(lo.img, img, image.Pt(x, y))
}

func (lo *layout) drawConduit() {
	if lo.conduitIm == nil {
		return
	}
	x := (lo.img.Bounds().Dx() - lo.conduitIm.Bounds().Dx()) / 2
	lo.over(lo.conduitIm, x, lo.r.cfg.Layout.ConduitTopHeight)
}

func (lo *layout) emptyBottom() (image.Image, error) {
	var (
		name string
		img  image.Image
		err  error
	)
	if lo.card.Tier != TierRare {
		name = "cardbacks/" + lo.fileTier + lo.sac + "Cardback_bt"
		img, err = assets.Stripe(lo.r.src, name, lo.r.cfg.Temples, lo.card.Temple)
	} else {
		name = "cardbacks/" + lo.fileTier + lo.card.Temple + lo.sac + "Cardback_bt"
		img, err = lo.r.src.Image(name)
	}
	if err != nil {
		return nil, &AssetError{Card: lo.card.Name, Asset: name, Err: err}
	}
	return imagepkg.Scale(img, imagepkg.Upscale), nil
}

func (lo *layout) draw(st State, ev Evaluation) error {
	cfg := lo.r.cfg
	l := cfg.Layout
	W, H := lo.img.Bounds().Dx(), lo.img.Bounds().Dy()

	emptied := ev.UseEmptyBottom && cfg.Flags.AllowCardBottomRemoval
	if emptied {
		bottom, err := lo.emptyBottom()
		if err != nil {
			return err
		}
		lo.over(bottom, 0, H-bottom.Bounds().Dy())
	}

	lo.drawConduit()

	y := lo.top
	for _, s := range lo.sigils {
		img, err := lo.r.sig.Render(s, black, st.mode())
		if err != nil {
			return err
		}
		lo.over(img, l.SigilLeftBorder, y)
		y += img.Bounds().Dy() + sigilGap
	}

	if len(lo.traits) > 0 {
		tl, err := lo.loadTraitline()
		if err != nil {
			return err
		}
		banner := imagepkg.Scale(tl, imagepkg.Upscale)
		bx := (W - banner.Bounds().Dx()) / 2
		bx -= bx % traitlineGrid
		var by int
		if cfg.Flags.TraitsAtBottom && !emptied {
			limit, err := lo.bottomY()
			if err != nil {
				return &DataError{Card: lo.card.Name, Field: "Tier", Err: err}
			}
			by = limit - ev.TraitHeight
			by -= by % traitlineGrid
		} else {
			by = y - y%traitlineGrid + traitlineGrid
		}
		y = by + banner.Bounds().Dy() + traitlineGap
		lo.over(banner, bx, by)
	}

	for _, t := range lo.traits {
		img, err := lo.r.sig.Render(t, lo.textColor, sigils.ModeDefault)
		if err != nil {
			return err
		}
		lo.over(img, l.SigilLeftBorder, y)
		y += img.Bounds().Dy()
		if t.IsAttackSigil {
			if err := lo.drawAttackSigil(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawAttackSigil centers an attack trait's icon in the power stat box.
func (lo *layout) drawAttackSigil(t *sigils.Instance) error {
	key := lo.card.Temple
	if lo.bloodless {
		key = "Terrain"
	}
	box, ok := lo.r.cfg.AttackSigilBox[key]
	if !ok {
		log.Printf("card %q: no attack_sigil_box for %q, skipping %s overlay", lo.card.Name, key, t.Name)
		return nil
	}
	icon, err := lo.r.sig.Icon(t.Definition, black)
	if err != nil {
		return &AssetError{Card: lo.card.Name, Asset: "sigils/" + assets.FileName(t.Name), Err: err}
	}
	ib := icon.Bounds()
	x := box.X0 + ((box.X1-box.X0)-ib.Dx())/2
	y := box.Y0 + ((box.Y1-box.Y0)-ib.Dy())/2
	lo.over(icon, x, y)
	return nil
}

// BaseGameRows splits n sigils into display rows: one row for up to two, else
// an upper row of ceil(n/2) and a lower row of floor(n/2).
func BaseGameRows(n int) []int {
	switch {
	case n <= 0:
		return nil
	case n < 3:
		return []int{n}
	}
	return []int{(n + 1) / 2, n / 2}
}

func (lo *layout) drawBaseGame() error {
	l := lo.r.cfg.Layout
	lo.drawConduit()

	rows := BaseGameRows(len(lo.sigils))
	switch len(rows) {
	case 0:
		return nil
	case 1:
		return lo.drawRow(lo.sigils, (l.SigilTopHeight+l.SigilLowerTopHeight)/2)
	}
	if err := lo.drawRow(lo.sigils[:rows[0]], l.SigilTopHeight); err != nil {
		return err
	}
	return lo.drawRow(lo.sigils[rows[0]:], l.SigilLowerTopHeight)
}

// drawRow centers each sigil in an equal share of the sigil area's width.
func (lo *layout) drawRow(row []*sigils.Instance, y int) error {
	l := lo.r.cfg.Layout
	slot := l.SigilSpace / len(row)
	x := l.SigilLeftBorder
	for _, s := range row {
		img, err := lo.r.sig.Render(s, black, sigils.ModeBaseGame)
		if err != nil {
			return err
		}
		lo.over(img, x+(slot-img.Bounds().Dx())/2, y)
		x += slot
	}
	return nil
}
