package cards

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/youruser/cardgen/internal/text"
)

// FoldName strips diacritics so names render with fonts lacking accented
// glyphs, and drops the alternate-art marker.
func FoldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ReplaceAll(folded, "_alt", "")
}

// TruncateFlavor shortens flavor text at word boundaries, adding an ellipsis
// and restoring a closing quote, until width accepts it.
func TruncateFlavor(s string, maxWidth float64, width func(string) float64) string {
	for width(s) > maxWidth && len(s) > len("...") {
		limit := strings.LastIndex(s, " ")
		if limit < 0 {
			limit = max0(len(s) - 6)
		}
		s = s[:limit] + "..."
		if strings.Contains(s, "''") {
			s += "''"
		}
	}
	return s
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (lo *layout) face(size int) (font.Face, error) {
	f, err := lo.r.fonts.Face(size)
	if err != nil {
		return nil, fmt.Errorf("card %q: font size %d: %w", lo.card.Name, size, err)
	}
	return f, nil
}

func (lo *layout) drawText() error {
	if err := lo.drawName(); err != nil {
		return err
	}
	face, err := lo.face(lo.r.cfg.Layout.FlavorText)
	if err != nil {
		return err
	}
	defer face.Close()
	lo.drawFlavor(face)
	if lo.r.cfg.Flags.WriteCardDescription {
		lo.drawDescription(face)
	}
	return nil
}

// drawName shrinks the font a pixel at a time, nudging the baseline down half
// a pixel per step, until the name fits max_name_width.
func (lo *layout) drawName() error {
	l := lo.r.cfg.Layout
	name := FoldName(lo.card.Name)
	size := l.Name
	y := float64(l.CardNameTopHeight)

	face, err := lo.face(size)
	if err != nil {
		return err
	}
	for text.Width(face, name) > float64(l.MaxNameWidth) && size > 1 {
		face.Close()
		size--
		y += 0.5
		if face, err = lo.face(size); err != nil {
			return err
		}
	}
	defer face.Close()

	x := float64(l.CardNameLeft)
	if lo.r.cfg.Flags.CenterCardName {
		x = float64(int((float64(lo.img.Bounds().Dx()) - text.Width(face, name)) / 2))
	}
	text.Draw(lo.img, face, name, x, int(y), black)
	return nil
}

func (lo *layout) drawFlavor(face font.Face) {
	l := lo.r.cfg.Layout
	s := strings.NewReplacer("\r", "", "\n", " ", `"`, "''").Replace(lo.card.FlavorText)
	if s == "BLANK" || s == "" {
		return
	}
	s = TruncateFlavor(s, float64(l.MaxFlavorTextWidth), func(v string) float64 { return text.Width(face, v) })
	x := float64(l.FlavorTextLeft + int(float64(l.FlavorTextWidth)-text.Width(face, s))/2)
	text.Draw(lo.img, face, s, x, l.FlavorTextTopHeight, lo.textColor)
}

// drawDescription writes "<tier> <temple> - <tribes>" centered on the card.
func (lo *layout) drawDescription(face font.Face) {
	desc := lo.card.Tier + " " + lo.card.Temple
	if len(lo.card.Tribes) > 0 {
		desc += " - " + strings.Join(lo.card.Tribes, " ")
	}
	x := float64(int((float64(lo.img.Bounds().Dx()) - text.Width(face, desc)) / 2))
	text.Draw(lo.img, face, desc, x, lo.r.cfg.Layout.DescriptionTop, lo.textColor)
}

// drawStats writes health, and power unless an attack sigil takes its place.
func (lo *layout) drawStats() error {
	cfg := lo.r.cfg
	face, err := lo.face(cfg.Layout.Stats)
	if err != nil {
		return err
	}
	defer face.Close()

	hc := cfg.Layout.HealthCoord
	text.Draw(lo.img, face, strconv.Itoa(lo.card.Health), float64(hc.X), hc.Y, black)

	if lo.hasAttack && (cfg.Flags.RemovePowerStat || cfg.Flags.AttackSigilOnPowerStat) {
		return nil
	}
	key := lo.card.Temple
	if lo.bloodless {
		key = "Terrain"
	}
	pc, ok := cfg.PowerCoord[key]
	if !ok {
		return &DataError{Card: lo.card.Name, Field: "Power", Err: fmt.Errorf("no power_coord for %q", key)}
	}
	text.Draw(lo.img, face, strconv.Itoa(lo.card.Power), float64(pc.X), pc.Y, black)
	return nil
}
