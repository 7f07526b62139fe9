// Package sigils holds sigil and trait definitions and renders them to images.
package sigils

import (
	"image"
	"image/color"
	"strings"
)

// TokenPlaceholder is replaced by the card's token value in descriptions.
const TokenPlaceholder = "TOKEN"

// Definition is a sigil or trait as loaded from its table. It is never mutated.
type Definition struct {
	Name          string
	Description   string
	IsAttackSigil bool
	IsTrait       bool
	CanBeColored  bool
}

// NeedsToken reports whether the description embeds the token placeholder.
func (d Definition) NeedsToken() bool {
	return strings.Contains(d.Description, TokenPlaceholder)
}

// AsTrait returns the trait version of the definition.
func (d Definition) AsTrait() Definition {
	d.IsTrait = true
	d.CanBeColored = true
	return d
}

// NewInstance returns a fresh per-card copy with an empty cache.
func (d Definition) NewInstance() *Instance {
	return &Instance{Definition: d}
}

type Mode int

const (
	ModeDefault Mode = iota
	ModeShortened
	ModeBaseGame
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeShortened:
		return "shortened"
	case ModeBaseGame:
		return "base-game"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names used by the API and CLI.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "", "default", "normal":
		return ModeDefault, true
	case "short", "shortened", "shorter":
		return ModeShortened, true
	case "base", "base-game", "basegame":
		return ModeBaseGame, true
	}
	return 0, false
}

type slot struct {
	img   *image.NRGBA
	color color.NRGBA
}

// Instance is one sigil or trait on one card: the definition, its resolved
// token and the rendered image for each formatting mode.
type Instance struct {
	Definition
	token    string
	hasToken bool
	cache    [modeCount]*slot
}

// SetToken assigns the token and drops the text-bearing cached images.
func (i *Instance) SetToken(token string) {
	i.token = token
	i.hasToken = true
	i.Invalidate()
}

func (i *Instance) Token() (string, bool) { return i.token, i.hasToken }

// Invalidate clears the default and shortened images. The base-game image is
// derived from the icon and name only.
func (i *Instance) Invalidate() {
	i.cache[ModeDefault] = nil
	i.cache[ModeShortened] = nil
}

// Text is the description with the token substituted.
func (i *Instance) Text() string {
	if !i.hasToken || i.token == "" {
		return i.Description
	}
	return strings.ReplaceAll(i.Description, TokenPlaceholder, i.token)
}

// Cached returns the memoized image for mode if it was rendered with c.
func (i *Instance) Cached(mode Mode, c color.NRGBA) (*image.NRGBA, bool) {
	s := i.cache[mode]
	if s == nil || s.color != c {
		return nil, false
	}
	return s.img, true
}

func (i *Instance) store(mode Mode, c color.NRGBA, img *image.NRGBA) {
	i.cache[mode] = &slot{img: img, color: c}
}
