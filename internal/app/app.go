// Package app wires configuration, fonts, assets and the sigil registry into
// the renderers shared by the CLI and the server.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/config"
	"github.com/youruser/cardgen/internal/sigils"
	"github.com/youruser/cardgen/internal/text"
)

// App holds the read-only state every render shares.
type App struct {
	Config *config.Config
	Assets assets.Source
	Cards  *cards.Renderer
}

// Fonts loads the configured font, or the embedded one when none is set.
func Fonts(p config.Paths) (*text.Fonts, error) {
	if p.Font == "" {
		return text.Embedded(), nil
	}
	return text.Load(FontPath(p))
}

// FontPath is fonts_dir/font, with ".ttf" added when font has no extension.
func FontPath(p config.Paths) string {
	name := p.Font
	if filepath.Ext(name) == "" {
		name += ".ttf"
	}
	return filepath.Join(p.FontsDir, name)
}

// Rules derives the sigil mirroring rules from the card flags.
func Rules(f config.Flags) sigils.MirrorRules {
	return sigils.MirrorRules{
		AttackSigilsAsTraits: f.AttackSigilOnPowerStat,
		BloodlessAsTrait:     f.BloodlessSigilToTrait,
	}
}

// New loads everything a render needs. Any error here is fatal.
func New(cfg *config.Config) (*App, error) {
	fonts, err := Fonts(cfg.Paths)
	if err != nil {
		return nil, err
	}
	src, err := assets.New(cfg.Paths.AssetsDir, cfg.Paths.AssetsBaseURL)
	if err != nil {
		return nil, err
	}
	reg, err := cards.LoadRegistry(cfg.Paths.SigilsFile, cfg.Paths.TraitsFile, Rules(cfg.Flags))
	if err != nil {
		return nil, fmt.Errorf("loading sigils and traits: %w", err)
	}
	return &App{
		Config: cfg,
		Assets: src,
		Cards:  cards.NewRenderer(cfg, src, fonts, reg),
	}, nil
}
