package sigils

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/config"
	"github.com/youruser/cardgen/internal/text"
)

var black = color.NRGBA{A: 255}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Temples = []string{"Beast"}
	cfg.Layout.SigilSpace = 400
	cfg.Layout.SigilImgSpace = 60
	cfg.Layout.SigilName = 30
	cfg.Layout.SigilDescription = 20
	cfg.Layout.TraitDescription = 20
	cfg.Layout.SigilDescriptionIconSize = 20
	cfg.Layout.TraitDescriptionIconSize = 20
	return cfg
}

func testSource() assets.Memory {
	return assets.Memory{
		"sigils/Airborne":          imaging.New(40, 40, black),
		"sigils/Fledgling":         imaging.New(40, 40, black),
		"sigils/Fledgling_outline": imaging.New(40, 40, color.NRGBA{R: 1, A: 128}),
	}
}

func newRenderer(cfg *config.Config) *Renderer {
	return NewRenderer(cfg, testSource(), text.Embedded())
}

func TestRegistryMirroring(t *testing.T) {
	tests := []struct {
		name   string
		rules  MirrorRules
		traits []string
	}{
		{"none", MirrorRules{}, []string{"Brittle"}},
		{"attack", MirrorRules{AttackSigilsAsTraits: true}, []string{"Brittle", "Double Strike"}},
		{"bloodless", MirrorRules{BloodlessAsTrait: true}, []string{"Bloodless", "Brittle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.rules)
			b.AddSigil(Definition{Name: "Double Strike", IsAttackSigil: true})
			b.AddSigil(Definition{Name: "Bloodless"})
			b.AddSigil(Definition{Name: "Airborne"})
			b.AddTrait(Definition{Name: "Brittle"})
			reg := b.Build()

			if got := reg.TraitNames(); !reflect.DeepEqual(got, tt.traits) {
				t.Fatalf("traits = %v, want %v", got, tt.traits)
			}
			if got := reg.SigilNames(); len(got) != 3 {
				t.Fatalf("expected three sigils, got %v", got)
			}
			for _, n := range tt.traits {
				d, _ := reg.Trait(n)
				if !d.IsTrait || !d.CanBeColored {
					t.Fatalf("trait %s not marked as a colorable trait: %+v", n, d)
				}
			}
			if d, _ := reg.Sigil("Double Strike"); d.IsTrait {
				t.Fatal("mirroring changed the sigil definition")
			}
		})
	}
}

func TestLookupPrefersTraits(t *testing.T) {
	b := NewBuilder(MirrorRules{})
	b.AddSigil(Definition{Name: "Fledgling", Description: "sigil"})
	b.AddTrait(Definition{Name: "Fledgling", Description: "trait"})
	d, ok := b.Build().Lookup("Fledgling")
	if !ok || d.Description != "trait" {
		t.Fatalf("expected the trait, got %+v", d)
	}
}

func TestFromRecord(t *testing.T) {
	d, err := FromRecord(map[string]string{"Name": " Airborne ", "Description": "Flies.", "Is_attack_sigil": "Y", "Can_be_colored": "no"}, false)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	want := Definition{Name: "Airborne", Description: "Flies.", IsAttackSigil: true}
	if d != want {
		t.Fatalf("got %+v, want %+v", d, want)
	}
	if _, err := FromRecord(map[string]string{"Description": "x"}, true); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestTokenSubstitution(t *testing.T) {
	d := Definition{Name: "Fledgling", Description: "Grows into a TOKEN."}
	if !d.NeedsToken() {
		t.Fatal("expected NeedsToken")
	}
	inst := d.NewInstance()
	if inst.Text() != d.Description {
		t.Fatalf("unexpected text before token: %q", inst.Text())
	}
	inst.SetToken("Wolf")
	if inst.Text() != "Grows into a Wolf." {
		t.Fatalf("unexpected text %q", inst.Text())
	}
}

func TestRenderCachesPerModeAndColor(t *testing.T) {
	r := newRenderer(testConfig())
	inst := Definition{Name: "Airborne", Description: "Flies over TOKEN."}.NewInstance()

	first, err := r.Render(inst, black, ModeDefault)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	again, err := r.Render(inst, black, ModeDefault)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != again {
		t.Fatal("expected the cached image")
	}
	red := color.NRGBA{R: 255, A: 255}
	if _, ok := inst.Cached(ModeDefault, red); ok {
		t.Fatal("cache must not serve another color")
	}

	base, err := r.Render(inst, black, ModeBaseGame)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	inst.SetToken("walls")
	if _, ok := inst.Cached(ModeDefault, black); ok {
		t.Fatal("SetToken must invalidate the default image")
	}
	if img, ok := inst.Cached(ModeBaseGame, black); !ok || img != base {
		t.Fatal("SetToken must keep the base-game image")
	}
}

func TestShortenedIsNotTaller(t *testing.T) {
	r := newRenderer(testConfig())
	descs := []string{
		"Flies.",
		"This card may attack over opposing cards and strike the opponent directly every turn.",
	}
	for _, desc := range descs {
		d := Definition{Name: "Airborne", Description: desc}
		def, err := r.Render(d.NewInstance(), black, ModeDefault)
		if err != nil {
			t.Fatalf("default: %v", err)
		}
		short, err := r.Render(d.NewInstance(), black, ModeShortened)
		if err != nil {
			t.Fatalf("shortened: %v", err)
		}
		if short.Bounds().Dy() > def.Bounds().Dy() {
			t.Fatalf("%q: shortened %d taller than default %d", desc, short.Bounds().Dy(), def.Bounds().Dy())
		}
		if def.Bounds().Dx() != 400 {
			t.Fatalf("expected sigil_space width, got %d", def.Bounds().Dx())
		}
	}
}

func TestTraitRendering(t *testing.T) {
	r := newRenderer(testConfig())
	trait := Definition{Name: "Brittle", Description: "Dies after attacking."}.AsTrait()

	base, err := r.Render(trait.NewInstance(), black, ModeBaseGame)
	if err != nil {
		t.Fatalf("base game: %v", err)
	}
	if !base.Bounds().Empty() {
		t.Fatalf("expected an empty base-game trait, got %v", base.Bounds())
	}

	def, err := r.Render(trait.NewInstance(), black, ModeDefault)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	short, err := r.Render(trait.NewInstance(), black, ModeShortened)
	if err != nil {
		t.Fatalf("shortened: %v", err)
	}
	if def.Bounds() != short.Bounds() {
		t.Fatalf("trait should ignore shortening: %v vs %v", def.Bounds(), short.Bounds())
	}
	if def.Bounds().Dx() != 390 {
		t.Fatalf("expected width sigil_space-10, got %d", def.Bounds().Dx())
	}
}

func TestBaseGameLayout(t *testing.T) {
	r := newRenderer(testConfig())
	img, err := r.Render(Definition{Name: "Airborne"}.NewInstance(), black, ModeBaseGame)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b := img.Bounds()
	if b.Dy() != 40+30+captionGap {
		t.Fatalf("expected icon + gap + caption height, got %d", b.Dy())
	}
	if b.Dx() < 40 {
		t.Fatalf("expected at least the icon width, got %d", b.Dx())
	}
}

func TestIconOutlineFallback(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	tests := []struct {
		name      string
		def       Definition
		c         color.NRGBA
		outline   bool
		wantAlpha uint8
	}{
		{"black uses plain icon", Definition{Name: "Fledgling"}, black, false, 255},
		{"uncolorable uses outline", Definition{Name: "Fledgling"}, red, false, 128},
		{"colorable is recolored", Definition{Name: "Fledgling", CanBeColored: true}, red, false, 255},
		{"forced outline", Definition{Name: "Fledgling"}, black, true, 128},
		{"missing outline falls back", Definition{Name: "Airborne"}, red, false, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Flags.ShowOutlineOnly = tt.outline
			img, err := newRenderer(cfg).Icon(tt.def, tt.c)
			if err != nil {
				t.Fatalf("icon: %v", err)
			}
			got := img.NRGBAAt(20, 20)
			if got.A != tt.wantAlpha {
				t.Fatalf("expected alpha %d, got %+v", tt.wantAlpha, got)
			}
			if tt.c != black && got.R != 255 {
				t.Fatalf("expected recoloring, got %+v", got)
			}
		})
	}
}

func TestDescriptionIcon(t *testing.T) {
	r := newRenderer(testConfig())
	img, err := r.DescriptionIcon(Definition{Name: "Airborne"}, black, 20)
	if err != nil {
		t.Fatalf("icon: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeDefault, "short": ModeShortened, "base": ModeBaseGame} {
		got, ok := ParseMode(in)
		if !ok || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseMode("tiny"); ok {
		t.Fatal("expected unknown mode")
	}
}
