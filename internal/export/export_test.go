package export

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/config"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/sigils"
	"github.com/youruser/cardgen/internal/text"
)

func newExporter(t *testing.T, edit func(*config.Config)) *Exporter {
	t.Helper()
	cfg := config.Default()
	cfg.Temples = []string{"Beast"}
	cfg.TextColors = map[string]config.RGB{"Beast": {R: 90, G: 10, B: 10}}
	cfg.PowerCoord = map[string]config.Point{"Beast": {X: 20, Y: 420}}
	cfg.Layout.SigilSpace, cfg.Layout.SigilImgSpace = 240, 40
	cfg.Layout.SigilTopHeight, cfg.Layout.SigilLeftBorder = 200, 20
	cfg.Layout.MaxNameWidth = 260
	cfg.Paths.ExportsDir = t.TempDir()
	cfg.Paths.Workers = 2
	if edit != nil {
		edit(cfg)
	}

	src := assets.Memory{
		"cardbacks/CommonCardback": imaging.New(30, 50, color.NRGBA{R: 230, G: 220, B: 200, A: 255}),
		"cardbacks/Traitlines":     imaging.New(20, 2, color.NRGBA{B: 200, A: 255}),
		"card_art/Wolf":            imaging.New(30, 20, color.NRGBA{}),
		"card_art/Raven":           imaging.New(30, 20, color.NRGBA{}),
		"sigils/Airborne":          imaging.New(20, 20, color.NRGBA{A: 255}),
		"patch":                    imaging.New(60, 60, color.NRGBA{G: 120, A: 255}),
	}
	b := sigils.NewBuilder(sigils.MirrorRules{})
	b.AddSigil(sigils.Definition{Name: "Airborne", Description: "Flies."})
	b.AddTrait(sigils.Definition{Name: "Brittle", Description: "Dies after attacking."})
	r := cards.NewRenderer(cfg, src, text.Embedded(), b.Build())
	return New(cfg, src, r)
}

func card(name, temple string) cards.Record {
	return cards.Record{
		"Card Name": name, "Tier": cards.TierCommon, "Temple": temple,
		"Sigils": "Airborne", "Flavor Text": "BLANK", "Health": "1", "Power": "1",
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	e := newExporter(t, nil)
	records := []cards.Record{
		card("Wolf", "Beast"),
		card("Stoat", "Beast"),   // no art
		card("Raven", "Nowhere"), // bad temple
		card("Raven", "Beast"),
	}
	sum, err := e.Run(context.Background(), KindCards, records, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Exported != 2 {
		t.Fatalf("expected 2 exported, got %d", sum.Exported)
	}
	if want := []string{"Stoat", "Raven"}; !reflect.DeepEqual(sum.Failed, want) {
		t.Fatalf("failed = %v, want %v", sum.Failed, want)
	}
	for _, name := range []string{"Wolf.png", "Raven.png", "deck.txt"} {
		if _, err := os.Stat(filepath.Join(e.dir, "cards", name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	deck, err := os.ReadFile(filepath.Join(e.dir, "cards", "deck.txt"))
	if err != nil {
		t.Fatalf("read deck: %v", err)
	}
	if got := string(deck); got != "1xRaven\n1xWolf\n" {
		t.Fatalf("unexpected deck list %q", got)
	}
	if !strings.Contains(sum.String(), "2 failed: Stoat, Raven") {
		t.Fatalf("summary does not list failures: %s", sum)
	}
}

func TestRunSelectionAndFolders(t *testing.T) {
	e := newExporter(t, func(cfg *config.Config) {
		cfg.Export.SortedByFolder = true
		cfg.Export.ProofSheet = true
		cfg.Export.ProofSheetQRText = "cardgen"
	})
	records := []cards.Record{card("Wolf", "Beast"), card("Raven", "Beast")}
	sum, err := e.Run(context.Background(), KindCards, records, cards.ParseSelection("raven,Moose"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Exported != 1 || !reflect.DeepEqual(sum.Pending, []string{"MOOSE"}) {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "cards", "Beast", "Common", "Raven.png")); err != nil {
		t.Fatalf("expected sorted output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "cards", "Wolf.png")); err == nil {
		t.Fatal("unselected card was exported")
	}
	sheet, err := imagepkg.OpenImage(filepath.Join(e.dir, "sheets", "proof.png"))
	if err != nil {
		t.Fatalf("open proof sheet: %v", err)
	}
	if sheet.Bounds().Dy() <= imagepkg.SheetThumbH+imagepkg.SheetQRSize {
		t.Fatalf("proof sheet too small: %v", sheet.Bounds())
	}
}

func TestRunCancelled(t *testing.T) {
	e := newExporter(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := e.Run(ctx, KindCards, []cards.Record{card("Wolf", "Beast")}, nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if sum.Exported != 0 {
		t.Fatalf("expected nothing exported, got %d", sum.Exported)
	}
}

func TestExportSigils(t *testing.T) {
	e := newExporter(t, func(cfg *config.Config) {
		cfg.Export.ShorterFormatting = true
		cfg.Export.BaseGameFormatting = true
		cfg.Export.SigilPatches = true
		cfg.Export.SigilDescriptionIcon = true
		cfg.Export.TraitDescriptionIcon = true
	})
	records := []cards.Record{{"Name": "Airborne"}, {"Name": "Unlisted"}}
	sum, err := e.Run(context.Background(), KindSigils, records, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Exported != 1 || !reflect.DeepEqual(sum.Failed, []string{"Unlisted"}) {
		t.Fatalf("unexpected summary %+v", sum)
	}
	for _, p := range []string{
		"sigils/Airborne.png",
		"short sigils/Airborne.png",
		"base game sigils/Airborne.png",
		"sigil patches/Airborne.png",
		"sigil icons/Airborne_icon.png",
		"sigil icons/Airborne_trait-icon.png",
	} {
		if _, err := os.Stat(filepath.Join(e.dir, filepath.FromSlash(p))); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}
}

func TestExportTraitWithTraitline(t *testing.T) {
	e := newExporter(t, func(cfg *config.Config) { cfg.Export.Traitline = "Beast" })
	sum, err := e.Run(context.Background(), KindTraits, []cards.Record{{"Name": "Brittle"}}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Exported != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	img, err := imagepkg.OpenImage(filepath.Join(e.dir, "traits", "Brittle.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// The 200x20 banner sits on top, centered on the 230 px trait and
	// snapped to x=10.
	r, g, b, _ := img.At(15, 5).RGBA()
	if r != 0 || g != 0 || b>>8 != 200 {
		t.Fatalf("expected the banner at the top, got %v", img.At(15, 5))
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"c": KindCards, "Sigils": KindSigils, " trait ": KindTraits} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("decks"); err == nil {
		t.Fatal("expected error")
	}
}
