package export

import (
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardgen/internal/deck"
	imagepkg "github.com/youruser/cardgen/internal/image"
)

func (e *Exporter) cardPath(name, temple, tier string) string {
	if e.cfg.Export.SortedByFolder {
		return e.path("cards", temple, tier, fileName(name))
	}
	return e.path("cards", fileName(name))
}

func (e *Exporter) exportCard(j job) (output, error) {
	img, card, err := e.cards.Render(j.rec)
	if err != nil {
		return output{}, err
	}
	if err := imagepkg.SavePNG(img, e.cardPath(card.Name, card.Temple, card.Tier)); err != nil {
		return output{}, fmt.Errorf("saving %s: %w", card.Name, err)
	}
	out := output{index: j.index, name: card.Name}
	if e.cfg.Export.ProofSheet {
		out.thumb = imaging.Fit(img, imagepkg.SheetThumbW, imagepkg.SheetThumbH, imaging.Lanczos)
	}
	return out, nil
}

// finishCards writes the deck list and, when enabled, the proof sheet.
func (e *Exporter) finishCards(outputs []output) error {
	d := deck.New("")
	for _, o := range outputs {
		d.Add(o.name)
	}
	if err := deck.WriteFile(*d, e.path("cards", "deck.txt")); err != nil {
		return fmt.Errorf("writing deck list: %w", err)
	}
	log.Printf("[cards] deck list: %d cards", d.Len())

	if !e.cfg.Export.ProofSheet {
		return nil
	}
	thumbs := make([]image.Image, 0, len(outputs))
	for _, o := range outputs {
		thumbs = append(thumbs, o.thumb)
	}
	var qr image.Image
	if t := e.cfg.Export.ProofSheetQRText; t != "" {
		q, err := imagepkg.GenerateQRImage(t, imagepkg.SheetQRSize)
		if err != nil {
			return fmt.Errorf("proof sheet qr: %w", err)
		}
		qr = q
	}
	sheet := imagepkg.ComposeSheet(thumbs, qr, e.cfg.Export.ProofSheetColumns)
	if err := imagepkg.SavePNG(sheet, e.path("sheets", "proof.png")); err != nil {
		return fmt.Errorf("writing proof sheet: %w", err)
	}
	return nil
}
