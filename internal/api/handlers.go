package api

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/assets"
	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/costs"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/sigils"
)

// maxSheetCards bounds the work a single sheet request can ask for.
const maxSheetCards = 60

// Handlers serves renders from a shared card renderer.
type Handlers struct {
	cards *cards.Renderer
}

func NewHandlers(r *cards.Renderer) *Handlers {
	return &Handlers{cards: r}
}

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderCard accepts one card table row keyed by column name.
func (h *Handlers) renderCard(c *gin.Context) {
	var rec cards.Record
	if err := c.BindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img, _, err := h.cards.Render(rec)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	writePNG(c, img)
}

func (h *Handlers) sigil(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.cards.Registry().Sigil(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown sigil %q", name)})
		return
	}
	mode, ok := sigils.ParseMode(c.Query("mode"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", c.Query("mode"))})
		return
	}
	col, err := parseColor(c.Query("color"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img, err := h.cards.Sigils().Render(def.NewInstance(), col, mode)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	writePNG(c, img)
}

func (h *Handlers) trait(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.cards.Registry().Trait(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown trait %q", name)})
		return
	}
	img, err := h.cards.Sigils().Render(def.NewInstance(), color.NRGBA{A: 0xff}, sigils.ModeDefault)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	writePNG(c, img)
}

func (h *Handlers) cost(c *gin.Context) {
	parsed, err := costs.Parse(c.Query("cost"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(parsed) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cost is free"})
		return
	}
	temple := c.Query("temple")
	if !h.cards.Config().HasTemple(temple) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%q is not a valid temple", temple)})
		return
	}
	img, err := h.cards.Costs().Strip(parsed, temple)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	writePNG(c, img)
}

// sheet renders the given cards and lays them out on a proof sheet. Cards that
// fail to render are skipped.
func (h *Handlers) sheet(c *gin.Context) {
	var req struct {
		Cards   []cards.Record `json:"cards"`
		QRText  string         `json:"qr_text"`
		Columns int            `json:"columns"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Cards) > maxSheetCards {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d cards per sheet", maxSheetCards)})
		return
	}

	var imgs []image.Image
	for _, rec := range req.Cards {
		img, _, err := h.cards.Render(rec)
		if err != nil {
			log.Println("sheet: skipping", rec.Name()+":", err)
			continue
		}
		imgs = append(imgs, img)
	}
	var qr image.Image
	if req.QRText != "" {
		q, err := imagepkg.GenerateQRImage(req.QRText, imagepkg.SheetQRSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		qr = q
	}
	writePNG(c, imagepkg.ComposeSheet(imgs, qr, req.Columns))
}

func writePNG(c *gin.Context, img image.Image) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// statusFor maps render errors onto HTTP statuses.
func statusFor(err error) int {
	var (
		de *cards.DataError
		pe *costs.ParseError
		me *costs.MismatchError
	)
	switch {
	case errors.As(err, &de), errors.As(err, &pe), errors.As(err, &me):
		return http.StatusBadRequest
	case errors.Is(err, assets.ErrNotFound), errors.Is(err, imagepkg.ErrStripe):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// parseColor reads an RRGGBB hex color. Empty means black.
func parseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{A: 0xff}, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return color.NRGBA{}, fmt.Errorf("color must be RRGGBB, got %q", s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}
