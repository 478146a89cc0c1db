package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"showroom/internal/overlay"
	"showroom/internal/scene"
)

const (
	cardWidth    = 360
	cardHeight   = 140
	cardFontSize = 20
)

var (
	cardBg     = rl.NewColor(30, 30, 34, 235)
	cardBorder = rl.NewColor(240, 200, 90, 255)
)

// productCard stands in for the product modal: it opens the modal surface and shows
// the selected product id until dismissed with Backspace or a right click.
type productCard struct {
	surfaces *overlay.Surfaces
	log      zerolog.Logger
	current  scene.ProductID
}

func newProductCard(s *overlay.Surfaces, log zerolog.Logger) *productCard {
	return &productCard{surfaces: s, log: log}
}

func (c *productCard) OpenProduct(id scene.ProductID) {
	c.current = id
	c.surfaces.Open(overlay.Modal)
	rl.EnableCursor()
	c.log.Info().Uint64("product", uint64(id)).Msg("product opened")
}

func (c *productCard) Update() {
	if !c.surfaces.IsOpen(overlay.Modal) || c.surfaces.IsOpen(overlay.Console) {
		return
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		c.surfaces.Close(overlay.Modal)
		c.log.Debug().Uint64("product", uint64(c.current)).Msg("product closed")
	}
}

func (c *productCard) Draw() {
	if !c.surfaces.IsOpen(overlay.Modal) {
		return
	}
	x := int32(rl.GetScreenWidth()-cardWidth) / 2
	y := int32(rl.GetScreenHeight()-cardHeight) / 2
	rl.DrawRectangle(x, y, cardWidth, cardHeight, cardBg)
	rl.DrawRectangleLines(x, y, cardWidth, cardHeight, cardBorder)
	rl.DrawText(fmt.Sprintf("Product %d", c.current), x+16, y+24, cardFontSize, rl.RayWhite)
	rl.DrawText("Backspace or right click to close", x+16, y+cardHeight-36, cardFontSize-4, rl.LightGray)
}
