package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette colors scene meshes by role.
type Palette struct {
	Plain     rl.Color
	Product   rl.Color
	Highlight rl.Color
}

// DefaultPalette is warm wood for fixtures and a lighter tone for products.
var DefaultPalette = Palette{
	Plain:     rl.NewColor(140, 120, 100, 255),
	Product:   rl.NewColor(200, 196, 188, 255),
	Highlight: rl.NewColor(240, 200, 90, 255),
}

// For picks the color of a mesh given whether it belongs to a product and whether
// that product is highlighted.
func (p Palette) For(product, highlighted bool) rl.Color {
	switch {
	case highlighted:
		return p.Highlight
	case product:
		return p.Product
	}
	return p.Plain
}
