package trolleyyard

import colorful "github.com/lucasb-eyer/go-colorful"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{1, 1, 1, 1}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustHex is like ParseHex but panics on malformed input. For literals only.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Shade darkens the color toward black in Lab space by t in [0, 1],
// keeping alpha. Renderers use it for cheap depth and facing cues.
func (c Color) Shade(t float64) Color {
	base := colorful.Color{R: c.R, G: c.G, B: c.B}
	out := base.BlendLab(colorful.Color{}, clamp(t, 0, 1)).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

// Material describes how a part is drawn. Metalness and Roughness are
// carried for renderers that support them.
type Material struct {
	Color     Color
	Opacity   float64
	Metalness float64
	Roughness float64
}

// NewMaterial creates an opaque material.
func NewMaterial(hex string, metalness, roughness float64) *Material {
	return &Material{Color: MustHex(hex), Opacity: 1, Metalness: metalness, Roughness: roughness}
}
