package ebitenview

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/trolleyyard"
)

const (
	hudFontSize   = 14
	labelFontSize = 11
	hudMargin     = 8
)

// font wraps a text/v2 face with its cached line height.
type font struct {
	face *text.GoTextFace
	lh   float64
}

// loadFont parses TrueType data at the given size.
func loadFont(ttf []byte, size float64) (*font, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("ebitenview: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: size}
	m := face.Metrics()
	return &font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// measure returns the rendered size of s.
func (f *font) measure(s string) (w, h float64) {
	return text.Measure(s, f.face, f.lh)
}

// draw renders s with its top-left corner at (x, y).
func (f *font) draw(dst *ebiten.Image, s string, x, y float64, c trolleyyard.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// fonts holds the faces the game draws with. Both are nil if the embedded
// font fails to parse, in which case the HUD falls back to DebugPrint.
type fonts struct {
	hud   *font
	label *font
}

func loadFonts() (fonts, error) {
	hud, err := loadFont(goregular.TTF, hudFontSize)
	if err != nil {
		return fonts{}, err
	}
	label, err := loadFont(goregular.TTF, labelFontSize)
	if err != nil {
		return fonts{}, err
	}
	return fonts{hud: hud, label: label}, nil
}

// drawLabels prints the state of every open unit above its first region.
func (g *Game) drawLabels(screen *ebiten.Image) {
	f := g.fonts.label
	if f == nil {
		return
	}
	ink := trolleyyard.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	for _, u := range g.Yard.Units {
		if !u.IsOpen() {
			continue
		}
		regions := g.Yard.Catalog.RegionsOf(u)
		if len(regions) == 0 {
			continue
		}
		b := regions[0].World()
		anchor := trolleyyard.Vec3{X: b.Center().X, Y: b.Max.Y, Z: b.Max.Z}
		x, y, _, ok := g.Camera.Project(anchor)
		if !ok {
			continue
		}
		sx, sy := trolleyyard.NDCToScreen(x, y, float64(g.width), float64(g.height))
		s := u.StateName()
		w, h := f.measure(s)
		f.draw(screen, s, sx-w/2, sy-h-2, ink)
	}
}

// drawHUD prints the status text in the top-left corner.
func (g *Game) drawHUD(screen *ebiten.Image, s string) bool {
	f := g.fonts.hud
	if f == nil {
		return false
	}
	f.draw(screen, s, hudMargin, hudMargin, trolleyyard.Color{A: 1})
	return true
}
