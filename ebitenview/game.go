// Package ebitenview renders an assembled yard with Ebitengine and routes
// mouse and keyboard input to its Coordinator.
//
// Left click toggles whatever is under the pointer. Dragging orbits the
// camera around its target and Space flies it back home. B and L cycle the
// blue and light blue panel colors. D toggles coordinator debug output and
// P saves a screenshot.
package ebitenview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/trolleyyard"
)

const (
	dragDeadZone = 4.0 // pixels
	orbitSpeed   = 0.01
	flyDuration  = 0.6
	hudInterval  = 0.5 // seconds between TPS readouts
	maxVertices  = math.MaxUint16 - 4
)

// Palettes cycled by the B and L keys.
var (
	bluePalette      = []string{"#040449", "#1b263b", "#3a0ca3", "#14213d"}
	lightBluePalette = []string{"#00ace6", "#4cc9f0", "#90e0ef", "#48cae4"}
)

// whiteSubImage is the 1x1 interior of a 3x3 white image, so triangle
// sampling never bleeds past the edge. Created on first draw.
var whiteSubImage *ebiten.Image

func ensureWhite() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Game implements ebiten.Game for a yard.
type Game struct {
	Yard        *trolleyyard.Yard
	Coordinator *trolleyyard.Coordinator
	Animator    *trolleyyard.Animator
	Camera      *trolleyyard.Camera

	// Background is the clear color.
	Background trolleyyard.Color
	// ShowHUD draws the status line in the top-left corner.
	ShowHUD bool
	// ShowLabels prints the state above every open unit.
	ShowLabels bool
	// ScreenshotDir receives P-key captures. Empty means DefaultScreenshotDir.
	ScreenshotDir string

	width, height int
	home          trolleyyard.Vec3

	down           bool
	dragging       bool
	pressX, pressY int
	lastX, lastY   int

	status          string
	screenshotQueue []string
	hudAge          float64
	tps             float64

	blueIdx  int
	lightIdx int
	debug    bool

	fonts    fonts
	faces    []face
	vertices []ebiten.Vertex
	indices  []uint16

	rejectHook trolleyyard.CallbackHandle
	toggleHook trolleyyard.CallbackHandle
}

// New creates a Game for a viewport of the given size.
func New(yard *trolleyyard.Yard, coord *trolleyyard.Coordinator, anim *trolleyyard.Animator, width, height int) *Game {
	cam := trolleyyard.NewCamera(float64(width), float64(height))
	g := &Game{
		Yard:        yard,
		Coordinator: coord,
		Animator:    anim,
		Camera:      cam,
		Background:  trolleyyard.MustHex("#d3d3d3"),
		ShowHUD:     true,
		ShowLabels:  true,
		width:       width,
		height:      height,
		home:        cam.Position,
	}
	if f, err := loadFonts(); err == nil {
		g.fonts = f
	} else {
		g.status = err.Error()
	}
	g.toggleHook = coord.OnToggle(func(e trolleyyard.ToggleEvent) {
		g.status = fmt.Sprintf("%s -> %s", e.Name, stateName(e.Kind, e.State))
	})
	g.rejectHook = coord.OnReject(func(e trolleyyard.RejectEvent) {
		if e.Unit == nil {
			g.status = ""
			return
		}
		g.status = e.Err.Error()
	})
	return g
}

// Close unregisters the game's coordinator callbacks.
func (g *Game) Close() {
	g.toggleHook.Remove()
	g.rejectHook.Remove()
}

// Update advances animations and processes input. It is called once per tick.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.Animator.Update(dt)
	g.Camera.Update(dt)

	g.hudAge += float64(dt)
	if g.hudAge >= hudInterval {
		g.hudAge = 0
		g.tps = ebiten.ActualTPS()
	}

	g.processPointer()
	g.processKeys()
	return nil
}

// processPointer runs the press/drag/click state machine for the mouse.
func (g *Game) processPointer() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.down = true
		g.dragging = false
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
	case g.down && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if !g.dragging {
			dx, dy := float64(x-g.pressX), float64(y-g.pressY)
			g.dragging = math.Sqrt(dx*dx+dy*dy) > dragDeadZone
		}
		if g.dragging && (x != g.lastX || y != g.lastY) {
			g.Camera.Orbit(-float64(x-g.lastX)*orbitSpeed, float64(y-g.lastY)*orbitSpeed)
		}
		g.lastX, g.lastY = x, y
	case g.down && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.down = false
		if !g.dragging {
			g.Click(float64(x), float64(y))
		}
		g.dragging = false
	}
}

// Click forwards a click at screen pixel (x, y) to the coordinator.
func (g *Game) Click(x, y float64) (*trolleyyard.Unit, error) {
	return g.Coordinator.Click(x, y, float64(g.width), float64(g.height), g.Camera)
}

func (g *Game) processKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Camera.FlyTo(g.home, flyDuration, ease.OutCubic)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.blueIdx = (g.blueIdx + 1) % len(bluePalette)
		g.setColor(trolleyyard.SettingBlue, bluePalette[g.blueIdx])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.lightIdx = (g.lightIdx + 1) % len(lightBluePalette)
		g.setColor(trolleyyard.SettingLightBlue, lightBluePalette[g.lightIdx])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
		g.Coordinator.SetDebugMode(g.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		label := "yard"
		if u := g.Coordinator.ActiveTrolley(); u != nil {
			label = u.Name
		}
		g.Screenshot(label)
	}
}

func (g *Game) setColor(name, hex string) {
	if err := g.Yard.Settings.SetColor(name, hex); err != nil {
		g.status = err.Error()
	}
}

// Draw renders the yard back to front.
func (g *Game) Draw(screen *ebiten.Image) {
	bg := g.Background
	screen.Fill(color.RGBA{R: to8(bg.R), G: to8(bg.G), B: to8(bg.B), A: 0xff})

	g.faces = buildFaces(g.Yard.Parts, g.Camera, float64(g.width), float64(g.height), g.faces)
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for i := range g.faces {
		if len(g.vertices)+4 > maxVertices {
			g.flush(screen)
		}
		g.appendFace(&g.faces[i])
	}
	g.flush(screen)
	// Capture before the HUD so screenshots show only the scene.
	g.flushScreenshots(screen)

	if g.ShowLabels {
		g.drawLabels(screen)
	}
	if g.ShowHUD {
		if s := g.hud(); !g.drawHUD(screen, s) {
			ebitenutil.DebugPrint(screen, s)
		}
	}
}

func (g *Game) appendFace(f *face) {
	base := uint16(len(g.vertices))
	a := float32(f.alpha)
	for _, p := range f.pts {
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX:   p[0],
			DstY:   p[1],
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: float32(f.color.R) * a,
			ColorG: float32(f.color.G) * a,
			ColorB: float32(f.color.B) * a,
			ColorA: a,
		})
	}
	g.indices = append(g.indices, base, base+1, base+2, base, base+2, base+3)
}

func (g *Game) flush(screen *ebiten.Image) {
	if len(g.indices) == 0 {
		return
	}
	screen.DrawTriangles(g.vertices, g.indices, ensureWhite(), &ebiten.DrawTrianglesOptions{})
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
}

func (g *Game) hud() string {
	active := "none"
	if u := g.Coordinator.ActiveTrolley(); u != nil {
		active = u.Name
	}
	s := fmt.Sprintf("TPS %.0f  active trolley: %s", g.tps, active)
	if g.status != "" {
		s += "\n" + g.status
	}
	return s
}

// Layout tracks the window size. A size change updates the camera aspect
// and projection so picking and drawing stay aligned.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.Camera.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func stateName(k trolleyyard.Kind, s trolleyyard.State) string {
	if k == trolleyyard.KindTrolleyBay {
		if s == trolleyyard.StateOut {
			return "out"
		}
		return "in"
	}
	if s == trolleyyard.StateOpen {
		return "open"
	}
	return "closed"
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}
