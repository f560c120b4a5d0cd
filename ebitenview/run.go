package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/trolleyyard"
)

// RunConfig controls the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowHUD draws the TPS and active trolley line.
	ShowHUD bool
	// Debug enables coordinator debug logging from the start.
	Debug bool
	// ScreenshotDir overrides DefaultScreenshotDir for P-key captures.
	ScreenshotDir string
}

// Run opens a resizable window showing the session's yard and blocks until
// it is closed. The session's camera is replaced by the window's.
func Run(s *trolleyyard.Session, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	g := New(s.Yard, s.Coordinator, s.Animator, cfg.Width, cfg.Height)
	defer g.Close()
	g.ShowHUD = cfg.ShowHUD
	g.ScreenshotDir = cfg.ScreenshotDir
	if cfg.Debug {
		g.debug = true
		s.Coordinator.SetDebugMode(true)
	}
	s.Camera = g.Camera

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
