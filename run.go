package canvas

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
}

// Game is a ready-made ebiten.Game driving a Manager. Each tick it advances
// Script, polls Input (when set) and dispatches the events to InputCanvas,
// calls OnUpdate, then updates the manager. Each frame it repaints the canvas
// targets and calls OnDraw to composite them onto the screen.
type Game struct {
	Manager *Manager

	Input       *InputSampler
	InputCanvas *Canvas

	OnUpdate func(dt float64) error
	OnDraw   func(screen *ebiten.Image)

	// Script, when set, injects scripted input through Input.
	Script *Script

	// ScreenshotDir receives the PNGs queued with Screenshot and
	// ScreenshotCanvas. Empty uses "screenshots".
	ScreenshotDir string

	ShowFPS bool

	width, height   int
	screenshotQueue []shotRequest
	shotSeq         int
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if g.Script != nil {
		g.Script.step(g)
	}
	if g.Input != nil && g.InputCanvas != nil {
		for _, ev := range g.Input.Poll() {
			g.InputCanvas.HandleMouseEvent(&ev)
		}
	}
	if g.OnUpdate != nil {
		if err := g.OnUpdate(dt); err != nil {
			return err
		}
	}
	g.Manager.Update(dt)
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Manager.Draw()
	if g.OnDraw != nil {
		g.OnDraw(screen)
	}
	g.flushScreenshots(screen)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. The screen keeps the configured size; zero
// sizes follow the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width > 0 && g.height > 0 {
		return g.width, g.height
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs g until the window closes or an update
// returns an error.
func Run(g *Game, cfg RunConfig) error {
	if g == nil || g.Manager == nil {
		panic("canvas: Run needs a Game with a Manager")
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	g.width, g.height = cfg.Width, cfg.Height
	g.ShowFPS = g.ShowFPS || cfg.ShowFPS
	return ebiten.RunGame(g)
}
