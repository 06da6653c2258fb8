package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"glowtrail/config"
	"glowtrail/effect"
)

// Game hosts the animation loop inside an ebiten window
type Game struct {
	config   *config.Config
	loop     *effect.Loop
	renderer *Renderer
	input    *PointerInput
	profiler *Profiler

	// Persistent trail surface. Each tick fades it and paints on top, so it keeps
	// history across frames. Nil while the window has no drawable area.
	canvas        *ebiten.Image
	width, height int

	// Size reported by the latest Layout, applied on the next Update
	layoutWidth, layoutHeight int

	// last ticked frame, drives the overlay pulse
	frame uint64

	prevAltEnter   bool
	lastUpdateTime time.Time
}

// NewGame creates a game with a running loop
func NewGame(cfg *config.Config) (*Game, error) {
	return NewGameWithInput(cfg, NewEbitenPointer())
}

// NewGameWithInput creates a game reading pointer events from src
func NewGameWithInput(cfg *config.Config, src PointerSource) (*Game, error) {
	renderer, err := NewRenderer(cfg.Effect)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	g := &Game{
		config:         cfg,
		loop:           effect.New(cfg.Effect, cfg.Seed),
		renderer:       renderer,
		input:          NewPointerInput(src),
		profiler:       NewProfiler(cfg.ProfileDir),
		layoutWidth:    cfg.Window.Width,
		layoutHeight:   cfg.Window.Height,
		lastUpdateTime: time.Now(),
	}
	g.loop.Start()
	slog.Info("animation loop started", "seed", cfg.Seed, "width", cfg.Window.Width, "height", cfg.Window.Height)
	return g, nil
}

// Shutdown stops the loop; the next Update ends the game
func (g *Game) Shutdown() {
	if !g.loop.Running() {
		return
	}
	g.loop.Stop()
	glows, particles := g.loop.Counts()
	slog.Info("animation loop stopped", "glows", glows, "particles", particles, "fps_drops", g.profiler.Drops())
}

// Update runs one frame tick
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.Shutdown()
	}
	if !g.loop.Running() {
		return ebiten.Termination
	}

	g.handleKeys()
	g.ensureSurface()
	g.input.Dispatch(g.loop)

	frame, ok := g.loop.Tick()
	if !ok {
		return ebiten.Termination
	}
	g.frame = frame.Number
	if g.canvas != nil {
		g.renderer.PaintFrame(g.canvas, frame)
	}

	g.profiler.Observe(deltaTime, len(frame.Glows), len(frame.Particles))
	return nil
}

// handleKeys processes F1 for the stats overlay and F11 or Alt+Enter for fullscreen
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		GetDebugState().Toggle()
	}

	altPressed := ebiten.IsKeyPressed(ebiten.KeyAlt)
	altEnterPressed := altPressed && ebiten.IsKeyPressed(ebiten.KeyEnter)
	if (altEnterPressed && !g.prevAltEnter) || inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		slog.Debug("fullscreen toggled", "fullscreen", fullscreen)
	}
	g.prevAltEnter = altEnterPressed
}

// ensureSurface reallocates the trail surface when the layout size changed.
// Reallocation drops pixel history; the collections are untouched.
func (g *Game) ensureSurface() {
	w, h := g.layoutWidth, g.layoutHeight
	if w == g.width && h == g.height && (g.canvas != nil || w <= 0 || h <= 0) {
		return
	}

	if g.canvas != nil {
		g.canvas.Deallocate()
		g.canvas = nil
	}
	g.width, g.height = w, h
	g.loop.Resize(w, h)

	// no drawable area: skip drawing until a usable size arrives
	if w <= 0 || h <= 0 {
		return
	}
	g.canvas = ebiten.NewImage(w, h)
	slog.Debug("surface resized", "width", w, "height", h)
}

// Draw composes background, trail surface, overlay, title and cursor
func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		return
	}
	g.renderer.DrawBackground(screen)
	screen.DrawImage(g.canvas, nil)
	g.renderer.DrawOverlay(screen, g.frame)
	g.renderer.DrawTitle(screen)
	g.renderer.DrawCursor(screen, g.loop.Pointer())

	if GetDebugState().ShowStats {
		g.drawStats(screen)
	}
}

// Layout makes the screen match the window so the surface fills it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layoutWidth, g.layoutHeight = outsideWidth, outsideHeight
	return max(outsideWidth, 1), max(outsideHeight, 1)
}
