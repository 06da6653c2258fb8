package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugState holds global debug flags that persist across game instances
type DebugState struct {
	ShowStats bool // FPS, TPS and collection sizes in the top-left corner
}

var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

// Toggle flips the stats overlay
func (d *DebugState) Toggle() {
	d.ShowStats = !d.ShowStats
}

func (g *Game) drawStats(screen *ebiten.Image) {
	glows, particles := g.loop.Counts()
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nglows: %d  particles: %d\nhue: %d  size: %dx%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), glows, particles, g.loop.Hue(), g.width, g.height)
	if g.profiler.IsProfiling() {
		msg += "\ncapturing profile"
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
