package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var probeMarkerColor = color.RGBA{255, 0, 0, 255}

// Draw blits the solver's render buffer and adds the probe marker and the
// optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.sim.RenderBuffer().Pix)

	if g.probe != nil {
		drawCross(screen, g.probe.x, g.probe.y, 3, probeMarkerColor)
	}

	if *debugFlag {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		simMS := g.lastSimDuration.Seconds() * 1000
		status := ""
		if g.paused {
			status = " (paused)"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nSteps: %d (%d/tick, +/-)%s\nSim: %.2f ms\nMass: %.2f\nOmega: %.2f ([/])\nMode: %s (M)",
			fps, tps, g.sim.Steps(), g.stepsPerTick, status, simMS,
			g.sim.Grid().TotalMass(), g.sim.Omega(), g.sim.RenderMode())
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.sim.Size() }

// drawCross marks (cx, cy) with a plus of the given arm length.
func drawCross(screen *ebiten.Image, cx, cy, arm int, clr color.Color) {
	drawLine(screen, cx-arm, cy, cx+arm, cy, clr)
	drawLine(screen, cx, cy-arm, cx, cy+arm, clr)
}

// drawLine plots a line segment using Bresenham's integer algorithm.
func drawLine(screen *ebiten.Image, x0, y0, x1, y1 int, clr color.Color) {
	bounds := screen.Bounds()
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if x0 >= bounds.Min.X && x0 < bounds.Max.X && y0 >= bounds.Min.Y && y0 < bounds.Max.Y {
			screen.Set(x0, y0, clr)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
