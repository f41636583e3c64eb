package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput processes mouse pulses and keyboard controls for one tick.
func (g *Game) handleInput() {
	g.handleMouse()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.nextRenderMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.nextPalette()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.adjustOmega(-omegaStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.adjustOmega(omegaStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustStepsPerTick(-stepsPerTickStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustStepsPerTick(stepsPerTickStep)
	}
}

// handleMouse queues a pulse under the cursor while a button is held, one
// every pulseRepeatTicks. Left pushes density in, right pulls it out.
func (g *Game) handleMouse() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		g.pulseTimer = 0
		return
	}
	if g.pulseTimer > 0 {
		g.pulseTimer--
		return
	}
	g.pulseTimer = pulseRepeatTicks

	strength := g.settings.PulseStrength
	if right && !left {
		strength = -strength
	}
	w, h := g.sim.Size()
	mx, my := ebiten.CursorPosition()
	g.sim.QueuePulse(clampCoord(mx, 0, w-1), clampCoord(my, 0, h-1), g.settings.PulseRadius, strength)
}

// nextRenderMode cycles density, velocity and vorticity.
func (g *Game) nextRenderMode() {
	mode := g.sim.RenderMode().Next()
	if err := g.sim.SetRenderMode(mode); err != nil {
		log.Printf("Render mode: %v", err)
		return
	}
	log.Printf("Render mode: %s", mode)
}

// nextPalette steps through the raw mapping and the palette presets.
func (g *Game) nextPalette() {
	if len(g.palettes) == 0 {
		return
	}
	g.paletteIndex = (g.paletteIndex + 1) % len(g.palettes)
	p := g.palettes[g.paletteIndex]
	g.sim.SetPalette(p)
	if p == nil {
		log.Printf("Palette: raw")
		return
	}
	log.Printf("Palette: %s", p.Name())
}

// adjustOmega nudges the relaxation rate, clamped to [minOmega, maxOmega].
func (g *Game) adjustOmega(delta float64) {
	omega := g.sim.Omega() + delta
	if omega < minOmega {
		omega = minOmega
	} else if omega > maxOmega {
		omega = maxOmega
	}
	if err := g.sim.SetOmega(omega); err != nil {
		log.Printf("Omega: %v", err)
	}
}

// adjustStepsPerTick clamps the simulation batch size delta within bounds.
func (g *Game) adjustStepsPerTick(delta int) {
	g.stepsPerTick = clampSteps(g.stepsPerTick + delta)
}

// enableAutoPulse schedules random pulses for a limited duration.
func (g *Game) enableAutoPulse(duration time.Duration) {
	g.autoPulse = true
	g.autoPulseDeadline = time.Now().Add(duration)
	g.autoPulseTimer = 0
}

// fireAutoPulse queues a random pulse every autoPulseInterval ticks until the
// deadline passes.
func (g *Game) fireAutoPulse() {
	if time.Now().After(g.autoPulseDeadline) {
		g.autoPulse = false
		return
	}
	if g.autoPulseTimer > 0 {
		g.autoPulseTimer--
		return
	}
	g.autoPulseTimer = autoPulseInterval

	w, h := g.sim.Size()
	strength := g.settings.PulseStrength
	if g.autoPulseRand.Intn(2) == 0 {
		strength = -strength
	}
	g.sim.QueuePulse(g.autoPulseRand.Intn(w), g.autoPulseRand.Intn(h), g.settings.PulseRadius, strength)
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
