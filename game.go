package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"LBM/lbm"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Game drives an lbm.Simulation from the ebiten loop and owns the viewer
// state around it.
type Game struct {
	sim      *lbm.Simulation
	settings Settings

	paused          bool
	stepsPerTick    int
	lastSimDuration time.Duration
	lastStatsLog    time.Time

	// palettes cycles with P; index 0 is the raw channel mapping.
	palettes     []*lbm.Palette
	paletteIndex int

	pulseTimer int

	autoPulse         bool
	autoPulseDeadline time.Time
	autoPulseRand     *rand.Rand
	autoPulseTimer    int

	probe       *densityProbe
	audioCtx    *audio.Context
	audioPlayer *audio.Player
}

// newGame builds the simulation described by settings and, when enabled,
// the audio probe.
func newGame(settings Settings) (*Game, error) {
	cfg, err := settings.simConfig()
	if err != nil {
		return nil, err
	}
	sim, err := lbm.New(cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{
		sim:           sim,
		settings:      settings,
		stepsPerTick:  clampSteps(settings.StepsPerTick),
		autoPulseRand: rand.New(rand.NewSource(time.Now().UnixNano())),
		lastStatsLog:  time.Now(),
	}
	g.palettes, g.paletteIndex = paletteCycle(cfg.Render.Palette)

	if *enableAudioFlag {
		if err := g.startAudio(); err != nil {
			log.Printf("Audio disabled: %v", err)
		}
	}
	log.Printf("Simulation %dx%d omega %.2f, %d workers, %d wall cells",
		cfg.Width, cfg.Height, cfg.Omega, cfg.Workers, sim.Stats().WallCells)
	return g, nil
}

// startAudio opens the audio context and plays the probe stream.
func (g *Game) startAudio() error {
	var carrier []float32
	if *audioLoopFlag != "" {
		samples, err := loadLoopSamples(audioSampleRate, *audioLoopFlag)
		if err != nil {
			return err
		}
		carrier = samples
	}
	stream := newProbeAudioStream(carrier)
	w, h := g.sim.Size()
	g.probe = newDensityProbe(w/2, h/2, g.sim.Config().Density, stream)

	g.audioCtx = audio.NewContext(audioSampleRate)
	player, err := g.audioCtx.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("audio player creation failed: %w", err)
	}
	g.audioPlayer = player
	g.audioPlayer.SetBufferSize(audioPlayerBufferLatency)
	g.audioPlayer.Play()
	return nil
}

// Update handles input, advances the simulation, and refreshes the probe.
func (g *Game) Update() error {
	g.handleInput()
	if g.autoPulse {
		g.fireAutoPulse()
	}
	if g.paused {
		return nil
	}

	simStart := time.Now()
	for i := 0; i < g.stepsPerTick; i++ {
		g.sim.Step()
	}
	g.lastSimDuration = time.Since(simStart)

	if g.probe != nil {
		g.probe.sample(g.sim.Grid())
	}
	g.logStats()
	return nil
}

// logStats periodically reports the field summary.
func (g *Game) logStats() {
	now := time.Now()
	if now.Sub(g.lastStatsLog) < statsLogInterval {
		return
	}
	st := g.sim.Stats()
	log.Printf("Step %d: mass %.3f density [%.4f, %.4f] max speed %.4f (%.2f ms/tick)",
		g.sim.Steps(), st.Mass, st.MinDensity, st.MaxDensity, st.MaxSpeed,
		g.lastSimDuration.Seconds()*1000)
	g.lastStatsLog = now
}

// reset rebuilds the grid from the current configuration.
func (g *Game) reset() {
	if err := g.sim.Initialize(g.sim.Config()); err != nil {
		log.Printf("Reset failed: %v", err)
		return
	}
	log.Printf("Simulation reset")
}

// close stops the solver workers and audio.
func (g *Game) close() {
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
	g.sim.Close()
}

// paletteCycle lists the raw mapping followed by every preset, with current
// appended when it is a custom palette. It returns the index of current.
func paletteCycle(current *lbm.Palette) ([]*lbm.Palette, int) {
	cycle := []*lbm.Palette{nil}
	index := 0
	for _, name := range lbm.PaletteNames() {
		p, err := lbm.PresetPalette(name)
		if err != nil {
			continue
		}
		if current != nil && current.Name() == name {
			p = current
			index = len(cycle)
		}
		cycle = append(cycle, p)
	}
	if current != nil && index == 0 {
		index = len(cycle)
		cycle = append(cycle, current)
	}
	return cycle, index
}

// clampSteps bounds the per-tick step batch.
func clampSteps(n int) int {
	if n < minStepsPerTick {
		return minStepsPerTick
	}
	if n > maxStepsPerTick {
		return maxStepsPerTick
	}
	return n
}
