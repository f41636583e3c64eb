package lbm

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Simulation owns a lattice grid and advances it one step at a time. It is
// not safe for concurrent use.
type Simulation struct {
	cfg  Config
	grid *Grid
	pool *workerPool

	fluidMasks []workerMask
	rowMasks   []workerMask
	walls      []int

	footprints map[int][]gridOffset
	pending    []pulseRequest
	rng        *rand.Rand

	image *image.RGBA
	steps int
}

// Stats summarises the current field.
type Stats struct {
	Mass        float64
	MinDensity  float64 // over fluid cells
	MaxDensity  float64
	MeanDensity float64 // over fluid cells
	MaxSpeed    float64
	FluidCells  int
	WallCells   int
}

// New validates cfg and returns an initialized simulation.
func New(cfg Config) (*Simulation, error) {
	s := &Simulation{}
	if err := s.Initialize(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize discards any existing grid and builds a fresh one from cfg.
// On error the previous state is left untouched.
func (s *Simulation) Initialize(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.withDefaults()

	if s.pool != nil {
		s.pool.close()
	}
	s.cfg = cfg
	s.grid = newGrid(cfg.Width, cfg.Height)
	s.pool = newWorkerPool(cfg.Workers)
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.footprints = make(map[int][]gridOffset)
	s.pending = s.pending[:0]
	s.steps = 0

	g := s.grid
	if cfg.Walls != nil {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				g.wall[g.Index(x, y)] = cfg.Walls(x, y, g.Width, g.Height)
			}
		}
	}
	s.seed()

	s.fluidMasks = s.pool.split(fluidRows(g))
	s.rowMasks = s.pool.split(fullRows(g.Width, g.Height))
	s.walls = wallIndices(g)
	s.image = image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	s.render()
	return nil
}

// seed writes the initial populations of every fluid cell.
func (s *Simulation) seed() {
	g := s.grid
	cfg := s.cfg
	inflowSpeed := cfg.Inflow.Velocity
	if inflowSpeed == 0 {
		inflowSpeed = cfg.VelocityX
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			if g.wall[i] {
				continue
			}
			switch cfg.Init {
			case InitProfiled:
				u := inflowSpeed * s.profileFactor(cfg.Inflow.Profile, y)
				g.setEquilibrium(i, cfg.Density, u, 0)
			case InitNoise:
				g.setEquilibrium(i, cfg.Density, cfg.VelocityX, cfg.VelocityY)
				for d := C; d < NumDirections; d++ {
					v := g.f[d][i] * (1 + cfg.Noise*(2*s.rng.Float64()-1))
					g.f[d][i] = math.Max(v, 0)
				}
			default:
				g.setEquilibrium(i, cfg.Density, cfg.VelocityX, cfg.VelocityY)
			}
			_, g.ux[i], g.uy[i] = g.moments(i)
		}
	}
}

// Step advances the simulation by one tick: collision, streaming,
// bounce-back, forcing, then rendering.
func (s *Simulation) Step() {
	if s.grid == nil {
		return
	}
	s.collide()
	s.stream()
	s.boundary()
	s.force()
	s.render()
	s.steps++
}

// SetSize reinitializes the simulation with new dimensions and otherwise
// unchanged configuration.
func (s *Simulation) SetSize(width, height int) error {
	cfg := s.cfg
	cfg.Width, cfg.Height = width, height
	return s.Initialize(cfg)
}

// RenderBuffer returns the RGBA image written by the last step. The buffer
// is reused; copy it to keep a frame.
func (s *Simulation) RenderBuffer() *image.RGBA { return s.image }

// Omega returns the relaxation rate.
func (s *Simulation) Omega() float64 { return s.cfg.Omega }

// SetOmega changes the relaxation rate for subsequent steps.
func (s *Simulation) SetOmega(omega float64) error {
	if err := validateOmega(omega); err != nil {
		return err
	}
	s.cfg.Omega = omega
	return nil
}

// Palette returns the active palette, nil for the raw channel formulas.
func (s *Simulation) Palette() *Palette { return s.cfg.Render.Palette }

// SetPalette switches the colour mapping and redraws the buffer.
func (s *Simulation) SetPalette(p *Palette) {
	s.cfg.Render.Palette = p
	s.redraw()
}

func (s *Simulation) DensityCap() float64 { return s.cfg.Render.DensityCap }

// SetDensityCap changes the display scale and redraws the buffer.
func (s *Simulation) SetDensityCap(v float64) error {
	if err := validateDensityCap(v); err != nil {
		return err
	}
	s.cfg.Render.DensityCap = v
	s.redraw()
	return nil
}

func (s *Simulation) RenderMode() RenderMode { return s.cfg.Render.Mode }

// SetRenderMode switches the displayed field and redraws the buffer.
func (s *Simulation) SetRenderMode(m RenderMode) error {
	if m < 0 || m >= numRenderModes {
		return fmt.Errorf("render mode %d: %w", m, ErrInvalidConfig)
	}
	s.cfg.Render.Mode = m
	s.redraw()
	return nil
}

func (s *Simulation) redraw() {
	if s.grid != nil {
		s.render()
	}
}

// Size returns the grid dimensions.
func (s *Simulation) Size() (int, int) { return s.cfg.Width, s.cfg.Height }

// Config returns the effective configuration, defaults applied.
func (s *Simulation) Config() Config { return s.cfg }

// Steps returns the number of steps since the last Initialize.
func (s *Simulation) Steps() int { return s.steps }

// Grid exposes the lattice for inspection.
func (s *Simulation) Grid() *Grid { return s.grid }

// Stats computes mass and density/speed extremes of the current state.
func (s *Simulation) Stats() Stats {
	g := s.grid
	if g == nil {
		return Stats{}
	}
	st := Stats{
		MinDensity: math.Inf(1),
		MaxDensity: floats.Max(g.rho),
		WallCells:  len(s.walls),
	}
	var fluidMass float64
	for i, wall := range g.wall {
		if wall {
			continue
		}
		rho, ux, uy := g.moments(i)
		st.FluidCells++
		fluidMass += rho
		st.MinDensity = math.Min(st.MinDensity, rho)
		st.MaxSpeed = math.Max(st.MaxSpeed, math.Hypot(ux, uy))
	}
	st.Mass = g.TotalMass()
	if st.FluidCells > 0 {
		st.MeanDensity = fluidMass / float64(st.FluidCells)
	} else {
		st.MinDensity = 0
	}
	return st
}

// Close stops the worker goroutines. The simulation must not be stepped
// afterwards.
func (s *Simulation) Close() {
	if s.pool != nil {
		s.pool.close()
	}
}
