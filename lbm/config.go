package lbm

import (
	"fmt"
	"image/color"
	"math"
)

// Epsilon is the density below which a cell's velocity is forced to zero.
const Epsilon = 0.001

// maxSpeed bounds the initial and inflow speed; the equilibrium expansion
// breaks down near the lattice sound speed 1/sqrt(3).
var maxSpeed = 1 / math.Sqrt(3)

// InitMode selects how populations are seeded by Initialize.
type InitMode int

const (
	// InitEquilibrium seeds every fluid cell with the equilibrium for the
	// configured density and velocity.
	InitEquilibrium InitMode = iota
	// InitNoise adds seeded uniform noise to each equilibrium population.
	InitNoise
	// InitProfiled seeds the equilibrium of the inflow velocity profile.
	InitProfiled
)

var initModeNames = map[string]InitMode{
	"equilibrium": InitEquilibrium,
	"noise":       InitNoise,
	"profiled":    InitProfiled,
}

// ParseInitMode maps a name to an InitMode.
func ParseInitMode(name string) (InitMode, error) {
	if m, ok := initModeNames[name]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown init mode %q: %w", name, ErrInvalidConfig)
}

// EdgeMode selects what streaming does with inbound populations whose
// source lies outside the grid.
type EdgeMode int

const (
	// EdgeHold keeps the cell's own pre-streaming value.
	EdgeHold EdgeMode = iota
	// EdgeAbsorb zeroes the population.
	EdgeAbsorb
	// EdgePeriodic wraps the source around the opposite edge.
	EdgePeriodic
)

var edgeModeNames = map[string]EdgeMode{
	"hold":     EdgeHold,
	"absorb":   EdgeAbsorb,
	"periodic": EdgePeriodic,
}

// ParseEdgeMode maps a name to an EdgeMode.
func ParseEdgeMode(name string) (EdgeMode, error) {
	if m, ok := edgeModeNames[name]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown edge mode %q: %w", name, ErrInvalidConfig)
}

// Profile shapes the inflow velocity along the left column.
type Profile int

const (
	ProfileUniform Profile = iota
	ProfileLinear
	ProfileParabolic
	ProfileNoise
)

var profileNames = map[string]Profile{
	"uniform":   ProfileUniform,
	"linear":    ProfileLinear,
	"parabolic": ProfileParabolic,
	"noise":     ProfileNoise,
}

// ParseProfile maps a name to a Profile.
func ParseProfile(name string) (Profile, error) {
	if p, ok := profileNames[name]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown inflow profile %q: %w", name, ErrInvalidConfig)
}

// Inflow configures the persistent left-column source.
type Inflow struct {
	Enabled  bool
	Velocity float64
	Profile  Profile
	Jitter   float64 // amplitude of ProfileNoise
}

// RenderMode selects the field shown in the render buffer.
type RenderMode int

const (
	RenderDensity RenderMode = iota
	RenderVelocity
	RenderVorticity
	numRenderModes
)

var renderModeNames = [numRenderModes]string{"density", "velocity", "vorticity"}

func (m RenderMode) String() string {
	if m < 0 || m >= numRenderModes {
		return "unknown"
	}
	return renderModeNames[m]
}

// Next cycles to the following render mode.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % numRenderModes
}

// ParseRenderMode maps a name to a RenderMode.
func ParseRenderMode(name string) (RenderMode, error) {
	for i, n := range renderModeNames {
		if n == name {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q: %w", name, ErrInvalidConfig)
}

// RenderConfig controls the render mapper. A nil Palette selects the raw
// channel formulas.
type RenderConfig struct {
	Mode          RenderMode
	Palette       *Palette
	DensityCap    float64
	VelocityGain  float64
	VorticityGain float64
	ShowWalls     bool
	WallColor     color.RGBA
}

// Default render gains and wall colour.
const (
	DefaultDensityCap    = 1.0
	DefaultVelocityGain  = 4.0
	DefaultVorticityGain = 20.0
)

// DefaultWallColor is used when ShowWalls is set without a colour.
var DefaultWallColor = color.RGBA{30, 40, 80, 255}

// Config describes a simulation instance.
type Config struct {
	Width, Height int
	Omega         float64

	Init      InitMode
	Density   float64
	VelocityX float64
	VelocityY float64
	Noise     float64
	Seed      int64

	Walls  WallPredicate
	Edge   EdgeMode
	Inflow Inflow
	Render RenderConfig

	Workers int
}

// withDefaults fills zero values that have a documented default.
func (c Config) withDefaults() Config {
	if c.Density == 0 {
		c.Density = 1
	}
	if c.Init == InitNoise && c.Noise == 0 {
		c.Noise = 0.01
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.Render.DensityCap == 0 {
		c.Render.DensityCap = DefaultDensityCap
	}
	if c.Render.VelocityGain == 0 {
		c.Render.VelocityGain = DefaultVelocityGain
	}
	if c.Render.VorticityGain == 0 {
		c.Render.VorticityGain = DefaultVorticityGain
	}
	if c.Render.ShowWalls && c.Render.WallColor == (color.RGBA{}) {
		c.Render.WallColor = DefaultWallColor
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}

// Validate reports the first configuration value Initialize would reject.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	if err := validateOmega(c.Omega); err != nil {
		return err
	}
	if c.Density < 0 || math.IsNaN(c.Density) {
		return fmt.Errorf("density %g: %w", c.Density, ErrInvalidConfig)
	}
	if math.Hypot(c.VelocityX, c.VelocityY) >= maxSpeed {
		return fmt.Errorf("initial speed %g exceeds %.3f: %w",
			math.Hypot(c.VelocityX, c.VelocityY), maxSpeed, ErrInvalidConfig)
	}
	if c.Noise < 0 {
		return fmt.Errorf("noise %g: %w", c.Noise, ErrInvalidConfig)
	}
	if c.Inflow.Enabled && math.Abs(c.Inflow.Velocity) >= maxSpeed {
		return fmt.Errorf("inflow velocity %g exceeds %.3f: %w", c.Inflow.Velocity, maxSpeed, ErrInvalidConfig)
	}
	if c.Render.Mode < 0 || c.Render.Mode >= numRenderModes {
		return fmt.Errorf("render mode %d: %w", c.Render.Mode, ErrInvalidConfig)
	}
	if err := validateDensityCap(c.Render.DensityCap); err != nil {
		return err
	}
	return nil
}

func validateOmega(omega float64) error {
	if !(omega > 0 && omega <= 2) {
		return fmt.Errorf("omega %g: %w", omega, ErrUnstableOmega)
	}
	return nil
}

func validateDensityCap(v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("density cap %g: %w", v, ErrInvalidConfig)
	}
	return nil
}
