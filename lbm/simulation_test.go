package lbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestStateIsSteady(t *testing.T) {
	s := newTestSim(t, Config{Width: 3, Height: 3, Omega: 1})
	s.Step()
	g := s.grid
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			for d := C; d < NumDirections; d++ {
				assert.InDelta(t, weights[d], g.Population(x, y, d), 1e-15, "cell (%d,%d) %v", x, y, d)
			}
		}
	}
	assert.Equal(t, 1, s.Steps())
}

func TestInitializeIsDeterministic(t *testing.T) {
	cfg := Config{
		Width: 20, Height: 14, Omega: 1.4,
		Init: InitNoise, Noise: 0.1, Seed: 7,
		Walls: Segments(3, 4, 3, 6, 1),
	}
	a := newTestSim(t, cfg)
	b := newTestSim(t, cfg)
	assert.Equal(t, snapshot(a.grid), snapshot(b.grid))
	assert.Equal(t, a.grid.wall, b.grid.wall)

	require.NoError(t, a.Initialize(cfg))
	assert.Equal(t, snapshot(b.grid), snapshot(a.grid))
}

func TestSetSize(t *testing.T) {
	cfg := Config{Width: 10, Height: 8, Omega: 1, Init: InitNoise, Seed: 2}
	s := newTestSim(t, cfg)
	fresh := newTestSim(t, cfg)
	s.Step()
	s.Pulse(4, 4, 2, 1)

	require.NoError(t, s.SetSize(16, 4))
	w, h := s.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 4, h)
	assert.Zero(t, s.Steps())
	assert.Equal(t, 16, s.RenderBuffer().Bounds().Dx())
	assert.Equal(t, 4, s.RenderBuffer().Bounds().Dy())

	require.NoError(t, s.SetSize(10, 8))
	assert.Equal(t, snapshot(fresh.grid), snapshot(s.grid))

	assert.ErrorIs(t, s.SetSize(0, 8), ErrInvalidSize)
	w, _ = s.Size()
	assert.Equal(t, 10, w)
}

func TestInitializeRejectsInvalidConfig(t *testing.T) {
	base := Config{Width: 4, Height: 4, Omega: 1}
	cases := map[string]struct {
		mutate func(*Config)
		err    error
	}{
		"zero width":       {func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		"negative height":  {func(c *Config) { c.Height = -2 }, ErrInvalidSize},
		"zero omega":       {func(c *Config) { c.Omega = 0 }, ErrUnstableOmega},
		"omega above two":  {func(c *Config) { c.Omega = 2.01 }, ErrUnstableOmega},
		"negative density": {func(c *Config) { c.Density = -1 }, ErrInvalidConfig},
		"supersonic":       {func(c *Config) { c.VelocityX = 0.6 }, ErrInvalidConfig},
		"negative noise":   {func(c *Config) { c.Noise = -0.1 }, ErrInvalidConfig},
		"fast inflow": {func(c *Config) {
			c.Inflow = Inflow{Enabled: true, Velocity: 0.7}
		}, ErrInvalidConfig},
		"render mode":  {func(c *Config) { c.Render.Mode = RenderMode(9) }, ErrInvalidConfig},
		"negative cap": {func(c *Config) { c.Render.DensityCap = -1 }, ErrInvalidConfig},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestFailedInitializeKeepsState(t *testing.T) {
	s := newTestSim(t, Config{Width: 5, Height: 5, Omega: 1})
	s.Step()
	err := s.Initialize(Config{Width: 5, Height: 5, Omega: 3})
	require.ErrorIs(t, err, ErrUnstableOmega)
	assert.Equal(t, 1, s.Steps())
	assert.Equal(t, 1.0, s.Omega())
	s.Step()
	assert.Equal(t, 2, s.Steps())
}

func TestParallelMatchesInline(t *testing.T) {
	cfg := Config{
		Width: 48, Height: 33, Omega: 1.7,
		Init: InitNoise, Seed: 11,
		Walls:  Union(Border(2), Circle(16, 16, 5), Airfoil(24, 20, 18, 0.02, 0.4, 0.12)),
		Inflow: Inflow{Enabled: true, Velocity: 0.05, Profile: ProfileParabolic},
		Render: RenderConfig{Mode: RenderVorticity},
	}
	inline := newTestSim(t, cfg)
	cfg.Workers = 4
	parallel := newTestSim(t, cfg)

	for i := 0; i < 25; i++ {
		if i%5 == 0 {
			inline.QueuePulse(10, 25, 3, 0.4)
			parallel.QueuePulse(10, 25, 3, 0.4)
		}
		inline.Step()
		parallel.Step()
	}
	assert.Equal(t, snapshot(inline.grid), snapshot(parallel.grid))
	assert.Equal(t, inline.RenderBuffer().Pix, parallel.RenderBuffer().Pix)
}

func TestProfiledInitialization(t *testing.T) {
	s := newTestSim(t, Config{
		Width: 6, Height: 9, Omega: 1,
		Init:   InitProfiled,
		Inflow: Inflow{Velocity: 0.08, Profile: ProfileParabolic},
	})
	ux, uy := s.grid.Velocity(3, 4)
	assert.InDelta(t, 0.08, ux, 1e-12)
	assert.InDelta(t, 0, uy, 1e-12)
	ux, _ = s.grid.Velocity(3, 0)
	assert.InDelta(t, 0, ux, 1e-12)
}

func TestNoiseInitializationStaysNearEquilibrium(t *testing.T) {
	s := newTestSim(t, Config{Width: 10, Height: 10, Omega: 1, Init: InitNoise, Noise: 0.05})
	g := s.grid
	for d := C; d < NumDirections; d++ {
		for _, f := range g.f[d] {
			assert.InDelta(t, weights[d], f, weights[d]*0.05+1e-15)
		}
	}
	assert.Equal(t, 0.05, s.Config().Noise)
}

func TestStats(t *testing.T) {
	s := newTestSim(t, Config{Width: 4, Height: 3, Omega: 1, Walls: Rect(0, 0, 0, 2)})
	st := s.Stats()
	assert.Equal(t, 9, st.FluidCells)
	assert.Equal(t, 3, st.WallCells)
	assert.InDelta(t, 9.0, st.Mass, 1e-12)
	assert.InDelta(t, 1.0, st.MinDensity, 1e-12)
	assert.InDelta(t, 1.0, st.MaxDensity, 1e-12)
	assert.InDelta(t, 1.0, st.MeanDensity, 1e-12)
	assert.InDelta(t, 0.0, st.MaxSpeed, 1e-12)

	s.Pulse(2, 1, 1, -0.5)
	s.Step()
	assert.Greater(t, s.Stats().MaxSpeed, 0.0)
}

func TestSetters(t *testing.T) {
	s := newTestSim(t, Config{Width: 4, Height: 4, Omega: 1})

	require.NoError(t, s.SetOmega(1.85))
	assert.Equal(t, 1.85, s.Omega())
	assert.ErrorIs(t, s.SetOmega(2.5), ErrUnstableOmega)
	assert.Equal(t, 1.85, s.Omega())

	require.NoError(t, s.SetDensityCap(2))
	assert.Equal(t, 2.0, s.DensityCap())
	assert.ErrorIs(t, s.SetDensityCap(0), ErrInvalidConfig)

	require.NoError(t, s.SetRenderMode(RenderVelocity))
	assert.Equal(t, RenderVelocity, s.RenderMode())
	assert.ErrorIs(t, s.SetRenderMode(RenderMode(-1)), ErrInvalidConfig)

	p, err := PresetPalette("heat")
	require.NoError(t, err)
	s.SetPalette(p)
	assert.Same(t, p, s.Palette())
	s.SetPalette(nil)
	assert.Nil(t, s.Palette())
	assert.NotNil(t, s.Grid())
}
