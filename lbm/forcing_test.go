package lbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPulseCentreDelta(t *testing.T) {
	s := newTestSim(t, Config{Width: 5, Height: 5, Omega: 1})
	g := s.grid
	before := snapshot(g)
	s.Pulse(2, 2, 1, 1.0)

	centre := g.Index(2, 2)
	assert.InDelta(t, before[C][centre]-4.0/9, g.f[C][centre], 1e-15)
	for d := N; d < NumDirections; d++ {
		assert.InDelta(t, before[d][centre]+weights[d], g.f[d][centre], 1e-15, "direction %v", d)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 2 && y == 2 {
				continue
			}
			i := g.Index(x, y)
			for d := C; d < NumDirections; d++ {
				assert.Equal(t, before[d][i], g.f[d][i], "cell (%d,%d) %v", x, y, d)
			}
		}
	}
}

func TestPulseLocality(t *testing.T) {
	s := newTestSim(t, Config{Width: 13, Height: 13, Omega: 1})
	g := s.grid
	before := snapshot(g)
	const cx, cy, r = 6, 6, 3
	s.Pulse(cx, cy, r, 2)

	touched := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			if d2 > r*r {
				for d := C; d < NumDirections; d++ {
					assert.Equal(t, before[d][i], g.f[d][i], "cell (%d,%d)", x, y)
				}
				continue
			}
			if g.f[C][i] != before[C][i] {
				touched++
			}
		}
	}
	assert.InDelta(t, before[C][g.Index(cx, cy)]-2*4.0/9, g.Population(cx, cy, C), 1e-15)
	// The rim of the footprint has zero falloff.
	assert.Equal(t, 25, touched)
}

func TestPulseNoOps(t *testing.T) {
	s := newTestSim(t, Config{Width: 6, Height: 6, Omega: 1, Walls: Rect(3, 3, 3, 3)})
	g := s.grid
	before := snapshot(g)

	s.Pulse(-1, 2, 2, 1)
	s.Pulse(2, 6, 2, 1)
	s.Pulse(2, 2, 0, 1)
	s.Pulse(2, 2, -3, 1)
	for d := C; d < NumDirections; d++ {
		assert.Equal(t, before[d], g.f[d])
	}

	s.Pulse(3, 3, 2, 1)
	assert.Zero(t, g.Density(3, 3))
	assert.NotEqual(t, before[C][g.Index(3, 2)], g.Population(3, 2, C))
}

func TestFootprintSizes(t *testing.T) {
	assert.Len(t, precomputeFootprint(1), 5)
	assert.Len(t, precomputeFootprint(2), 13)

	s := newTestSim(t, Config{Width: 4, Height: 4, Omega: 1})
	first := s.footprint(3)
	assert.Equal(t, first, s.footprint(3))
	assert.Len(t, s.footprints, 1)
}

func TestPulseHugeRadiusStaysOnGrid(t *testing.T) {
	for _, radius := range []int{1 << 20, 1 << 40, 1<<62 + 1} {
		s := newTestSim(t, Config{Width: 5, Height: 5, Omega: 1, Walls: Rect(4, 4, 4, 4)})
		g := s.grid
		before := snapshot(g)
		assert.NotPanics(t, func() { s.Pulse(2, 2, radius, 1) })

		r2 := float64(radius) * float64(radius)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				i := g.Index(x, y)
				if g.wall[i] {
					assert.Zero(t, g.Density(x, y))
					continue
				}
				dx, dy := float64(x-2), float64(y-2)
				cs := 1 - (dx*dx+dy*dy)/r2
				assert.InDelta(t, before[C][i]-cs*weights[C], g.f[C][i], 1e-15, "radius %d cell (%d,%d)", radius, x, y)
				for d := N; d < NumDirections; d++ {
					assert.InDelta(t, before[d][i]+cs*weights[d], g.f[d][i], 1e-15, "radius %d cell (%d,%d) %v", radius, x, y, d)
				}
			}
		}
		assert.Empty(t, s.footprints)
	}
}

func TestPulseClippedMatchesFootprint(t *testing.T) {
	cfg := Config{Width: 9, Height: 7, Omega: 1, Init: InitNoise, Seed: 3}
	cached := newTestSim(t, cfg)
	clipped := newTestSim(t, cfg)

	cached.Pulse(1, 5, 4, 0.3)
	clipped.pulseClipped(1, 5, 4, 0.3)
	assert.Equal(t, snapshot(cached.grid), snapshot(clipped.grid))
}

func TestClipSpan(t *testing.T) {
	lo, hi := clipSpan(3, 2, 10)
	assert.Equal(t, [2]int{1, 5}, [2]int{lo, hi})
	lo, hi = clipSpan(0, 1<<62, 10)
	assert.Equal(t, [2]int{0, 9}, [2]int{lo, hi})
	lo, hi = clipSpan(9, 4, 10)
	assert.Equal(t, [2]int{5, 9}, [2]int{lo, hi})
}

func TestQueuePulseAppliesInForcingStage(t *testing.T) {
	cfg := Config{Width: 12, Height: 9, Omega: 1.3, Init: InitNoise, Seed: 5}
	queued := newTestSim(t, cfg)
	direct := newTestSim(t, cfg)

	assert.True(t, queued.QueuePulse(5, 4, 2, 0.7))
	assert.False(t, queued.QueuePulse(50, 4, 2, 0.7))
	assert.False(t, queued.QueuePulse(5, 4, 0, 0.7))
	assert.Equal(t, snapshot(direct.grid), snapshot(queued.grid))

	queued.Step()
	direct.Step()
	direct.Pulse(5, 4, 2, 0.7)
	assert.Equal(t, snapshot(direct.grid), snapshot(queued.grid))
	assert.Empty(t, queued.pending)
}

func TestInflowUniform(t *testing.T) {
	s := newTestSim(t, Config{
		Width: 8, Height: 5, Omega: 1,
		Inflow: Inflow{Enabled: true, Velocity: 0.1},
	})
	s.Step()
	k := 1 + 0.3 + 0.03
	for y := 0; y < 5; y++ {
		assert.InDelta(t, k/9, s.grid.Population(0, y, E), 1e-15)
		assert.InDelta(t, k/36, s.grid.Population(0, y, NE), 1e-15)
		assert.InDelta(t, k/36, s.grid.Population(0, y, SE), 1e-15)
	}
}

func TestInflowParabolicProfile(t *testing.T) {
	s := newTestSim(t, Config{
		Width: 8, Height: 5, Omega: 1,
		Inflow: Inflow{Enabled: true, Velocity: 0.1, Profile: ProfileParabolic},
	})
	s.Step()
	assert.InDelta(t, 1.0/9, s.grid.Population(0, 0, E), 1e-15)
	assert.InDelta(t, 1.33/9, s.grid.Population(0, 2, E), 1e-15)
	assert.InDelta(t, 1.0/9, s.grid.Population(0, 4, E), 1e-15)
}

func TestProfileFactor(t *testing.T) {
	s := newTestSim(t, Config{Width: 3, Height: 11, Omega: 1})
	assert.Equal(t, 1.0, s.profileFactor(ProfileUniform, 4))
	assert.InDelta(t, 0.5, s.profileFactor(ProfileLinear, 5), 1e-15)
	assert.InDelta(t, 1.0, s.profileFactor(ProfileParabolic, 5), 1e-15)
	assert.Zero(t, s.profileFactor(ProfileParabolic, 10))

	s.cfg.Inflow.Jitter = 0.2
	for i := 0; i < 100; i++ {
		f := s.profileFactor(ProfileNoise, 0)
		assert.GreaterOrEqual(t, f, 0.9)
		assert.Less(t, f, 1.1)
	}
}

func TestInflowSkipsWalls(t *testing.T) {
	s := newTestSim(t, Config{
		Width: 8, Height: 6, Omega: 1,
		Walls:  Border(1),
		Inflow: Inflow{Enabled: true, Velocity: 0.1},
	})
	s.Step()
	for y := 0; y < 6; y++ {
		assert.Zero(t, s.grid.Density(0, y))
	}
}
