package lbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSim(t *testing.T, cfg Config) *Simulation {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func snapshot(g *Grid) [NumDirections][]float64 {
	var out [NumDirections][]float64
	for d := C; d < NumDirections; d++ {
		out[d] = append([]float64(nil), g.f[d]...)
	}
	return out
}

func TestWeightsSumToOne(t *testing.T) {
	var sum float64
	for d := C; d < NumDirections; d++ {
		sum += Weight(d)
	}
	assert.InDelta(t, 1.0, sum, 1e-15)
}

func TestOppositeReversesVector(t *testing.T) {
	for d := C; d < NumDirections; d++ {
		o := Opposite(d)
		assert.Equal(t, d, Opposite(o), "opposite of %v", d)
		dx, dy := Vector(d)
		ox, oy := Vector(o)
		assert.Equal(t, -dx, ox, "x of %v", d)
		assert.Equal(t, -dy, oy, "y of %v", d)
		assert.Equal(t, Weight(d), Weight(o))
	}
}

func TestEquilibriumMoments(t *testing.T) {
	cases := []struct{ rho, ux, uy float64 }{
		{1, 0, 0},
		{1.2, 0.05, -0.03},
		{0.8, -0.1, 0.1},
	}
	for _, tc := range cases {
		var rho, mx, my float64
		var eq [NumDirections]float64
		equilibria(&eq, tc.rho, tc.ux, tc.uy)
		for d := C; d < NumDirections; d++ {
			f := Equilibrium(d, tc.rho, tc.ux, tc.uy)
			assert.InDelta(t, f, eq[d], 1e-15)
			dx, dy := Vector(d)
			rho += f
			mx += float64(dx) * f
			my += float64(dy) * f
		}
		assert.InDelta(t, tc.rho, rho, 1e-12)
		assert.InDelta(t, tc.rho*tc.ux, mx, 1e-12)
		assert.InDelta(t, tc.rho*tc.uy, my, 1e-12)
	}
}

func TestRestEquilibriumIsWeights(t *testing.T) {
	assert.InDelta(t, 4.0/9, Equilibrium(C, 1, 0, 0), 1e-15)
	assert.InDelta(t, 1.0/9, Equilibrium(E, 1, 0, 0), 1e-15)
	assert.InDelta(t, 1.0/36, Equilibrium(NW, 1, 0, 0), 1e-15)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "NE", NE.String())
	assert.Equal(t, "?", Direction(12).String())
}
