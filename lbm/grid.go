package lbm

import "gonum.org/v1/gonum/floats"

// Grid stores the lattice populations and per-cell caches as flat row-major
// slices, one slice per direction.
type Grid struct {
	Width, Height int

	f    [NumDirections][]float64
	next [NumDirections][]float64 // streaming scratch, swapped with f

	wall []bool
	ux   []float64 // velocity cache written by collision
	uy   []float64
	rho  []float64 // density of the last rendered state
}

// newGrid allocates a grid with every buffer sized width*height.
func newGrid(width, height int) *Grid {
	size := width * height
	g := &Grid{
		Width: width, Height: height,
		wall: make([]bool, size),
		ux:   make([]float64, size),
		uy:   make([]float64, size),
		rho:  make([]float64, size),
	}
	for d := C; d < NumDirections; d++ {
		g.f[d] = make([]float64, size)
		g.next[d] = make([]float64, size)
	}
	return g
}

// Index returns the row-major index of (x, y).
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Population returns f_d at (x, y). Out-of-grid reads return 0.
func (g *Grid) Population(x, y int, d Direction) float64 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.f[d][g.Index(x, y)]
}

// SetPopulation writes f_d at (x, y). Out-of-grid writes are ignored.
func (g *Grid) SetPopulation(x, y int, d Direction, v float64) {
	if !g.InBounds(x, y) {
		return
	}
	g.f[d][g.Index(x, y)] = v
}

// Populations copies the nine populations of (x, y).
func (g *Grid) Populations(x, y int) [NumDirections]float64 {
	var out [NumDirections]float64
	if !g.InBounds(x, y) {
		return out
	}
	i := g.Index(x, y)
	for d := C; d < NumDirections; d++ {
		out[d] = g.f[d][i]
	}
	return out
}

// Directional returns the backing slice of direction d. Callers must not
// retain it across Step.
func (g *Grid) Directional(d Direction) []float64 {
	return g.f[d]
}

// IsWall reports whether (x, y) is a solid cell. Cells outside the grid
// are not walls.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.wall[g.Index(x, y)]
}

// Density returns the sum of the populations at (x, y).
func (g *Grid) Density(x, y int) float64 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.densityAt(g.Index(x, y))
}

// Velocity returns the macroscopic velocity at (x, y) derived from the
// current populations, (0, 0) when the density is below epsilon.
func (g *Grid) Velocity(x, y int) (float64, float64) {
	if !g.InBounds(x, y) {
		return 0, 0
	}
	_, ux, uy := g.moments(g.Index(x, y))
	return ux, uy
}

// CachedVelocity returns the velocity recorded by the last collision pass.
func (g *Grid) CachedVelocity(x, y int) (float64, float64) {
	if !g.InBounds(x, y) {
		return 0, 0
	}
	i := g.Index(x, y)
	return g.ux[i], g.uy[i]
}

func (g *Grid) densityAt(i int) float64 {
	var rho float64
	for d := C; d < NumDirections; d++ {
		rho += g.f[d][i]
	}
	return rho
}

// moments computes density and velocity of cell i with the epsilon guard.
func (g *Grid) moments(i int) (rho, ux, uy float64) {
	var mx, my float64
	for d := C; d < NumDirections; d++ {
		v := g.f[d][i]
		rho += v
		mx += float64(ex[d]) * v
		my += float64(ey[d]) * v
	}
	if rho < Epsilon {
		return rho, 0, 0
	}
	return rho, mx / rho, my / rho
}

// TotalMass sums every population of the grid.
func (g *Grid) TotalMass() float64 {
	var mass float64
	for d := C; d < NumDirections; d++ {
		mass += floats.Sum(g.f[d])
	}
	return mass
}

// zeroCell clears every population and the velocity cache of cell i.
func (g *Grid) zeroCell(i int) {
	for d := C; d < NumDirections; d++ {
		g.f[d][i] = 0
	}
	g.ux[i] = 0
	g.uy[i] = 0
}

// setEquilibrium writes the equilibrium populations for (rho, ux, uy).
func (g *Grid) setEquilibrium(i int, rho, ux, uy float64) {
	var eq [NumDirections]float64
	equilibria(&eq, rho, ux, uy)
	for d := C; d < NumDirections; d++ {
		g.f[d][i] = eq[d]
	}
}

// swap exchanges the population set with the streaming scratch set.
func (g *Grid) swap() {
	g.f, g.next = g.next, g.f
}
