// Package lbm implements an interactive D2Q9 lattice-Boltzmann flow solver
// with bounce-back walls, radial pulses, an inflow source and an RGBA
// render mapper.
package lbm

// Direction indexes one of the nine discrete lattice velocities.
type Direction int

// Lattice directions in storage order.
const (
	C Direction = iota
	N
	NE
	E
	SE
	S
	SW
	W
	NW
	NumDirections
)

var directionNames = [NumDirections]string{"C", "N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return "?"
	}
	return directionNames[d]
}

var (
	ex = [NumDirections]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	ey = [NumDirections]int{0, 1, 1, 0, -1, -1, -1, 0, 1}

	weights = [NumDirections]float64{
		4.0 / 9,
		1.0 / 9, 1.0 / 36, 1.0 / 9, 1.0 / 36,
		1.0 / 9, 1.0 / 36, 1.0 / 9, 1.0 / 36,
	}

	opposite = [NumDirections]Direction{C, S, SW, W, NW, N, NE, E, SE}
)

// Vector returns the unit lattice offset of d.
func Vector(d Direction) (int, int) {
	return ex[d], ey[d]
}

// Weight returns the lattice weight of d.
func Weight(d Direction) float64 {
	return weights[d]
}

// Opposite returns the direction pointing the other way.
func Opposite(d Direction) Direction {
	return opposite[d]
}

// Equilibrium evaluates the second-order BGK equilibrium population for
// direction d at density rho and velocity (ux, uy).
func Equilibrium(d Direction, rho, ux, uy float64) float64 {
	eu := float64(ex[d])*ux + float64(ey[d])*uy
	usq := ux*ux + uy*uy
	return weights[d] * rho * (1 + 3*eu + 4.5*eu*eu - 1.5*usq)
}

// equilibria fills dst with all nine equilibrium populations.
func equilibria(dst *[NumDirections]float64, rho, ux, uy float64) {
	usq15 := 1.5 * (ux*ux + uy*uy)
	for d := C; d < NumDirections; d++ {
		eu := float64(ex[d])*ux + float64(ey[d])*uy
		dst[d] = weights[d] * rho * (1 + 3*eu + 4.5*eu*eu - usq15)
	}
}
