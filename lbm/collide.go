package lbm

// collideSpan relaxes the fluid cells [x0, x1] of row y toward equilibrium
// and records their velocity in the cache.
func collideSpan(g *Grid, omega float64, y, x0, x1 int) {
	var eq [NumDirections]float64
	base := y * g.Width
	for x := x0; x <= x1; x++ {
		i := base + x
		rho, ux, uy := g.moments(i)
		g.ux[i] = ux
		g.uy[i] = uy
		equilibria(&eq, rho, ux, uy)
		for d := C; d < NumDirections; d++ {
			f := g.f[d][i]
			f += omega * (eq[d] - f)
			if f < 0 {
				f = 0
			}
			g.f[d][i] = f
		}
	}
}

// collide runs the collision stage: fluid cells relax on the worker pool,
// wall cells are zeroed.
func (s *Simulation) collide() {
	g := s.grid
	omega := s.cfg.Omega
	s.pool.run(s.fluidMasks, func(row rowMask) {
		for _, sp := range row.spans {
			collideSpan(g, omega, row.y, sp.start, sp.end)
		}
	})
	for _, i := range s.walls {
		g.zeroCell(i)
	}
}
