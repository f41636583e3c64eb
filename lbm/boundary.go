package lbm

// bounceBack returns every population that streamed into a wall cell to its
// origin in the reversed direction, then zeroes the wall cells. It must run
// after streaming and before the next collision. With periodic edges the
// origin wraps like the streaming source did.
func bounceBack(g *Grid, walls []int, periodic bool) {
	w, h := g.Width, g.Height
	for _, i := range walls {
		x, y := i%w, i/w
		for d := N; d < NumDirections; d++ {
			v := g.f[d][i]
			if v == 0 {
				continue
			}
			sx, sy := x-ex[d], y-ey[d]
			if periodic {
				sx, sy = wrap(sx, w), wrap(sy, h)
			}
			if !g.InBounds(sx, sy) {
				continue
			}
			g.f[opposite[d]][sy*w+sx] += v
		}
	}
	for _, i := range walls {
		g.zeroCell(i)
	}
}

func (s *Simulation) boundary() {
	bounceBack(s.grid, s.walls, s.cfg.Edge == EdgePeriodic)
}
