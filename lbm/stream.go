package lbm

// streamRow pulls every population of row y from its upstream neighbour
// into the scratch set. Writes touch only row y of the scratch set, so rows
// may stream concurrently.
func streamRow(g *Grid, edge EdgeMode, y int) {
	w, h := g.Width, g.Height
	base := y * w
	copy(g.next[C][base:base+w], g.f[C][base:base+w])
	for d := N; d < NumDirections; d++ {
		src := g.f[d]
		dst := g.next[d]
		sy := y - ey[d]
		rowInside := sy >= 0 && sy < h
		if edge == EdgePeriodic {
			sy = wrap(sy, h)
			rowInside = true
		}
		for x := 0; x < w; x++ {
			i := base + x
			sx := x - ex[d]
			if rowInside && sx >= 0 && sx < w {
				dst[i] = src[sy*w+sx]
				continue
			}
			switch edge {
			case EdgePeriodic:
				dst[i] = src[sy*w+wrap(sx, w)]
			case EdgeAbsorb:
				dst[i] = 0
			default:
				dst[i] = src[i]
			}
		}
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// stream advects every population one lattice step along its direction
// using the double buffer, then swaps the buffers.
func (s *Simulation) stream() {
	g := s.grid
	edge := s.cfg.Edge
	s.pool.run(s.rowMasks, func(row rowMask) {
		streamRow(g, edge, row.y)
	})
	g.swap()
}
