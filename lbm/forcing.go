package lbm

// gridOffset is one cell of a pulse footprint and its radial falloff.
type gridOffset struct {
	dx, dy  int
	falloff float64
}

// maxCachedFootprint is the largest radius whose footprint is kept in the
// per-simulation cache. Larger pulses walk the grid-clipped bounding box.
const maxCachedFootprint = 64

// precomputeFootprint lists the offsets with dx²+dy² <= radius² together
// with the linear falloff 1 - d²/r².
func precomputeFootprint(radius int) []gridOffset {
	footprint := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := float64(radius) * float64(radius)
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if f, ok := pulseFalloff(x, y, r2); ok {
				footprint = append(footprint, gridOffset{dx: x, dy: y, falloff: f})
			}
		}
	}
	return footprint
}

// pulseFalloff returns 1 - d²/r² for offset (dx, dy) and whether it lies
// inside the footprint.
func pulseFalloff(dx, dy int, r2 float64) (float64, bool) {
	d2 := float64(dx)*float64(dx) + float64(dy)*float64(dy)
	if d2 > r2 {
		return 0, false
	}
	return 1 - d2/r2, true
}

func (s *Simulation) footprint(radius int) []gridOffset {
	if fp, ok := s.footprints[radius]; ok {
		return fp
	}
	fp := precomputeFootprint(radius)
	s.footprints[radius] = fp
	return fp
}

// pulseRequest is a pulse deferred to the forcing slot of the next step.
type pulseRequest struct {
	x, y, radius int
	strength     float64
}

// Pulse injects a radial perturbation centred on (cx, cy). Every fluid cell
// within radius loses strength·falloff·w_C from its rest population and
// gains strength·falloff·w_d in every moving direction. An out-of-grid
// centre or a non-positive radius is a no-op.
func (s *Simulation) Pulse(cx, cy, radius int, strength float64) {
	g := s.grid
	if g == nil || radius <= 0 || !g.InBounds(cx, cy) {
		return
	}
	if radius > maxCachedFootprint {
		s.pulseClipped(cx, cy, radius, strength)
		return
	}
	for _, off := range s.footprint(radius) {
		x, y := cx+off.dx, cy+off.dy
		if !g.InBounds(x, y) {
			continue
		}
		s.kick(g.Index(x, y), strength*off.falloff)
	}
}

// pulseClipped applies a pulse by scanning its bounding box clipped to the
// grid, so the work is bounded by the grid size rather than the radius.
func (s *Simulation) pulseClipped(cx, cy, radius int, strength float64) {
	g := s.grid
	x0, x1 := clipSpan(cx, radius, g.Width)
	y0, y1 := clipSpan(cy, radius, g.Height)
	r2 := float64(radius) * float64(radius)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if f, ok := pulseFalloff(x-cx, y-cy, r2); ok {
				s.kick(g.Index(x, y), strength*f)
			}
		}
	}
}

// clipSpan returns [c-r, c+r] intersected with [0, n-1] without overflowing
// for large r. c must lie in [0, n-1].
func clipSpan(c, r, n int) (int, int) {
	lo, hi := 0, n-1
	if r < c {
		lo = c - r
	}
	if r < n-1-c {
		hi = c + r
	}
	return lo, hi
}

// kick moves cs·w_C out of the rest population of fluid cell i and into the
// moving directions.
func (s *Simulation) kick(i int, cs float64) {
	g := s.grid
	if g.wall[i] {
		return
	}
	g.f[C][i] -= cs * weights[C]
	for d := N; d < NumDirections; d++ {
		g.f[d][i] += cs * weights[d]
	}
}

// QueuePulse schedules a pulse for the forcing stage of the next Step.
// It reports whether the request was accepted.
func (s *Simulation) QueuePulse(cx, cy, radius int, strength float64) bool {
	if s.grid == nil || radius <= 0 || !s.grid.InBounds(cx, cy) {
		return false
	}
	s.pending = append(s.pending, pulseRequest{x: cx, y: cy, radius: radius, strength: strength})
	return true
}

// profileFactor scales the inflow velocity at row y.
func (s *Simulation) profileFactor(p Profile, y int) float64 {
	h := s.grid.Height
	switch p {
	case ProfileLinear:
		if h == 1 {
			return 1
		}
		return float64(y) / float64(h-1)
	case ProfileParabolic:
		if h == 1 {
			return 1
		}
		span := float64(h - 1)
		return 4 * float64(y) * (span - float64(y)) / (span * span)
	case ProfileNoise:
		return 1 + s.cfg.Inflow.Jitter*(s.rng.Float64()-0.5)
	default:
		return 1
	}
}

// applyInflow overwrites the east-facing populations of the left column
// with the inflow profile.
func (s *Simulation) applyInflow() {
	in := s.cfg.Inflow
	if !in.Enabled {
		return
	}
	g := s.grid
	rho := s.cfg.Density
	for y := 0; y < g.Height; y++ {
		i := g.Index(0, y)
		if g.wall[i] {
			continue
		}
		u := in.Velocity * s.profileFactor(in.Profile, y)
		k := rho * (1 + 3*u + 3*u*u)
		g.f[E][i] = weights[E] * k
		g.f[NE][i] = weights[NE] * k
		g.f[SE][i] = weights[SE] * k
	}
}

// force runs the forcing stage: the inflow source and any queued pulses.
func (s *Simulation) force() {
	s.applyInflow()
	for _, p := range s.pending {
		s.Pulse(p.x, p.y, p.radius, p.strength)
	}
	s.pending = s.pending[:0]
}
