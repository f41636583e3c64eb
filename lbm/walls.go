package lbm

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// WallPredicate reports whether cell (x, y) of a w×h grid is solid. It is
// evaluated once per cell by Initialize.
type WallPredicate func(x, y, w, h int) bool

// Border marks a solid strip of the given thickness along every edge.
func Border(thickness int) WallPredicate {
	return func(x, y, w, h int) bool {
		return x < thickness || y < thickness || x >= w-thickness || y >= h-thickness
	}
}

// Circle marks the cells strictly inside radius r of (cx, cy).
func Circle(cx, cy int, r float64) WallPredicate {
	r2 := r * r
	return func(x, y, _, _ int) bool {
		dx := float64(x - cx)
		dy := float64(y - cy)
		return dx*dx+dy*dy < r2
	}
}

// Rect marks the inclusive rectangle [x0, x1]×[y0, y1].
func Rect(x0, y0, x1, y1 int) WallPredicate {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return func(x, y, _, _ int) bool {
		return x >= x0 && x <= x1 && y >= y0 && y <= y1
	}
}

// Airfoil marks a NACA 4-digit profile with its leading edge at (x0, y0),
// the given chord in cells, maximum camber m, camber position p and
// thickness t (all as chord fractions, e.g. 0.02, 0.4, 0.12 for NACA 2412).
func Airfoil(x0, y0, chord int, m, p, t float64) WallPredicate {
	return func(x, y, _, _ int) bool {
		if chord <= 0 {
			return false
		}
		xn := float64(x-x0) / float64(chord)
		yn := float64(y-y0) / float64(chord)
		if xn < 0 || xn > 1 {
			return false
		}
		var yc, dycdx float64
		switch {
		case m == 0 || p <= 0 || p >= 1:
		case xn < p:
			yc = (m / (p * p)) * (2*p*xn - xn*xn)
			dycdx = (2 * m / (p * p)) * (p - xn)
		default:
			yc = (m / ((1 - p) * (1 - p))) * ((1 - 2*p) + 2*p*xn - xn*xn)
			dycdx = (2 * m / ((1 - p) * (1 - p))) * (p - xn)
		}
		yt := 5 * t * (0.2969*math.Sqrt(xn) -
			0.1260*xn -
			0.3516*xn*xn +
			0.2843*xn*xn*xn -
			0.1015*xn*xn*xn*xn)
		half := yt * math.Cos(math.Atan(dycdx))
		return yn >= yc-half && yn <= yc+half
	}
}

// Mask uses an explicit row-major width×height mask. Cells outside the
// mask are fluid.
func Mask(width, height int, cells []bool) WallPredicate {
	return func(x, y, _, _ int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		i := y*width + x
		return i < len(cells) && cells[i]
	}
}

// ImageMask scales img to the grid with nearest-neighbour sampling and
// marks dark pixels as solid.
func ImageMask(img image.Image) WallPredicate {
	b := img.Bounds()
	return func(x, y, w, h int) bool {
		if b.Empty() {
			return false
		}
		px := b.Min.X + x*b.Dx()/w
		py := b.Min.Y + y*b.Dy()/h
		gray := color.GrayModel.Convert(img.At(px, py)).(color.Gray)
		return gray.Y < 128
	}
}

// Union marks a cell solid when any predicate does. Nil entries are skipped.
func Union(preds ...WallPredicate) WallPredicate {
	return func(x, y, w, h int) bool {
		for _, p := range preds {
			if p != nil && p(x, y, w, h) {
				return true
			}
		}
		return false
	}
}

// Demo is a closed box with two cylinders.
func Demo() WallPredicate {
	return Union(
		Border(4),
		Circle(64, 64, math.Sqrt(700)),
		Circle(240, 128, math.Sqrt(900)),
	)
}

// Segments procedurally places count straight wall segments of random
// length and thickness, keeping a two-cell margin from the grid edge. The
// layout depends only on seed and the grid size.
func Segments(seed int64, count, minLen, maxLen, thicknessVariance int) WallPredicate {
	var (
		mu             sync.Mutex
		cacheW, cacheH int
		cache          []bool
	)
	return func(x, y, w, h int) bool {
		mu.Lock()
		defer mu.Unlock()
		if cache == nil || cacheW != w || cacheH != h {
			cache = generateSegments(seed, count, minLen, maxLen, thicknessVariance, w, h)
			cacheW, cacheH = w, h
		}
		return cache[y*w+x]
	}
}

func generateSegments(seed int64, count, minLen, maxLen, thicknessVariance, w, h int) []bool {
	walls := make([]bool, w*h)
	if w < 5 || h < 5 {
		return walls
	}
	rng := rand.New(rand.NewSource(seed))
	setWall := func(x, y int) {
		if x <= 1 || x >= w-1 || y <= 1 || y >= h-1 {
			return
		}
		walls[y*w+x] = true
	}
	for s := 0; s < count; s++ {
		lengthRange := maxLen - minLen + 1
		if lengthRange <= 0 {
			lengthRange = 1
		}
		length := minLen + rng.Intn(lengthRange)
		thickness := 1
		if thicknessVariance > 0 {
			thickness += rng.Intn(thicknessVariance + 1)
		}
		horizontal := rng.Intn(2) == 0
		cx := rng.Intn(w-4) + 2
		cy := rng.Intn(h-4) + 2
		dx, dy := 0, 1
		if horizontal {
			dx, dy = 1, 0
		}
		perpX, perpY := dy, dx
		for l := 0; l < length; l++ {
			if cx <= 1 || cx >= w-1 || cy <= 1 || cy >= h-1 {
				break
			}
			for t := -thickness; t <= thickness; t++ {
				setWall(cx+perpX*t, cy+perpY*t)
			}
			cx += dx
			cy += dy
		}
	}
	return walls
}

// ParseWalls builds a predicate from a comma-separated geometry list:
//
//	border:T
//	circle:CX:CY:R
//	rect:X0:Y0:X1:Y1
//	airfoil:X0:Y0:CHORD[:M:P:T]
//	segments:SEED:COUNT[:MINLEN:MAXLEN:THICKNESS]
//	demo
//
// An empty string or "none" yields a nil predicate (no walls).
func ParseWalls(spec string) (WallPredicate, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "none" {
		return nil, nil
	}
	var preds []WallPredicate
	for _, item := range strings.Split(spec, ",") {
		p, err := parseShape(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if len(preds) == 1 {
		return preds[0], nil
	}
	return Union(preds...), nil
}

func parseShape(item string) (WallPredicate, error) {
	parts := strings.Split(item, ":")
	kind, args := parts[0], parts[1:]
	num := func(i int, def float64) (float64, error) {
		if i >= len(args) {
			return def, nil
		}
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return 0, fmt.Errorf("wall %q argument %d: %w", item, i+1, ErrInvalidConfig)
		}
		return v, nil
	}
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("wall %q needs %d arguments: %w", item, n, ErrInvalidConfig)
		}
		return nil
	}
	vals := func(n int, defs ...float64) ([]float64, error) {
		out := make([]float64, n+len(defs))
		for i := range out {
			def := 0.0
			if i >= n {
				def = defs[i-n]
			}
			v, err := num(i, def)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch kind {
	case "demo":
		return Demo(), nil
	case "border":
		if err := need(1); err != nil {
			return nil, err
		}
		v, err := vals(1)
		if err != nil {
			return nil, err
		}
		return Border(int(v[0])), nil
	case "circle":
		if err := need(3); err != nil {
			return nil, err
		}
		v, err := vals(3)
		if err != nil {
			return nil, err
		}
		return Circle(int(v[0]), int(v[1]), v[2]), nil
	case "rect":
		if err := need(4); err != nil {
			return nil, err
		}
		v, err := vals(4)
		if err != nil {
			return nil, err
		}
		return Rect(int(v[0]), int(v[1]), int(v[2]), int(v[3])), nil
	case "airfoil":
		if err := need(3); err != nil {
			return nil, err
		}
		v, err := vals(3, 0.02, 0.4, 0.12)
		if err != nil {
			return nil, err
		}
		return Airfoil(int(v[0]), int(v[1]), int(v[2]), v[3], v[4], v[5]), nil
	case "segments":
		if err := need(2); err != nil {
			return nil, err
		}
		v, err := vals(2, 12, 42, 2)
		if err != nil {
			return nil, err
		}
		return Segments(int64(v[0]), int(v[1]), int(v[2]), int(v[3]), int(v[4])), nil
	default:
		return nil, fmt.Errorf("unknown wall shape %q: %w", kind, ErrInvalidConfig)
	}
}
