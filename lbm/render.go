package lbm

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Hues used by the raw vorticity formula.
const (
	positiveCurlHue = 12.0
	negativeCurlHue = 255.0
	maxCurlLight    = 0.7
)

func toByte(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// densityColor maps density to the raw ρ/16, ρ/8, ρ/4 channels or to the
// palette at ρ/(2·cap).
func densityColor(rho float64, rc *RenderConfig) color.RGBA {
	c := rc.DensityCap
	if rc.Palette != nil {
		return rc.Palette.Lookup(rho / (2 * c))
	}
	return color.RGBA{toByte(rho / (16 * c)), toByte(rho / (8 * c)), toByte(rho / (4 * c)), 255}
}

// velocityColor encodes the flow direction in red/green around mid-grey,
// or the speed through the palette.
func velocityColor(rho, ux, uy float64, rc *RenderConfig) color.RGBA {
	gain := rc.VelocityGain
	if rc.Palette != nil {
		return rc.Palette.Lookup(math.Hypot(ux, uy) * gain)
	}
	return color.RGBA{
		toByte(0.5 + 0.5*clampUnit(ux*gain)),
		toByte(0.5 + 0.5*clampUnit(uy*gain)),
		toByte(rho / (4 * rc.DensityCap)),
		255,
	}
}

// vorticityColor shows the sign of curl as hue and its magnitude as
// lightness, or centres the palette on zero curl.
func vorticityColor(curl float64, rc *RenderConfig) color.RGBA {
	v := clampUnit(curl * rc.VorticityGain)
	if rc.Palette != nil {
		return rc.Palette.Lookup(0.5 + 0.5*v)
	}
	hue := positiveCurlHue
	if v < 0 {
		hue = negativeCurlHue
	}
	r, g, b := colorful.HSLuv(hue, 1, maxCurlLight*math.Abs(v)).RGB255()
	return color.RGBA{r, g, b, 255}
}

// curlAt estimates the vorticity of interior cell (x, y) from the velocity
// cache with central differences.
func curlAt(g *Grid, x, y int) float64 {
	w := g.Width
	i := y*w + x
	return (g.uy[i+1] - g.uy[i-1]) - (g.ux[i+w] - g.ux[i-w])
}

// renderRow colours row y into the render buffer and records the density of
// each cell.
func (s *Simulation) renderRow(y int) {
	g := s.grid
	rc := &s.cfg.Render
	w, h := g.Width, g.Height
	pix := s.image.Pix[y*s.image.Stride : y*s.image.Stride+w*4]
	interiorRow := y > 0 && y < h-1
	for x := 0; x < w; x++ {
		i := y*w + x
		rho, ux, uy := g.moments(i)
		g.rho[i] = rho

		var c color.RGBA
		switch {
		case rc.ShowWalls && g.wall[i]:
			c = rc.WallColor
		case rc.Mode == RenderVelocity:
			c = velocityColor(rho, ux, uy, rc)
		case rc.Mode == RenderVorticity && interiorRow && x > 0 && x < w-1:
			c = vorticityColor(curlAt(g, x, y), rc)
		default:
			c = densityColor(rho, rc)
		}
		p := pix[x*4 : x*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
}

// render maps the solved field into the RGBA buffer on the worker pool.
func (s *Simulation) render() {
	s.pool.run(s.rowMasks, func(row rowMask) {
		s.renderRow(row.y)
	})
}
