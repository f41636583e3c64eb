package lbm

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const paletteSize = 256

// Stop is one colour of a palette gradient at position Pos in [0, 1].
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Palette is a 1-D colour gradient baked into a lookup table.
type Palette struct {
	name  string
	stops []Stop
	lut   [paletteSize]color.RGBA
}

// NewPalette builds a palette from at least two stops. Stops are sorted by
// position and blended in L*a*b* space.
func NewPalette(name string, stops []Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("palette %q needs at least two stops: %w", name, ErrInvalidConfig)
	}
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	for _, st := range sorted {
		if st.Pos < 0 || st.Pos > 1 || math.IsNaN(st.Pos) {
			return nil, fmt.Errorf("palette %q stop position %g outside [0,1]: %w", name, st.Pos, ErrInvalidConfig)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })
	p := &Palette{name: name, stops: sorted}
	for i := range p.lut {
		r, g, b := p.At(float64(i) / (paletteSize - 1)).RGB255()
		p.lut[i] = color.RGBA{r, g, b, 255}
	}
	return p, nil
}

// Name returns the palette's name.
func (p *Palette) Name() string { return p.name }

// At interpolates the gradient at t, clamped to [0, 1].
func (p *Palette) At(t float64) colorful.Color {
	t = clamp01(t)
	stops := p.stops
	if t <= stops[0].Pos {
		return stops[0].Color.Clamped()
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Pos {
			continue
		}
		lo := stops[i-1]
		span := hi.Pos - lo.Pos
		if span <= 0 {
			return hi.Color.Clamped()
		}
		return lo.Color.BlendLab(hi.Color, (t-lo.Pos)/span).Clamped()
	}
	return stops[len(stops)-1].Color.Clamped()
}

// Lookup returns the baked colour nearest to t.
func (p *Palette) Lookup(t float64) color.RGBA {
	return p.lut[int(clamp01(t)*(paletteSize-1)+0.5)]
}

var presetStops = map[string][]string{
	"grayscale": {"#000000", "#ffffff"},
	"ocean":     {"#000814", "#003566", "#0077b6", "#90e0ef", "#ffffff"},
	"heat":      {"#000000", "#7f0000", "#ff4500", "#ffd700", "#ffffff"},
	"viridis":   {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
}

// PaletteNames lists the built-in palettes in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(presetStops))
	for name := range presetStops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetPalette returns a built-in palette by name.
func PresetPalette(name string) (*Palette, error) {
	hexes, ok := presetStops[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q: %w", name, ErrInvalidConfig)
	}
	return parseStops(name, hexes)
}

// ParsePalette accepts either a preset name or a comma-separated list of
// hex colours with optional "@pos" suffixes, e.g. "#000000,#ff0000@0.3,#ffffff".
// Colours without a position are spaced evenly by index.
func ParsePalette(spec string) (*Palette, error) {
	spec = strings.TrimSpace(spec)
	if _, ok := presetStops[spec]; ok {
		return PresetPalette(spec)
	}
	return parseStops(spec, strings.Split(spec, ","))
}

func parseStops(name string, fields []string) (*Palette, error) {
	stops := make([]Stop, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		hex, posText, hasPos := strings.Cut(field, "@")
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %q: %v: %w", name, err, ErrInvalidConfig)
		}
		pos := 0.0
		if len(fields) > 1 {
			pos = float64(i) / float64(len(fields)-1)
		}
		if hasPos {
			pos, err = strconv.ParseFloat(posText, 64)
			if err != nil {
				return nil, fmt.Errorf("palette %q stop %q: %w", name, field, ErrInvalidConfig)
			}
		}
		stops = append(stops, Stop{Pos: pos, Color: c})
	}
	return NewPalette(name, stops)
}

func clamp01(v float64) float64 {
	if v > 0 {
		if v > 1 {
			return 1
		}
		return v
	}
	return 0
}
