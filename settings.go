package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"

	"LBM/lbm"

	"github.com/lucasb-eyer/go-colorful"
)

// Settings is the JSON form of every simulation and viewer option.
type Settings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Scale  int `json:"scale"`

	Omega     float64 `json:"omega"`
	Init      string  `json:"init"`
	Density   float64 `json:"density"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	Noise     float64 `json:"noise"`
	Seed      int64   `json:"seed"`

	Walls     string `json:"walls"`
	WallImage string `json:"wallImage,omitempty"`
	Edge      string `json:"edge"`

	Inflow InflowSettings `json:"inflow"`
	Render RenderSettings `json:"render"`

	StepsPerTick  int     `json:"stepsPerTick"`
	Workers       int     `json:"workers"`
	PulseRadius   int     `json:"pulseRadius"`
	PulseStrength float64 `json:"pulseStrength"`
}

// InflowSettings configures the left-column source.
type InflowSettings struct {
	Enabled  bool    `json:"enabled"`
	Velocity float64 `json:"velocity"`
	Profile  string  `json:"profile"`
	Jitter   float64 `json:"jitter"`
}

// RenderSettings configures the render mapper.
type RenderSettings struct {
	Mode       string            `json:"mode"`
	Palette    string            `json:"palette"`
	DensityCap float64           `json:"densityCap"`
	ShowWalls  bool              `json:"showWalls"`
	WallColor  colorful.HexColor `json:"wallColor"`
}

// flagSetters copies each flag's current value into the matching setting.
var flagSetters = map[string]func(*Settings){
	"width":          func(s *Settings) { s.Width = *widthFlag },
	"height":         func(s *Settings) { s.Height = *heightFlag },
	"scale":          func(s *Settings) { s.Scale = *scaleFlag },
	"omega":          func(s *Settings) { s.Omega = *omegaFlag },
	"init":           func(s *Settings) { s.Init = *initFlag },
	"density":        func(s *Settings) { s.Density = *densityFlag },
	"vx":             func(s *Settings) { s.VelocityX = *velXFlag },
	"vy":             func(s *Settings) { s.VelocityY = *velYFlag },
	"noise":          func(s *Settings) { s.Noise = *noiseFlag },
	"seed":           func(s *Settings) { s.Seed = *seedFlag },
	"walls":          func(s *Settings) { s.Walls = *wallsFlag },
	"wall-image":     func(s *Settings) { s.WallImage = *wallImageFlag },
	"edge":           func(s *Settings) { s.Edge = *edgeFlag },
	"inflow-enabled": func(s *Settings) { s.Inflow.Enabled = *inflowEnabledFlag },
	"inflow":         func(s *Settings) { s.Inflow.Velocity = *inflowFlag },
	"inflow-profile": func(s *Settings) { s.Inflow.Profile = *inflowProfileFlag },
	"inflow-jitter":  func(s *Settings) { s.Inflow.Jitter = *inflowJitterFlag },
	"render":         func(s *Settings) { s.Render.Mode = *renderFlag },
	"palette":        func(s *Settings) { s.Render.Palette = *paletteFlag },
	"density-cap":    func(s *Settings) { s.Render.DensityCap = *densityCapFlag },
	"show-walls":     func(s *Settings) { s.Render.ShowWalls = *showWallsFlag },
	"wall-color":     func(s *Settings) { s.Render.WallColor = *wallColorFlag },
	"steps":          func(s *Settings) { s.StepsPerTick = *stepsFlag },
	"workers":        func(s *Settings) { s.Workers = *workersFlag },
	"pulse-radius":   func(s *Settings) { s.PulseRadius = *pulseRadiusFlag },
	"pulse-strength": func(s *Settings) { s.PulseStrength = *pulseStrengthFlag },
}

// applyFlags copies the flags reported by visit into s.
func applyFlags(s *Settings, visit func(func(*flag.Flag))) {
	visit(func(f *flag.Flag) {
		if set, ok := flagSetters[f.Name]; ok {
			set(s)
		}
	})
}

// loadSettings starts from the flag defaults, overlays the JSON file at path
// if one is given, and finally reapplies every flag set on the command line.
func loadSettings(fs *flag.FlagSet, path string) (Settings, error) {
	var s Settings
	applyFlags(&s, fs.VisitAll)
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings %q: %w", path, err)
	}
	applyFlags(&s, fs.Visit)
	return s, nil
}

// simConfig converts the settings into a solver configuration.
func (s Settings) simConfig() (lbm.Config, error) {
	cfg := lbm.Config{
		Width:     s.Width,
		Height:    s.Height,
		Omega:     s.Omega,
		Density:   s.Density,
		VelocityX: s.VelocityX,
		VelocityY: s.VelocityY,
		Noise:     s.Noise,
		Seed:      s.Seed,
		Workers:   s.Workers,
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	var err error
	if cfg.Init, err = lbm.ParseInitMode(s.Init); err != nil {
		return cfg, err
	}
	if cfg.Edge, err = lbm.ParseEdgeMode(s.Edge); err != nil {
		return cfg, err
	}
	if cfg.Walls, err = lbm.ParseWalls(s.Walls); err != nil {
		return cfg, err
	}
	if s.WallImage != "" {
		mask, err := loadWallImage(s.WallImage)
		if err != nil {
			return cfg, err
		}
		cfg.Walls = lbm.Union(cfg.Walls, mask)
	}

	// The source only runs when switched on; the velocity alone still
	// shapes -init profiled.
	cfg.Inflow = lbm.Inflow{
		Enabled:  s.Inflow.Enabled,
		Velocity: s.Inflow.Velocity,
		Jitter:   s.Inflow.Jitter,
	}
	if s.Inflow.Profile != "" {
		if cfg.Inflow.Profile, err = lbm.ParseProfile(s.Inflow.Profile); err != nil {
			return cfg, err
		}
	}

	if cfg.Render.Mode, err = lbm.ParseRenderMode(s.Render.Mode); err != nil {
		return cfg, err
	}
	if s.Render.Palette != "" {
		if cfg.Render.Palette, err = lbm.ParsePalette(s.Render.Palette); err != nil {
			return cfg, err
		}
	}
	cfg.Render.DensityCap = s.Render.DensityCap
	cfg.Render.ShowWalls = s.Render.ShowWalls
	r, g, b := colorful.Color(s.Render.WallColor).RGB255()
	cfg.Render.WallColor = color.RGBA{r, g, b, 255}

	return cfg, cfg.Validate()
}

// loadWallImage decodes an image file into a wall mask.
func loadWallImage(path string) (lbm.WallPredicate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wall image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding wall image %q: %w", path, err)
	}
	return lbm.ImageMask(img), nil
}

type hexColorValue colorful.HexColor

func (v *hexColorValue) String() string { return colorful.Color(*v).Hex() }

func (v *hexColorValue) Set(s string) error { return (*colorful.HexColor)(v).Decode(s) }

// hexColorFlag defines a flag holding a "#rrggbb" colour.
func hexColorFlag(name, value, usage string) *colorful.HexColor {
	c, err := colorful.Hex(value)
	if err != nil {
		panic(err)
	}
	hc := colorful.HexColor(c)
	flag.Var((*hexColorValue)(&hc), name, usage)
	return &hc
}
