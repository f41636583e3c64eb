package main

import "flag"

// Command-line flags. Flags given explicitly override values loaded from the
// -config settings file.
var (
	// configFlag names an optional JSON settings file.
	configFlag = flag.String("config", "", "path to a JSON settings file")

	widthFlag  = flag.Int("width", defaultWidth, "grid width in cells")
	heightFlag = flag.Int("height", defaultHeight, "grid height in cells")
	scaleFlag  = flag.Int("scale", defaultScale, "window pixels per cell")

	// omegaFlag sets the BGK relaxation rate; values near 2 are barely viscous.
	omegaFlag = flag.Float64("omega", defaultOmega, "relaxation rate (0, 2]")

	initFlag    = flag.String("init", "equilibrium", "initial state: equilibrium, noise or profiled")
	densityFlag = flag.Float64("density", 1, "initial density")
	velXFlag    = flag.Float64("vx", 0, "initial x velocity")
	velYFlag    = flag.Float64("vy", 0, "initial y velocity")
	noiseFlag   = flag.Float64("noise", 0.01, "population noise amplitude for -init noise")
	seedFlag    = flag.Int64("seed", 1, "seed for noise, random walls and inflow jitter")

	// wallsFlag describes the obstacle geometry, e.g. "border:4,circle:64:64:26".
	wallsFlag = flag.String("walls", defaultWalls, "wall geometry list, or none")

	// wallImageFlag loads an image whose dark pixels become walls.
	wallImageFlag = flag.String("wall-image", "", "PNG/JPEG/GIF image whose dark pixels are walls")

	edgeFlag = flag.String("edge", "hold", "grid edge policy: hold, absorb or periodic")

	// inflowEnabledFlag switches on the left-column source.
	inflowEnabledFlag = flag.Bool("inflow-enabled", false, "drive the left edge with the inflow source")
	inflowFlag        = flag.Float64("inflow", 0, "inflow velocity at the left edge")
	inflowProfileFlag = flag.String("inflow-profile", "uniform", "inflow profile: uniform, linear, parabolic or noise")
	inflowJitterFlag  = flag.Float64("inflow-jitter", 0.2, "amplitude of the noise inflow profile")

	renderFlag     = flag.String("render", "density", "rendered field: density, velocity or vorticity")
	paletteFlag    = flag.String("palette", "", "palette preset or #hex[@pos] list; empty for raw channels")
	densityCapFlag = flag.Float64("density-cap", 1, "density display scale")

	// showWallsFlag toggles rendering of wall geometry overlays.
	showWallsFlag = flag.Bool("show-walls", true, "render wall geometry overlays")
	wallColorFlag = hexColorFlag("wall-color", "#1e2850", "wall overlay colour")

	stepsFlag   = flag.Int("steps", defaultStepsPerTick, "simulation steps per frame")
	workersFlag = flag.Int("workers", 0, "worker goroutines (0 uses every CPU)")

	pulseRadiusFlag   = flag.Int("pulse-radius", defaultPulseRadius, "mouse pulse radius in cells")
	pulseStrengthFlag = flag.Float64("pulse-strength", defaultPulseStrength, "mouse pulse strength")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation speed overlay")

	// enableAudioFlag toggles audio output driven by the density probe.
	enableAudioFlag = flag.Bool("enable-audio", false, "sonify density fluctuations at the grid centre")

	// audioLoopFlag modulates a WAV loop with the probe instead of playing it raw.
	audioLoopFlag = flag.String("audio-loop", "", "WAV file whose loop is amplitude-modulated by the probe")

	// recordDefaultPGO fires random pulses to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "fire random pulses for 15s while capturing default.pgo")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	// recordFlag switches to the headless recorder.
	recordFlag = flag.String("record", "", "run headless and write an MJPEG AVI to this path")
	framesFlag = flag.Int("frames", defaultRecordFrames, "frames to record")
	fpsFlag    = flag.Int("fps", defaultRecordFPS, "recorded frame rate")
	kickFlag   = flag.Bool("kick", true, "fire a pulse at the grid centre before the first recorded frame")
	gifFlag    = flag.String("gif", "", "also write an animated GIF")
	pngFlag    = flag.String("png", "", "also write the final frame as PNG")
	chartFlag  = flag.String("chart", "", "also write a mass-per-frame chart (PNG/SVG/PDF by extension)")
)
