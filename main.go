package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"LBM/lbm"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	settings, err := loadSettings(flag.CommandLine, *configFlag)
	if err != nil {
		log.Fatalf("Settings: %v", err)
	}

	err = withCPUProfile(*cpuProfileFlag, func() error {
		if *recordFlag != "" || *gifFlag != "" || *pngFlag != "" || *chartFlag != "" {
			return runRecorder(settings)
		}
		return runViewer(settings)
	})
	if err != nil {
		log.Printf("Exiting: %v", err)
		os.Exit(1)
	}
}

// withCPUProfile runs fn while profiling to path, and always stops the
// profile before returning. An empty path runs fn unprofiled.
func withCPUProfile(path string, fn func() error) error {
	if path == "" {
		return fn()
	}
	stop, err := startCPUProfile(path)
	if err != nil {
		return err
	}
	defer stop()
	return fn()
}

// runViewer opens the window and blocks until it is closed.
func runViewer(settings Settings) error {
	game, err := newGame(settings)
	if err != nil {
		return err
	}
	defer game.close()

	if *recordDefaultPGO {
		stopPGO, err := startCPUProfile("default.pgo")
		if err != nil {
			log.Printf("PGO recording disabled: %v", err)
		} else {
			game.enableAutoPulse(pgoRecordDuration)
			log.Printf("Recording default.pgo for %s", pgoRecordDuration)
			time.AfterFunc(pgoRecordDuration, stopPGO)
			defer stopPGO()
		}
	}

	w, h := game.sim.Size()
	scale := settings.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle("Lattice Boltzmann (D2Q9)")
	ebiten.SetTPS(defaultTPS)
	return ebiten.RunGame(game)
}

// runRecorder runs the headless capture until the frame count is reached or
// the process is interrupted.
func runRecorder(settings Settings) error {
	cfg, err := settings.simConfig()
	if err != nil {
		return err
	}
	sim, err := lbm.New(cfg)
	if err != nil {
		return err
	}
	defer sim.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return recordSimulation(ctx, sim, recordOptions{
		aviPath:      *recordFlag,
		gifPath:      *gifFlag,
		pngPath:      *pngFlag,
		chartPath:    *chartFlag,
		frames:       *framesFlag,
		fps:          *fpsFlag,
		stepsPerTick: settings.StepsPerTick,
		kick:         *kickFlag,
		kickRadius:   settings.PulseRadius,
		kickStrength: settings.PulseStrength,
	})
}
