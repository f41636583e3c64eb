package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"os"

	"LBM/lbm"

	"github.com/icza/mjpeg"
	"golang.org/x/sync/errgroup"
)

// recordOptions configures a headless capture run.
type recordOptions struct {
	aviPath      string
	gifPath      string
	pngPath      string
	chartPath    string
	frames       int
	fps          int
	stepsPerTick int
	kick         bool
	kickRadius   int
	kickStrength float64
}

// recordFrame is one rendered frame handed from the stepping goroutine to the
// encoder.
type recordFrame struct {
	index int
	img   *image.RGBA
	mass  float64
}

// recordSimulation steps sim headless and writes the requested outputs. The
// simulation runs in one goroutine while another encodes frames.
func recordSimulation(ctx context.Context, sim *lbm.Simulation, opts recordOptions) error {
	if opts.frames <= 0 {
		return fmt.Errorf("frame count must be positive, got %d", opts.frames)
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	w, h := sim.Size()

	var avi mjpeg.AviWriter
	if opts.aviPath != "" {
		var err error
		avi, err = mjpeg.New(opts.aviPath, int32(w), int32(h), int32(opts.fps))
		if err != nil {
			return fmt.Errorf("creating %q: %w", opts.aviPath, err)
		}
	}

	frames := make(chan recordFrame, recordQueueDepth)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(frames)
		steps := clampSteps(opts.stepsPerTick)
		for i := 0; i < opts.frames; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if i == 0 && opts.kick {
				sim.QueuePulse(w/2, h/2, opts.kickRadius, opts.kickStrength)
			}
			for s := 0; s < steps; s++ {
				sim.Step()
			}
			img := image.NewRGBA(sim.RenderBuffer().Rect)
			copy(img.Pix, sim.RenderBuffer().Pix)
			select {
			case frames <- recordFrame{index: i, img: img, mass: sim.Grid().TotalMass()}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var (
		anim   gif.GIF
		last   *image.RGBA
		masses = make([]float64, 0, opts.frames)
	)
	eg.Go(func() error {
		var buf bytes.Buffer
		for fr := range frames {
			if avi != nil {
				buf.Reset()
				if err := jpeg.Encode(&buf, fr.img, &jpeg.Options{Quality: recordJPEGQuality}); err != nil {
					return fmt.Errorf("encoding frame %d: %w", fr.index, err)
				}
				if err := avi.AddFrame(buf.Bytes()); err != nil {
					return fmt.Errorf("writing frame %d: %w", fr.index, err)
				}
			}
			if opts.gifPath != "" {
				anim.Image = append(anim.Image, toPaletted(fr.img))
				anim.Delay = append(anim.Delay, gifDelay(opts.fps))
			}
			last = fr.img
			masses = append(masses, fr.mass)
		}
		return nil
	})

	err := eg.Wait()
	if avi != nil {
		if cerr := avi.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %q: %w", opts.aviPath, cerr)
		}
	}
	if err != nil {
		return err
	}

	if opts.gifPath != "" {
		if err := writeGIF(opts.gifPath, &anim); err != nil {
			return err
		}
	}
	if opts.pngPath != "" && last != nil {
		if err := writePNG(opts.pngPath, last); err != nil {
			return err
		}
	}
	if opts.chartPath != "" {
		if err := writeMassChart(opts.chartPath, masses); err != nil {
			return err
		}
	}
	log.Printf("Recorded %d frames (%d steps), final mass %.3f", len(masses), sim.Steps(), lastOr(masses, 0))
	return nil
}

// gifDelay converts fps to a GIF frame delay in hundredths of a second.
// GIF cannot express rates above 100 fps, so the delay never drops below 1.
func gifDelay(fps int) int {
	return max(1, 100/fps)
}

// toPaletted dithers img onto the Plan 9 palette for GIF output.
func toPaletted(img *image.RGBA) *image.Paletted {
	pal := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pal, img.Bounds(), img, image.Point{})
	return pal
}

func writeGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}

func lastOr(v []float64, def float64) float64 {
	if len(v) == 0 {
		return def
	}
	return v[len(v)-1]
}
