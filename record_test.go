package main

import (
	"context"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"LBM/lbm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordSim(t *testing.T) *lbm.Simulation {
	t.Helper()
	sim, err := lbm.New(lbm.Config{Width: 16, Height: 12, Omega: 1, Walls: lbm.Border(1), Workers: 2})
	require.NoError(t, err)
	t.Cleanup(sim.Close)
	return sim
}

func TestRecordSimulationWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := recordOptions{
		aviPath:      filepath.Join(dir, "run.avi"),
		gifPath:      filepath.Join(dir, "run.gif"),
		pngPath:      filepath.Join(dir, "last.png"),
		chartPath:    filepath.Join(dir, "mass.png"),
		frames:       5,
		fps:          10,
		stepsPerTick: 2,
		kick:         true,
		kickRadius:   3,
		kickStrength: 0.2,
	}
	sim := newRecordSim(t)
	require.NoError(t, recordSimulation(context.Background(), sim, opts))
	assert.Equal(t, 10, sim.Steps())

	info, err := os.Stat(opts.aviPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	f, err := os.Open(opts.gifPath)
	require.NoError(t, err)
	anim, err := gif.DecodeAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Len(t, anim.Image, 5)
	assert.Equal(t, []int{10, 10, 10, 10, 10}, anim.Delay)

	f, err = os.Open(opts.pngPath)
	require.NoError(t, err)
	img, err := png.Decode(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())

	info, err = os.Stat(opts.chartPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGIFDelay(t *testing.T) {
	assert.Equal(t, 10, gifDelay(10))
	assert.Equal(t, 3, gifDelay(30))
	assert.Equal(t, 1, gifDelay(100))
	assert.Equal(t, 1, gifDelay(240))
}

func TestRecordSimulationHighFPSGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fast.gif")
	sim := newRecordSim(t)
	require.NoError(t, recordSimulation(context.Background(), sim, recordOptions{gifPath: path, frames: 3, fps: 144, stepsPerTick: 1}))

	f, err := os.Open(path)
	require.NoError(t, err)
	anim, err := gif.DecodeAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, anim.Delay)
}

func TestRecordSimulationOnlyPNG(t *testing.T) {
	dir := t.TempDir()
	sim := newRecordSim(t)
	opts := recordOptions{pngPath: filepath.Join(dir, "last.png"), frames: 2, fps: 30, stepsPerTick: 1}
	require.NoError(t, recordSimulation(context.Background(), sim, opts))
	assert.Equal(t, 2, sim.Steps())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecordSimulationRejectsOptions(t *testing.T) {
	sim := newRecordSim(t)
	assert.Error(t, recordSimulation(context.Background(), sim, recordOptions{frames: 0, fps: 30}))
	assert.Error(t, recordSimulation(context.Background(), sim, recordOptions{frames: 3, fps: 0}))
	assert.Zero(t, sim.Steps())
}

func TestRecordSimulationCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sim := newRecordSim(t)
	err := recordSimulation(ctx, sim, recordOptions{frames: 1000, fps: 30, stepsPerTick: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, sim.Steps(), 1000)
}
