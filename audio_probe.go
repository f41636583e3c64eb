package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"LBM/lbm"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// densityProbe samples the density deviation of one cell after each batch of
// steps and feeds it to the audio stream.
type densityProbe struct {
	x, y   int
	rho0   float64
	gain   float64
	stream *probeAudioStream
}

func newDensityProbe(x, y int, rho0 float64, stream *probeAudioStream) *densityProbe {
	return &densityProbe{x: x, y: y, rho0: rho0, gain: audioProbeGain, stream: stream}
}

// sample reads the probe cell and forwards the scaled deviation.
func (p *densityProbe) sample(grid *lbm.Grid) float64 {
	v := (grid.Density(p.x, p.y) - p.rho0) * p.gain
	p.stream.SetSample(float32(v))
	return v
}

// probeAudioStream is an io.Reader producing 16-bit stereo PCM. Without a
// carrier it plays the AC-coupled probe value directly; with one, the probe
// envelope scales the looping carrier.
type probeAudioStream struct {
	mu       sync.Mutex
	sample   float32
	dc       float32
	envelope float32
	carrier  []float32
	pos      int
}

func newProbeAudioStream(carrier []float32) *probeAudioStream {
	return &probeAudioStream{carrier: carrier}
}

// SetSample clamps v to [-1, 1] and removes the slowly varying DC component.
func (s *probeAudioStream) SetSample(v float32) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s.mu.Lock()
	s.dc += audioDCAlpha * (v - s.dc)
	s.sample = v - s.dc
	s.mu.Unlock()
}

func (s *probeAudioStream) Read(p []byte) (int, error) {
	// Whole stereo frames only (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < frameBytes; i += 4 {
		out := s.sample
		if len(s.carrier) > 0 {
			level := float32(math.Abs(float64(s.sample)))
			s.envelope += audioEnvelopeAlpha * (level - s.envelope)
			out = s.carrier[s.pos] * s.envelope
			s.pos++
			if s.pos >= len(s.carrier) {
				s.pos = 0
			}
		}
		v := int16(out * pcm16MaxValue)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *probeAudioStream) Close() error {
	return nil
}

// loadLoopSamples decodes the WAV at path and returns stereo-averaged samples at sampleRate.
func loadLoopSamples(sampleRate int, path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	samples := decodeStereoI16ToFloat(decoded)
	if len(samples) == 0 {
		return nil, fmt.Errorf("wav %q has no usable samples", path)
	}
	return samples, nil
}

func decodeStereoI16ToFloat(pcm []byte) []float32 {
	frameCount := len(pcm) / 4
	if frameCount == 0 {
		return nil
	}
	samples := make([]float32, frameCount)
	for i := 0; i < frameCount; i++ {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(pcm[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[offset+2 : offset+4]))
		samples[i] = (float32(left) + float32(right)) * (0.5 / 32768.0)
	}
	return samples
}
