package main

import "time"

// Default simulation, viewer, and recorder settings. Flags and the optional
// JSON settings file override these at startup.
const (
	defaultWidth, defaultHeight = 320, 240
	defaultScale                = 3
	defaultOmega                = 1.0
	defaultWalls                = "demo"
	defaultPulseRadius          = 8
	defaultPulseStrength        = 0.4
	defaultTPS                  = 60
	defaultStepsPerTick         = 4
	stepsPerTickStep            = 1
	minStepsPerTick             = 1
	maxStepsPerTick             = 64
	omegaStep                   = 0.05
	minOmega                    = 0.05
	maxOmega                    = 2.0
	pulseRepeatTicks            = 6
	autoPulseInterval           = 10
	pgoRecordDuration           = 15 * time.Second
	statsLogInterval            = 5 * time.Second
	audioSampleRate             = 48000
	audioPlayerBufferLatency    = 80 * time.Millisecond
	audioProbeGain              = 25.0
	audioDCAlpha                = 0.001
	audioEnvelopeAlpha          = 0.05
	pcm16MaxValue               = 32767
	defaultRecordFrames         = 300
	defaultRecordFPS            = 30
	recordJPEGQuality           = 85
	recordQueueDepth            = 4
	chartWidthInches            = 6
	chartHeightInches           = 3.5
)
