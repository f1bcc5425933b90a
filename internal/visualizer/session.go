package visualizer

import (
	"github.com/wavelight/voicewave/internal/domain"
	"github.com/wavelight/voicewave/internal/ports"
)

// Session is the per-capture analysis pipeline: one analyser snapshot per
// tick flows through the sampler, the activity estimator, the shaper and both
// smoothers, and comes out as a renderer-ready frame. A Session is bound to a
// single frame source; device changes tear the session down and build a new
// one.
//
// Sessions are driven from a single goroutine and are not safe for concurrent
// use.
type Session struct {
	cfg Config
	src ports.FrameSource

	sampler   *FrameSampler
	estimator *VoiceActivityEstimator
	shaper    *WaveformShaper
	temporal  *TemporalSmoother
	spatial   *SpatialSmoother
	asm       *frameAssembler
}

// NewSession creates a pipeline over the given frame source.
func NewSession(cfg Config, src ports.FrameSource) *Session {
	return &Session{
		cfg:       cfg,
		src:       src,
		sampler:   NewFrameSampler(cfg.AnalysisWindowSize),
		estimator: NewVoiceActivityEstimator(cfg, src.SampleRate()),
		shaper:    NewWaveformShaper(cfg),
		temporal:  NewTemporalSmoother(cfg.TemporalResponsiveness, cfg.PointCount),
		spatial:   NewSpatialSmoother(cfg.SpatialKernel, cfg.PointCount),
		asm:       newFrameAssembler(cfg),
	}
}

// Tick runs one full pipeline pass and returns the frame to draw. The frame's
// Points slice is reused across ticks; the renderer must copy what it
// retains.
func (s *Session) Tick() domain.RenderFrame {
	s.sampler.Sample(s.src)
	s.estimator.Update(s.sampler.FreqMagnitudes)
	s.shaper.Shape(s.sampler.TimeSamples, s.estimator.Silent)
	s.temporal.Smooth(s.shaper.Points, s.estimator.Silent)
	s.spatial.Smooth(s.temporal.Points)

	voice := !s.estimator.Silent
	return s.asm.assemble(s.spatial.Points, activeStyle(s.estimator.VoiceEnergy), voice)
}

// Voice reports whether the last tick classified the input as speech.
func (s *Session) Voice() bool {
	return !s.estimator.Silent
}

// VoiceEnergy returns the last tick's normalized voice energy in [0, 1].
func (s *Session) VoiceEnergy() float64 {
	return s.estimator.VoiceEnergy
}

// Reset clears all adaptive and smoothing state, leaving the session ready
// for fresh audio.
func (s *Session) Reset() {
	s.estimator.Reset()
	s.shaper.Reset()
	s.temporal.Reset()
	s.spatial.Reset()
}
