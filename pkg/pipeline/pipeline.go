// Package pipeline turns the raw, jittery orientation stream from a
// receiver into a smooth per-frame rotation: interpolation across
// sensor gaps, recenter offset, deadzone, exponential smoothing, and
// per-axis sensitivity/curve mapping, in that order.
package pipeline

import (
	"sync"
	"time"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

// Pipeline wires the processing stages together and runs them once
// per render tick. Process is meant for a single consumer; the mutex
// exists so the embedder can swap tuning values from another
// goroutine between ticks, not to support concurrent Process calls.
// Nothing under the lock blocks, so contention stays bounded.
type Pipeline struct {
	mu  sync.Mutex
	cfg Config

	offset      *CenterOffset
	deadzone    DeadzoneSettings
	smoother    *Smoother
	mapper      *AxisMapper
	sensitivity SensitivitySettings
	interp      *Interpolator

	lastTick     int64
	lastSmoothed pose.Pose

	now func() int64
}

// New builds a pipeline from the given configuration with an identity
// axis mapping.
func New(cfg Config) *Pipeline {
	mode := OffsetEuler
	if cfg.Strategy == SmoothingSlerp {
		mode = OffsetQuat
	}
	return &Pipeline{
		cfg:         cfg,
		offset:      NewCenterOffset(mode),
		deadzone:    cfg.Deadzone,
		smoother:    NewSmoother(cfg.Strategy, cfg.Smoothing),
		mapper:      NewAxisMapper(),
		sensitivity: DefaultSensitivity(),
		interp:      NewInterpolator(cfg.MaxExtrapolation),
		now:         pose.Now,
	}
}

// SetMapper replaces the axis mapping. Call between ticks.
func (pl *Pipeline) SetMapper(m *AxisMapper) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if m != nil {
		pl.mapper = m
	}
}

// SetSensitivity installs a plain per-axis scale/invert mapping.
func (pl *Pipeline) SetSensitivity(s SensitivitySettings) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.sensitivity = s
	pl.mapper = s.Mapper()
}

// SetDeadzone replaces the deadzone thresholds.
func (pl *Pipeline) SetDeadzone(d DeadzoneSettings) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.deadzone = d
}

// SetSmoothing replaces the smoothing parameter.
func (pl *Pipeline) SetSmoothing(param float64) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.smoother.SetParam(param)
}

// Process runs one tick of the chain on the latest raw sample and
// returns the output pose. isRemote enforces the network-jitter
// smoothing floor. An invalid (no data yet) sample passes through
// unchanged.
func (pl *Pipeline) Process(raw pose.Pose, isRemote bool) (pose.Pose, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	now := pl.now()
	dt := float64(now-pl.lastTick) / float64(time.Second)
	pl.lastTick = now
	if dt <= 0 || dt > 1 {
		// First tick or a long stall; treat as a fresh frame.
		dt = 1.0 / 60
	}

	if !raw.IsValid() {
		return raw, nil
	}

	p := raw
	if pl.cfg.Interpolate {
		p = pl.interp.Update(p)
	}
	p = pl.offset.Apply(p)
	p = pl.deadzone.Apply(p)
	p = pl.smoother.Apply(p, dt, isRemote)
	pl.lastSmoothed = p

	return pl.mapper.Apply(p)
}

// LastSmoothed returns the most recent smoothed pose, before axis
// mapping. This is what Recenter captures.
func (pl *Pipeline) LastSmoothed() pose.Pose {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.lastSmoothed
}

// Recenter makes the current smoothed orientation the new zero.
// Capturing the smoothed pose rather than the raw input keeps a noisy
// instant at the keypress from defining the reference. The smoother
// and interpolator restart so the output lands on zero immediately
// instead of gliding there.
func (pl *Pipeline) Recenter() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if !pl.lastSmoothed.IsValid() {
		return
	}
	pl.offset.Set(pl.lastSmoothed)
	pl.smoother.Reset()
	pl.interp.Reset()
	pl.lastSmoothed = pose.Pose{}
}

// RecenterTo sets an explicit center pose.
func (pl *Pipeline) RecenterTo(p pose.Pose) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.offset.SetTo(p)
	pl.smoother.Reset()
	pl.interp.Reset()
}

// ResetOffset clears the recenter reference.
func (pl *Pipeline) ResetOffset() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.offset.Reset()
}

// Reset returns every stage to its initial state.
func (pl *Pipeline) Reset() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.offset.Reset()
	pl.smoother.Reset()
	pl.interp.Reset()
	pl.lastSmoothed = pose.Pose{}
	pl.lastTick = 0
}
