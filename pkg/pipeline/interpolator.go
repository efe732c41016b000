package pipeline

import (
	"time"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

const (
	// velocityBlend is the fixed EMA factor for the angular velocity
	// estimate. The first observation is taken as-is.
	velocityBlend = 0.5

	// DefaultMaxExtrapolation caps how far ahead of the last real
	// sample the interpolator will predict.
	DefaultMaxExtrapolation = 100 * time.Millisecond
)

// Interpolator bridges the gap between sensor rate and render rate.
// When the render loop ticks faster than samples arrive, it
// extrapolates from the estimated angular velocity instead of holding
// the last value, which would read as stutter. Prediction is capped
// and decayed so a stalled source cannot drift the output unboundedly.
type Interpolator struct {
	maxExtrapolation time.Duration
	now              func() int64

	last        pose.Pose
	velYaw      float64 // degrees per second
	velPitch    float64
	velRoll     float64
	hasVelocity bool
}

// NewInterpolator creates an interpolator with the given extrapolation
// cap; zero or negative uses the default.
func NewInterpolator(maxExtrapolation time.Duration) *Interpolator {
	if maxExtrapolation <= 0 {
		maxExtrapolation = DefaultMaxExtrapolation
	}
	return &Interpolator{maxExtrapolation: maxExtrapolation, now: pose.Now}
}

// Update is called once per render tick with the latest raw sample.
// A sample with a new timestamp refreshes the velocity estimate and is
// returned unmodified; a repeated sample is extrapolated forward.
func (i *Interpolator) Update(sample pose.Pose) pose.Pose {
	if !sample.IsValid() {
		return sample
	}

	if !i.last.IsValid() {
		i.last = sample
		return sample
	}

	if sample.Timestamp != i.last.Timestamp {
		dt := float64(sample.Timestamp-i.last.Timestamp) / float64(time.Second)
		if dt > 0 {
			vy := (sample.Yaw - i.last.Yaw) / dt
			vp := (sample.Pitch - i.last.Pitch) / dt
			vr := (sample.Roll - i.last.Roll) / dt
			if i.hasVelocity {
				i.velYaw += (vy - i.velYaw) * velocityBlend
				i.velPitch += (vp - i.velPitch) * velocityBlend
				i.velRoll += (vr - i.velRoll) * velocityBlend
			} else {
				i.velYaw, i.velPitch, i.velRoll = vy, vp, vr
				i.hasVelocity = true
			}
		}
		i.last = sample
		return sample
	}

	// No new data this tick.
	if !i.hasVelocity {
		return i.last
	}

	elapsed := float64(i.now()-i.last.Timestamp) / float64(time.Second)
	if elapsed <= 0 {
		return i.last
	}

	maxT := float64(i.maxExtrapolation) / float64(time.Second)
	t := elapsed
	if t > maxT {
		t = maxT
	}
	decay := i.decay(elapsed, maxT)

	return pose.Pose{
		Yaw:       i.last.Yaw + i.velYaw*t*decay,
		Pitch:     i.last.Pitch + i.velPitch*t*decay,
		Roll:      i.last.Roll + i.velRoll*t*decay,
		Timestamp: i.last.Timestamp,
	}
}

// decay fades the velocity's influence toward zero as elapsed time
// approaches the extrapolation cap, so predictions settle instead of
// running off.
func (i *Interpolator) decay(elapsed, maxT float64) float64 {
	if elapsed >= maxT {
		return 0
	}
	return 1 - elapsed/maxT
}

// Reset clears stored samples and velocity. Call on recenter or after
// tracking loss so stale motion is not extrapolated into fresh data.
func (i *Interpolator) Reset() {
	i.last = pose.Pose{}
	i.velYaw, i.velPitch, i.velRoll = 0, 0, 0
	i.hasVelocity = false
}
