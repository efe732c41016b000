// Package pose holds the value types and math primitives for head
// orientation: timestamped Euler poses, unit quaternions, and the
// deadzone/smoothing helpers the processing chain is built from.
package pose

import (
	"math"
	"time"
)

// Pose is a single timestamped head orientation in degrees.
// It is an immutable value: every processing stage returns a new Pose.
type Pose struct {
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
	Roll      float64 `json:"roll"`
	Timestamp int64   `json:"ts"` // monotonic nanoseconds, 0 = no data yet
}

var epoch = time.Now()

// Now returns the monotonic clock used to stamp poses, in nanoseconds
// since process start. It is never zero once the process is running.
func Now() int64 {
	return int64(time.Since(epoch))
}

// New returns a pose stamped with the current monotonic clock.
func New(yaw, pitch, roll float64) Pose {
	return Pose{Yaw: yaw, Pitch: pitch, Roll: roll, Timestamp: Now()}
}

// IsValid reports whether the pose carries real data. The zero Pose is
// the "no data yet" sentinel.
func (p Pose) IsValid() bool {
	return p.Timestamp != 0
}

// Sub returns p with the given center subtracted component-wise. Each
// component wraps to (-180, 180], so subtracting a center near the
// seam stays a small rotation. The timestamp is carried over from p.
func (p Pose) Sub(center Pose) Pose {
	return Pose{
		Yaw:       NormalizeAngle(p.Yaw - center.Yaw),
		Pitch:     NormalizeAngle(p.Pitch - center.Pitch),
		Roll:      NormalizeAngle(p.Roll - center.Roll),
		Timestamp: p.Timestamp,
	}
}

// NormalizeAngle wraps an angle in degrees to (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// ApplyDeadzone suppresses values within the dead band and rescales the
// remainder so the output is continuous at the boundary: just past the
// threshold the output starts from zero instead of snapping to the raw
// value. A threshold <= 0 disables the deadzone.
func ApplyDeadzone(v, deadzone float64) float64 {
	if deadzone <= 0 {
		return v
	}
	if math.Abs(v) <= deadzone {
		return 0
	}
	return math.Copysign(math.Abs(v)-deadzone, v)
}

// RemoteSmoothingFloor is the minimum smoothing applied to non-loopback
// sources to absorb network jitter. Local sources are unaffected. Any
// client and server that must agree on response share this constant.
const RemoteSmoothingFloor = 0.15

// EffectiveSmoothing returns the smoothing parameter actually used,
// raising it to RemoteSmoothingFloor when the source is remote.
func EffectiveSmoothing(param float64, isRemote bool) float64 {
	if isRemote && param < RemoteSmoothingFloor {
		return RemoteSmoothingFloor
	}
	return param
}

// SmoothingFactor converts a user smoothing parameter in [0,1] into a
// frame-rate-independent EMA factor for the given frame delta.
// param 0 means instant (factor exactly 1), param 1 is very slow.
func SmoothingFactor(param, dt float64) float64 {
	if param < 0.001 {
		return 1
	}
	speed := Lerp(50.0, 0.1, param)
	return 1 - math.Exp(-speed*dt)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
