package pipeline

import "github.com/teslashibe/go-headtrack/pkg/pose"

// SmoothingStrategy is a closed set evaluated every tick, so it is a
// tagged value rather than an interface.
type SmoothingStrategy int

const (
	// SmoothingEuler runs an independent EMA per axis. Fast, but the
	// axes can fight near ±90° pitch.
	SmoothingEuler SmoothingStrategy = iota

	// SmoothingSlerp interpolates on the quaternion sphere. Use it
	// whenever roll is meaningfully combined with extreme pitch.
	SmoothingSlerp
)

// Smoother applies frame-rate-independent exponential smoothing to the
// incoming pose stream. Owned and called by a single consumer once per
// tick; not safe for concurrent use.
type Smoother struct {
	strategy SmoothingStrategy
	param    float64

	// Euler accumulators, kept in float64 so drift does not build up
	// across hours of frames.
	yaw, pitch, roll float64

	quat pose.Quat

	hasValue bool
}

// NewSmoother creates a smoother with the given strategy and user
// smoothing parameter in [0,1] (0 = instant, 1 = very slow).
func NewSmoother(strategy SmoothingStrategy, param float64) *Smoother {
	return &Smoother{
		strategy: strategy,
		param:    pose.Clamp(param, 0, 1),
		quat:     pose.Identity(),
	}
}

// Strategy returns the active smoothing strategy.
func (s *Smoother) Strategy() SmoothingStrategy {
	return s.strategy
}

// Param returns the configured smoothing parameter.
func (s *Smoother) Param() float64 {
	return s.param
}

// SetParam replaces the smoothing parameter.
func (s *Smoother) SetParam(param float64) {
	s.param = pose.Clamp(param, 0, 1)
}

// Apply smooths target into the accumulator and returns the smoothed
// pose. dt is the frame delta in seconds; isRemote raises the
// smoothing parameter to the remote floor to absorb network jitter.
// The first sample snaps instead of gliding in from a zeroed default.
func (s *Smoother) Apply(target pose.Pose, dt float64, isRemote bool) pose.Pose {
	param := pose.EffectiveSmoothing(s.param, isRemote)
	factor := pose.SmoothingFactor(param, dt)

	if !s.hasValue || factor >= 1 {
		s.snap(target)
		return s.Current(target.Timestamp)
	}

	switch s.strategy {
	case SmoothingSlerp:
		targetQuat := pose.FromYawPitchRoll(target.Yaw, target.Pitch, target.Roll)
		s.quat = s.quat.Slerp(targetQuat, factor)
		s.yaw, s.pitch, s.roll = s.quat.ToEulerYXZ()
	default:
		// Deltas are wrapped so a 179° → -179° move takes the 2° step
		// across the seam, not the 358° detour through zero.
		s.yaw = pose.NormalizeAngle(s.yaw + pose.NormalizeAngle(target.Yaw-s.yaw)*factor)
		s.pitch = pose.NormalizeAngle(s.pitch + pose.NormalizeAngle(target.Pitch-s.pitch)*factor)
		s.roll = pose.NormalizeAngle(s.roll + pose.NormalizeAngle(target.Roll-s.roll)*factor)
	}
	return s.Current(target.Timestamp)
}

func (s *Smoother) snap(target pose.Pose) {
	s.yaw, s.pitch, s.roll = target.Yaw, target.Pitch, target.Roll
	s.quat = pose.FromYawPitchRoll(target.Yaw, target.Pitch, target.Roll)
	s.hasValue = true
}

// Current returns the accumulator as a pose stamped with ts.
func (s *Smoother) Current(ts int64) pose.Pose {
	return pose.Pose{Yaw: s.yaw, Pitch: s.pitch, Roll: s.roll, Timestamp: ts}
}

// Reset clears the accumulator; the next sample snaps.
func (s *Smoother) Reset() {
	s.yaw, s.pitch, s.roll = 0, 0, 0
	s.quat = pose.Identity()
	s.hasValue = false
}
