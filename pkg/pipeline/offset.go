package pipeline

import "github.com/teslashibe/go-headtrack/pkg/pose"

// OffsetMode selects how the recenter reference is stored and
// subtracted.
type OffsetMode int

const (
	// OffsetEuler subtracts the center component-wise. Cheap, pairs
	// with Euler smoothing.
	OffsetEuler OffsetMode = iota

	// OffsetQuat composes the inverse center quaternion with the
	// input. Required alongside SLERP smoothing when roll and large
	// pitch combine.
	OffsetQuat
)

// CenterOffset stores the zero reference set by recentering and
// removes it from incoming samples. Empty until Set; Apply is identity
// while no valid center exists.
type CenterOffset struct {
	mode       OffsetMode
	center     pose.Pose
	centerQuat pose.Quat
	has        bool
}

// NewCenterOffset creates an empty offset manager.
func NewCenterOffset(mode OffsetMode) *CenterOffset {
	return &CenterOffset{mode: mode, centerQuat: pose.Identity()}
}

// HasValidCenter reports whether a center has been captured.
func (c *CenterOffset) HasValidCenter() bool {
	return c.has
}

// Set captures a new center from the current processed (already
// smoothed) pose, composing with any center already in place. The
// processed pose lives in offset-applied space, so composition rather
// than replacement is what makes repeated recentering land on zero.
func (c *CenterOffset) Set(processed pose.Pose) {
	if !c.has {
		c.SetTo(processed)
		return
	}
	switch c.mode {
	case OffsetQuat:
		c.centerQuat = c.centerQuat.Multiply(
			pose.FromYawPitchRoll(processed.Yaw, processed.Pitch, processed.Roll))
	default:
		c.center.Yaw = pose.NormalizeAngle(c.center.Yaw + processed.Yaw)
		c.center.Pitch = pose.NormalizeAngle(c.center.Pitch + processed.Pitch)
		c.center.Roll = pose.NormalizeAngle(c.center.Roll + processed.Roll)
	}
}

// SetTo replaces the center with an explicit pose.
func (c *CenterOffset) SetTo(p pose.Pose) {
	c.center = pose.Pose{Yaw: p.Yaw, Pitch: p.Pitch, Roll: p.Roll}
	c.centerQuat = pose.FromYawPitchRoll(p.Yaw, p.Pitch, p.Roll)
	c.has = true
}

// Reset clears the center; Apply becomes identity again.
func (c *CenterOffset) Reset() {
	c.center = pose.Pose{}
	c.centerQuat = pose.Identity()
	c.has = false
}

// Apply subtracts the stored center from p.
func (c *CenterOffset) Apply(p pose.Pose) pose.Pose {
	if !c.has {
		return p
	}
	switch c.mode {
	case OffsetQuat:
		rel := c.centerQuat.Inverse().Multiply(
			pose.FromYawPitchRoll(p.Yaw, p.Pitch, p.Roll))
		yaw, pitch, roll := rel.ToEulerYXZ()
		return pose.Pose{Yaw: yaw, Pitch: pitch, Roll: roll, Timestamp: p.Timestamp}
	default:
		return p.Sub(c.center)
	}
}
