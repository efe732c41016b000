package pipeline

import "github.com/teslashibe/go-headtrack/pkg/pose"

// DeadzoneSettings holds per-axis dead band thresholds in degrees.
// A threshold <= 0 disables that axis's deadzone.
type DeadzoneSettings struct {
	Yaw   float64 `json:"yaw" yaml:"yaw"`
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Roll  float64 `json:"roll" yaml:"roll"`
}

// Apply suppresses small motion per axis with continuous rescaling
// past the threshold, so there is no snap at the band edge.
func (d DeadzoneSettings) Apply(p pose.Pose) pose.Pose {
	return pose.Pose{
		Yaw:       pose.ApplyDeadzone(p.Yaw, d.Yaw),
		Pitch:     pose.ApplyDeadzone(p.Pitch, d.Pitch),
		Roll:      pose.ApplyDeadzone(p.Roll, d.Roll),
		Timestamp: p.Timestamp,
	}
}
