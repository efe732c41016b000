package pipeline

import "github.com/teslashibe/go-headtrack/pkg/pose"

// AxisSensitivity is the scale and inversion for one axis. Typical
// scales run 0.1–3.0.
type AxisSensitivity struct {
	Scale  float64 `json:"scale" yaml:"scale"`
	Invert bool    `json:"invert" yaml:"invert"`
}

// SensitivitySettings is the simple per-axis scale/invert form used
// when no cross-axis mapping or curves are wanted. Immutable
// configuration: replaced wholesale on change.
type SensitivitySettings struct {
	Yaw   AxisSensitivity `json:"yaw" yaml:"yaw"`
	Pitch AxisSensitivity `json:"pitch" yaml:"pitch"`
	Roll  AxisSensitivity `json:"roll" yaml:"roll"`
}

// DefaultSensitivity returns unit scale on every axis.
func DefaultSensitivity() SensitivitySettings {
	unit := AxisSensitivity{Scale: 1}
	return SensitivitySettings{Yaw: unit, Pitch: unit, Roll: unit}
}

// Apply scales and optionally inverts each axis.
func (s SensitivitySettings) Apply(p pose.Pose) pose.Pose {
	return pose.Pose{
		Yaw:       s.Yaw.apply(p.Yaw),
		Pitch:     s.Pitch.apply(p.Pitch),
		Roll:      s.Roll.apply(p.Roll),
		Timestamp: p.Timestamp,
	}
}

func (a AxisSensitivity) apply(v float64) float64 {
	v *= a.Scale
	if a.Invert {
		v = -v
	}
	return v
}

// Mapper converts the plain settings into an equivalent AxisMapper.
func (s SensitivitySettings) Mapper() *AxisMapper {
	return &AxisMapper{
		Yaw:   AxisConfig{Source: SourceYaw, Sensitivity: s.Yaw.Scale, Invert: s.Yaw.Invert},
		Pitch: AxisConfig{Source: SourcePitch, Sensitivity: s.Pitch.Scale, Invert: s.Pitch.Invert},
		Roll:  AxisConfig{Source: SourceRoll, Sensitivity: s.Roll.Scale, Invert: s.Roll.Invert},
	}
}
