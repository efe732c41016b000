package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

// AxisSource names which input axis feeds an output axis.
type AxisSource int

const (
	SourceNone AxisSource = iota
	SourceYaw
	SourcePitch
	SourceRoll
)

// CurveType selects the nonlinear response curve for an axis.
type CurveType int

const (
	CurveLinear CurveType = iota
	CurveQuadratic
	CurveCubic
	CurveExponential
	CurveLogarithmic
	CurveSCurve
	CurveCustom
)

// curveRange is the reference span, in degrees, that normalizes axis
// values into the [0,1] domain the curves operate on.
const curveRange = 180.0

// Limits is an optional output clamp.
type Limits struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// AxisConfig describes one output axis: where its input comes from and
// how it is shaped. A SourceNone axis outputs zero regardless of
// input.
type AxisConfig struct {
	Source        AxisSource
	Sensitivity   float64
	Invert        bool
	Curve         CurveType
	CurveStrength float64 // 0 = pure linear, 1 = full curve
	Deadzone      float64
	Limits        *Limits

	// CustomCurve backs CurveCustom. It receives a normalized value
	// in [0,1] and must return the shaped value. Session-only: it has
	// no serialized form, so profiles never carry it.
	CustomCurve func(float64) float64
}

// LinearAxis returns a pass-through config for the given source.
func LinearAxis(source AxisSource) AxisConfig {
	return AxisConfig{Source: source, Sensitivity: 1}
}

// AxisMapper routes, curves, scales, and clamps the three output axes
// independently. Axes may be cross-wired, e.g. pitch input driving the
// yaw output.
type AxisMapper struct {
	Yaw   AxisConfig
	Pitch AxisConfig
	Roll  AxisConfig
}

// NewAxisMapper returns an identity mapping: each axis reads its own
// input at unit sensitivity with no curve.
func NewAxisMapper() *AxisMapper {
	return &AxisMapper{
		Yaw:   LinearAxis(SourceYaw),
		Pitch: LinearAxis(SourcePitch),
		Roll:  LinearAxis(SourceRoll),
	}
}

// Apply maps the input pose through all three axis configs. It fails
// fast when a Custom curve has no function attached; silently
// substituting linear there would mask a caller bug.
func (m *AxisMapper) Apply(p pose.Pose) (pose.Pose, error) {
	yaw, err := m.Yaw.apply(p)
	if err != nil {
		return pose.Pose{}, fmt.Errorf("yaw axis: %w", err)
	}
	pitch, err := m.Pitch.apply(p)
	if err != nil {
		return pose.Pose{}, fmt.Errorf("pitch axis: %w", err)
	}
	roll, err := m.Roll.apply(p)
	if err != nil {
		return pose.Pose{}, fmt.Errorf("roll axis: %w", err)
	}
	return pose.Pose{Yaw: yaw, Pitch: pitch, Roll: roll, Timestamp: p.Timestamp}, nil
}

func (a AxisConfig) apply(p pose.Pose) (float64, error) {
	var v float64
	switch a.Source {
	case SourceYaw:
		v = p.Yaw
	case SourcePitch:
		v = p.Pitch
	case SourceRoll:
		v = p.Roll
	default:
		return 0, nil
	}

	v = pose.ApplyDeadzone(v, a.Deadzone)

	if a.Curve != CurveLinear && a.CurveStrength > 0 {
		shaped, err := a.shape(math.Abs(v) / curveRange)
		if err != nil {
			return 0, err
		}
		v = math.Copysign(shaped*curveRange, v)
	}

	v *= a.Sensitivity
	if a.Invert {
		v = -v
	}
	if a.Limits != nil {
		v = pose.Clamp(v, a.Limits.Min, a.Limits.Max)
	}
	return v, nil
}

// shape blends the configured curve with linear response by
// CurveStrength, operating on a normalized magnitude. Strength 0
// reproduces pure linear output for every curve type.
func (a AxisConfig) shape(x float64) (float64, error) {
	linear := x
	x = pose.Clamp(x, 0, 1)

	var curved float64
	switch a.Curve {
	case CurveQuadratic:
		curved = x * x
	case CurveCubic:
		curved = x * x * x
	case CurveExponential:
		curved = (math.Exp(2*x) - 1) / (math.E*math.E - 1)
	case CurveLogarithmic:
		curved = math.Log10(9*x + 1)
	case CurveSCurve:
		curved = x * x * (3 - 2*x)
	case CurveCustom:
		if a.CustomCurve == nil {
			return 0, errors.New("custom curve selected but no function supplied")
		}
		curved = a.CustomCurve(x)
	default:
		curved = x
	}

	return pose.Lerp(linear, curved, pose.Clamp(a.CurveStrength, 0, 1)), nil
}
