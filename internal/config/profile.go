package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teslashibe/go-headtrack/pkg/pipeline"
)

// Profile is the on-disk form of a tracking setup: smoothing,
// deadzones, and the per-axis mapping. Custom curves have no
// serialized form and are session-only, so a profile can never name
// one; loading an unknown curve is an error rather than a silent
// fallback.
type Profile struct {
	Smoothing   float64                       `yaml:"smoothing"`
	Strategy    string                        `yaml:"strategy"` // "euler" or "slerp"
	Deadzone    pipeline.DeadzoneSettings     `yaml:"deadzone"`
	Sensitivity *pipeline.SensitivitySettings `yaml:"sensitivity"`
	Axes        *AxesProfile                  `yaml:"axes"`
	Interpolate *bool                         `yaml:"interpolate"`
}

// AxesProfile is the optional full mapping form with cross-axis
// routing and curves.
type AxesProfile struct {
	Yaw   AxisProfile `yaml:"yaw"`
	Pitch AxisProfile `yaml:"pitch"`
	Roll  AxisProfile `yaml:"roll"`
}

// AxisProfile describes one output axis in a profile file.
type AxisProfile struct {
	Source        string            `yaml:"source"` // none/yaw/pitch/roll
	Sensitivity   float64           `yaml:"sensitivity"`
	Invert        bool              `yaml:"invert"`
	Curve         string            `yaml:"curve"`
	CurveStrength float64           `yaml:"curve_strength"`
	Deadzone      float64           `yaml:"deadzone"`
	Limits        *pipeline.Limits  `yaml:"limits"`
}

// LoadProfile reads and validates a YAML profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile parses and validates profile YAML.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if p.Smoothing < 0 || p.Smoothing > 1 {
		return nil, fmt.Errorf("smoothing %v out of range [0,1]", p.Smoothing)
	}
	if p.Strategy != "" && p.Strategy != "euler" && p.Strategy != "slerp" {
		return nil, fmt.Errorf("unknown smoothing strategy %q", p.Strategy)
	}
	if p.Axes != nil {
		for name, ap := range map[string]AxisProfile{
			"yaw": p.Axes.Yaw, "pitch": p.Axes.Pitch, "roll": p.Axes.Roll,
		} {
			if ap.Source != "" {
				if _, err := parseSource(ap.Source); err != nil {
					return nil, fmt.Errorf("%s axis: %w", name, err)
				}
			}
			if _, err := parseCurve(ap.Curve); err != nil {
				return nil, fmt.Errorf("%s axis: %w", name, err)
			}
		}
	}
	return &p, nil
}

// PipelineConfig converts the profile into a pipeline configuration.
func (p *Profile) PipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.Smoothing = p.Smoothing
	if p.Strategy == "euler" {
		cfg.Strategy = pipeline.SmoothingEuler
	}
	cfg.Deadzone = p.Deadzone
	if p.Interpolate != nil {
		cfg.Interpolate = *p.Interpolate
	}
	return cfg
}

// Mapper converts the profile's axis section into an AxisMapper.
// Validation already ran in ParseProfile; unknown names cannot reach
// this point through LoadProfile.
func (p *Profile) Mapper() *pipeline.AxisMapper {
	if p.Axes == nil {
		if p.Sensitivity != nil {
			return p.Sensitivity.Mapper()
		}
		return pipeline.NewAxisMapper()
	}
	return &pipeline.AxisMapper{
		Yaw:   p.Axes.Yaw.config(pipeline.SourceYaw),
		Pitch: p.Axes.Pitch.config(pipeline.SourcePitch),
		Roll:  p.Axes.Roll.config(pipeline.SourceRoll),
	}
}

func (a AxisProfile) config(def pipeline.AxisSource) pipeline.AxisConfig {
	source := def
	if a.Source != "" {
		source, _ = parseSource(a.Source)
	}
	curve, _ := parseCurve(a.Curve)
	sens := a.Sensitivity
	if sens == 0 {
		sens = 1
	}
	return pipeline.AxisConfig{
		Source:        source,
		Sensitivity:   sens,
		Invert:        a.Invert,
		Curve:         curve,
		CurveStrength: a.CurveStrength,
		Deadzone:      a.Deadzone,
		Limits:        a.Limits,
	}
}

func parseSource(s string) (pipeline.AxisSource, error) {
	switch s {
	case "none":
		return pipeline.SourceNone, nil
	case "yaw":
		return pipeline.SourceYaw, nil
	case "pitch":
		return pipeline.SourcePitch, nil
	case "roll":
		return pipeline.SourceRoll, nil
	}
	return 0, fmt.Errorf("unknown axis source %q", s)
}

func parseCurve(s string) (pipeline.CurveType, error) {
	switch s {
	case "", "linear":
		return pipeline.CurveLinear, nil
	case "quadratic":
		return pipeline.CurveQuadratic, nil
	case "cubic":
		return pipeline.CurveCubic, nil
	case "exponential":
		return pipeline.CurveExponential, nil
	case "logarithmic":
		return pipeline.CurveLogarithmic, nil
	case "scurve":
		return pipeline.CurveSCurve, nil
	}
	// "custom" lands here on purpose: it cannot round-trip through a
	// file.
	return 0, fmt.Errorf("unknown curve %q", s)
}
