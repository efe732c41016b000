package config

import (
	"strings"
	"testing"

	"github.com/teslashibe/go-headtrack/pkg/pipeline"
	"github.com/teslashibe/go-headtrack/pkg/pose"
)

const sampleProfile = `
smoothing: 0.4
strategy: slerp
deadzone:
  yaw: 1.0
  pitch: 0.5
  roll: 0
axes:
  yaw:
    sensitivity: 1.5
    curve: scurve
    curve_strength: 0.7
  pitch:
    sensitivity: 0.9
    invert: true
    limits:
      min: -60
      max: 60
  roll:
    source: none
`

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte(sampleProfile))
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}

	cfg := p.PipelineConfig()
	if cfg.Smoothing != 0.4 {
		t.Errorf("Smoothing = %v, want 0.4", cfg.Smoothing)
	}
	if cfg.Strategy != pipeline.SmoothingSlerp {
		t.Error("Strategy should be slerp")
	}
	if cfg.Deadzone.Yaw != 1.0 || cfg.Deadzone.Pitch != 0.5 {
		t.Errorf("Deadzone = %+v", cfg.Deadzone)
	}

	m := p.Mapper()
	if m.Yaw.Sensitivity != 1.5 || m.Yaw.Curve != pipeline.CurveSCurve || m.Yaw.CurveStrength != 0.7 {
		t.Errorf("yaw axis = %+v", m.Yaw)
	}
	if m.Yaw.Source != pipeline.SourceYaw {
		t.Error("unspecified source should default to the axis itself")
	}
	if !m.Pitch.Invert || m.Pitch.Limits == nil || m.Pitch.Limits.Max != 60 {
		t.Errorf("pitch axis = %+v", m.Pitch)
	}
	if m.Roll.Source != pipeline.SourceNone {
		t.Error("roll source should be none")
	}

	// The mapper must actually behave: roll forced to zero.
	out, err := m.Apply(pose.Pose{Yaw: 10, Pitch: 10, Roll: 45, Timestamp: 1})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Roll != 0 {
		t.Errorf("roll = %v, want 0 for none source", out.Roll)
	}
}

func TestParseProfile_Defaults(t *testing.T) {
	p, err := ParseProfile([]byte("smoothing: 0.2\n"))
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}
	m := p.Mapper()
	out, err := m.Apply(pose.Pose{Yaw: 5, Pitch: 6, Roll: 7, Timestamp: 1})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Yaw != 5 || out.Pitch != 6 || out.Roll != 7 {
		t.Errorf("default mapper should be identity, got %+v", out)
	}
}

func TestParseProfile_Rejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad smoothing", "smoothing: 1.5\n", "out of range"},
		{"bad strategy", "strategy: cubic\n", "strategy"},
		{"custom curve", "axes:\n  yaw:\n    curve: custom\n", "curve"},
		{"unknown curve", "axes:\n  pitch:\n    curve: bezier\n", "curve"},
		{"unknown source", "axes:\n  roll:\n    source: surge\n", "source"},
		{"not yaml", "{{{", "parse"},
	}
	for _, c := range cases {
		_, err := ParseProfile([]byte(c.yaml))
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}
}
