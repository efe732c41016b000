package pipeline

import (
	"math"
	"testing"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

func TestSmoother_ZeroParamSnaps(t *testing.T) {
	for _, strategy := range []SmoothingStrategy{SmoothingEuler, SmoothingSlerp} {
		s := NewSmoother(strategy, 0)
		s.Apply(stamped(0, 0, 0, 1), 0.016, false)
		out := s.Apply(stamped(45, 10, -5, 2), 0.016, false)
		if out.Yaw != 45 || out.Pitch != 10 || out.Roll != -5 {
			t.Errorf("strategy %v: zero smoothing should snap, got (%v,%v,%v)",
				strategy, out.Yaw, out.Pitch, out.Roll)
		}
	}
}

func TestSmoother_FirstSampleSnaps(t *testing.T) {
	s := NewSmoother(SmoothingSlerp, 0.9)
	out := s.Apply(stamped(60, -30, 10, 1), 0.016, false)
	if math.Abs(out.Yaw-60) > 1e-6 || math.Abs(out.Pitch+30) > 1e-6 || math.Abs(out.Roll-10) > 1e-6 {
		t.Errorf("first sample = (%v,%v,%v), want exact snap", out.Yaw, out.Pitch, out.Roll)
	}
}

func TestSmoother_SlerpConverges(t *testing.T) {
	s := NewSmoother(SmoothingSlerp, 0.4)
	s.Apply(stamped(0, 0, 0, 1), 0.016, false)

	var out pose.Pose
	for i := 0; i < 400; i++ {
		out = s.Apply(stamped(40, 60, 20, int64(i+2)), 0.016, false)
	}
	if math.Abs(out.Yaw-40) > 0.5 || math.Abs(out.Pitch-60) > 0.5 || math.Abs(out.Roll-20) > 0.5 {
		t.Errorf("slerp did not converge: (%v,%v,%v)", out.Yaw, out.Pitch, out.Roll)
	}
}

func TestSmoother_SlerpStableNearGimbal(t *testing.T) {
	// Euler EMA falls apart when roll meets ±90° pitch; the SLERP
	// path must stay finite and converge.
	s := NewSmoother(SmoothingSlerp, 0.3)
	s.Apply(stamped(0, 0, 0, 1), 0.016, false)

	var out pose.Pose
	for i := 0; i < 400; i++ {
		out = s.Apply(stamped(30, 89.5, 45, int64(i+2)), 0.016, false)
		if math.IsNaN(out.Yaw) || math.IsNaN(out.Pitch) || math.IsNaN(out.Roll) {
			t.Fatalf("NaN at frame %d near gimbal: %+v", i, out)
		}
	}
	if math.Abs(out.Pitch-89.5) > 0.5 {
		t.Errorf("pitch near gimbal = %v, want ~89.5", out.Pitch)
	}
}

func TestSmoother_FrameRateIndependent(t *testing.T) {
	// One 32 ms step should land close to two 16 ms steps.
	a := NewSmoother(SmoothingEuler, 0.5)
	a.Apply(stamped(0, 0, 0, 1), 0.016, false)
	a.Apply(stamped(30, 0, 0, 2), 0.032, false)
	one := a.Current(0).Yaw

	b := NewSmoother(SmoothingEuler, 0.5)
	b.Apply(stamped(0, 0, 0, 1), 0.016, false)
	b.Apply(stamped(30, 0, 0, 2), 0.016, false)
	b.Apply(stamped(30, 0, 0, 3), 0.016, false)
	two := b.Current(0).Yaw

	if math.Abs(one-two) > 1e-6 {
		t.Errorf("32ms step %v vs two 16ms steps %v should match", one, two)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(SmoothingEuler, 0.7)
	s.Apply(stamped(50, 0, 0, 1), 0.016, false)
	s.Reset()

	out := s.Apply(stamped(-10, 0, 0, 2), 0.016, false)
	if out.Yaw != -10 {
		t.Errorf("post-reset sample should snap, got yaw %v", out.Yaw)
	}
}

func TestSmoother_EulerCrossesSeamShortWay(t *testing.T) {
	s := NewSmoother(SmoothingEuler, 0.3)
	s.Apply(pose.Pose{Yaw: 179, Timestamp: 1}, 1.0/60, false)

	// 179 to -179 is a 2 degree move across the seam. The yaw must
	// stay near the seam the whole way, never gliding through zero.
	for i := 0; i < 300; i++ {
		got := s.Apply(pose.Pose{Yaw: -179, Timestamp: int64(i + 2)}, 1.0/60, false)
		if math.Abs(got.Yaw) < 170 {
			t.Fatalf("yaw = %v, took the long way around", got.Yaw)
		}
	}
	if got := s.Current(0).Yaw; math.Abs(got+179) > 0.5 {
		t.Errorf("yaw = %v, want about -179", got)
	}
}
