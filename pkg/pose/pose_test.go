package pose

import (
	"math"
	"testing"
)

func TestApplyDeadzone_Continuity(t *testing.T) {
	const d = 5.0

	// Inside the band: exactly zero.
	for _, v := range []float64{0, 1, -3, 5, -5} {
		if got := ApplyDeadzone(v, d); got != 0 {
			t.Errorf("ApplyDeadzone(%v, %v) = %v, want 0", v, d, got)
		}
	}

	// Just past the boundary the output starts from zero, no snap.
	eps := 0.001
	if got := ApplyDeadzone(d+eps, d); math.Abs(got-eps) > 1e-9 {
		t.Errorf("ApplyDeadzone(%v, %v) = %v, want %v", d+eps, d, got, eps)
	}
	if got := ApplyDeadzone(-(d + eps), d); math.Abs(got+eps) > 1e-9 {
		t.Errorf("ApplyDeadzone(%v, %v) = %v, want %v", -(d + eps), d, got, -eps)
	}

	// Well past the boundary: rescaled, sign preserved.
	if got := ApplyDeadzone(15, d); got != 10 {
		t.Errorf("ApplyDeadzone(15, 5) = %v, want 10", got)
	}
	if got := ApplyDeadzone(-15, d); got != -10 {
		t.Errorf("ApplyDeadzone(-15, 5) = %v, want -10", got)
	}
}

func TestApplyDeadzone_Disabled(t *testing.T) {
	for _, d := range []float64{0, -1} {
		if got := ApplyDeadzone(2.5, d); got != 2.5 {
			t.Errorf("ApplyDeadzone(2.5, %v) = %v, want input unchanged", d, got)
		}
	}
}

func TestSmoothingFactor_Bounds(t *testing.T) {
	for _, param := range []float64{0, 0.1, 0.5, 0.9, 1} {
		for _, dt := range []float64{0.004, 0.016, 0.033, 0.1} {
			f := SmoothingFactor(param, dt)
			if f <= 0 || f > 1 {
				t.Errorf("SmoothingFactor(%v, %v) = %v, want in (0,1]", param, dt, f)
			}
		}
	}

	// Zero smoothing snaps exactly.
	if f := SmoothingFactor(0, 0.016); f != 1 {
		t.Errorf("SmoothingFactor(0, dt) = %v, want exactly 1", f)
	}

	// More smoothing means a smaller factor for the same dt.
	lo := SmoothingFactor(0.2, 0.016)
	hi := SmoothingFactor(0.8, 0.016)
	if hi >= lo {
		t.Errorf("factor should shrink as smoothing grows: 0.2 -> %v, 0.8 -> %v", lo, hi)
	}
}

func TestEffectiveSmoothing_RemoteFloor(t *testing.T) {
	if got := EffectiveSmoothing(0.05, true); got != 0.15 {
		t.Errorf("EffectiveSmoothing(0.05, remote) = %v, want 0.15", got)
	}
	if got := EffectiveSmoothing(0.5, true); got != 0.5 {
		t.Errorf("EffectiveSmoothing(0.5, remote) = %v, want 0.5", got)
	}
	if got := EffectiveSmoothing(0.05, false); got != 0.05 {
		t.Errorf("EffectiveSmoothing(0.05, local) = %v, want 0.05", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{540, 180},
		{-720, 0},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPose_IsValid(t *testing.T) {
	var zero Pose
	if zero.IsValid() {
		t.Error("zero Pose should not be valid")
	}
	if !New(1, 2, 3).IsValid() {
		t.Error("New pose should be valid")
	}
}

func TestPose_Sub(t *testing.T) {
	p := New(10, 20, 30)
	center := Pose{Yaw: 1, Pitch: 2, Roll: 3}
	got := p.Sub(center)
	if got.Yaw != 9 || got.Pitch != 18 || got.Roll != 27 {
		t.Errorf("Sub = (%v,%v,%v), want (9,18,27)", got.Yaw, got.Pitch, got.Roll)
	}
	if got.Timestamp != p.Timestamp {
		t.Error("Sub should carry the original timestamp")
	}
}

func TestSub_WrapsAcrossSeam(t *testing.T) {
	p := Pose{Yaw: -170, Pitch: 175, Roll: -150, Timestamp: 5}
	got := p.Sub(Pose{Yaw: 170, Pitch: -175, Roll: 160})

	if math.Abs(got.Yaw-20) > 1e-9 {
		t.Errorf("yaw = %v, want 20 (short way across the seam)", got.Yaw)
	}
	if math.Abs(got.Pitch+10) > 1e-9 {
		t.Errorf("pitch = %v, want -10", got.Pitch)
	}
	if math.Abs(got.Roll-50) > 1e-9 {
		t.Errorf("roll = %v, want 50", got.Roll)
	}
	if got.Timestamp != 5 {
		t.Errorf("timestamp = %v, want 5", got.Timestamp)
	}
}
