package pose

import (
	"math"
	"testing"
)

func TestQuat_RoundTrip(t *testing.T) {
	cases := []struct{ yaw, pitch, roll float64 }{
		{0, 0, 0},
		{45, 30, 15},
		{-60, 20, -10},
		{170, -80, 45},
		{-170, 85, -120},
		{10, 0, 0},
		{0, 89, 0},
	}
	for _, c := range cases {
		q := FromYawPitchRoll(c.yaw, c.pitch, c.roll)
		y, p, r := q.ToEulerYXZ()
		if math.Abs(NormalizeAngle(y-c.yaw)) > 1e-3 ||
			math.Abs(p-c.pitch) > 1e-3 ||
			math.Abs(NormalizeAngle(r-c.roll)) > 1e-3 {
			t.Errorf("round trip (%v,%v,%v) -> (%v,%v,%v)", c.yaw, c.pitch, c.roll, y, p, r)
		}
	}
}

func TestQuat_Unit(t *testing.T) {
	q := FromYawPitchRoll(123, -45, 67)
	if mag := math.Sqrt(q.Dot(q)); math.Abs(mag-1) > 1e-9 {
		t.Errorf("FromYawPitchRoll magnitude = %v, want 1", mag)
	}

	s := FromYawPitchRoll(10, 20, 30).Slerp(FromYawPitchRoll(-40, 5, 0), 0.37)
	if mag := math.Sqrt(s.Dot(s)); math.Abs(mag-1) > 1e-9 {
		t.Errorf("Slerp magnitude = %v, want 1", mag)
	}
}

func quatNear(a, b Quat, tol float64) bool {
	// q and -q are the same rotation.
	if a.Dot(b) < 0 {
		b = Quat{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
	}
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.Z-b.Z) < tol && math.Abs(a.W-b.W) < tol
}

func TestSlerp_Endpoints(t *testing.T) {
	a := FromYawPitchRoll(10, 20, 30)
	b := FromYawPitchRoll(-50, 5, 0)

	if got := a.Slerp(b, 0); !quatNear(got, a, 1e-9) {
		t.Errorf("Slerp(a,b,0) = %+v, want a", got)
	}
	if got := a.Slerp(b, 1); !quatNear(got, b, 1e-9) {
		t.Errorf("Slerp(a,b,1) = %+v, want b", got)
	}
	for _, tt := range []float64{0.1, 0.5, 0.9} {
		if got := a.Slerp(a, tt); !quatNear(got, a, 1e-9) {
			t.Errorf("Slerp(q,q,%v) = %+v, want q", tt, got)
		}
	}
}

func TestSlerp_ShorterArc(t *testing.T) {
	a := FromYawPitchRoll(170, 0, 0)
	b := FromYawPitchRoll(-170, 0, 0)

	// Halfway between 170° and -170° along the short arc is ±180°,
	// not 0°.
	mid := a.Slerp(b, 0.5)
	y, _, _ := mid.ToEulerYXZ()
	if math.Abs(math.Abs(y)-180) > 1e-3 {
		t.Errorf("short-arc midpoint yaw = %v, want ±180", y)
	}
}

func TestSlerp_Monotonic(t *testing.T) {
	a := FromYawPitchRoll(0, 0, 0)
	b := FromYawPitchRoll(60, 0, 0)

	prev := -1.0
	for _, tt := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		y, _, _ := a.Slerp(b, tt).ToEulerYXZ()
		if y <= prev {
			t.Errorf("Slerp yaw not increasing: t=%v yaw=%v prev=%v", tt, y, prev)
		}
		prev = y
	}
}

func TestQuat_InverseComposition(t *testing.T) {
	center := FromYawPitchRoll(25, -10, 5)
	p := FromYawPitchRoll(25, -10, 5)

	// inverse(center) * p should be identity when p == center.
	rel := center.Inverse().Multiply(p)
	y, pi, r := rel.ToEulerYXZ()
	if math.Abs(y) > 1e-6 || math.Abs(pi) > 1e-6 || math.Abs(r) > 1e-6 {
		t.Errorf("inverse(c)*c decomposed to (%v,%v,%v), want zeros", y, pi, r)
	}
}

func TestQuat_GimbalBoundaryNoNaN(t *testing.T) {
	q := FromYawPitchRoll(30, 90, 10)
	y, p, r := q.ToEulerYXZ()
	if math.IsNaN(y) || math.IsNaN(p) || math.IsNaN(r) {
		t.Errorf("decomposition at +90 pitch produced NaN: (%v,%v,%v)", y, p, r)
	}
	if math.Abs(p-90) > 1e-3 {
		t.Errorf("pitch at boundary = %v, want 90", p)
	}
}

func TestNormalize_Degenerate(t *testing.T) {
	var zero Quat
	if got := zero.Normalize(); got != Identity() {
		t.Errorf("Normalize(zero) = %+v, want identity", got)
	}
}
