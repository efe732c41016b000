package pose

import "math"

// Quat is a unit quaternion. Identity is (0,0,0,1). Operations that
// return a rotation normalize explicitly rather than assuming unit
// magnitude survived the arithmetic.
type Quat struct {
	X, Y, Z, W float64
}

// Identity returns the identity rotation.
func Identity() Quat {
	return Quat{W: 1}
}

// FromYawPitchRoll builds a quaternion from Euler angles in degrees
// using intrinsic YXZ order: yaw about Y, then pitch about X, then
// roll about Z. This matches ToEulerYXZ.
func FromYawPitchRoll(yaw, pitch, roll float64) Quat {
	hy := yaw * math.Pi / 360
	hp := pitch * math.Pi / 360
	hr := roll * math.Pi / 360

	cy, sy := math.Cos(hy), math.Sin(hy)
	cp, sp := math.Cos(hp), math.Sin(hp)
	cr, sr := math.Cos(hr), math.Sin(hr)

	qYaw := Quat{Y: sy, W: cy}
	qPitch := Quat{X: sp, W: cp}
	qRoll := Quat{Z: sr, W: cr}

	return qYaw.Multiply(qPitch).Multiply(qRoll).Normalize()
}

// Multiply returns the Hamilton product q*r, the rotation r followed
// by q in the intrinsic sense.
func (q Quat) Multiply(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Inverse returns the conjugate, which equals the inverse for unit
// quaternions.
func (q Quat) Inverse() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the four-component dot product.
func (q Quat) Dot(r Quat) float64 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// Normalize rescales q to unit length. Degenerate input (zero length)
// returns identity rather than NaN.
func (q Quat) Normalize() Quat {
	mag := math.Sqrt(q.Dot(q))
	if mag < 1e-12 {
		return Identity()
	}
	return Quat{X: q.X / mag, Y: q.Y / mag, Z: q.Z / mag, W: q.W / mag}
}

// Slerp spherically interpolates from q to r by t along the shorter
// arc. Near-identical endpoints fall back to returning r directly, as
// the interpolation parameter is numerically unstable there.
func (q Quat) Slerp(r Quat, t float64) Quat {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return r
	}

	dot := q.Dot(r)
	// Take the shorter arc.
	if dot < 0 {
		r = Quat{X: -r.X, Y: -r.Y, Z: -r.Z, W: -r.W}
		dot = -dot
	}
	if dot > 0.9995 {
		// Angle too small for a stable sin ratio; lerp and renormalize.
		return Quat{
			X: Lerp(q.X, r.X, t),
			Y: Lerp(q.Y, r.Y, t),
			Z: Lerp(q.Z, r.Z, t),
			W: Lerp(q.W, r.W, t),
		}.Normalize()
	}

	theta := math.Acos(Clamp(dot, -1, 1))
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quat{
		X: wa*q.X + wb*r.X,
		Y: wa*q.Y + wb*r.Y,
		Z: wa*q.Z + wb*r.Z,
		W: wa*q.W + wb*r.W,
	}.Normalize()
}

// ToEulerYXZ decomposes q back to yaw/pitch/roll degrees in the same
// intrinsic YXZ convention FromYawPitchRoll uses. The asin argument is
// clamped so floating-point overshoot at exactly ±90° pitch cannot
// produce NaN. At that boundary yaw and roll are coupled and only
// their combination is individually meaningful; that is inherent to
// Euler decomposition, not a defect.
func (q Quat) ToEulerYXZ() (yaw, pitch, roll float64) {
	const radToDeg = 180 / math.Pi

	// For R = Ry(yaw)·Rx(pitch)·Rz(roll), sin(pitch) lands in the
	// matrix element 2(wx - yz).
	sinPitch := 2 * (q.W*q.X - q.Y*q.Z)
	pitch = math.Asin(Clamp(sinPitch, -1, 1)) * radToDeg

	if math.Abs(sinPitch) < 0.9999999 {
		yaw = math.Atan2(2*(q.X*q.Z+q.W*q.Y), 1-2*(q.X*q.X+q.Y*q.Y)) * radToDeg
		roll = math.Atan2(2*(q.X*q.Y+q.W*q.Z), 1-2*(q.X*q.X+q.Z*q.Z)) * radToDeg
	} else {
		// Gimbal lock: yaw and roll collapse into one rotation.
		// Report it all as yaw and zero the roll.
		yaw = math.Atan2(2*(q.X*q.Y-q.W*q.Z), 1-2*(q.Y*q.Y+q.Z*q.Z)) * radToDeg
		roll = 0
	}
	return yaw, pitch, roll
}
