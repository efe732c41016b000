package pipeline

import (
	"math"
	"testing"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

func TestCenterOffset_IdentityWhenUnset(t *testing.T) {
	for _, mode := range []OffsetMode{OffsetEuler, OffsetQuat} {
		c := NewCenterOffset(mode)
		in := pose.Pose{Yaw: 12, Pitch: 3, Roll: -4, Timestamp: 1}
		if out := c.Apply(in); out != in {
			t.Errorf("mode %v: unset offset changed pose %+v -> %+v", mode, in, out)
		}
		if c.HasValidCenter() {
			t.Errorf("mode %v: HasValidCenter true before Set", mode)
		}
	}
}

func TestCenterOffset_EulerSubtracts(t *testing.T) {
	c := NewCenterOffset(OffsetEuler)
	c.SetTo(pose.Pose{Yaw: 10, Pitch: 5, Roll: -2})

	out := c.Apply(pose.Pose{Yaw: 15, Pitch: 5, Roll: 0, Timestamp: 1})
	if out.Yaw != 5 || out.Pitch != 0 || out.Roll != 2 {
		t.Errorf("Apply = (%v,%v,%v), want (5,0,2)", out.Yaw, out.Pitch, out.Roll)
	}
}

func TestCenterOffset_QuatCenterMapsToZero(t *testing.T) {
	c := NewCenterOffset(OffsetQuat)
	center := pose.Pose{Yaw: 30, Pitch: -20, Roll: 15}
	c.SetTo(center)

	out := c.Apply(pose.Pose{Yaw: 30, Pitch: -20, Roll: 15, Timestamp: 1})
	if math.Abs(out.Yaw) > 1e-6 || math.Abs(out.Pitch) > 1e-6 || math.Abs(out.Roll) > 1e-6 {
		t.Errorf("center applied to itself = (%v,%v,%v), want zeros", out.Yaw, out.Pitch, out.Roll)
	}
}

func TestCenterOffset_ComposeLandsOnZero(t *testing.T) {
	for _, mode := range []OffsetMode{OffsetEuler, OffsetQuat} {
		c := NewCenterOffset(mode)
		raw := pose.Pose{Yaw: 40, Pitch: 10, Roll: -5, Timestamp: 1}

		// First recenter from the processed (offset-applied) view.
		c.Set(c.Apply(raw))
		first := c.Apply(raw)
		if math.Abs(first.Yaw) > 1e-6 {
			t.Errorf("mode %v: first recenter left yaw %v", mode, first.Yaw)
		}

		// Head drifts, recenter again; composition must land on zero
		// rather than accumulating a stale reference.
		raw2 := pose.Pose{Yaw: 55, Pitch: 12, Roll: -1, Timestamp: 2}
		c.Set(c.Apply(raw2))
		second := c.Apply(raw2)
		if math.Abs(second.Yaw) > 1e-6 || math.Abs(second.Pitch) > 1e-6 || math.Abs(second.Roll) > 1e-6 {
			t.Errorf("mode %v: second recenter = (%v,%v,%v), want zeros",
				mode, second.Yaw, second.Pitch, second.Roll)
		}
	}
}

func TestCenterOffset_Reset(t *testing.T) {
	c := NewCenterOffset(OffsetEuler)
	c.SetTo(pose.Pose{Yaw: 10})
	c.Reset()

	in := pose.Pose{Yaw: 10, Timestamp: 1}
	if out := c.Apply(in); out != in {
		t.Errorf("after Reset, Apply changed pose: %+v", out)
	}
	if c.HasValidCenter() {
		t.Error("HasValidCenter should be false after Reset")
	}
}

func TestCenterOffset_EulerWrapsAcrossSeam(t *testing.T) {
	c := NewCenterOffset(OffsetEuler)
	c.SetTo(pose.Pose{Yaw: 170, Timestamp: 1})

	got := c.Apply(pose.Pose{Yaw: -170, Timestamp: 2})
	if math.Abs(got.Yaw-20) > 1e-9 {
		t.Errorf("yaw = %v, want 20 (short way across the seam)", got.Yaw)
	}
}
