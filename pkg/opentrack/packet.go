// Package opentrack implements the OpenTrack UDP wire format: a
// 48-byte datagram of six little-endian float64 fields
// [x, y, z, yaw, pitch, roll], angles in degrees. Position fields are
// accepted and ignored; trailing bytes (some senders append a frame
// counter) are ignored too.
package opentrack

import (
	"encoding/binary"
	"math"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

const (
	// DefaultPort is the port OpenTrack senders use out of the box.
	DefaultPort = 4242

	// PacketSize is the minimum valid datagram length.
	PacketSize = 48

	yawOffset   = 24
	pitchOffset = 32
	rollOffset  = 40
)

// Decode validates buf and extracts yaw/pitch/roll. It returns false
// when the datagram is shorter than 48 bytes or any rotation field is
// NaN or infinite. The returned pose is stamped with the receiver's
// monotonic clock; the protocol carries no sender timestamp.
func Decode(buf []byte) (pose.Pose, bool) {
	if len(buf) < PacketSize {
		return pose.Pose{}, false
	}

	yaw := math.Float64frombits(binary.LittleEndian.Uint64(buf[yawOffset:]))
	pitch := math.Float64frombits(binary.LittleEndian.Uint64(buf[pitchOffset:]))
	roll := math.Float64frombits(binary.LittleEndian.Uint64(buf[rollOffset:]))

	if !finite(yaw) || !finite(pitch) || !finite(roll) {
		return pose.Pose{}, false
	}

	// The wire carries doubles but single precision is plenty for
	// head angles; narrowing keeps both ends of the pipeline agreeing
	// on the values they log and compare.
	return pose.New(
		float64(float32(yaw)),
		float64(float32(pitch)),
		float64(float32(roll)),
	), true
}

// Encode builds a 48-byte datagram carrying the given rotation with
// zeroed position fields.
func Encode(yaw, pitch, roll float64) []byte {
	buf := make([]byte, PacketSize)
	binary.LittleEndian.PutUint64(buf[yawOffset:], math.Float64bits(yaw))
	binary.LittleEndian.PutUint64(buf[pitchOffset:], math.Float64bits(pitch))
	binary.LittleEndian.PutUint64(buf[rollOffset:], math.Float64bits(roll))
	return buf
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
