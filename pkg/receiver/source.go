package receiver

import "github.com/teslashibe/go-headtrack/pkg/pose"

// Source is anything that supplies head orientation samples over time.
// Both receiver variants implement it, and embedders can substitute a
// replay or mock source for testing.
type Source interface {
	LatestPose() pose.Pose
	RawRotation() pose.Pose
	IsReceiving() bool
	IsRemote() bool
	Recenter()
	ResetOffset()
}

var (
	_ Source = (*Receiver)(nil)
	_ Source = (*PollingReceiver)(nil)
)
