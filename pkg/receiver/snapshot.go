package receiver

import (
	"sync"
	"sync/atomic"

	"github.com/teslashibe/go-headtrack/pkg/pose"
)

// Snapshot publishes a polling receiver's state for concurrent
// readers. The polling variant is single-threaded by construction, so
// handing it to anything with its own goroutines (the web server)
// would race with Poll. Instead the owner goroutine calls Sync after
// each Poll and everyone else reads the snapshot.
//
// Recenter and ResetOffset requests are deferred to the next Sync so
// only the owner ever touches the underlying receiver.
type Snapshot struct {
	src *PollingReceiver

	mu        sync.RWMutex
	latest    pose.Pose
	raw       pose.Pose
	receiving bool
	remote    bool

	recenter atomic.Bool
	reset    atomic.Bool
}

var _ Source = (*Snapshot)(nil)

// NewSnapshot wraps a polling receiver.
func NewSnapshot(src *PollingReceiver) *Snapshot {
	return &Snapshot{src: src}
}

// Sync applies any pending recenter/reset requests and copies the
// receiver's state. Call from the goroutine that calls Poll, once per
// tick.
func (s *Snapshot) Sync() {
	if s.reset.Swap(false) {
		s.src.ResetOffset()
	}
	if s.recenter.Swap(false) {
		s.src.Recenter()
	}

	s.mu.Lock()
	s.latest = s.src.LatestPose()
	s.raw = s.src.RawRotation()
	s.receiving = s.src.IsReceiving()
	s.remote = s.src.IsRemote()
	s.mu.Unlock()
}

// LatestPose returns the sample captured by the last Sync.
func (s *Snapshot) LatestPose() pose.Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// RawRotation returns the offset-subtracted sample from the last Sync.
func (s *Snapshot) RawRotation() pose.Pose {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// IsReceiving reports the receiver's staleness state as of the last
// Sync.
func (s *Snapshot) IsReceiving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receiving
}

// IsRemote reports whether any packet came from a non-loopback address
// as of the last Sync.
func (s *Snapshot) IsRemote() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remote
}

// Recenter requests a recenter on the next Sync.
func (s *Snapshot) Recenter() {
	s.recenter.Store(true)
}

// ResetOffset requests an offset reset on the next Sync.
func (s *Snapshot) ResetOffset() {
	s.reset.Store(true)
}
