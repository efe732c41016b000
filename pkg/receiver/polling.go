package receiver

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/teslashibe/go-headtrack/pkg/opentrack"
	"github.com/teslashibe/go-headtrack/pkg/pose"
)

const (
	// maxDrainPerPoll caps how many queued datagrams one Poll call
	// will consume, so a flooding sender cannot stall the caller's
	// tick.
	maxDrainPerPoll = 1000

	// DefaultPollTimeout is the staleness threshold in polling mode.
	// Coarser than threaded mode because tick intervals are caller
	// controlled and may be irregular.
	DefaultPollTimeout = time.Second
)

// PollingReceiver is the single-threaded variant: no background
// goroutine, no atomics. The embedder calls Poll once per tick and
// reads state from the same thread. Correct by construction for hosts
// that cannot add threads.
type PollingReceiver struct {
	port    int
	timeout time.Duration

	conn *net.UDPConn
	buf  []byte

	latest pose.Pose
	remote bool
	failed bool

	offset    pose.Pose
	hasOffset bool
}

// NewPolling creates a poll-driven receiver for the given UDP port.
// A port of 0 uses the OpenTrack default.
func NewPolling(port int) *PollingReceiver {
	if port == 0 {
		port = opentrack.DefaultPort
	}
	return &PollingReceiver{
		port:    port,
		timeout: DefaultPollTimeout,
		buf:     make([]byte, 256),
	}
}

// SetTimeout overrides the staleness threshold used by IsReceiving.
func (r *PollingReceiver) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Start binds the socket. Bind failure is definitive and recorded.
func (r *PollingReceiver) Start() error {
	if r.conn != nil {
		return errors.New("receiver already started")
	}
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: r.port})
	if err != nil {
		r.failed = true
		return fmt.Errorf("bind udp port %d: %w", r.port, err)
	}
	r.conn = conn
	r.failed = false
	return nil
}

// Failed reports whether the last Start attempt failed to bind.
func (r *PollingReceiver) Failed() bool {
	return r.failed
}

// Poll drains every datagram currently queued on the socket and keeps
// only the newest valid one, which avoids visible input lag when the
// sender outpaces the caller's tick rate. Returns true if at least one
// new sample was decoded.
func (r *PollingReceiver) Poll() bool {
	if r.conn == nil {
		return false
	}

	got := false
	for i := 0; i < maxDrainPerPoll; i++ {
		// A short deadline lets the read consume whatever is already
		// queued and return promptly once the queue is empty. A
		// deadline in the past would fail the read before it ever
		// looked at the queue.
		r.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
		n, addr, err := r.conn.ReadFromUDP(r.buf)
		if err != nil {
			break // queue empty (timeout) or socket closed
		}

		if addr != nil && !addr.IP.IsLoopback() {
			r.remote = true
		}

		if p, ok := opentrack.Decode(r.buf[:n]); ok {
			r.latest = p
			got = true
		}
	}
	return got
}

// LatestPose returns the most recent decoded sample; the zero Pose
// means nothing has arrived yet.
func (r *PollingReceiver) LatestPose() pose.Pose {
	return r.latest
}

// RawRotation returns the latest sample with the recenter offset
// subtracted.
func (r *PollingReceiver) RawRotation() pose.Pose {
	if !r.latest.IsValid() || !r.hasOffset {
		return r.latest
	}
	return r.latest.Sub(r.offset)
}

// Recenter captures the current rotation as the new zero reference.
func (r *PollingReceiver) Recenter() {
	if !r.latest.IsValid() {
		return
	}
	r.offset = pose.Pose{Yaw: r.latest.Yaw, Pitch: r.latest.Pitch, Roll: r.latest.Roll}
	r.hasOffset = true
}

// ResetOffset clears the recenter offset.
func (r *PollingReceiver) ResetOffset() {
	r.offset = pose.Pose{}
	r.hasOffset = false
}

// IsReceiving reports whether a valid packet arrived within the
// staleness timeout.
func (r *PollingReceiver) IsReceiving() bool {
	return r.latest.IsValid() && pose.Now()-r.latest.Timestamp < int64(r.timeout)
}

// IsRemote reports whether any packet so far came from a non-loopback
// address.
func (r *PollingReceiver) IsRemote() bool {
	return r.remote
}

// Close releases the socket. Idempotent.
func (r *PollingReceiver) Close() {
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}
