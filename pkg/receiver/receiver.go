// Package receiver owns the UDP socket that head-tracking datagrams
// arrive on and publishes the newest valid sample to the rest of the
// pipeline. Two variants exist: Receiver runs its own goroutine and is
// safe to read from any thread; PollingReceiver is pumped explicitly
// by single-threaded embedders.
package receiver

import (
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/teslashibe/go-headtrack/internal/log"
	"github.com/teslashibe/go-headtrack/pkg/opentrack"
	"github.com/teslashibe/go-headtrack/pkg/pose"
)

const (
	// readDeadline bounds each blocking read so the receive loop can
	// observe a stop request promptly.
	readDeadline = 100 * time.Millisecond

	// DefaultTimeout is how long with no packets before IsReceiving
	// flips false in threaded mode.
	DefaultTimeout = 500 * time.Millisecond

	stopGrace = time.Second
)

// Receiver reads OpenTrack datagrams on a background goroutine and is
// the sole writer of the published sample state. Rotation fields are
// independent atomics: a reader catching yaw and pitch from two
// adjacent packets is visually imperceptible, so no cross-field
// atomicity is needed. The recenter offset is a coupled triple and
// lives behind a short mutex instead.
type Receiver struct {
	port    int
	timeout time.Duration

	conn *net.UDPConn

	// Published sample state, written only by the receive loop.
	yawBits   atomic.Uint64
	pitchBits atomic.Uint64
	rollBits  atomic.Uint64
	lastRecv  atomic.Int64 // pose.Now() of last good decode, 0 = never
	remote    atomic.Bool

	failed  atomic.Bool
	running bool

	offsetMu  sync.Mutex
	offset    pose.Pose
	hasOffset bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a threaded receiver for the given UDP port. A port of 0
// uses the OpenTrack default. The receiver is inert until Start.
func New(port int) *Receiver {
	if port == 0 {
		port = opentrack.DefaultPort
	}
	return &Receiver{
		port:    port,
		timeout: DefaultTimeout,
	}
}

// SetTimeout overrides the staleness threshold used by IsReceiving.
// Must be called before Start.
func (r *Receiver) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Start binds the socket and launches the receive loop. A bind
// failure (port in use, no permission) is returned immediately and
// recorded; it is never retried silently.
func (r *Receiver) Start() error {
	if r.running {
		return errors.New("receiver already started")
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: r.port})
	if err != nil {
		r.failed.Store(true)
		return fmt.Errorf("bind udp port %d: %w", r.port, err)
	}

	r.conn = conn
	r.failed.Store(false)
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.closeOnce = sync.Once{}

	go r.loop()

	log.Debug("receiver started", "port", r.port)
	return nil
}

// Failed reports whether the last Start attempt failed to bind.
// Lazily-starting callers use this to distinguish "not started yet"
// from "tried and could not".
func (r *Receiver) Failed() bool {
	return r.failed.Load()
}

func (r *Receiver) loop() {
	defer close(r.done)

	buf := make([]byte, 256)
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		r.conn.SetReadDeadline(time.Now().Add(readDeadline))
		n, addr, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue // expected; counts toward staleness only
			}
			select {
			case <-r.stop:
				return
			default:
			}
			log.Debug("receive error", "err", err)
			continue
		}

		// Remote origin is tracked regardless of decode success so a
		// remote sender with occasional bad packets still gets the
		// jitter-compensating smoothing floor.
		if addr != nil && !addr.IP.IsLoopback() {
			r.remote.Store(true)
		}

		p, ok := opentrack.Decode(buf[:n])
		if !ok {
			continue // malformed or non-finite payload: drop silently
		}
		r.publish(p)
	}
}

func (r *Receiver) publish(p pose.Pose) {
	r.yawBits.Store(math.Float64bits(p.Yaw))
	r.pitchBits.Store(math.Float64bits(p.Pitch))
	r.rollBits.Store(math.Float64bits(p.Roll))
	r.lastRecv.Store(p.Timestamp)
}

// LatestPose returns the most recent decoded sample. The zero Pose
// means no packet has been decoded yet.
func (r *Receiver) LatestPose() pose.Pose {
	ts := r.lastRecv.Load()
	if ts == 0 {
		return pose.Pose{}
	}
	return pose.Pose{
		Yaw:       math.Float64frombits(r.yawBits.Load()),
		Pitch:     math.Float64frombits(r.pitchBits.Load()),
		Roll:      math.Float64frombits(r.rollBits.Load()),
		Timestamp: ts,
	}
}

// RawRotation returns the latest sample with the recenter offset
// subtracted.
func (r *Receiver) RawRotation() pose.Pose {
	p := r.LatestPose()
	if !p.IsValid() {
		return p
	}

	r.offsetMu.Lock()
	defer r.offsetMu.Unlock()
	if !r.hasOffset {
		return p
	}
	return p.Sub(r.offset)
}

// Recenter captures the currently published rotation as the new zero
// reference. Safe to call concurrently with the receive loop.
func (r *Receiver) Recenter() {
	p := r.LatestPose()
	if !p.IsValid() {
		return
	}

	r.offsetMu.Lock()
	r.offset = pose.Pose{Yaw: p.Yaw, Pitch: p.Pitch, Roll: p.Roll}
	r.hasOffset = true
	r.offsetMu.Unlock()

	log.Info("recentered", "yaw", p.Yaw, "pitch", p.Pitch, "roll", p.Roll)
}

// ResetOffset clears the recenter offset.
func (r *Receiver) ResetOffset() {
	r.offsetMu.Lock()
	r.offset = pose.Pose{}
	r.hasOffset = false
	r.offsetMu.Unlock()
}

// IsReceiving reports whether a valid packet arrived within the
// staleness timeout. It is derived from the last-receive timestamp,
// never stored directly.
func (r *Receiver) IsReceiving() bool {
	last := r.lastRecv.Load()
	return last != 0 && pose.Now()-last < int64(r.timeout)
}

// IsRemote reports whether any packet so far came from a non-loopback
// address.
func (r *Receiver) IsRemote() bool {
	return r.remote.Load()
}

// Stop shuts the receive loop down, waits for it to exit, and releases
// the socket. After Stop returns no further state writes occur and the
// port can be rebound immediately. Safe to call more than once.
func (r *Receiver) Stop() {
	if !r.running {
		return
	}
	r.running = false

	close(r.stop)
	select {
	case <-r.done:
	case <-time.After(stopGrace):
		// The loop is stuck in a read; closing the socket below will
		// unblock it.
		log.Warn("receive loop did not stop in time, closing socket")
	}
	r.Close()
}

// Close releases the socket. Idempotent.
func (r *Receiver) Close() {
	r.closeOnce.Do(func() {
		if r.conn != nil {
			r.conn.Close()
		}
	})
}
