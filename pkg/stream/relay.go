// Package stream forwards processed poses to an upstream websocket
// endpoint, reconnecting automatically when the link drops.
package stream

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/teslashibe/go-headtrack/internal/log"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
	pingInterval     = 30 * time.Second

	// reconnect backoff bounds
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Relay maintains a websocket connection to an upstream consumer and
// pushes JSON pose frames over it. Frames queued while the link is
// down are dropped, newest first matters more than completeness here.
type Relay struct {
	url string

	ws   *websocket.Conn
	wsMu sync.Mutex

	frames chan []byte
	stop   chan struct{}

	connected atomic.Bool
	closeOnce sync.Once
}

// NewRelay creates a relay for the given websocket URL
func NewRelay(url string) *Relay {
	return &Relay{
		url:    url,
		frames: make(chan []byte, 64),
		stop:   make(chan struct{}),
	}
}

// Start runs the connect/forward loop in a goroutine
func (r *Relay) Start() {
	go r.run()
}

// Send encodes a frame and queues it for delivery.
// Frames are dropped when the queue is full or the link is down.
func (r *Relay) Send(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case r.frames <- data:
	default:
		// Queue full, drop. The next frame supersedes this one anyway.
	}
	return nil
}

// Connected reports whether the upstream link is currently up
func (r *Relay) Connected() bool {
	return r.connected.Load()
}

// Close stops the relay and closes the connection
func (r *Relay) Close() {
	r.closeOnce.Do(func() {
		close(r.stop)
		r.wsMu.Lock()
		if r.ws != nil {
			r.ws.Close()
		}
		r.wsMu.Unlock()
	})
}

func (r *Relay) run() {
	backoff := minBackoff
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		if err := r.connect(); err != nil {
			log.Warn("upstream connect failed", "url", r.url, "err", err, "retry", backoff)
			select {
			case <-time.After(backoff):
			case <-r.stop:
				return
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = minBackoff
		log.Info("upstream connected", "url", r.url)
		r.pump()
		r.connected.Store(false)
	}
}

func (r *Relay) connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	ws, _, err := dialer.Dial(r.url, nil)
	if err != nil {
		return err
	}

	r.wsMu.Lock()
	r.ws = ws
	r.wsMu.Unlock()
	r.connected.Store(true)
	return nil
}

// pump forwards queued frames until the connection fails or Close is
// called. All writes go through the mutex so the pinger cannot race
// the frame writer.
func (r *Relay) pump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-r.frames:
			if err := r.write(websocket.TextMessage, data); err != nil {
				log.Warn("upstream write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := r.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-r.stop:
			r.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (r *Relay) write(messageType int, data []byte) error {
	r.wsMu.Lock()
	defer r.wsMu.Unlock()
	if r.ws == nil {
		return websocket.ErrCloseSent
	}
	r.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return r.ws.WriteMessage(messageType, data)
}
