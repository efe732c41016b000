// Package web provides a real-time dashboard and tuning API for the
// head tracking daemon.
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-headtrack/internal/log"
	"github.com/teslashibe/go-headtrack/pkg/hub"
	"github.com/teslashibe/go-headtrack/pkg/pipeline"
	"github.com/teslashibe/go-headtrack/pkg/pose"
	"github.com/teslashibe/go-headtrack/pkg/receiver"
)

// Status is the tracker state reported by the status API
type Status struct {
	Receiving bool    `json:"receiving"`
	Remote    bool    `json:"remote"`
	Clients   int     `json:"clients"`
	UptimeSec float64 `json:"uptime_sec"`
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
	Roll      float64 `json:"roll"`
}

// PoseUpdate is a single frame streamed to websocket clients
type PoseUpdate struct {
	Timestamp int64      `json:"t"`
	Raw       PoseAngles `json:"raw"`
	Processed PoseAngles `json:"processed"`
}

// PoseAngles carries one orientation in degrees
type PoseAngles struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

func angles(p pose.Pose) PoseAngles {
	return PoseAngles{Yaw: p.Yaw, Pitch: p.Pitch, Roll: p.Roll}
}

// Server is the web dashboard server
type Server struct {
	app  *fiber.App
	port string

	src receiver.Source
	pl  *pipeline.Pipeline

	// Hub for websocket broadcast (thread-safe!)
	poseHub *hub.Hub

	started time.Time
}

// NewServer creates a new web dashboard server
func NewServer(port string, src receiver.Source, pl *pipeline.Pipeline) *Server {
	s := &Server{
		port:    port,
		src:     src,
		pl:      pl,
		poseHub: hub.New("pose"),
		started: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Headtrack Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/tuning", s.handleGetTuning)
	api.Post("/tuning", s.handleSetTuning)
	api.Post("/recenter", s.handleRecenter)
	api.Post("/reset", s.handleReset)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/pose", websocket.New(s.handlePoseWS))

	s.app = app
	return s
}

// Start starts the web server
func (s *Server) Start() error {
	log.Info("web dashboard listening", "addr", "http://localhost:"+s.port)

	go s.poseHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server", "err", err)
		}
	}()
}

// PublishPose broadcasts one frame to all pose stream clients
func (s *Server) PublishPose(raw, processed pose.Pose) {
	s.poseHub.BroadcastJSON(PoseUpdate{
		Timestamp: processed.Timestamp,
		Raw:       angles(raw),
		Processed: angles(processed),
	})
}

// PoseHub returns the pose hub for external use
func (s *Server) PoseHub() *hub.Hub {
	return s.poseHub
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	s.poseHub.Stop()
	return s.app.Shutdown()
}
