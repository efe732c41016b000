package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-headtrack/pkg/hub"
	"github.com/teslashibe/go-headtrack/pkg/pipeline"
)

// handleStatus returns the current tracker state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	p := s.pl.LastSmoothed()
	return c.JSON(Status{
		Receiving: s.src.IsReceiving(),
		Remote:    s.src.IsRemote(),
		Clients:   s.poseHub.ClientCount(),
		UptimeSec: time.Since(s.started).Seconds(),
		Yaw:       p.Yaw,
		Pitch:     p.Pitch,
		Roll:      p.Roll,
	})
}

// handleGetTuning returns the live processing parameters
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.pl.GetTuningParams())
}

// handleSetTuning applies processing parameters from the dashboard
func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	var params pipeline.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.pl.SetTuningParams(params)
	return c.JSON(s.pl.GetTuningParams())
}

// handleRecenter captures the current pose as the new center
func (s *Server) handleRecenter(c *fiber.Ctx) error {
	s.pl.Recenter()
	return c.JSON(fiber.Map{"ok": true})
}

// handleReset clears the center offset
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.pl.ResetOffset()
	return c.JSON(fiber.Map{"ok": true})
}

// handlePoseWS handles WebSocket connections for the live pose stream
func (s *Server) handlePoseWS(c *websocket.Conn) {
	client := hub.NewClient(s.poseHub, c)
	client.Run() // Blocks until connection closes
}
