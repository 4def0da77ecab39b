package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/physiobotics/go-nao/pkg/hub"
)

// handleStatus returns the current session state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	snapshot := s.state
	s.stateMu.RUnlock()
	return c.JSON(snapshot)
}

// handleTranscript returns the full transcript so far.
func (s *Server) handleTranscript(c *fiber.Ctx) error {
	s.transcriptMu.RLock()
	entries := append([]TranscriptEntry(nil), s.transcript...)
	s.transcriptMu.RUnlock()
	return c.JSON(entries)
}

// handleRecord returns the in-progress questionnaire record.
func (s *Server) handleRecord(c *fiber.Ctx) error {
	s.recordMu.RLock()
	rec := s.record
	s.recordMu.RUnlock()

	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active record",
		})
	}
	return c.JSON(rec.Snapshot())
}

// handleStatusWS streams state snapshots to a dashboard client.
func (s *Server) handleStatusWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statusHub, conn)
	client.Run()
}

// handleTranscriptWS streams transcript lines to a dashboard client.
func (s *Server) handleTranscriptWS(conn *websocket.Conn) {
	client := hub.NewClient(s.transcriptHub, conn)
	client.Run()
}
