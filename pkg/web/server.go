// Package web provides a live dashboard for a running interview session:
// current stage and field, the latest prompt and answer, and the full
// transcript, served over HTTP and pushed over websockets.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/physiobotics/go-nao/pkg/hub"
	"github.com/physiobotics/go-nao/pkg/session"
)

// State is the dashboard snapshot of the running session.
type State struct {
	Workflow       string `json:"workflow"`
	Stage          string `json:"stage"`
	Field          string `json:"field"`
	LastPrompt     string `json:"last_prompt"`
	LastAnswer     string `json:"last_answer"`
	AnswerOrigin   string `json:"answer_origin"`
	RobotConnected bool   `json:"robot_connected"`
	LLMConnected   bool   `json:"llm_connected"`
	Listening      bool   `json:"listening"`
}

// TranscriptEntry is one line of the spoken exchange.
type TranscriptEntry struct {
	Time    string `json:"time"`
	Role    string `json:"role"` // robot, subject
	Message string `json:"message"`
	Origin  string `json:"origin,omitempty"`
}

// Server is the session dashboard server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	stateMu sync.RWMutex
	state   State

	transcriptMu sync.RWMutex
	transcript   []TranscriptEntry

	recordMu sync.RWMutex
	record   *session.Record

	statusHub     *hub.Hub
	transcriptHub *hub.Hub
}

// NewServer creates a dashboard server for the named workflow.
func NewServer(port, workflow string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		port:          port,
		logger:        logger.With("component", "web"),
		state:         State{Workflow: workflow},
		transcript:    make([]TranscriptEntry, 0, 200),
		statusHub:     hub.New("status", logger),
		transcriptHub: hub.New("transcript", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-nao dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/transcript", s.handleTranscript)
	api.Get("/record", s.handleRecord)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/transcript", websocket.New(s.handleTranscriptWS))

	s.app = app
	return s
}

// Start runs the hubs and serves HTTP. Blocks.
func (s *Server) Start() error {
	go s.statusHub.Run()
	go s.transcriptHub.Run()
	s.logger.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// AttachRecord exposes the in-progress record on /api/record.
func (s *Server) AttachRecord(rec *session.Record) {
	s.recordMu.Lock()
	s.record = rec
	s.recordMu.Unlock()
}

// SetConnectivity updates the device and model connectivity flags.
func (s *Server) SetConnectivity(robot, llm bool) {
	s.updateState(func(st *State) {
		st.RobotConnected = robot
		st.LLMConnected = llm
	})
}

// StageStarted implements the dialogue event sink.
func (s *Server) StageStarted(name string) {
	s.updateState(func(st *State) {
		st.Stage = name
		st.Field = ""
	})
}

// PromptSpoken records a spoken prompt and marks the session as listening.
func (s *Server) PromptSpoken(field, text string) {
	s.updateState(func(st *State) {
		st.Field = field
		st.LastPrompt = text
		st.Listening = true
	})
	s.appendTranscript(TranscriptEntry{
		Time:    time.Now().Format("15:04:05"),
		Role:    "robot",
		Message: text,
	})
}

// AnswerCaptured records an acquired answer and its origin.
func (s *Server) AnswerCaptured(field, text, origin string) {
	s.updateState(func(st *State) {
		st.Field = field
		st.LastAnswer = text
		st.AnswerOrigin = origin
		st.Listening = false
	})
	s.appendTranscript(TranscriptEntry{
		Time:    time.Now().Format("15:04:05"),
		Role:    "subject",
		Message: text,
		Origin:  origin,
	})
}

// updateState mutates the state under lock and broadcasts the new snapshot.
func (s *Server) updateState(mutate func(*State)) {
	s.stateMu.Lock()
	mutate(&s.state)
	snapshot := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(snapshot)
}

// appendTranscript stores and broadcasts one transcript line.
func (s *Server) appendTranscript(entry TranscriptEntry) {
	s.transcriptMu.Lock()
	s.transcript = append(s.transcript, entry)
	s.transcriptMu.Unlock()

	s.transcriptHub.BroadcastJSON(entry)
}
