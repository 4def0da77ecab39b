package nao

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WordStream receives recognition events pushed by the bridge over a
// websocket, instead of polling the memory slot. Each event carries the
// same (word, confidence) pair the slot would hold.
type WordStream struct {
	url    string
	logger *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	words chan Word
}

// wordEvent is the bridge's pushed event format.
type wordEvent struct {
	Type       string  `json:"type"`
	Word       string  `json:"word"`
	Confidence float64 `json:"confidence"`
}

// NewWordStream creates a stream client for the bridge event endpoint,
// e.g. "ws://172.18.16.54:8071/ws/events".
func NewWordStream(url string, logger *slog.Logger) *WordStream {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordStream{
		url:    url,
		logger: logger.With("component", "nao.wordstream"),
		words:  make(chan Word, 16),
	}
}

// Connect dials the event endpoint.
func (s *WordStream) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("event stream dial failed: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	return nil
}

// Run reads events until the context is cancelled or the connection drops.
// Call in a goroutine after Connect.
func (s *WordStream) Run(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("word stream not connected")
	}

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed || ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("event stream read failed: %w", err)
		}

		var ev wordEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Warn("dropping malformed event", "error", err)
			continue
		}
		if ev.Type != "word_recognized" {
			continue
		}

		w := Word{Text: ev.Word, Confidence: ev.Confidence}
		select {
		case s.words <- w:
		default:
			// Listener is behind; the newest word wins, drop the oldest.
			select {
			case <-s.words:
			default:
			}
			s.words <- w
		}
	}
}

// Words returns the channel of pushed recognition results.
func (s *WordStream) Words() <-chan Word {
	return s.words
}

// Close closes the websocket connection.
func (s *WordStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
