// Package llm provides a chat client for a local Ollama endpoint.
//
// The wire format is a single POST to /api/chat with
// {model, messages:[{role,content}], stream:false}; the reply's
// message.content is the answer. Any network or non-200 failure can be
// absorbed into canned keyword-triggered sentences via ChatOrCanned, so the
// dialogue never stalls on a dead model server.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/physiobotics/go-nao/internal/httpc"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System creates a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User creates a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	HTTP    *http.Client
	Logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Config)

// WithBaseURL sets the Ollama base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithHTTPClient overrides the HTTP client (mainly for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTP = hc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns defaults for a local Ollama instance.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:11434",
		Model:   "mistral",
		Timeout: 60 * time.Second,
		Logger:  slog.Default(),
	}
}

// Client talks to one Ollama endpoint.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a chat client.
func NewClient(opts ...Option) *Client {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	hc := cfg.HTTP
	if hc == nil {
		hc = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    hc,
		logger:  cfg.Logger.With("component", "llm.client"),
	}
}

// chatResponse is the Ollama /api/chat reply envelope.
type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// Chat sends the messages and returns the assistant's reply content.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	start := time.Now()

	payload := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
		"stream":   false,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	c.logger.Debug("chat completed",
		"model", c.model,
		"latency_ms", time.Since(start).Milliseconds())

	return result.Message.Content, nil
}

// Ask is a single-prompt convenience over Chat with an optional system role.
func (c *Client) Ask(ctx context.Context, systemRole, prompt string) (string, error) {
	var messages []Message
	if systemRole != "" {
		messages = append(messages, System(systemRole))
	}
	messages = append(messages, User(prompt))
	return c.Chat(ctx, messages)
}

// Health verifies the endpoint responds coherently to a trivial probe.
func (c *Client) Health(ctx context.Context) error {
	reply, err := c.Ask(ctx, "", "Respond with 'OK' if you can read this message.")
	if err != nil {
		return err
	}
	if !strings.Contains(reply, "OK") {
		return fmt.Errorf("llm: probe reply did not contain expected confirmation")
	}
	return nil
}
