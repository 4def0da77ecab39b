package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chatServer replies to /api/chat with a fixed assistant message and
// records the request payload.
func chatServer(t *testing.T, content string) (*httptest.Server, *map[string]interface{}) {
	t.Helper()
	var payload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": content},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &payload
}

func TestChat(t *testing.T) {
	srv, payload := chatServer(t, "The patient reports lower back pain.")
	c := NewClient(WithBaseURL(srv.URL), WithModel("mistral"))

	reply, err := c.Chat(context.Background(), []Message{
		System("You are a physiotherapy assistant."),
		User("Summarize: my back hurts"),
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "The patient reports lower back pain." {
		t.Errorf("reply = %q", reply)
	}

	if (*payload)["model"] != "mistral" {
		t.Errorf("model = %v", (*payload)["model"])
	}
	if (*payload)["stream"] != false {
		t.Errorf("stream = %v", (*payload)["stream"])
	}
	messages, ok := (*payload)["messages"].([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", (*payload)["messages"])
	}
	first, _ := messages[0].(map[string]interface{})
	if first["role"] != RoleSystem {
		t.Errorf("first role = %v", first["role"])
	}
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Chat(context.Background(), []Message{User("hello")})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "model not found") {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.IsServerError() {
		t.Error("404 reported as server error")
	}
}

func TestHealth(t *testing.T) {
	srv, _ := chatServer(t, "OK, I can read you.")
	c := NewClient(WithBaseURL(srv.URL))
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}

	down := NewClient(WithBaseURL("http://127.0.0.1:1"))
	if err := down.Health(context.Background()); err == nil {
		t.Fatal("Health against dead endpoint returned nil")
	}
}

func TestCanned(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"tell me about your pain", "experiencing pain"},
		{"what medication do you take", "your medication"},
		{"do you do any exercise", "Exercises are an important part"},
		{"anything else", "help us provide better care"},
	}
	for _, tt := range tests {
		if got := Canned(tt.prompt); !strings.Contains(got, tt.want) {
			t.Errorf("Canned(%q) = %q, want substring %q", tt.prompt, got, tt.want)
		}
	}
}

func TestChatOrCannedAbsorbsFailure(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	got := c.ChatOrCanned(context.Background(), "", "rate your pain please")
	if !strings.Contains(got, "pain") {
		t.Errorf("fallback reply = %q", got)
	}
}

func TestAssessmentQuestions(t *testing.T) {
	srv, _ := chatServer(t, "Here you go:\n[\"How did the pain start?\", \"What makes it worse?\"]")
	c := NewClient(WithBaseURL(srv.URL))

	questions := c.AssessmentQuestions(context.Background())
	if len(questions) != 2 || questions[0] != "How did the pain start?" {
		t.Errorf("questions = %v", questions)
	}
}

func TestAssessmentQuestionsFallback(t *testing.T) {
	srv, _ := chatServer(t, "I cannot produce a list right now.")
	c := NewClient(WithBaseURL(srv.URL))

	questions := c.AssessmentQuestions(context.Background())
	if len(questions) != len(defaultAssessmentQuestions) {
		t.Fatalf("got %d questions, want canned set", len(questions))
	}

	down := NewClient(WithBaseURL("http://127.0.0.1:1"))
	if got := down.AssessmentQuestions(context.Background()); len(got) != len(defaultAssessmentQuestions) {
		t.Errorf("dead endpoint returned %d questions", len(got))
	}
}
