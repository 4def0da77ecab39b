package nao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/physiobotics/go-nao/internal/httpc"
)

// bridgeClient is a shared HTTP client with a short timeout so a dead robot
// never blocks a dialogue turn for long.
var bridgeClient = httpc.NewClient(2 * time.Second)

// Bridge implements Device using the NAOqi HTTP bridge on the robot.
// This is the primary device used by the intake and feedback workflows.
type Bridge struct {
	BaseURL string
}

// NewBridge creates a device client for the bridge at the given base URL,
// e.g. "http://172.18.16.54:8070".
func NewBridge(baseURL string) *Bridge {
	return &Bridge{BaseURL: baseURL}
}

// Say speaks the text without animation.
func (b *Bridge) Say(text string) error {
	return b.post("/api/tts/say", map[string]interface{}{
		"text":     text,
		"animated": false,
	})
}

// SayAnimated speaks the text with contextual gestures.
func (b *Bridge) SayAnimated(text string) error {
	return b.post("/api/tts/say", map[string]interface{}{
		"text":     text,
		"animated": true,
	})
}

// SetSpeechSpeed sets the TTS speaking rate (50-400, nominal 100).
func (b *Bridge) SetSpeechSpeed(speed int) error {
	return b.post("/api/tts/parameter", map[string]interface{}{
		"name":  "speed",
		"value": speed,
	})
}

// GoToPosture moves the robot to a named posture.
func (b *Bridge) GoToPosture(posture string, speed float64) error {
	return b.post("/api/posture/go_to", map[string]interface{}{
		"posture": posture,
		"speed":   speed,
	})
}

// SetAngle moves one joint to the given angle in radians.
func (b *Bridge) SetAngle(joint string, angle, speed float64) error {
	return b.post("/api/motion/set_angles", map[string]interface{}{
		"names":  []string{joint},
		"angles": []float64{angle},
		"speed":  speed,
	})
}

// SetVocabulary replaces the recognizer's active vocabulary.
// Word spotting stays disabled, matching the scripted question flow.
func (b *Bridge) SetVocabulary(words []string) error {
	return b.post("/api/asr/vocabulary", map[string]interface{}{
		"words":         words,
		"word_spotting": false,
	})
}

// SetSensitivity adjusts recognizer sensitivity (0-1).
func (b *Bridge) SetSensitivity(value float64) error {
	return b.post("/api/asr/parameter", map[string]interface{}{
		"name":  "Sensitivity",
		"value": value,
	})
}

// SetLanguage sets the recognition language.
func (b *Bridge) SetLanguage(language string) error {
	return b.post("/api/asr/language", map[string]interface{}{
		"language": language,
	})
}

// Subscribe starts recognition under the given subscriber name.
func (b *Bridge) Subscribe(name string) error {
	return b.post("/api/asr/subscribe", map[string]interface{}{
		"name": name,
	})
}

// Unsubscribe stops recognition for the given subscriber name.
func (b *Bridge) Unsubscribe(name string) error {
	return b.post("/api/asr/unsubscribe", map[string]interface{}{
		"name": name,
	})
}

// LastWord reads the WordRecognized memory slot.
// The bridge returns the raw ALMemory value, a [text, confidence] pair.
func (b *Bridge) LastWord() (Word, error) {
	resp, err := bridgeClient.Get(b.BaseURL + "/api/memory/key/WordRecognized")
	if err != nil {
		return Word{}, fmt.Errorf("memory read failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Word{}, fmt.Errorf("memory read: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Value []json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Word{}, fmt.Errorf("failed to decode memory value: %w", err)
	}

	// An empty slot is not an error, just nothing recognized yet.
	if len(payload.Value) < 2 {
		return Word{}, nil
	}

	var w Word
	if err := json.Unmarshal(payload.Value[0], &w.Text); err != nil {
		return Word{}, fmt.Errorf("malformed word entry: %w", err)
	}
	if err := json.Unmarshal(payload.Value[1], &w.Confidence); err != nil {
		return Word{}, fmt.Errorf("malformed confidence entry: %w", err)
	}
	return w, nil
}

// Status returns the bridge daemon state.
func (b *Bridge) Status() (string, error) {
	resp, err := bridgeClient.Get(b.BaseURL + "/api/status")
	if err != nil {
		return "", fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("failed to decode status: %w", err)
	}
	return status.State, nil
}

// post sends a JSON command to the bridge API.
func (b *Bridge) post(path string, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := bridgeClient.Post(b.BaseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("bridge request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge request %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
