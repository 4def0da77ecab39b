package dialogue

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/physiobotics/go-nao/pkg/listen"
	"github.com/physiobotics/go-nao/pkg/llm"
	"github.com/physiobotics/go-nao/pkg/nao"
	"github.com/physiobotics/go-nao/pkg/session"
)

// silentSource simulates a recognizer that never hears anything: every
// Listen call yields an already-closed sample channel, so acquisition falls
// through to the simulated answers without waiting out real timeouts.
type silentSource struct{}

func (silentSource) Listen(ctx context.Context, vocabulary []string) (<-chan listen.Sample, func(), error) {
	out := make(chan listen.Sample)
	close(out)
	return out, func() {}, nil
}

// scriptedSource yields one recognized word per Listen call, then goes
// silent.
type scriptedSource struct {
	words []string
	call  int
}

func (s *scriptedSource) Listen(ctx context.Context, vocabulary []string) (<-chan listen.Sample, func(), error) {
	out := make(chan listen.Sample, 1)
	if s.call < len(s.words) {
		out <- listen.Sample{Word: s.words[s.call], Confidence: 0.9}
	}
	s.call++
	close(out)
	return out, func() {}, nil
}

// deadLLM returns a client pointed at a port nothing listens on, so every
// chat call fails fast and the canned replies take over.
func deadLLM() *llm.Client {
	return llm.NewClient(llm.WithBaseURL("http://127.0.0.1:1"))
}

func testConfig(t *testing.T, source listen.Source, table listen.Table) (Config, *nao.Mock, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := session.NewJSONStore(dir, "")
	if err != nil {
		t.Fatal(err)
	}

	device := nao.NewMock()
	return Config{
		Speaker: device,
		Acquirer: listen.New(source, table,
			listen.WithSpeaker(device),
		),
		LLM:   deadLLM(),
		Store: store,
		Rand:  rand.New(rand.NewPCG(7, 7)),
	}, device, dir
}

func runStages(t *testing.T, stages []session.Stage) error {
	t.Helper()
	driver := session.NewDriver(stages, session.WithPause(0))
	return driver.Run(context.Background())
}

func savedDocument(t *testing.T, dir string) (string, map[string]any) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one saved file, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	return entries[0].Name(), doc
}

func TestIntakeSilentRunCompletes(t *testing.T) {
	cfg, device, dir := testConfig(t, silentSource{}, listen.IntakeFallbacks())
	intake := NewIntake(cfg)

	if err := runStages(t, intake.Stages()); err != nil {
		t.Fatalf("intake run: %v", err)
	}

	name, doc := savedDocument(t, dir)
	if !strings.HasPrefix(name, "john_smith_") {
		t.Errorf("saved filename = %q", name)
	}

	personal, ok := doc["personal_info"].(map[string]any)
	if !ok {
		t.Fatalf("personal_info missing: %v", doc)
	}
	if personal["name"] != "John Smith" || personal["age"] != "45" {
		t.Errorf("personal_info = %v", personal)
	}

	history, ok := doc["medical_history"].(map[string]any)
	if !ok || len(history) != len(historyQuestions) {
		t.Errorf("medical_history = %v", doc["medical_history"])
	}

	assessment, ok := doc["physiotherapy_assessment"].(map[string]any)
	if !ok {
		t.Fatalf("physiotherapy_assessment missing")
	}
	if _, ok := assessment["goals"]; !ok {
		t.Error("goals not recorded")
	}

	summary, _ := doc["assessment_summary"].(string)
	if summary == "" {
		t.Error("assessment_summary missing after re-save")
	}

	spoken := device.SpokenText()
	if len(spoken) == 0 || !strings.Contains(spoken[0], "physiotherapy assistant") {
		t.Errorf("greeting not spoken, got %v", spoken[:min(3, len(spoken))])
	}
}

func TestFeedbackSilentRunCompletes(t *testing.T) {
	cfg, _, dir := testConfig(t, silentSource{}, listen.FeedbackFallbacks())
	feedback := NewFeedback(cfg)

	if err := runStages(t, feedback.Stages()); err != nil {
		t.Fatalf("feedback run: %v", err)
	}

	_, doc := savedDocument(t, dir)

	pain, ok := doc["pain_assessment"].(map[string]any)
	if !ok {
		t.Fatalf("pain_assessment missing: %v", doc)
	}
	// "7 out of 10" and "3 out of 10" do not parse as bare numbers, so the
	// recorded levels are simulated values within the scale.
	for _, key := range []string{"before", "after"} {
		n, ok := pain[key].(float64)
		if !ok || n < 0 || n > 10 {
			t.Errorf("pain_assessment[%s] = %v", key, pain[key])
		}
	}
	if _, ok := pain["change"]; !ok {
		t.Error("pain change not recorded")
	}

	overall, ok := doc["overall_experience"].(map[string]any)
	if !ok {
		t.Fatalf("overall_experience missing")
	}
	if overall["satisfaction"] != "very_satisfied" {
		t.Errorf("satisfaction = %v", overall["satisfaction"])
	}

	if _, ok := doc["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
	if _, ok := doc["final_comments"]; !ok {
		t.Error("final_comments missing")
	}
}

func TestFeedbackDecline(t *testing.T) {
	cfg, device, dir := testConfig(t, &scriptedSource{words: []string{"no"}}, listen.FeedbackFallbacks())
	feedback := NewFeedback(cfg)

	if err := runStages(t, feedback.Stages()); err != nil {
		t.Fatalf("declined run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("feedback saved despite decline: %v", entries)
	}

	var polite bool
	for _, text := range device.SpokenText() {
		if strings.Contains(text, "No problem!") {
			polite = true
		}
	}
	if !polite {
		t.Error("decline was not acknowledged")
	}
}

func TestKeyFromQuestion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Do you have any allergies?", "do_you_have_any_allergies"},
		{"What movements or activities make your symptoms worse?", "what_movements_or_activities_m"},
	}
	for _, tt := range tests {
		if got := keyFromQuestion(tt.in); got != tt.want {
			t.Errorf("keyFromQuestion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"John Smith", "John"},
		{"Cher", "Cher"},
		{"", "there"},
	}
	for _, tt := range tests {
		if got := firstName(tt.in); got != tt.want {
			t.Errorf("firstName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
