// Package dialogue implements the two scripted conversational workflows:
// the patient-intake assessment and the post-session feedback collection.
// Each flow is a fixed sequence of speak-listen-store steps; every
// collaborator is passed in explicitly, there is no ambient state.
package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/physiobotics/go-nao/pkg/gesture"
	"github.com/physiobotics/go-nao/pkg/listen"
	"github.com/physiobotics/go-nao/pkg/llm"
	"github.com/physiobotics/go-nao/pkg/nao"
	"github.com/physiobotics/go-nao/pkg/rating"
	"github.com/physiobotics/go-nao/pkg/session"
)

// Events receives session progress notifications (for the dashboard).
// All methods must be non-blocking.
type Events interface {
	StageStarted(name string)
	PromptSpoken(field, text string)
	AnswerCaptured(field, text, origin string)
}

// nopEvents is the default sink.
type nopEvents struct{}

func (nopEvents) StageStarted(string)                   {}
func (nopEvents) PromptSpoken(string, string)           {}
func (nopEvents) AnswerCaptured(string, string, string) {}

// Config bundles the collaborators a workflow needs.
type Config struct {
	Speaker  nao.Speaker
	Acquirer *listen.Acquirer
	LLM      *llm.Client
	Gestures *gesture.Player
	Store    session.Store
	Events   Events
	Rand     *rand.Rand
	Logger   *slog.Logger
}

// Interviewer holds the per-run state shared by a workflow's stages.
type Interviewer struct {
	speaker  nao.Speaker
	acq      *listen.Acquirer
	llm      *llm.Client
	gestures *gesture.Player
	store    session.Store
	record   *session.Record
	events   Events
	rng      *rand.Rand
	logger   *slog.Logger
}

func newInterviewer(cfg Config, record *session.Record) *Interviewer {
	events := cfg.Events
	if events == nil {
		events = nopEvents{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Interviewer{
		speaker:  cfg.Speaker,
		acq:      cfg.Acquirer,
		llm:      cfg.LLM,
		gestures: cfg.Gestures,
		store:    cfg.Store,
		record:   record,
		events:   events,
		rng:      rng,
		logger:   logger.With("component", "dialogue"),
	}
}

// Record returns the record being filled during the run.
func (iv *Interviewer) Record() *session.Record {
	return iv.record
}

// say speaks with animation; failures are logged, never fatal.
func (iv *Interviewer) say(text string) {
	if err := iv.speaker.SayAnimated(text); err != nil {
		iv.logger.Warn("speech failed", "error", err)
	}
}

// ask speaks the prompt and acquires an answer for the field. An empty
// prompt listens without speaking (the question was already part of a
// longer speech). It always returns a non-empty answer.
func (iv *Interviewer) ask(ctx context.Context, field listen.Field, prompt string, timeout time.Duration, vocab []string) string {
	if prompt != "" {
		iv.say(prompt)
	}
	iv.events.PromptSpoken(field.String(), prompt)

	ans := iv.acq.Acquire(ctx, listen.Request{
		Field:      field,
		Vocabulary: vocab,
		Timeout:    timeout,
	})
	iv.events.AnswerCaptured(field.String(), ans.Text, ans.Origin.String())
	return ans.Text
}

// askNumeric collects a rating on the scale: exact number, then a coarse
// low/medium/high follow-up, then a random in-range value as last resort.
func (iv *Interviewer) askNumeric(ctx context.Context, field listen.Field, question string, scale rating.Scale) int {
	prompt := fmt.Sprintf("%s Please respond with a number between %d and %d.", question, scale.Min, scale.Max)
	resp := iv.ask(ctx, field, prompt, 20*time.Second, numberVocabulary(scale))

	if n, ok := scale.Parse(resp); ok {
		iv.say(fmt.Sprintf("You rated it %d. Thank you.", n))
		return n
	}

	iv.say("I didn't get a clear number. Let me ask differently.")
	coarse := iv.ask(ctx, field, "Was your rating low, medium, or high?", 8*time.Second, coarseVocabulary)
	if n, ok := scale.Bucket(coarse); ok {
		return n
	}

	n := scale.Random(iv.rng)
	iv.say(fmt.Sprintf("I'll record a %d for now. You can correct this with your physiotherapist if needed.", n))
	return n
}

// askPain collects a 0-10 pain rating: number or descriptive word, then a
// descriptive follow-up, then a random value as last resort.
func (iv *Interviewer) askPain(ctx context.Context, field listen.Field, question string) int {
	prompt := question + " On a scale from 0 to 10, where 0 means no pain and 10 means worst possible pain, how would you rate your pain?"
	resp := iv.ask(ctx, field, prompt, 10*time.Second, painVocabulary)

	if n, ok := rating.ParsePain(resp); ok {
		iv.say(fmt.Sprintf("You rated your pain as %d. Thank you.", n))
		return n
	}

	desc := iv.ask(ctx, field,
		"Let me ask differently. Would you describe your pain as none, mild, moderate, severe, or worst possible?",
		8*time.Second, painDescriptorVocabulary)
	if n, ok := rating.ParsePain(desc); ok {
		return n
	}

	n := rating.PainScale.Random(iv.rng)
	iv.say(fmt.Sprintf("I'll record a pain level of %d for now. You can correct this with your physiotherapist if needed.", n))
	return n
}

// askSatisfaction collects a 5-point satisfaction level.
func (iv *Interviewer) askSatisfaction(ctx context.Context, field listen.Field, question string) rating.Satisfaction {
	prompt := question + " Please respond with very dissatisfied, dissatisfied, neutral, satisfied, or very satisfied."
	resp := iv.ask(ctx, field, prompt, 10*time.Second, rating.SatisfactionVocabulary)

	var sat rating.Satisfaction
	if resp == "" {
		sat = rating.RandomSatisfaction(iv.rng)
	} else {
		sat = rating.ParseSatisfaction(resp)
	}

	iv.say("You selected " + sat.Spoken() + ". Thank you for your feedback.")
	return sat
}

// playGesture runs a gesture, absorbing everything except cancellation.
func (iv *Interviewer) playGesture(ctx context.Context, g gesture.Gesture) error {
	if iv.gestures == nil {
		return nil
	}
	return iv.gestures.Play(ctx, g)
}

// keyFromQuestion derives a record field key from the question text, the
// same way the questionnaire has always named these fields: lowercased,
// question mark stripped, spaces to underscores, truncated to 30 runes.
func keyFromQuestion(question string) string {
	key := strings.ToLower(question)
	key = strings.ReplaceAll(key, "?", "")
	key = strings.ReplaceAll(key, " ", "_")
	if len(key) > 30 {
		key = key[:30]
	}
	return key
}

// firstName extracts the leading name token for personal addressing.
func firstName(fullName string) string {
	if i := strings.IndexByte(fullName, ' '); i > 0 {
		return fullName[:i]
	}
	if fullName != "" {
		return fullName
	}
	return "there"
}
