// Package listen implements timeout-bounded speech acquisition with fallback.
//
// An Acquirer produces an answer for every question, no matter what: it waits
// for the first qualifying recognition result, retries once with a narrowed
// yes/no vocabulary, and finally substitutes a deterministic simulated answer
// keyed by the field being asked. Callers never see an error from Acquire.
package listen

import (
	"context"
	"log/slog"
	"time"
)

// Defaults for the acquisition loop.
const (
	// DefaultThreshold is the minimum confidence for a result to qualify.
	DefaultThreshold = 0.4

	// DefaultPollInterval is how often PollSource samples the memory slot.
	DefaultPollInterval = 200 * time.Millisecond

	// DefaultTimeout bounds the primary listen attempt.
	DefaultTimeout = 8 * time.Second

	// RelaxedTimeout bounds the simplified yes/no retry.
	RelaxedTimeout = 5 * time.Second
)

// relaxedVocabulary is the narrowed vocabulary for the second attempt.
var relaxedVocabulary = []string{"yes", "no"}

// Sample is one recognition result observed while listening.
type Sample struct {
	Word       string
	Confidence float64
}

// Source activates a vocabulary and yields recognition samples.
// The returned stop function releases the recognizer; it must be called
// exactly once. Samples below the confidence threshold are still delivered,
// filtering is the Acquirer's job.
type Source interface {
	Listen(ctx context.Context, vocabulary []string) (<-chan Sample, func(), error)
}

// Origin records how an answer was obtained.
type Origin int

const (
	// Recognized means the primary attempt matched a word.
	Recognized Origin = iota

	// Relaxed means the narrowed yes/no retry matched.
	Relaxed

	// Simulated means both attempts produced nothing and the answer came
	// from the fallback table.
	Simulated
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case Recognized:
		return "recognized"
	case Relaxed:
		return "relaxed"
	case Simulated:
		return "simulated"
	default:
		return "unknown"
	}
}

// Answer is the result of an acquisition. Text is never empty.
type Answer struct {
	Text   string
	Origin Origin
}

// Request describes one acquisition.
type Request struct {
	// Field selects the simulated fallback answer.
	Field Field

	// Vocabulary constrains recognition. When nil, the Acquirer's base
	// vocabulary is used.
	Vocabulary []string

	// Timeout bounds the primary attempt. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Speaker lets the Acquirer announce the simplified retry, the way the
// robot does between attempts. Optional.
type Speaker interface {
	Say(text string) error
}

// Acquirer orchestrates the listen-retry-simulate sequence.
type Acquirer struct {
	source    Source
	table     Table
	base      []string
	threshold float64
	relaxed   time.Duration
	speaker   Speaker
	logger    *slog.Logger
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithBaseVocabulary sets the vocabulary used when a Request has none.
func WithBaseVocabulary(words []string) Option {
	return func(a *Acquirer) { a.base = words }
}

// WithThreshold overrides the confidence threshold.
func WithThreshold(t float64) Option {
	return func(a *Acquirer) { a.threshold = t }
}

// WithRelaxedTimeout overrides the yes/no retry window.
func WithRelaxedTimeout(d time.Duration) Option {
	return func(a *Acquirer) { a.relaxed = d }
}

// WithSpeaker makes the Acquirer announce the simplified retry.
func WithSpeaker(s Speaker) Option {
	return func(a *Acquirer) { a.speaker = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Acquirer) { a.logger = l }
}

// New creates an Acquirer reading from source and falling back to table.
func New(source Source, table Table, opts ...Option) *Acquirer {
	a := &Acquirer{
		source:    source,
		table:     table,
		threshold: DefaultThreshold,
		relaxed:   RelaxedTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "listen")
	return a
}

// Acquire obtains an answer for the request. It always returns a non-empty
// answer: a recognized word, a relaxed yes/no, or the simulated fallback.
// The outer context can cancel the whole sequence early; even then the
// simulated answer is returned rather than an error.
func (a *Acquirer) Acquire(ctx context.Context, req Request) Answer {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	vocab := req.Vocabulary
	if vocab == nil {
		vocab = a.base
	}

	a.announce("I'm listening...")
	if word, ok := a.wait(ctx, vocab, timeout); ok {
		a.logger.Debug("recognized", "field", req.Field, "word", word)
		return Answer{Text: word, Origin: Recognized}
	}

	// A timed-out attempt and a never-qualified attempt land here alike;
	// the caller cannot tell them apart, matching the original behavior.
	if ctx.Err() == nil {
		a.announce("I didn't catch that. Let's try a simpler approach.")
		a.announce("Can you answer with just yes or no?")
		if word, ok := a.wait(ctx, relaxedVocabulary, a.relaxed); ok {
			a.logger.Debug("recognized on relaxed retry", "field", req.Field, "word", word)
			return Answer{Text: word, Origin: Relaxed}
		}
	}

	text := a.table.Answer(req.Field)
	a.logger.Info("no response, using simulated answer", "field", req.Field, "answer", text)
	return Answer{Text: text, Origin: Simulated}
}

// wait listens until the first qualifying sample or the timeout.
// Low-confidence and empty samples are skipped, not treated as errors.
func (a *Acquirer) wait(ctx context.Context, vocab []string, timeout time.Duration) (string, bool) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	samples, stop, err := a.source.Listen(waitCtx, vocab)
	if err != nil {
		a.logger.Warn("recognizer unavailable", "error", err)
		return "", false
	}
	defer stop()

	for {
		select {
		case s, ok := <-samples:
			if !ok {
				return "", false
			}
			if s.Word != "" && s.Confidence > a.threshold {
				return s.Word, true
			}
		case <-waitCtx.Done():
			return "", false
		}
	}
}

// announce speaks through the configured speaker, if any.
func (a *Acquirer) announce(text string) {
	if a.speaker == nil {
		return
	}
	if err := a.speaker.Say(text); err != nil {
		a.logger.Warn("retry announcement failed", "error", err)
	}
}
