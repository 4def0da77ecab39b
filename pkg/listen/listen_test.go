package listen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/physiobotics/go-nao/pkg/nao"
)

// scriptedSource replays one batch of samples per Listen call. The sample
// channel is closed after the batch so tests never wait out a real timeout.
type scriptedSource struct {
	batches      [][]Sample
	vocabularies [][]string
	err          error
	call         int
}

func (s *scriptedSource) Listen(ctx context.Context, vocabulary []string) (<-chan Sample, func(), error) {
	s.vocabularies = append(s.vocabularies, vocabulary)
	if s.err != nil {
		return nil, nil, s.err
	}
	var batch []Sample
	if s.call < len(s.batches) {
		batch = s.batches[s.call]
	}
	s.call++

	out := make(chan Sample, len(batch)+1)
	for _, sample := range batch {
		out <- sample
	}
	close(out)
	return out, func() {}, nil
}

type sayRecorder struct {
	said []string
}

func (r *sayRecorder) Say(text string) error {
	r.said = append(r.said, text)
	return nil
}

func TestAcquireRecognized(t *testing.T) {
	source := &scriptedSource{batches: [][]Sample{
		{{Word: "lower back", Confidence: 0.8}},
	}}
	a := New(source, IntakeFallbacks())

	ans := a.Acquire(context.Background(), Request{Field: FieldPainLocation, Vocabulary: []string{"lower back"}})
	if ans.Text != "lower back" || ans.Origin != Recognized {
		t.Fatalf("Acquire = %+v, want recognized %q", ans, "lower back")
	}
	if len(source.vocabularies) != 1 {
		t.Fatalf("Listen called %d times, want 1", len(source.vocabularies))
	}
}

func TestAcquireSkipsLowConfidence(t *testing.T) {
	source := &scriptedSource{batches: [][]Sample{
		{
			{Word: "mumble", Confidence: 0.1},
			{Word: "", Confidence: 0.9},
			{Word: "yes", Confidence: 0.7},
		},
	}}
	a := New(source, IntakeFallbacks())

	ans := a.Acquire(context.Background(), Request{Field: FieldConsent})
	if ans.Text != "yes" || ans.Origin != Recognized {
		t.Fatalf("Acquire = %+v, want recognized %q", ans, "yes")
	}
}

func TestAcquireRelaxedRetry(t *testing.T) {
	source := &scriptedSource{batches: [][]Sample{
		nil,
		{{Word: "yes", Confidence: 0.6}},
	}}
	speaker := &sayRecorder{}
	a := New(source, IntakeFallbacks(), WithSpeaker(speaker))

	ans := a.Acquire(context.Background(), Request{Field: FieldConsent, Timeout: 50 * time.Millisecond})
	if ans.Text != "yes" || ans.Origin != Relaxed {
		t.Fatalf("Acquire = %+v, want relaxed %q", ans, "yes")
	}

	if len(source.vocabularies) != 2 {
		t.Fatalf("Listen called %d times, want 2", len(source.vocabularies))
	}
	relaxed := source.vocabularies[1]
	if len(relaxed) != 2 || relaxed[0] != "yes" || relaxed[1] != "no" {
		t.Errorf("relaxed vocabulary = %v, want [yes no]", relaxed)
	}

	var announced bool
	for _, text := range speaker.said {
		if text == "Can you answer with just yes or no?" {
			announced = true
		}
	}
	if !announced {
		t.Errorf("simplified retry was not announced, said %v", speaker.said)
	}
}

func TestAcquireSimulated(t *testing.T) {
	source := &scriptedSource{}
	a := New(source, IntakeFallbacks(), WithRelaxedTimeout(50*time.Millisecond))

	ans := a.Acquire(context.Background(), Request{Field: FieldAge, Timeout: 50 * time.Millisecond})
	if ans.Origin != Simulated {
		t.Fatalf("Acquire origin = %s, want simulated", ans.Origin)
	}
	if ans.Text != "45" {
		t.Errorf("simulated answer = %q, want %q", ans.Text, "45")
	}
}

func TestAcquireSourceErrorFallsBack(t *testing.T) {
	source := &scriptedSource{err: errors.New("recognizer down")}
	a := New(source, FeedbackFallbacks())

	ans := a.Acquire(context.Background(), Request{Field: FieldOverall})
	if ans.Origin != Simulated || ans.Text == "" {
		t.Fatalf("Acquire = %+v, want non-empty simulated answer", ans)
	}
}

func TestAcquireCanceledContextSkipsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &scriptedSource{}
	a := New(source, IntakeFallbacks())

	ans := a.Acquire(ctx, Request{Field: FieldName})
	if ans.Origin != Simulated {
		t.Fatalf("Acquire origin = %s, want simulated", ans.Origin)
	}
	if len(source.vocabularies) != 1 {
		t.Errorf("Listen called %d times after cancel, want 1", len(source.vocabularies))
	}
}

func TestTableAnswerDefaults(t *testing.T) {
	table := IntakeFallbacks()
	if got := table.Answer(FieldConditions); got != "Lower back pain for 3 months, mild hypertension" {
		t.Errorf("Answer(conditions) = %q", got)
	}
	// A field with no entry falls back to the table's default field.
	if got := table.Answer(FieldUnknown); got != "John Smith" {
		t.Errorf("Answer(unknown) = %q, want default name answer", got)
	}

	empty := Table{}
	if got := empty.Answer(FieldConsent); got != "Yes" {
		t.Errorf("empty table Answer = %q, want %q", got, "Yes")
	}
}

func TestPollSourceDeliversAndUnsubscribes(t *testing.T) {
	device := nao.NewMock()
	device.Enqueue("seven", 0.9)

	source := NewPollSource(device, device, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	samples, stop, err := source.Listen(ctx, []string{"seven"})
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	select {
	case s := <-samples:
		if s.Word != "seven" || s.Confidence != 0.9 {
			t.Errorf("sample = %+v", s)
		}
	case <-ctx.Done():
		t.Fatal("no sample before deadline")
	}

	stop()
	stop() // idempotent
	if device.Subscribed {
		t.Error("recognizer still subscribed after stop")
	}
}

func TestPollSourceVocabularyActivated(t *testing.T) {
	device := nao.NewMock()
	source := NewPollSource(device, device, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, stop, err := source.Listen(ctx, []string{"yes", "no"})
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer stop()

	if len(device.Vocabulary) != 2 || device.Vocabulary[0] != "yes" {
		t.Errorf("vocabulary = %v, want [yes no]", device.Vocabulary)
	}
	if !device.Subscribed {
		t.Error("recognizer not subscribed")
	}
}
