package listen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/physiobotics/go-nao/pkg/nao"
)

// subscriberName identifies our recognition subscription on the robot.
const subscriberName = "PhysioAssistant"

// PollSource reads the recognition memory slot on a fixed interval.
// This is the compatibility path for bridges without event push: the slot
// holds the latest (word, confidence) pair and is sampled every interval.
type PollSource struct {
	recognizer nao.Recognizer
	reader     nao.WordReader
	interval   time.Duration
}

// NewPollSource creates a polling source. A zero interval means
// DefaultPollInterval.
func NewPollSource(recognizer nao.Recognizer, reader nao.WordReader, interval time.Duration) *PollSource {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollSource{
		recognizer: recognizer,
		reader:     reader,
		interval:   interval,
	}
}

// Listen activates the vocabulary, subscribes the recognizer, and polls the
// slot until the context ends or stop is called.
func (p *PollSource) Listen(ctx context.Context, vocabulary []string) (<-chan Sample, func(), error) {
	if err := p.recognizer.SetVocabulary(vocabulary); err != nil {
		return nil, nil, fmt.Errorf("set vocabulary: %w", err)
	}
	if err := p.recognizer.Subscribe(subscriberName); err != nil {
		return nil, nil, fmt.Errorf("subscribe recognizer: %w", err)
	}

	out := make(chan Sample, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				w, err := p.reader.LastWord()
				if err != nil {
					// A failed read is equivalent to an empty slot.
					continue
				}
				if w.Text == "" {
					continue
				}
				select {
				case out <- Sample{Word: w.Text, Confidence: w.Confidence}:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			if err := p.recognizer.Unsubscribe(subscriberName); err != nil {
				// The next Subscribe re-arms the recognizer regardless.
				_ = err
			}
		})
	}
	return out, stop, nil
}

// StreamSource forwards recognition events pushed over the bridge websocket.
// The first qualifying event wins, with no polling delay.
type StreamSource struct {
	recognizer nao.Recognizer
	stream     *nao.WordStream
}

// NewStreamSource creates a source reading from a connected WordStream.
func NewStreamSource(recognizer nao.Recognizer, stream *nao.WordStream) *StreamSource {
	return &StreamSource{recognizer: recognizer, stream: stream}
}

// Listen activates the vocabulary and forwards pushed events until the
// context ends or stop is called.
func (s *StreamSource) Listen(ctx context.Context, vocabulary []string) (<-chan Sample, func(), error) {
	if err := s.recognizer.SetVocabulary(vocabulary); err != nil {
		return nil, nil, fmt.Errorf("set vocabulary: %w", err)
	}
	if err := s.recognizer.Subscribe(subscriberName); err != nil {
		return nil, nil, fmt.Errorf("subscribe recognizer: %w", err)
	}

	out := make(chan Sample, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case w, ok := <-s.stream.Words():
				if !ok {
					return
				}
				select {
				case out <- Sample{Word: w.Text, Confidence: w.Confidence}:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = s.recognizer.Unsubscribe(subscriberName)
		})
	}
	return out, stop, nil
}
