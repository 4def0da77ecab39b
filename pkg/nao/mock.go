package nao

import (
	"sync"
)

// Mock is an in-memory Device for tests and dry runs without a robot.
// It records everything spoken and every joint command, and serves scripted
// recognition results from a queue.
type Mock struct {
	mu sync.Mutex

	// Spoken holds every Say/SayAnimated text in order.
	Spoken []string

	// Joints holds every SetAngle call as "joint=angle".
	Joints []JointCommand

	// Postures holds every GoToPosture target in order.
	Postures []string

	// Vocabulary is the most recently set vocabulary.
	Vocabulary []string

	// Subscribed reports whether recognition is currently active.
	Subscribed bool

	// queue of words served by LastWord; when empty, LastWord returns
	// a zero Word (nothing recognized).
	queue []Word

	// SayErr, if set, is returned by Say and SayAnimated.
	SayErr error
}

// JointCommand records one SetAngle call.
type JointCommand struct {
	Joint string
	Angle float64
	Speed float64
}

// NewMock creates an empty mock device.
func NewMock() *Mock {
	return &Mock{}
}

// Enqueue adds a recognition result to be served by LastWord.
// Each queued word is served exactly once, then the slot reads empty again.
func (m *Mock) Enqueue(text string, confidence float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, Word{Text: text, Confidence: confidence})
}

func (m *Mock) Say(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SayErr != nil {
		return m.SayErr
	}
	m.Spoken = append(m.Spoken, text)
	return nil
}

func (m *Mock) SayAnimated(text string) error {
	return m.Say(text)
}

func (m *Mock) GoToPosture(posture string, speed float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Postures = append(m.Postures, posture)
	return nil
}

func (m *Mock) SetAngle(joint string, angle, speed float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Joints = append(m.Joints, JointCommand{Joint: joint, Angle: angle, Speed: speed})
	return nil
}

func (m *Mock) SetVocabulary(words []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Vocabulary = append([]string(nil), words...)
	return nil
}

func (m *Mock) Subscribe(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Subscribed = true
	return nil
}

func (m *Mock) Unsubscribe(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Subscribed = false
	// A stopped recognizer serves nothing until resubscribed.
	m.queue = nil
	return nil
}

// LastWord pops the next scripted word, or returns a zero Word when the
// queue is empty.
func (m *Mock) LastWord() (Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return Word{}, nil
	}
	w := m.queue[0]
	m.queue = m.queue[1:]
	return w, nil
}

// SpokenText returns a copy of everything spoken so far.
func (m *Mock) SpokenText() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Spoken...)
}

var _ Device = (*Mock)(nil)
