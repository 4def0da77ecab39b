// Package nao provides interfaces and implementations for NAO robot control
// through the HTTP bridge running on the robot.
//
// This package follows the Interface Segregation Principle (ISP) by defining
// small, focused interfaces that can be composed as needed. Consumers should
// depend only on the interfaces they actually use.
package nao

// Word is a recognition result read from the robot's memory slot.
// The recognizer writes the most recent match as a (text, confidence) pair.
type Word struct {
	Text       string  `json:"word"`
	Confidence float64 `json:"confidence"`
}

// Speaker provides text-to-speech output.
type Speaker interface {
	// Say speaks the text without body animation.
	Say(text string) error

	// SayAnimated speaks the text with contextual gestures enabled.
	SayAnimated(text string) error
}

// PostureController provides whole-body posture control.
type PostureController interface {
	// GoToPosture moves to a named posture (e.g. "Stand") at the given
	// relative speed in (0, 1].
	GoToPosture(posture string, speed float64) error
}

// JointController provides individual joint angle control.
type JointController interface {
	// SetAngle moves a named joint to an angle (radians) at a relative speed.
	SetAngle(joint string, angle, speed float64) error
}

// Recognizer provides vocabulary-constrained speech recognition control.
// Recognition only runs between Subscribe and Unsubscribe, and only matches
// against the most recently set vocabulary.
type Recognizer interface {
	SetVocabulary(words []string) error
	Subscribe(name string) error
	Unsubscribe(name string) error
}

// WordReader reads the most recent recognition result from the robot's
// shared memory. A zero Word means nothing has been recognized yet.
type WordReader interface {
	LastWord() (Word, error)
}

// Device is the composite interface for full robot control.
// Use this when a component needs the complete device surface.
type Device interface {
	Speaker
	PostureController
	JointController
	Recognizer
	WordReader
}

// Ensure Bridge implements Device
var _ Device = (*Bridge)(nil)
