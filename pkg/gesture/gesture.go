// Package gesture provides the small set of scripted arm and posture
// gestures the workflows use: greeting waves, a welcome bow, a thank-you
// nod. A gesture is a timed sequence of single-joint commands played
// against the robot's motion interface.
package gesture

import (
	"time"
)

// Step issues one joint command and then waits.
type Step struct {
	Joint string
	Angle float64 // radians
	Speed float64 // relative joint speed in (0, 1]
	Wait  time.Duration
}

// Gesture is a named sequence of steps. When FinalPosture is set, the
// player returns the robot to that whole-body posture afterwards.
type Gesture struct {
	Name         string
	Steps        []Step
	FinalPosture string
}

// Duration returns the total scripted wait time of the gesture.
func (g Gesture) Duration() time.Duration {
	var d time.Duration
	for _, s := range g.Steps {
		d += s.Wait
	}
	return d
}

// gestureSpeed is the relative joint speed used by all scripted gestures.
const gestureSpeed = 0.2

// Wave raises the right arm and waves it twice, then lowers the arm.
// Used to greet the subject at the start of the intake.
func Wave() Gesture {
	steps := []Step{
		{Joint: "RShoulderPitch", Angle: 0.5, Speed: gestureSpeed},
		{Joint: "RShoulderRoll", Angle: -0.3, Speed: gestureSpeed},
		{Joint: "RElbowRoll", Angle: 1.0, Speed: gestureSpeed},
		{Joint: "RElbowYaw", Angle: 1.3, Speed: gestureSpeed},
		{Joint: "RWristYaw", Angle: 0.0, Speed: gestureSpeed},
		{Joint: "RHand", Angle: 0.8, Speed: gestureSpeed, Wait: 500 * time.Millisecond},
	}
	steps = append(steps, oscillateElbow(2)...)
	steps = append(steps,
		Step{Joint: "RShoulderPitch", Angle: 1.4, Speed: gestureSpeed},
		Step{Joint: "RShoulderRoll", Angle: -0.1, Speed: gestureSpeed},
	)
	return Gesture{Name: "wave", Steps: steps}
}

// GoodbyeWave is the shorter farewell wave, ending back in Stand.
func GoodbyeWave() Gesture {
	steps := []Step{
		{Joint: "RShoulderPitch", Angle: 0.5, Speed: gestureSpeed},
		{Joint: "RShoulderRoll", Angle: -0.3, Speed: gestureSpeed},
		{Joint: "RWristYaw", Angle: 0.0, Speed: gestureSpeed},
		{Joint: "RHand", Angle: 0.8, Speed: gestureSpeed},
	}
	steps = append(steps, oscillateElbow(2)...)
	return Gesture{Name: "goodbye_wave", Steps: steps, FinalPosture: "Stand"}
}

// WelcomeBow is a slight bow with open arms, used by the feedback
// collector's greeting, ending back in Stand.
func WelcomeBow() Gesture {
	return Gesture{
		Name: "welcome_bow",
		Steps: []Step{
			{Joint: "HeadPitch", Angle: 0.3, Speed: gestureSpeed},
			{Joint: "RShoulderPitch", Angle: 0.7, Speed: gestureSpeed},
			{Joint: "LShoulderPitch", Angle: 0.7, Speed: gestureSpeed},
			{Joint: "RShoulderRoll", Angle: -0.3, Speed: gestureSpeed},
			{Joint: "LShoulderRoll", Angle: 0.3, Speed: gestureSpeed, Wait: time.Second},
			{Joint: "HeadPitch", Angle: 0.0, Speed: gestureSpeed},
		},
		FinalPosture: "Stand",
	}
}

// ThankYouNod dips the head slightly.
func ThankYouNod() Gesture {
	return Gesture{
		Name: "thank_you_nod",
		Steps: []Step{
			{Joint: "HeadPitch", Angle: 0.1, Speed: gestureSpeed},
		},
	}
}

// oscillateElbow produces n open-close elbow swings for the waving hand.
func oscillateElbow(n int) []Step {
	steps := make([]Step, 0, n*2)
	for i := 0; i < n; i++ {
		steps = append(steps,
			Step{Joint: "RElbowRoll", Angle: 0.8, Speed: gestureSpeed, Wait: 400 * time.Millisecond},
			Step{Joint: "RElbowRoll", Angle: 1.0, Speed: gestureSpeed, Wait: 400 * time.Millisecond},
		)
	}
	return steps
}
