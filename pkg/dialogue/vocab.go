package dialogue

import (
	"strconv"

	"github.com/physiobotics/go-nao/pkg/rating"
)

// IntakeVocabulary is the general-purpose recognition vocabulary for the
// intake workflow, used whenever a question has no narrower word list.
// The on-device recognizer works best against a defined vocabulary, so this
// covers the answers the intake questions are likely to draw.
func IntakeVocabulary() []string {
	words := []string{
		"yes", "no", "maybe",
		"good", "bad", "okay", "fine",
		"pain", "hurt", "sore", "ache",
		"left", "right", "arm", "leg", "back", "neck", "shoulder", "knee", "hip",
		"daily", "weekly", "sometimes", "always", "never",
		"mild", "moderate", "severe", "extreme",
		"walk", "sit", "stand", "lift", "climb", "bend",
		"medication", "surgery", "injury", "accident",
		"doctor", "hospital", "therapy", "treatment",
		"better", "worse", "same", "improving", "worsening",
		"exercise", "stretch", "mobility", "strength",
		"morning", "afternoon", "evening", "night",
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	}
	// Digits for age, phone fragments, pain scale answers.
	for i := 1; i < 100; i++ {
		words = append(words, strconv.Itoa(i))
	}
	return words
}

// FeedbackVocabulary is the general-purpose vocabulary for the feedback
// workflow.
func FeedbackVocabulary() []string {
	words := []string{
		"yes", "no", "maybe",
		"good", "bad", "okay", "excellent", "poor", "fine",
		"helpful", "not helpful", "somewhat helpful",
		"better", "worse", "same", "much better", "slightly better",
		"comfortable", "uncomfortable", "painful", "painless",
		"professional", "friendly", "knowledgeable", "thorough",
		"satisfied", "dissatisfied", "neutral",
		"recommend", "would not recommend",
		"continue", "stop", "modify",
		"exercises", "massage", "stretching", "mobilization",
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	}
	for i := 1; i <= 10; i++ {
		words = append(words, strconv.Itoa(i))
	}
	return words
}

// coarseVocabulary backs the low/medium/high follow-up question.
var coarseVocabulary = []string{"low", "medium", "high", "very low", "very high"}

// painVocabulary backs the primary pain question: digits plus descriptors.
var painVocabulary = func() []string {
	words := make([]string, 0, 16)
	for i := 0; i <= 10; i++ {
		words = append(words, strconv.Itoa(i))
	}
	return append(words, "no pain", "mild", "moderate", "severe", "worst pain")
}()

// painDescriptorVocabulary backs the descriptive pain follow-up.
var painDescriptorVocabulary = []string{"none", "no pain", "mild", "moderate", "severe", "worst"}

// numberVocabulary builds the vocabulary for a numeric rating question:
// spoken number words plus the in-range digits.
func numberVocabulary(scale rating.Scale) []string {
	words := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	for i := scale.Min; i <= scale.Max; i++ {
		words = append(words, strconv.Itoa(i))
	}
	return words
}
