package rating

import (
	"math/rand/v2"
	"strings"
)

// Satisfaction is a canonical 5-point satisfaction level.
type Satisfaction string

const (
	VeryDissatisfied Satisfaction = "very_dissatisfied"
	Dissatisfied     Satisfaction = "dissatisfied"
	Neutral          Satisfaction = "neutral"
	Satisfied        Satisfaction = "satisfied"
	VerySatisfied    Satisfaction = "very_satisfied"
)

// Spoken returns the level with underscores replaced for speech output.
func (s Satisfaction) Spoken() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// SatisfactionVocabulary is the recognizer vocabulary for satisfaction
// questions, covering both formal and colloquial phrasings.
var SatisfactionVocabulary = []string{
	"very dissatisfied", "dissatisfied", "neutral", "satisfied", "very satisfied",
	"very unhappy", "unhappy", "okay", "happy", "very happy",
}

// ParseSatisfaction maps an utterance to a canonical level by keyword
// containment. Ambiguous input defaults to Neutral. Match order matters:
// "dissatisfied" contains "satisfied" and "unhappy" contains "happy", so
// negative forms are checked first.
func ParseSatisfaction(utterance string) Satisfaction {
	text := strings.ToLower(utterance)
	switch {
	case strings.Contains(text, "very dissatisfied"), strings.Contains(text, "very unhappy"):
		return VeryDissatisfied
	case strings.Contains(text, "dissatisfied"), strings.Contains(text, "unhappy"):
		return Dissatisfied
	case strings.Contains(text, "neutral"), strings.Contains(text, "okay"):
		return Neutral
	case strings.Contains(text, "satisfied"), strings.Contains(text, "happy"):
		if strings.Contains(text, "very") {
			return VerySatisfied
		}
		return Satisfied
	default:
		return Neutral
	}
}

// randomLevels excludes VeryDissatisfied: a wholly simulated answer should
// not fabricate the strongest complaint.
var randomLevels = []Satisfaction{Dissatisfied, Neutral, Satisfied, VerySatisfied}

// RandomSatisfaction returns a simulated level for when there was no
// utterance at all.
func RandomSatisfaction(rng *rand.Rand) Satisfaction {
	return randomLevels[rng.IntN(len(randomLevels))]
}
