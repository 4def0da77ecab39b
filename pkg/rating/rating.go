// Package rating maps utterances to canonical scores.
//
// All normalizers are total over "maybe no utterance": parsing failures fall
// through to coarse buckets, and a random in-range value is the last resort,
// so callers always get a usable score and never an error.
package rating

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// numberWords covers the spoken forms the recognizer can produce.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// Scale is an inclusive integer rating range.
type Scale struct {
	Min, Max int
}

// Span returns the width of the scale.
func (s Scale) Span() int {
	return s.Max - s.Min
}

// Contains reports whether n is within the scale.
func (s Scale) Contains(n int) bool {
	return n >= s.Min && n <= s.Max
}

// Parse extracts an in-range integer from the utterance: either a digit
// string or a spoken number word. Returns false when nothing parses.
func (s Scale) Parse(utterance string) (int, bool) {
	text := strings.ToLower(strings.TrimSpace(utterance))
	if text == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(text); err == nil && s.Contains(n) {
		return n, true
	}
	if n, ok := numberWords[text]; ok && s.Contains(n) {
		return n, true
	}
	return 0, false
}

// Bucket maps a coarse low/medium/high answer to a point on the scale:
// min, min+span/4, midpoint, max-span/4, or max. Returns false when the
// utterance names no bucket. "very low" and "very high" are checked before
// their plain forms since containment would otherwise shadow them.
func (s Scale) Bucket(utterance string) (int, bool) {
	text := strings.ToLower(utterance)
	span := s.Span()
	switch {
	case strings.Contains(text, "very low"):
		return s.Min, true
	case strings.Contains(text, "very high"):
		return s.Max, true
	case strings.Contains(text, "low"):
		return s.Min + span/4, true
	case strings.Contains(text, "medium"):
		return s.Min + span/2, true
	case strings.Contains(text, "high"):
		return s.Max - span/4, true
	default:
		return 0, false
	}
}

// Random returns a uniform value within the scale.
func (s Scale) Random(rng *rand.Rand) int {
	return s.Min + rng.IntN(s.Span()+1)
}

// PainScale is the standard 0-10 pain rating range.
var PainScale = Scale{Min: 0, Max: 10}

// ParsePain maps a pain utterance to [0,10]: an in-range number, or a
// descriptive word (none 0, mild 2, moderate 5, severe 8, worst 10).
// Returns false when the utterance matches neither.
func ParsePain(utterance string) (int, bool) {
	if n, ok := PainScale.Parse(utterance); ok {
		return n, true
	}
	text := strings.ToLower(utterance)
	switch {
	case strings.Contains(text, "no pain"), strings.Contains(text, "none"):
		return 0, true
	case strings.Contains(text, "mild"):
		return 2, true
	case strings.Contains(text, "moderate"):
		return 5, true
	case strings.Contains(text, "severe"):
		return 8, true
	case strings.Contains(text, "worst"):
		return 10, true
	default:
		return 0, false
	}
}
