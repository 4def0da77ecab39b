package rating

import (
	"math/rand/v2"
	"testing"
)

func TestScaleParse(t *testing.T) {
	scale := Scale{Min: 1, Max: 10}

	tests := []struct {
		utterance string
		want      int
		ok        bool
	}{
		{"7", 7, true},
		{" 10 ", 10, true},
		{"seven", 7, true},
		{"Three", 3, true},
		{"0", 0, false},
		{"11", 0, false},
		{"eleven", 0, false},
		{"quite good actually", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := scale.Parse(tt.utterance)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %d, %v, want %d, %v", tt.utterance, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScaleBucket(t *testing.T) {
	scale := Scale{Min: 1, Max: 10}

	tests := []struct {
		utterance string
		want      int
		ok        bool
	}{
		{"very low", 1, true},
		{"low", 3, true},
		{"medium", 5, true},
		{"high", 8, true},
		{"very high", 10, true},
		{"it was high I think", 8, true},
		{"splendid", 0, false},
	}
	for _, tt := range tests {
		got, ok := scale.Bucket(tt.utterance)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Bucket(%q) = %d, %v, want %d, %v", tt.utterance, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScaleRandomInRange(t *testing.T) {
	scale := Scale{Min: 1, Max: 10}
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		if n := scale.Random(rng); !scale.Contains(n) {
			t.Fatalf("Random() = %d, outside [%d,%d]", n, scale.Min, scale.Max)
		}
	}
}

func TestParsePain(t *testing.T) {
	tests := []struct {
		utterance string
		want      int
		ok        bool
	}{
		{"3", 3, true},
		{"ten", 10, true},
		{"no pain at all", 0, true},
		{"none", 0, true},
		{"mild", 2, true},
		{"moderate discomfort", 5, true},
		{"severe", 8, true},
		{"worst pain possible", 10, true},
		{"15", 0, false},
		{"hard to say", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePain(tt.utterance)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePain(%q) = %d, %v, want %d, %v", tt.utterance, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSatisfaction(t *testing.T) {
	tests := []struct {
		utterance string
		want      Satisfaction
	}{
		{"very satisfied", VerySatisfied},
		{"very happy", VerySatisfied},
		{"satisfied", Satisfied},
		{"happy", Satisfied},
		{"neutral", Neutral},
		{"okay", Neutral},
		{"dissatisfied", Dissatisfied},
		{"unhappy", Dissatisfied},
		{"very dissatisfied", VeryDissatisfied},
		{"very unhappy", VeryDissatisfied},
		{"no idea", Neutral},
	}
	for _, tt := range tests {
		if got := ParseSatisfaction(tt.utterance); got != tt.want {
			t.Errorf("ParseSatisfaction(%q) = %s, want %s", tt.utterance, got, tt.want)
		}
	}
}

func TestRandomSatisfactionNeverStrongestComplaint(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 100; i++ {
		if got := RandomSatisfaction(rng); got == VeryDissatisfied {
			t.Fatal("RandomSatisfaction produced very_dissatisfied")
		}
	}
}

func TestSatisfactionSpoken(t *testing.T) {
	if got := VerySatisfied.Spoken(); got != "very satisfied" {
		t.Errorf("Spoken() = %q, want %q", got, "very satisfied")
	}
}
