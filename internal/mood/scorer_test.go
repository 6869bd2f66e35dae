package mood

import (
	"testing"

	"github.com/desertthunder/moodscope/internal/models"
)

func TestScore(t *testing.T) {
	tc := []struct {
		name       string
		label      string
		confidence float64
		want       int
	}{
		{"confident joy boosted", "joy", 0.85, 9},
		{"uncertain sadness floors at one", "sadness", 0.4, 1},
		{"mid confidence leaves base untouched", "joy", 0.7, 8},
		{"happiness matches joy", "happiness", 0.7, 8},
		{"love matches joy", "love", 0.7, 8},
		{"excitement", "excitement", 0.7, 7},
		{"surprise", "surprise", 0.7, 6},
		{"neutral", "neutral", 0.7, 5},
		{"fear", "fear", 0.7, 4},
		{"anger", "anger", 0.7, 3},
		{"disgust", "disgust", 0.7, 3},
		{"sad alias", "sad", 0.7, 2},
		{"unknown label defaults to neutral", "melancholy", 0.7, 5},
		{"unknown label with high confidence", "melancholy", 0.95, 6},
		{"case insensitive label", "JOY", 0.85, 9},
		{"boundary confidence 0.8 boosts", "neutral", 0.8, 6},
		{"boundary confidence 0.6 holds", "neutral", 0.6, 5},
		{"just under 0.6 drops", "neutral", 0.59, 4},
		{"high score never exceeds ten", "joy", 1.0, 9},
		{"low score never drops below one", "sadness", 0.0, 1},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(models.EmotionResult{Label: tt.label, Confidence: tt.confidence})
			if got != tt.want {
				t.Errorf("Score(%q, %.2f) = %d, want %d", tt.label, tt.confidence, got, tt.want)
			}
		})
	}
}

func TestScoreRangeBound(t *testing.T) {
	labels := []string{"joy", "sadness", "anger", "neutral", "surprise", "made-up", ""}
	confidences := []float64{0, 0.1, 0.3, 0.59, 0.6, 0.7, 0.79, 0.8, 0.9, 1.0}

	for _, label := range labels {
		for _, c := range confidences {
			got := Score(models.EmotionResult{Label: label, Confidence: c})
			if got < MinScore || got > MaxScore {
				t.Errorf("Score(%q, %.2f) = %d, outside [%d, %d]", label, c, got, MinScore, MaxScore)
			}
		}
	}
}

func TestScoreMonotonicInConfidence(t *testing.T) {
	labels := []string{"joy", "sadness", "neutral", "unknown"}

	for _, label := range labels {
		high := Score(models.EmotionResult{Label: label, Confidence: 0.9})
		mid := Score(models.EmotionResult{Label: label, Confidence: 0.7})
		low := Score(models.EmotionResult{Label: label, Confidence: 0.3})

		if high < mid || mid < low {
			t.Errorf("scores for %q not monotonic in confidence: %d, %d, %d", label, high, mid, low)
		}
	}
}

func TestInterpret(t *testing.T) {
	tc := []struct {
		name    string
		average float64
		want    string
	}{
		{"very positive", 8.0, "Very Positive"},
		{"above very positive", 9.7, "Very Positive"},
		{"positive", 6.5, "Positive"},
		{"slightly positive", 5.5, "Slightly Positive"},
		{"neutral lower bound", 4.5, "Neutral"},
		{"neutral mid", 5.0, "Neutral"},
		{"slightly negative", 3.0, "Slightly Negative"},
		{"negative", 1.5, "Negative"},
		{"very negative", 1.0, "Very Negative"},
		{"just below positive", 6.49, "Slightly Positive"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpret(tt.average); got != tt.want {
				t.Errorf("Interpret(%.2f) = %q, want %q", tt.average, got, tt.want)
			}
		})
	}
}
