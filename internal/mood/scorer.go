package mood

import (
	"strings"

	"github.com/desertthunder/moodscope/internal/models"
)

// MinScore and MaxScore bound every mood score the scorer can produce.
const (
	MinScore = 1
	MaxScore = 10
)

// baseScores maps emotion labels to their base mood value. Labels are matched
// case-insensitively; anything unlisted falls back to a neutral 5.
var baseScores = map[string]int{
	"joy":        8,
	"happiness":  8,
	"love":       8,
	"excitement": 7,
	"surprise":   6,
	"neutral":    5,
	"fear":       4,
	"anger":      3,
	"disgust":    3,
	"sadness":    2,
	"sad":        2,
}

// Score maps an emotion classification to an integer mood score in [1, 10].
//
// The base value comes from the label table. Confidence shifts it by one step:
// at or above 0.8 the label pulls a point harder, below 0.6 it pulls a point
// softer, and in between it stands as-is. The result is clamped to the score
// bounds so no label and confidence combination escapes [1, 10].
func Score(result models.EmotionResult) int {
	base, ok := baseScores[strings.ToLower(result.Label)]
	if !ok {
		base = 5
	}

	adjustment := 0
	switch {
	case result.Confidence >= 0.8:
		adjustment = 1
	case result.Confidence < 0.6:
		adjustment = -1
	}

	return clamp(base+adjustment, MinScore, MaxScore)
}

// Interpret names the mood band an average score falls into. Bands are
// inclusive on their lower bound and the highest matching band wins.
func Interpret(average float64) string {
	switch {
	case average >= 8.0:
		return "Very Positive"
	case average >= 6.5:
		return "Positive"
	case average >= 5.5:
		return "Slightly Positive"
	case average >= 4.5:
		return "Neutral"
	case average >= 3.0:
		return "Slightly Negative"
	case average >= 1.5:
		return "Negative"
	default:
		return "Very Negative"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
