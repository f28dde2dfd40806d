package evaluation

import (
	"math"
	"strings"

	"github.com/speaking-practice/backend/internal/models"
)

// minDuration keeps words-per-second finite for zero-length recordings.
const minDuration = 1e-6

// ComputeMetrics derives the speaking rate and the local fluency estimate.
func ComputeMetrics(text string, duration float64) models.SpeechMetrics {
	words := len(strings.Fields(text))
	wps := float64(words) / math.Max(duration, minDuration)
	return models.SpeechMetrics{
		WordsPerSecond: wps,
		Duration:       duration,
		Fluency:        FallbackFluency(wps),
	}
}

// FallbackFluency maps a speaking rate onto 0-100. Below 1 word/sec it rises
// linearly from 0 to 50, from 1 to 3 it runs 80 to 100, and above 3 it loses
// 20 points per extra word/sec.
func FallbackFluency(wps float64) float64 {
	var score float64
	switch {
	case wps < 1:
		score = wps * 50
	case wps <= 3:
		score = 80 + (wps-1)/2*20
	default:
		score = math.Max(0, 100-(wps-3)*20)
	}
	return math.Min(100, math.Max(0, score))
}
