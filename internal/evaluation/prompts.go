package evaluation

import (
	"fmt"
	"strings"

	"github.com/speaking-practice/backend/internal/models"
)

// SystemPrompt sets the evaluator role for the given rubric.
func SystemPrompt(r Rubric) string {
	switch r.(type) {
	case RepetitionRubric:
		return `You are an English pronunciation and reading assistant. You compare a learner's transcribed speech with a target sentence and score it.

Rules:
- Ignore differences in capitalization and punctuation. "hello" is equal to "Hello".
- Be encouraging. Mention fluency or speed when it matters.
- Only respond with valid JSON, no additional text.`
	default:
		return `You are an English language evaluator. You score a learner's spoken response to a speaking topic.

Rules:
- Address specific errors and praise specific strengths.
- The response was transcribed from speech; do not penalize punctuation.
- Only respond with valid JSON, no additional text.`
	}
}

// BuildUserPrompt renders the scoring request for one response.
func BuildUserPrompt(req ScoreRequest) string {
	var b strings.Builder

	switch req.Rubric.(type) {
	case RepetitionRubric:
		fmt.Fprintf(&b, "The user was asked to read/repeat the specific sentence: %q\n\n", req.Reference)
		fmt.Fprintf(&b, "User's transcribed response: %q\n", req.Response)
		b.WriteString(metricsBlock(req.Metrics))
		b.WriteString("\nCompare the user's response to the target sentence.\n")
	default:
		fmt.Fprintf(&b, "Evaluate the following spoken response on the topic: %q\n\n", req.Reference)
		fmt.Fprintf(&b, "User's transcribed response: %q\n", req.Response)
	}

	b.WriteString("\nEvaluate based on:\n")
	for i, c := range req.Rubric.Criteria() {
		fmt.Fprintf(&b, "%d. %s (0-%g points).", i+1, c.Label, c.Max)
		if c.Guidance != "" {
			b.WriteString(" " + c.Guidance)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nProvide your evaluation in the following JSON format:\n{\n")
	for _, c := range req.Rubric.Criteria() {
		fmt.Fprintf(&b, "  %q: <0-%g>,\n", scoreField(c.Key), c.Max)
	}
	b.WriteString(`  "total_score": <0-100>,
  "feedback": "<constructive feedback>",
  "strengths": ["<strength1>", "<strength2>"],
  "improvements": ["<improvement1>", "<improvement2>"]
}`)
	return b.String()
}

func metricsBlock(m *models.SpeechMetrics) string {
	if m == nil {
		return "\nNo speaking-rate metrics are available; judge fluency from the text quality.\n"
	}
	return fmt.Sprintf(`
User Performance Metrics:
- Speaking Rate: %.2f words/second
- Duration: %.2f seconds
(Normal conversational pace is ~2-5 wps)
`, m.WordsPerSecond, m.Duration)
}
