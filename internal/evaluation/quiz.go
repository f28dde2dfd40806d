package evaluation

import (
	"context"
	"math"
	"strings"

	"github.com/speaking-practice/backend/internal/catalog"
	"github.com/speaking-practice/backend/internal/models"
)

const (
	unknownQuestion = "Unknown Question"
	unknownAnswer   = "N/A"
	noAnswer        = "(no answer)"
)

// QuizMatcher grades quiz answers by exact match after trimming and
// lowercasing. There is no partial credit.
type QuizMatcher struct {
	module *catalog.Module
}

func NewQuizMatcher(module *catalog.Module) *QuizMatcher {
	return &QuizMatcher{module: module}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match reports whether answer equals expected after normalization.
func Match(answer, expected string) bool {
	return normalize(answer) == normalize(expected)
}

// Evaluate scores a single answer against its reference: 100 or 0.
func (q *QuizMatcher) Evaluate(ctx context.Context, sub Submission) models.EvaluationResult {
	result := models.EvaluationResult{
		ComponentScores: map[string]float64{},
		Strengths:       []string{},
		Improvements:    []string{},
	}
	if Match(sub.Response, sub.Reference) {
		result.TotalScore = 100
		result.Feedback = "Correct."
	} else {
		result.Feedback = "The correct answer is " + strings.TrimSpace(sub.Reference) + "."
	}
	return result
}

// Grade checks a whole submission. Question numbers follow submission order;
// ids outside the catalog produce a review row marked incorrect.
func (q *QuizMatcher) Grade(answers []models.QuizAnswer) models.QuizSummary {
	summary := models.QuizSummary{
		Total:  len(answers),
		Review: make([]models.QuizSubmissionResult, 0, len(answers)),
	}

	for i, a := range answers {
		idx := -1
		if a.ID != nil {
			idx = *a.ID
		}
		userAnswer := normalize(a.Answer)

		item, err := q.module.QuizItem(idx)
		if err != nil {
			summary.Review = append(summary.Review, models.QuizSubmissionResult{
				QuestionNumber: i + 1,
				QuestionIndex:  idx,
				Sentence:       unknownQuestion,
				UserAnswer:     userAnswer,
				CorrectAnswer:  unknownAnswer,
			})
			continue
		}

		correct := Match(userAnswer, item.Answer)
		if correct {
			summary.CorrectCount++
		}
		if userAnswer == "" {
			userAnswer = noAnswer
		}
		summary.Review = append(summary.Review, models.QuizSubmissionResult{
			QuestionNumber: i + 1,
			QuestionIndex:  idx,
			Sentence:       item.Prompt,
			UserAnswer:     userAnswer,
			CorrectAnswer:  item.Answer,
			IsCorrect:      correct,
		})
	}

	if summary.Total > 0 {
		pct := float64(summary.CorrectCount) / float64(summary.Total) * 100
		summary.Percentage = math.Round(pct*10) / 10
	}
	return summary
}
