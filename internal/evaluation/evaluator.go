// Package evaluation turns a learner response into a normalized score. Quiz
// answers are matched exactly; speech is scored against a rubric by an
// external collaborator and degrades to a zero score instead of failing.
package evaluation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/speaking-practice/backend/internal/llm"
	"github.com/speaking-practice/backend/internal/models"
)

const (
	feedbackUnavailable = "AI evaluation unavailable."
	feedbackFailed      = "Could not generate AI feedback at this time."

	DefaultTimeout = 30 * time.Second
)

// Submission is one learner response to one catalog item. Duration is the
// recording length in seconds, nil when the client did not send it.
type Submission struct {
	Response  string
	Reference string
	Duration  *float64
}

// Evaluator never fails: problems come back as a result with Error set.
type Evaluator interface {
	Evaluate(ctx context.Context, sub Submission) models.EvaluationResult
}

// ScoreRequest is what the rubric collaborator receives.
type ScoreRequest struct {
	Response  string
	Reference string
	Rubric    Rubric
	Metrics   *models.SpeechMetrics
}

// RubricScore is the collaborator's answer. Components are keyed by criterion
// key and are in rubric points; Total is nil when the collaborator omitted it.
type RubricScore struct {
	Components   map[string]float64
	Total        *float64
	Feedback     string
	Strengths    []string
	Improvements []string
}

// Scorer is the external rubric collaborator.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (*RubricScore, error)
}

// RubricEvaluator scores speech through a Scorer under a bounded timeout.
type RubricEvaluator struct {
	rubric  Rubric
	scorer  Scorer
	timeout time.Duration
	logger  *slog.Logger
}

func NewRubricEvaluator(rubric Rubric, scorer Scorer, timeout time.Duration, logger *slog.Logger) *RubricEvaluator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RubricEvaluator{rubric: rubric, scorer: scorer, timeout: timeout, logger: logger}
}

func (e *RubricEvaluator) Rubric() Rubric {
	return e.rubric
}

func (e *RubricEvaluator) Evaluate(ctx context.Context, sub Submission) models.EvaluationResult {
	var metrics *models.SpeechMetrics
	if sub.Duration != nil {
		m := ComputeMetrics(sub.Response, *sub.Duration)
		metrics = &m
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	score, err := e.scorer.Score(ctx, ScoreRequest{
		Response:  sub.Response,
		Reference: sub.Reference,
		Rubric:    e.rubric,
		Metrics:   metrics,
	})
	if err != nil {
		e.logger.Warn("rubric evaluation degraded", "mode", e.rubric.Mode(), "error", err)
		return degraded(err, metrics)
	}

	return e.normalize(score, metrics)
}

// normalize clamps components to their criterion maxima, fills a missing
// total from the components and puts fluency on the 0-100 scale.
func (e *RubricEvaluator) normalize(score *RubricScore, metrics *models.SpeechMetrics) models.EvaluationResult {
	components := make(map[string]float64, len(score.Components))
	var sum float64
	for _, c := range e.rubric.Criteria() {
		v, ok := score.Components[c.Key]
		if !ok {
			continue
		}
		v = clamp(v, 0, c.Max)
		components[c.Key] = v
		sum += v
	}

	total := sum
	if score.Total != nil {
		total = clamp(*score.Total, 0, 100)
	}

	if metrics != nil {
		if c, ok := criterion(e.rubric, "fluency"); ok {
			if v, ok := components["fluency"]; ok {
				metrics.Fluency = math.Round(v/c.Max*1000) / 10
			}
		}
	}

	return models.EvaluationResult{
		TotalScore:      total,
		ComponentScores: components,
		Feedback:        score.Feedback,
		Strengths:       nonNil(score.Strengths),
		Improvements:    nonNil(score.Improvements),
		Metrics:         metrics,
	}
}

func degraded(err error, metrics *models.SpeechMetrics) models.EvaluationResult {
	msg := err.Error()
	feedback := feedbackFailed
	if errors.Is(err, llm.ErrNotConfigured) {
		feedback = feedbackUnavailable
	}
	return models.EvaluationResult{
		TotalScore:      0,
		ComponentScores: map[string]float64{},
		Feedback:        feedback,
		Strengths:       []string{},
		Improvements:    []string{},
		Metrics:         metrics,
		Error:           &msg,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
