// Package practice orchestrates one exercise round trip: pick an unseen item,
// score the learner's response, record the score and report on the session.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/speaking-practice/backend/internal/auth"
	"github.com/speaking-practice/backend/internal/catalog"
	"github.com/speaking-practice/backend/internal/evaluation"
	"github.com/speaking-practice/backend/internal/models"
	"github.com/speaking-practice/backend/internal/progress"
	"github.com/speaking-practice/backend/internal/selection"
)

const (
	maxQuizSize = 50
	// Every stored score is on a 0-100 scale.
	maxScore = 100
)

// Users resolves the authenticated user; auth.Store satisfies it.
type Users interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Synthesizer produces the audio URL for a listen-and-repeat item.
type Synthesizer interface {
	Synthesize(ctx context.Context, index int) (string, error)
}

type Config struct {
	QuizSize    int
	EvalTimeout time.Duration
}

type Service struct {
	users      Users
	tracker    *progress.Tracker
	recorder   *progress.Recorder
	aggregator *progress.Aggregator
	selector   *selection.Selector
	evaluators map[catalog.ModuleKey]evaluation.Evaluator
	quiz       *evaluation.QuizMatcher
	synth      Synthesizer
	validate   *validator.Validate
	quizSize   int
	logger     *slog.Logger
}

func NewService(users Users, scores progress.ScoreStore, scorer evaluation.Scorer, selector *selection.Selector, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if selector == nil {
		selector = selection.NewDefault()
	}
	if cfg.QuizSize <= 0 {
		cfg.QuizSize = 5
	}

	repetition := evaluation.NewRubricEvaluator(evaluation.RepetitionRubric{}, scorer, cfg.EvalTimeout, logger)
	quiz := evaluation.NewQuizMatcher(catalog.MustLookup(catalog.GrammarQuiz))

	return &Service{
		users:      users,
		tracker:    progress.NewTracker(scores),
		recorder:   progress.NewRecorder(scores),
		aggregator: progress.NewAggregator(scores),
		selector:   selector,
		evaluators: map[catalog.ModuleKey]evaluation.Evaluator{
			catalog.ReadAloud:    repetition,
			catalog.ListenRepeat: repetition,
			catalog.Topic:        evaluation.NewRubricEvaluator(evaluation.TopicRubric{}, scorer, cfg.EvalTimeout, logger),
			catalog.GrammarQuiz:  quiz,
		},
		quiz:     quiz,
		validate: newValidator(),
		quizSize: cfg.QuizSize,
		logger:   logger,
	}
}

// SetSynthesizer enables audio for modules that play their items aloud.
func (s *Service) SetSynthesizer(synth Synthesizer) {
	s.synth = synth
}

func (s *Service) ensureUser(ctx context.Context, userID int64) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, auth.ErrUserNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}
	return nil
}

func lookupModule(key string) (*catalog.Module, error) {
	m, err := catalog.Lookup(key)
	if err != nil {
		return nil, fmt.Errorf("%w: module %q", ErrNotFound, key)
	}
	return m, nil
}

// completed never fails: a store error is logged and treated as no history.
func (s *Service) completed(ctx context.Context, userID int64, module catalog.ModuleKey) progress.CompletionSet {
	set, err := s.tracker.CompletedIndices(ctx, userID, string(module))
	if err != nil {
		s.logger.Warn("completion lookup failed, selecting from full catalog",
			"user_id", userID, "module", module, "error", err)
	}
	return set
}

func (s *Service) record(ctx context.Context, userID int64, sessionID string, module catalog.ModuleKey, index int, score float64) bool {
	if err := s.recorder.Record(ctx, userID, sessionID, string(module), index, score, maxScore); err != nil {
		s.logger.Warn("score not recorded",
			"user_id", userID, "session_id", sessionID, "module", module, "question_index", index, "error", err)
		return false
	}
	return true
}

// ── Content ─────────────────────────────────────────────

// Modules lists every module in display order.
func (s *Service) Modules() []models.ModuleInfo {
	mods := catalog.All()
	out := make([]models.ModuleInfo, 0, len(mods))
	for _, m := range mods {
		out = append(out, models.ModuleInfo{
			Key:      string(m.Key),
			Name:     m.Name,
			Strategy: string(m.Strategy),
			Size:     m.Size(),
			HasAudio: m.HasAudio,
		})
	}
	return out
}

// NextItem picks an item the user has not answered yet, or any item once the
// whole module has been completed.
func (s *Service) NextItem(ctx context.Context, userID int64, moduleKey string) (*models.ItemResponse, error) {
	module, err := lookupModule(moduleKey)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	idx, err := s.selector.Select(module.Size(), s.completed(ctx, userID, module.Key))
	if err != nil {
		return nil, fmt.Errorf("select %s item: %w", module.Key, err)
	}
	item, err := module.Item(idx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	resp := &models.ItemResponse{Module: string(module.Key), ItemID: item.Index, Text: item.Text}
	if module.HasAudio && s.synth != nil {
		url, err := s.synth.Synthesize(ctx, item.Index)
		if err != nil {
			s.logger.Warn("audio synthesis failed", "module", module.Key, "index", item.Index, "error", err)
		} else {
			resp.AudioURL = &url
		}
	}
	return resp, nil
}

// NewQuiz samples count distinct unseen quiz items. A count of zero uses the
// configured quiz size.
func (s *Service) NewQuiz(ctx context.Context, userID int64, count int) (*models.QuizResponse, error) {
	if count == 0 {
		count = s.quizSize
	}
	if count < 0 || count > maxQuizSize {
		return nil, invalid("count", "must be between 1 and %d", maxQuizSize)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	module := catalog.MustLookup(catalog.GrammarQuiz)
	indices, err := s.selector.SelectN(module.Size(), s.completed(ctx, userID, module.Key), count)
	if err != nil {
		return nil, fmt.Errorf("select quiz items: %w", err)
	}

	questions := make([]models.QuizQuestion, 0, len(indices))
	for i, idx := range indices {
		q, err := module.QuizItem(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		questions = append(questions, models.QuizQuestion{
			ID:       q.Index,
			Number:   i + 1,
			Sentence: q.Prompt,
			Category: q.Category,
		})
	}

	return &models.QuizResponse{
		QuizID:         uuid.NewString(),
		Questions:      questions,
		TotalQuestions: len(questions),
	}, nil
}

// ── Submissions ─────────────────────────────────────────

// SubmitSpeech scores a transcribed speech response. Evaluation problems come
// back inside the result; only bad input, unknown users and unknown items fail.
func (s *Service) SubmitSpeech(ctx context.Context, userID int64, moduleKey string, sub models.SpeechSubmission) (*models.SpeechResult, error) {
	module, err := lookupModule(moduleKey)
	if err != nil {
		return nil, err
	}
	if module.Strategy != catalog.StrategyRubric {
		return nil, invalid("module", "%s takes quiz submissions", module.Key)
	}
	sub.SessionID = strings.TrimSpace(sub.SessionID)
	if sub.SessionID == "" {
		return nil, invalid("session_id", "is required")
	}
	if err := s.validate.Struct(sub); err != nil {
		return nil, fromValidator(err)
	}
	item, err := module.Item(*sub.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	result := s.evaluators[module.Key].Evaluate(ctx, evaluation.Submission{
		Response:  sub.TranscribedText,
		Reference: item.Text,
		Duration:  sub.Duration,
	})
	if result.Failed() {
		s.logger.Warn("speech evaluation degraded",
			"user_id", userID, "session_id", sub.SessionID, "module", module.Key, "error", *result.Error)
	}

	// Degraded results are recorded too: the item was attempted and should
	// not be served again before the rest of the module.
	recorded := s.record(ctx, userID, sub.SessionID, module.Key, item.Index, result.TotalScore)

	return &models.SpeechResult{
		Module:          string(module.Key),
		ItemID:          item.Index,
		Reference:       item.Text,
		Transcription:   sub.TranscribedText,
		Score:           result.TotalScore,
		ComponentScores: result.ComponentScores,
		Metrics:         result.Metrics,
		Feedback:        result.Feedback,
		Strengths:       result.Strengths,
		Improvements:    result.Improvements,
		Recorded:        recorded,
		Error:           result.Error,
	}, nil
}

// SubmitQuiz grades the answers and records 100 or 0 for every answer whose
// id exists in the catalog.
func (s *Service) SubmitQuiz(ctx context.Context, userID int64, sub models.QuizSubmission) (*models.QuizResult, error) {
	sub.SessionID = strings.TrimSpace(sub.SessionID)
	if sub.SessionID == "" {
		return nil, invalid("session_id", "is required")
	}
	if err := s.validate.Struct(sub); err != nil {
		return nil, fromValidator(err)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	summary := s.quiz.Grade(sub.Answers)
	result := &models.QuizResult{QuizSummary: summary}

	module := catalog.MustLookup(catalog.GrammarQuiz)
	for _, row := range summary.Review {
		if row.QuestionIndex < 0 || row.QuestionIndex >= module.Size() {
			continue
		}
		var score float64
		if row.IsCorrect {
			score = maxScore
		}
		if s.record(ctx, userID, sub.SessionID, module.Key, row.QuestionIndex, score) {
			result.Recorded++
		}
	}
	return result, nil
}

// ── Reports ─────────────────────────────────────────────

// Report never fails on store errors; the learner gets an empty report.
func (s *Service) Report(ctx context.Context, userID int64, sessionID string) (*models.SessionReport, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, invalid("session_id", "is required")
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	report, err := s.aggregator.BuildReport(ctx, userID, sessionID)
	if err != nil {
		s.logger.Warn("report degraded to empty",
			"user_id", userID, "session_id", sessionID, "error", err)
	}
	return &report, nil
}
