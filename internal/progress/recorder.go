package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/speaking-practice/backend/internal/models"
)

// Recorder appends one score record per answered question. It never updates or
// deletes existing records.
type Recorder struct {
	store ScoreStore
	now   func() time.Time
}

func NewRecorder(store ScoreStore) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

func (r *Recorder) Record(ctx context.Context, userID int64, sessionID, module string, questionIndex int, score, maxScore float64) error {
	rec := models.ScoreRecord{
		UserID:        userID,
		SessionID:     strings.TrimSpace(sessionID),
		Module:        module,
		QuestionIndex: questionIndex,
		Score:         score,
		MaxScore:      maxScore,
		RecordedAt:    r.now(),
	}
	if err := validateRecord(rec); err != nil {
		return err
	}

	if err := r.store.AppendScore(ctx, rec); err != nil {
		return &StoreError{Op: "append score", Err: err}
	}
	return nil
}

func validateRecord(rec models.ScoreRecord) error {
	switch {
	case rec.SessionID == "":
		return fmt.Errorf("%w: session id is required", ErrInvalidRecord)
	case rec.Module == "":
		return fmt.Errorf("%w: module is required", ErrInvalidRecord)
	case rec.QuestionIndex < 0:
		return fmt.Errorf("%w: question index %d is negative", ErrInvalidRecord, rec.QuestionIndex)
	case rec.MaxScore <= 0:
		return fmt.Errorf("%w: max score must be positive", ErrInvalidRecord)
	}
	return nil
}
