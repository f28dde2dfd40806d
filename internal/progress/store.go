package progress

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/speaking-practice/backend/internal/models"
)

// ScoreStore is the narrow storage contract the tracker, recorder and report
// aggregator depend on.
type ScoreStore interface {
	CompletedIndices(ctx context.Context, userID int64, module string) ([]int, error)
	AppendScore(ctx context.Context, rec models.ScoreRecord) error
	FetchScores(ctx context.Context, userID int64, sessionID string) ([]models.ScoreRecord, error)
}

// Store implements ScoreStore with plain SQL. Queries use numbered
// placeholders, which both postgres and sqlite accept.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Completion ──────────────────────────────────────────

func (s *Store) CompletedIndices(ctx context.Context, userID int64, module string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT question_index FROM user_performance
		 WHERE user_id = $1 AND module = $2
		 ORDER BY question_index`,
		userID, module,
	)
	if err != nil {
		return nil, fmt.Errorf("query completed indices: %w", err)
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, fmt.Errorf("scan completed index: %w", err)
		}
		indices = append(indices, idx)
	}
	return indices, rows.Err()
}

// ── Score Records ───────────────────────────────────────

func (s *Store) AppendScore(ctx context.Context, rec models.ScoreRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_performance
		 (user_id, session_id, module, question_index, score, max_score, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.UserID, rec.SessionID, rec.Module, rec.QuestionIndex,
		rec.Score, rec.MaxScore, rec.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *Store) FetchScores(ctx context.Context, userID int64, sessionID string) ([]models.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, session_id, module, question_index, score, max_score, recorded_at
		 FROM user_performance
		 WHERE user_id = $1 AND session_id = $2
		 ORDER BY recorded_at, id`,
		userID, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var r models.ScoreRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.SessionID, &r.Module,
			&r.QuestionIndex, &r.Score, &r.MaxScore, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
