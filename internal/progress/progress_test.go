package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/speaking-practice/backend/internal/database"
	"github.com/speaking-practice/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu         sync.Mutex
	records    []models.ScoreRecord
	indices    []int
	indicesErr error
	appendErr  error
	fetchErr   error
}

func (f *fakeStore) CompletedIndices(ctx context.Context, userID int64, module string) ([]int, error) {
	return f.indices, f.indicesErr
}

func (f *fakeStore) AppendScore(ctx context.Context, rec models.ScoreRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeStore) FetchScores(ctx context.Context, userID int64, sessionID string) ([]models.ScoreRecord, error) {
	return f.records, f.fetchErr
}

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenMigrated(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestTracker_CompletedIndices(t *testing.T) {
	tracker := NewTracker(&fakeStore{indices: []int{3, 1, 3}})
	set, err := tracker.CompletedIndices(context.Background(), 1, "topic")
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.True(t, set.Contains(1))
	assert.True(t, set.Contains(3))
	assert.False(t, set.Contains(0))
}

func TestTracker_StoreFailureIsEmptySet(t *testing.T) {
	tracker := NewTracker(&fakeStore{indicesErr: errors.New("timeout")})
	set, err := tracker.CompletedIndices(context.Background(), 1, "topic")
	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.NotNil(t, set)
	assert.Empty(t, set)
}

func TestRecorder_Record(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store)
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	err := r.Record(context.Background(), 7, " s1 ", "read_aloud", 4, 82.5, 100)
	require.NoError(t, err)
	require.Len(t, store.records, 1)

	got := store.records[0]
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, 4, got.QuestionIndex)
	assert.Equal(t, 82.5, got.Score)
	assert.Equal(t, fixed, got.RecordedAt)
}

func TestRecorder_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		session string
		module  string
		index   int
		max     float64
	}{
		{"missing session", "", "topic", 0, 100},
		{"missing module", "s1", "", 0, 100},
		{"negative index", "s1", "topic", -1, 100},
		{"zero max", "s1", "topic", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			err := NewRecorder(store).Record(context.Background(), 1, tt.session, tt.module, tt.index, 10, tt.max)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.Empty(t, store.records)
		})
	}
}

func TestRecorder_StoreFailure(t *testing.T) {
	err := NewRecorder(&fakeStore{appendErr: errors.New("disk full")}).
		Record(context.Background(), 1, "s1", "topic", 0, 10, 100)
	require.Error(t, err)
	assert.True(t, IsStoreError(err))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	recorder := NewRecorder(store)

	require.NoError(t, recorder.Record(ctx, 1, "s1", "topic", 2, 80, 100))
	require.NoError(t, recorder.Record(ctx, 1, "s1", "topic", 2, 60, 100))
	require.NoError(t, recorder.Record(ctx, 1, "s1", "grammar_quiz", 5, 100, 100))
	require.NoError(t, recorder.Record(ctx, 1, "s2", "topic", 7, 40, 100))
	require.NoError(t, recorder.Record(ctx, 2, "s1", "topic", 9, 90, 100))

	// Completion spans every session but only the one user and module.
	set, err := NewTracker(store).CompletedIndices(ctx, 1, "topic")
	require.NoError(t, err)
	assert.Equal(t, CompletionSet{2: {}, 7: {}}, set)

	records, err := store.FetchScores(ctx, 1, "s1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.False(t, records[0].RecordedAt.IsZero())

	report, err := NewAggregator(store).BuildReport(ctx, 1, "s1")
	require.NoError(t, err)
	require.Len(t, report.Modules, 2)
	assert.Equal(t, "topic", report.Modules[0].Key)
	assert.InDelta(t, 70, report.Modules[0].Percentage, 1e-9)
	assert.Equal(t, "grammar_quiz", report.Modules[1].Key)
	assert.InDelta(t, 85, report.OverallScore, 1e-9)
	assert.Equal(t, 3, report.TotalQuestions)
}

func TestStore_NoRecords(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	set, err := NewTracker(store).CompletedIndices(ctx, 42, "topic")
	require.NoError(t, err)
	assert.Empty(t, set)

	report, err := NewAggregator(store).BuildReport(ctx, 42, "nope")
	require.NoError(t, err)
	assert.Equal(t, models.EmptyReport(), report)
}
