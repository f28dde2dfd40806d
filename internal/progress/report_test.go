package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/speaking-practice/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(module string, score, max float64) models.ScoreRecord {
	return models.ScoreRecord{UserID: 1, SessionID: "s1", Module: module, Score: score, MaxScore: max}
}

func TestSummarize_ReportMath(t *testing.T) {
	report := Summarize([]models.ScoreRecord{
		rec("A", 80, 100),
		rec("A", 60, 100),
		rec("B", 100, 100),
	})

	require.Len(t, report.Modules, 2)

	a := report.Modules[0]
	assert.Equal(t, "A", a.Key)
	assert.InDelta(t, 70, a.AverageScore, 1e-9)
	assert.InDelta(t, 70, a.Percentage, 1e-9)
	assert.Equal(t, 2, a.QuestionsCompleted)

	b := report.Modules[1]
	assert.Equal(t, "B", b.Key)
	assert.InDelta(t, 100, b.Percentage, 1e-9)
	assert.Equal(t, 1, b.QuestionsCompleted)

	assert.InDelta(t, 85, report.OverallScore, 1e-9)
	assert.Equal(t, 3, report.TotalQuestions)
}

func TestSummarize_Empty(t *testing.T) {
	report := Summarize(nil)
	assert.Empty(t, report.Modules)
	assert.NotNil(t, report.Modules)
	assert.Zero(t, report.OverallScore)
	assert.Zero(t, report.TotalQuestions)
}

func TestSummarize_UnweightedOverall(t *testing.T) {
	// Ten perfect quiz answers and one zero read-aloud still average to 50.
	var records []models.ScoreRecord
	for i := 0; i < 10; i++ {
		records = append(records, rec("grammar_quiz", 100, 100))
	}
	records = append(records, rec("read_aloud", 0, 100))

	report := Summarize(records)
	assert.InDelta(t, 50, report.OverallScore, 1e-9)
	assert.Equal(t, 11, report.TotalQuestions)
}

func TestSummarize_OrderAndNames(t *testing.T) {
	report := Summarize([]models.ScoreRecord{
		rec("zz_legacy", 1, 2),
		rec("grammar_quiz", 100, 100),
		rec("read_aloud", 50, 100),
		rec("aa_legacy", 1, 4),
	})

	var keys []string
	for _, m := range report.Modules {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"read_aloud", "grammar_quiz", "aa_legacy", "zz_legacy"}, keys)
	assert.Equal(t, "Module A - Read & Speak", report.Modules[0].Name)
	assert.Equal(t, "aa_legacy", report.Modules[2].Name)
	assert.InDelta(t, 25, report.Modules[2].Percentage, 1e-9)
}

func TestSummarize_Rounding(t *testing.T) {
	report := Summarize([]models.ScoreRecord{
		rec("topic", 1, 3),
		rec("topic", 1, 3),
	})
	m := report.Modules[0]
	assert.InDelta(t, 1.0, m.AverageScore, 1e-9)
	assert.InDelta(t, 3.0, m.MaxScore, 1e-9)
	assert.InDelta(t, 33.3, m.Percentage, 1e-9)
	assert.InDelta(t, 33.3, report.OverallScore, 1e-9)
}

func TestAggregator_StoreFailure(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("connection reset")}
	report, err := NewAggregator(store).BuildReport(context.Background(), 1, "s1")

	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.Equal(t, models.EmptyReport(), report)
}
