package progress

import (
	"context"
	"math"
	"sort"

	"github.com/speaking-practice/backend/internal/catalog"
	"github.com/speaking-practice/backend/internal/models"
)

// Aggregator builds session reports from recorded scores.
type Aggregator struct {
	store ScoreStore
}

func NewAggregator(store ScoreStore) *Aggregator {
	return &Aggregator{store: store}
}

// BuildReport returns the empty report, never a partial one, when the store fails.
func (a *Aggregator) BuildReport(ctx context.Context, userID int64, sessionID string) (models.SessionReport, error) {
	records, err := a.store.FetchScores(ctx, userID, sessionID)
	if err != nil {
		return models.EmptyReport(), &StoreError{Op: "fetch scores", Err: err}
	}
	return Summarize(records), nil
}

type moduleTotals struct {
	score, max float64
	count      int
}

// Summarize groups records by module. Each module's percentage is
// mean(score)/mean(max)*100; the overall score is the unweighted mean of the
// module percentages, not a per-question mean.
func Summarize(records []models.ScoreRecord) models.SessionReport {
	if len(records) == 0 {
		return models.EmptyReport()
	}

	totals := make(map[string]*moduleTotals)
	for _, r := range records {
		t, ok := totals[r.Module]
		if !ok {
			t = &moduleTotals{}
			totals[r.Module] = t
		}
		t.score += r.Score
		t.max += r.MaxScore
		t.count++
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := catalog.Rank(keys[i]), catalog.Rank(keys[j])
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		case rj >= 0:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	report := models.SessionReport{Modules: make([]models.ModuleReport, 0, len(keys))}
	var pctSum float64
	for _, k := range keys {
		t := totals[k]
		avgScore := t.score / float64(t.count)
		avgMax := t.max / float64(t.count)

		var pct float64
		if avgMax > 0 {
			pct = round(avgScore/avgMax*100, 1)
		}

		report.Modules = append(report.Modules, models.ModuleReport{
			Key:                k,
			Name:               catalog.DisplayName(k),
			AverageScore:       round(avgScore, 2),
			MaxScore:           round(avgMax, 2),
			Percentage:         pct,
			QuestionsCompleted: t.count,
		})
		pctSum += pct
		report.TotalQuestions += t.count
	}

	report.OverallScore = round(pctSum/float64(len(report.Modules)), 1)
	return report
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
