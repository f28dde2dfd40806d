package progress

import "context"

// CompletionSet is the set of question indices a user has answered for a module.
type CompletionSet map[int]struct{}

func (c CompletionSet) Contains(idx int) bool {
	_, ok := c[idx]
	return ok
}

// Tracker derives completion sets from recorded scores, across every session.
type Tracker struct {
	store ScoreStore
}

func NewTracker(store ScoreStore) *Tracker {
	return &Tracker{store: store}
}

// CompletedIndices never returns a nil set. On a store failure the set is empty
// and the error is a *StoreError so the caller can log and carry on.
func (t *Tracker) CompletedIndices(ctx context.Context, userID int64, module string) (CompletionSet, error) {
	set := CompletionSet{}
	indices, err := t.store.CompletedIndices(ctx, userID, module)
	if err != nil {
		return set, &StoreError{Op: "completed indices", Err: err}
	}
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set, nil
}
