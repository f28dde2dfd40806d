package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource replays fixed values, each reduced modulo n.
type seqSource struct {
	vals  []int
	calls int
}

func (s *seqSource) IntN(n int) int {
	v := s.vals[s.calls%len(s.vals)]
	s.calls++
	return v % n
}

func set(idx ...int) map[int]struct{} {
	m := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		m[i] = struct{}{}
	}
	return m
}

func TestSelect_AvoidsCompleted(t *testing.T) {
	sel := NewDefault()
	completed := set(0, 2, 4, 6, 8)

	seen := map[int]int{}
	for i := 0; i < 2000; i++ {
		idx, err := sel.Select(10, completed)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 10)
		_, done := completed[idx]
		require.False(t, done, "selected completed index %d", idx)
		seen[idx]++
	}

	// Every unseen index should come up over many trials.
	for _, want := range []int{1, 3, 5, 7, 9} {
		assert.Greater(t, seen[want], 0, "index %d never selected", want)
	}
}

func TestSelect_FallbackWhenAllCompleted(t *testing.T) {
	sel := NewDefault()
	completed := set(0, 1, 2, 3, 4)

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		idx, err := sel.Select(5, completed)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 5)
		seen[idx] = true
	}
	assert.Len(t, seen, 5)
}

func TestSelect_EmptyCatalog(t *testing.T) {
	_, err := NewDefault().Select(0, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewDefault().SelectN(0, nil, 3)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestSelect_IgnoresStaleCompletedIndices(t *testing.T) {
	sel := New(&seqSource{vals: []int{0}})
	idx, err := sel.Select(3, set(0, 1, 7, -2))
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestSelect_UsesInjectedSource(t *testing.T) {
	src := &seqSource{vals: []int{1}}
	sel := New(src)

	idx, err := sel.Select(6, set(0, 3))
	require.NoError(t, err)
	// candidates are [1 2 4 5]; position 1 is index 2
	assert.Equal(t, 2, idx)
	assert.Equal(t, 1, src.calls)
}

func TestSelectN(t *testing.T) {
	t.Run("distinct unseen sample", func(t *testing.T) {
		sel := NewDefault()
		for i := 0; i < 200; i++ {
			got, err := sel.SelectN(23, set(0, 1, 2), 5)
			require.NoError(t, err)
			require.Len(t, got, 5)
			uniq := map[int]bool{}
			for _, idx := range got {
				assert.GreaterOrEqual(t, idx, 3)
				assert.Less(t, idx, 23)
				uniq[idx] = true
			}
			assert.Len(t, uniq, 5)
		}
	})

	t.Run("fewer unseen than requested", func(t *testing.T) {
		got, err := NewDefault().SelectN(5, set(0, 1, 2), 5)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{3, 4}, got)
	})

	t.Run("everything completed resets to full range", func(t *testing.T) {
		got, err := NewDefault().SelectN(4, set(0, 1, 2, 3), 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, got)
	})

	t.Run("invalid count", func(t *testing.T) {
		_, err := NewDefault().SelectN(4, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidCount)
	})
}
