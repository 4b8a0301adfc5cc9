package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/slidewin/internal/engine"
)

var uniqueSpec = engine.WindowSpec{Algorithm: engine.LongestUnique}

func TestStore_AdvanceToCompletion(t *testing.T) {
	store := NewStore(10)
	info, err := store.Create(engine.Chars("abcabcbb"), uniqueSpec)
	require.NoError(t, err)
	assert.Equal(t, 8, info.Total)
	assert.NotEmpty(t, info.ID)

	var last engine.StepResult
	for i := 0; i < info.Total; i++ {
		last, info, err = store.Advance(info.ID)
		require.NoError(t, err)
	}
	assert.True(t, info.Done)
	require.NotNil(t, last.Best)
	assert.Equal(t, 3, last.Best.Len())

	_, after, err := store.Advance(info.ID)
	assert.ErrorIs(t, err, engine.ErrScanComplete)
	assert.Equal(t, info.Position, after.Position)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := NewStore(10)
	a, err := store.Create(engine.Chars("abc"), uniqueSpec)
	require.NoError(t, err)
	b, err := store.Create(engine.Chars("abc"), uniqueSpec)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	_, _, err = store.Advance(a.ID)
	require.NoError(t, err)
	_, _, err = store.Advance(a.ID)
	require.NoError(t, err)

	infoB, err := store.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, infoB.Position)

	res, _, err := store.Advance(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
}

func TestStore_Reset(t *testing.T) {
	store := NewStore(10)
	info, err := store.Create(engine.Ints(1, 2, 3, 4), engine.WindowSpec{Algorithm: engine.Sum, WindowSize: 2})
	require.NoError(t, err)

	first, _, err := store.Advance(info.ID)
	require.NoError(t, err)
	_, _, err = store.Advance(info.ID)
	require.NoError(t, err)

	info, err = store.Reset(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.Position)

	again, _, err := store.Advance(info.ID)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestStore_Errors(t *testing.T) {
	store := NewStore(1)
	_, err := store.Create(engine.Chars("abc"), engine.WindowSpec{Algorithm: engine.PermutationMatch})
	assert.ErrorIs(t, err, engine.ErrEmptyPattern)
	assert.Equal(t, 0, store.Len())

	info, err := store.Create(engine.Chars("abc"), uniqueSpec)
	require.NoError(t, err)
	_, err = store.Create(engine.Chars("abc"), uniqueSpec)
	assert.ErrorIs(t, err, ErrLimit)

	_, _, err = store.Advance("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Reset("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(info.ID))
	assert.ErrorIs(t, store.Delete(info.ID), ErrNotFound)
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(10)
	store.now = func() time.Time { return now }

	stale, err := store.Create(engine.Chars("abc"), uniqueSpec)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	fresh, err := store.Create(engine.Chars("abc"), uniqueSpec)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Sweep(5*time.Minute))
	_, err = store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_ConcurrentAdvance(t *testing.T) {
	store := NewStore(10)
	seq := engine.Chars("abcdefghijklmnopqrstuvwxyz")
	info, err := store.Create(seq, uniqueSpec)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int]bool{}
	for i := 0; i < seq.Len(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := store.Advance(info.ID)
			if err != nil {
				return
			}
			mu.Lock()
			seen[res.Index] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, seq.Len())
	got, err := store.Get(info.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)
}

func TestStore_StepDoesNotMove(t *testing.T) {
	store := NewStore(10)
	info, err := store.Create(engine.Chars("abcabcbb"), uniqueSpec)
	require.NoError(t, err)
	assert.Nil(t, info.Best)

	res, err := store.Step(info.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Index)
	assert.Equal(t, "bca", res.Content.String())

	got, err := store.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Position)

	_, err = store.Step(info.ID, 8)
	assert.ErrorIs(t, err, engine.ErrOutOfBounds)
	_, err = store.Step("missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_InfoReportsBest(t *testing.T) {
	store := NewStore(10)
	info, err := store.Create(engine.Chars("abcabcbb"), uniqueSpec)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, info, err = store.Advance(info.ID)
		require.NoError(t, err)
	}
	require.NotNil(t, info.Best)
	assert.Equal(t, engine.Span{Start: 0, End: 2}, *info.Best)

	fixed, err := store.Create(engine.Ints(1, 2, 3), engine.WindowSpec{Algorithm: engine.Sum, WindowSize: 2})
	require.NoError(t, err)
	_, fixed, err = store.Advance(fixed.ID)
	require.NoError(t, err)
	assert.Nil(t, fixed.Best)
}
