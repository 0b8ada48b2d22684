package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

func seedHistory(t *testing.T, repo SearchHistoryRepository, n int) {
	t.Helper()

	base := time.Date(2015, time.June, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &entity.SearchHistory{
			RunID:     fmt.Sprintf("run-%d", i+1),
			Operation: "flight_by_id",
			Criteria:  fmt.Sprintf("flight id %d", i+1),
			Results:   i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestSearchHistoryFindRecent(t *testing.T) {
	repo := NewSearchHistoryRepository(newStateDB(t))
	seedHistory(t, repo, 5)

	histories, err := repo.FindRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, histories, 3)

	// Newest first.
	assert.Equal(t, "run-5", histories[0].RunID)
	assert.Equal(t, "run-4", histories[1].RunID)
	assert.Equal(t, "run-3", histories[2].RunID)
}

func TestSearchHistoryPrune(t *testing.T) {
	repo := NewSearchHistoryRepository(newStateDB(t))
	seedHistory(t, repo, 7)

	require.NoError(t, repo.Prune(context.Background(), 4))

	histories, err := repo.FindRecent(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, histories, 4)
	assert.Equal(t, "run-7", histories[0].RunID)
	assert.Equal(t, "run-4", histories[3].RunID)

	// Pruning below the cap is a no-op.
	require.NoError(t, repo.Prune(context.Background(), 10))
	histories, err = repo.FindRecent(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, histories, 4)
}

func TestSearchHistoryHonorsContext(t *testing.T) {
	repo := NewSearchHistoryRepository(newStateDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, &entity.SearchHistory{RunID: "x"}), context.Canceled)
	_, err := repo.FindRecent(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Prune(ctx, 10), context.Canceled)
}
