package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/cart-sync/internal/coordinator/synclog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndGetLatest(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, synclog.NewEntry(ctx, "op-1", "add_to_cart", "7", synclog.StatusStarted, "", nil)))
	require.NoError(t, repo.Save(ctx, synclog.NewEntry(ctx, "op-1", "add_to_cart", "7", synclog.StatusStepDone, "write_order_item", nil)))
	require.NoError(t, repo.Save(ctx, synclog.NewEntry(ctx, "op-1", "add_to_cart", "7", synclog.StatusFailed, "resync_cart",
		[]string{"resync_cart: " + errors.New("boom").Error()})))

	latest, err := repo.GetLatest(ctx, "op-1")
	require.NoError(t, err)
	assert.Equal(t, synclog.StatusFailed, latest.Status)
	assert.Equal(t, "resync_cart", latest.CurrentStep)
	assert.JSONEq(t, `["resync_cart: boom"]`, latest.ErrorMessages)
	assert.False(t, latest.UpdatedAt.IsZero())
}

func TestGetLatestUnknownOperation(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetLatest(context.Background(), "missing")
	assert.Error(t, err)
}

func TestListByOrder(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, synclog.NewEntry(ctx, "op-1", "create_order", "1", synclog.StatusStarted, "", nil)))
	require.NoError(t, repo.Save(ctx, synclog.NewEntry(ctx, "op-2", "add_to_cart", "2", synclog.StatusStarted, "", nil)))
	require.NoError(t, repo.Save(ctx, synclog.NewEntry(ctx, "op-1", "create_order", "1", synclog.StatusCompleted, "create_order", nil)))

	entries, err := repo.ListByOrder(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, synclog.StatusStarted, entries[0].Status)
	assert.Equal(t, synclog.StatusCompleted, entries[1].Status)
	assert.Equal(t, "[]", entries[0].ErrorMessages)
}
