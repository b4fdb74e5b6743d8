//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/helpbeacon/helpbeacon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewSettingsRepository(pool)

	// The migration seeds the first-run notice flag.
	notice, err := repo.Get(ctx, domain.SettingShowNotice)
	require.NoError(t, err)
	assert.Equal(t, "1", notice)

	_, err = repo.Get(ctx, domain.SettingActionURL)
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)

	require.NoError(t, repo.Set(ctx, domain.SettingActionURL, "https://help.example.com/?q={query}"))
	value, err := repo.Get(ctx, domain.SettingActionURL)
	require.NoError(t, err)
	assert.Equal(t, "https://help.example.com/?q={query}", value)

	// Set on an existing key overwrites.
	require.NoError(t, repo.Set(ctx, domain.SettingActionURL, "https://docs.example.com/"))
	value, err = repo.Get(ctx, domain.SettingActionURL)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/", value)

	require.NoError(t, repo.Delete(ctx, domain.SettingActionURL))
	_, err = repo.Get(ctx, domain.SettingActionURL)
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)

	// Deleting a missing key is a no-op.
	require.NoError(t, repo.Delete(ctx, "never-existed"))
}

func TestSettingsRepository_Drop(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewSettingsRepository(pool)

	require.NoError(t, repo.Drop(ctx))

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT FROM pg_tables WHERE tablename = 'settings')`,
	).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)
}
