package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/exercise-tracker/internal/store"
	"github.com/example/exercise-tracker/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	_, err = s.Migrate(context.Background())
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, newMemStore)
}

func TestMigrateTwice(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	applied, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql"}, applied)

	applied, err = s.Migrate(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "exercise.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Migrate(ctx)
	require.NoError(t, err)
	u, err := s.Create(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Migrate(ctx)
	require.NoError(t, err)

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestTranslateUniqueFromSchema(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t).(*Store)

	// bypass the Go-side check so the constraint itself fires
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (id, username) VALUES (?, ?)`, store.NewID(), "alice")
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (id, username) VALUES (?, ?)`, store.NewID(), "alice")
	assert.ErrorIs(t, translate(err), store.ErrDuplicateUsername)

	_, err = s.db.ExecContext(ctx, `INSERT INTO users (id, username) VALUES (?, ?)`, store.NewID(), "")
	var ve *store.ValidationError
	assert.ErrorAs(t, translate(err), &ve)
}
