// Package storetest is a conformance suite for store.Store implementations.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/example/exercise-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises s. newStore must return an empty store each call.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("create and find", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		u, err := s.Create(ctx, "alice")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Empty(t, u.Log)

		got, err := s.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "alice", got.Username)
		assert.Empty(t, got.Log)

		found, err := s.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, u.ID, found[0].ID)

		none, err := s.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("duplicate username keeps one record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Create(ctx, "alice")
		require.NoError(t, err)
		_, err = s.Create(ctx, "alice")
		assert.ErrorIs(t, err, store.ErrDuplicateUsername)

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("empty username", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Create(context.Background(), "")
		var ve *store.ValidationError
		require.True(t, errors.As(err, &ve), "got %v", err)
		assert.Equal(t, "username", ve.Field)
	})

	t.Run("list in insertion order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		var want []exercise.UserSummary
		for _, name := range []string{"carol", "alice", "bob"} {
			u, err := s.Create(ctx, name)
			require.NoError(t, err)
			want = append(want, u.Summary())
		}

		all, err = s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, all)
	})

	t.Run("malformed and absent ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, store.ErrMalformedID)

		_, err = s.FindByID(ctx, store.NewID())
		assert.ErrorIs(t, err, store.ErrNotFound)

		e := exercise.Entry{Description: "run", Duration: 1, Date: day(2023, 1, 1)}
		_, err = s.AppendEntry(ctx, "not-an-id", e)
		assert.ErrorIs(t, err, store.ErrMalformedID)

		_, err = s.AppendEntry(ctx, store.NewID(), e)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("append keeps order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		u, err := s.Create(ctx, "alice")
		require.NoError(t, err)

		in := []exercise.Entry{
			{Description: "run", Duration: 30, Date: day(2023, 5, 1)},
			{Description: "swim", Duration: 0, Date: day(2022, 12, 31)},
			{Description: "bike", Duration: 90, Date: day(2023, 1, 15)},
		}
		var got exercise.User
		for _, e := range in {
			got, err = s.AppendEntry(ctx, u.ID, e)
			require.NoError(t, err)
		}
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, in, got.Log)

		again, err := s.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, in, again.Log)

		// logs are per user
		other, err := s.Create(ctx, "bob")
		require.NoError(t, err)
		bob, err := s.FindByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, bob.Log)
	})

	t.Run("append rejects invalid entries", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		u, err := s.Create(ctx, "alice")
		require.NoError(t, err)

		_, err = s.AppendEntry(ctx, u.ID, exercise.Entry{Description: "", Duration: 5, Date: day(2023, 1, 1)})
		var ve *store.ValidationError
		require.True(t, errors.As(err, &ve), "got %v", err)
		assert.Equal(t, "description", ve.Field)

		got, err := s.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Log)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
