package store

import (
	"errors"
	"testing"
	"time"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	id := NewID()
	got, err := ParseID(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.String())

	for _, bad := range []string{"", "X", "123", "5c8b1f0e2a3d4c0017e3c9a1", id + "0"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrMalformedID, bad)
	}
}

func TestCheckUsername(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckUsername("alice"))

	var ve *ValidationError
	require.True(t, errors.As(CheckUsername(""), &ve))
	assert.Equal(t, "username", ve.Field)
	assert.Equal(t, "Path `username` is required.", ve.Error())
}

func TestCheckEntry(t *testing.T) {
	t.Parallel()

	ok := exercise.Entry{Description: "run", Duration: 5, Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)}
	assert.NoError(t, CheckEntry(ok))

	tests := []struct {
		name  string
		mut   func(*exercise.Entry)
		field string
	}{
		{"description", func(e *exercise.Entry) { e.Description = "" }, "description"},
		{"duration", func(e *exercise.Entry) { e.Duration = -5 }, "duration"},
		{"date", func(e *exercise.Entry) { e.Date = time.Time{} }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := ok
			tt.mut(&e)
			var ve *ValidationError
			require.True(t, errors.As(CheckEntry(e), &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
