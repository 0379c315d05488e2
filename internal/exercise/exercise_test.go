package exercise

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryValidate(t *testing.T) {
	t.Parallel()

	ok := Entry{Description: "run", Duration: 30, Date: day("2023-05-01")}
	assert.NoError(t, ok.Validate())

	zero := ok
	zero.Duration = 0
	assert.NoError(t, zero.Validate())

	noDesc := ok
	noDesc.Description = ""
	assert.EqualError(t, noDesc.Validate(), "description required")

	neg := ok
	neg.Duration = -1
	assert.EqualError(t, neg.Validate(), "duration must be >= 0")

	noDate := ok
	noDate.Date = day("0001-01-01")
	assert.Error(t, noDate.Validate())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := fmt.Errorf("add exercise: %w", Wrap(PersistenceFailure, "Failed to add new user.", cause))

	assert.Equal(t, PersistenceFailure, KindOf(err))
	assert.ErrorIs(t, err, cause)
	msg, ok := Message(err)
	assert.True(t, ok)
	assert.Equal(t, "Failed to add new user.", msg)

	assert.Equal(t, Internal, KindOf(cause))
	_, ok = Message(cause)
	assert.False(t, ok)
	assert.Equal(t, Internal, KindOf(nil))
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "User doesn't exist", E(UserNotFound, "User doesn't exist").Error())
	assert.Equal(t, "Invalid Date: bad", Wrap(InvalidDate, "Invalid Date", errors.New("bad")).Error())
	assert.Equal(t, "user_not_found", UserNotFound.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestSummary(t *testing.T) {
	t.Parallel()

	u := User{ID: "X", Username: "alice", Log: entries("2023-05-01")}
	assert.Equal(t, UserSummary{ID: "X", Username: "alice"}, u.Summary())
}
