// Package store defines the persistence contract for users and their
// exercise logs. Implementations live in the postgres and sqlite
// subpackages.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/google/uuid"
)

var (
	// ErrNotFound means a well-formed id matched no user.
	ErrNotFound = errors.New("user not found")
	// ErrMalformedID means the id could never match a user.
	ErrMalformedID = errors.New("malformed user id")
	// ErrDuplicateUsername means the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// ValidationError is a record that failed a schema rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Store persists users and their logs.
type Store interface {
	FindByUsername(ctx context.Context, username string) ([]exercise.User, error)
	Create(ctx context.Context, username string) (exercise.User, error)
	ListAll(ctx context.Context) ([]exercise.UserSummary, error)
	FindByID(ctx context.Context, id string) (exercise.User, error)
	AppendEntry(ctx context.Context, id string, e exercise.Entry) (exercise.User, error)
	Ping(ctx context.Context) error
	Close() error
}

// ParseID checks that id is a user id and returns its canonical form.
func ParseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, ErrMalformedID
	}
	return u, nil
}

// NewID returns a fresh user id.
func NewID() string {
	return uuid.NewString()
}

// CheckUsername applies the username rule shared by every backend.
func CheckUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "Path `username` is required."}
	}
	return nil
}

// CheckEntry applies the entry rules shared by every backend.
func CheckEntry(e exercise.Entry) error {
	if err := e.Validate(); err != nil {
		field := "log"
		switch {
		case e.Description == "":
			field = "description"
		case e.Duration < 0:
			field = "duration"
		case e.Date.IsZero():
			field = "date"
		}
		return &ValidationError{Field: field, Message: err.Error()}
	}
	return nil
}
