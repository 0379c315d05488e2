package exercise

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal is any failure nothing else claims.
	Internal Kind = iota
	MissingField
	InvalidDuration
	InvalidDate
	UserNotFound
	DuplicateUsername
	PersistenceValidation
	PersistenceFailure
	RouteNotFound
)

var kindNames = map[Kind]string{
	Internal:              "internal",
	MissingField:          "missing_field",
	InvalidDuration:       "invalid_duration",
	InvalidDate:           "invalid_date",
	UserNotFound:          "user_not_found",
	DuplicateUsername:     "duplicate_username",
	PersistenceValidation: "persistence_validation",
	PersistenceFailure:    "persistence_failure",
	RouteNotFound:         "route_not_found",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Msg is what the client sees; Err, when
// set, is the underlying cause and is only logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error with no cause.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error around cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the client-facing message of the first *Error in err's
// chain and whether there was one.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg, true
	}
	return "", false
}
