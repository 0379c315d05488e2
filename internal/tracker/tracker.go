// Package tracker implements the exercise log operations on top of a
// store.Store. It validates raw caller input, talks to the store and
// shapes the results; it knows nothing about HTTP.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/example/exercise-tracker/internal/logging"
	"github.com/example/exercise-tracker/internal/store"
	"github.com/example/exercise-tracker/internal/ymd"
)

// Client-facing messages.
const (
	MsgUsernameTaken   = "Username already exists"
	MsgAddUserFailed   = "Failed to add new user."
	MsgUserNotFound    = "User doesn't exist"
	MsgInvalidDuration = "Please enter valid duration (Integer)"
	MsgInvalidDate     = "Invalid Date"
	MsgMissingUserID   = "Please enter a userId"
)

type Service struct {
	Store store.Store
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// New returns a Service over s. A nil logger discards output.
func New(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{Store: s, Now: time.Now, Logger: logger}
}

// LogItem is an entry as shown to callers.
type LogItem struct {
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
	Date        string `json:"date"`
}

// ExerciseLog is the result of AddExercise.
type ExerciseLog struct {
	Username string    `json:"username"`
	Log      []LogItem `json:"log"`
}

// LogReport is the result of GetLog.
type LogReport struct {
	Username string    `json:"username"`
	Count    int       `json:"count"`
	Log      []LogItem `json:"log"`
}

// AddExerciseInput carries the raw fields of an add-exercise request.
// Empty means absent.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

// LogInput carries the raw fields of a log request.
type LogInput struct {
	UserID string
	exercise.LogQuery
}

func (s *Service) CreateUser(ctx context.Context, username string) (exercise.UserSummary, error) {
	existing, err := s.Store.FindByUsername(ctx, username)
	if err != nil {
		return exercise.UserSummary{}, s.storeErr("find by username", err)
	}
	if len(existing) > 0 {
		return exercise.UserSummary{}, exercise.E(exercise.DuplicateUsername, MsgUsernameTaken)
	}

	u, err := s.Store.Create(ctx, username)
	if err != nil {
		var ve *store.ValidationError
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			// lost a race with a concurrent create
			return exercise.UserSummary{}, exercise.Wrap(exercise.DuplicateUsername, MsgUsernameTaken, err)
		case errors.As(err, &ve):
			return exercise.UserSummary{}, exercise.Wrap(exercise.PersistenceValidation, ve.Message, err)
		}
		s.logger().Error("create user failed", "username", username, "error", err)
		return exercise.UserSummary{}, exercise.Wrap(exercise.PersistenceFailure, MsgAddUserFailed, err)
	}

	s.logger().Info("user created", "id", u.ID, "username", u.Username)
	return u.Summary(), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]exercise.UserSummary, error) {
	users, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, s.storeErr("list users", err)
	}
	if users == nil {
		users = []exercise.UserSummary{}
	}
	return users, nil
}

func (s *Service) AddExercise(ctx context.Context, in AddExerciseInput) (ExerciseLog, error) {
	switch {
	case in.UserID == "":
		return ExerciseLog{}, missing("userId")
	case in.Description == "":
		return ExerciseLog{}, missing("description")
	case in.Duration == "":
		return ExerciseLog{}, missing("duration")
	}

	if !exercise.IsDigits(in.Duration) {
		return ExerciseLog{}, exercise.E(exercise.InvalidDuration, MsgInvalidDuration)
	}
	duration, err := strconv.ParseInt(in.Duration, 10, 64)
	if err != nil {
		return ExerciseLog{}, exercise.Wrap(exercise.InvalidDuration, MsgInvalidDuration, err)
	}

	var date time.Time
	if in.Date == "" {
		date = ymd.Today(s.now())
	} else {
		var ok bool
		if date, ok = ymd.Parse(in.Date); !ok {
			return ExerciseLog{}, exercise.E(exercise.InvalidDate, MsgInvalidDate)
		}
	}

	u, err := s.Store.AppendEntry(ctx, in.UserID, exercise.Entry{
		Description: in.Description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		return ExerciseLog{}, s.storeErr("append entry", err)
	}

	s.logger().Debug("exercise added", "user", u.ID, "entries", len(u.Log))
	return ExerciseLog{Username: u.Username, Log: render(u.Log)}, nil
}

func (s *Service) GetLog(ctx context.Context, in LogInput) (LogReport, error) {
	if in.UserID == "" {
		return LogReport{}, exercise.E(exercise.MissingField, MsgMissingUserID)
	}

	u, err := s.Store.FindByID(ctx, in.UserID)
	if err != nil {
		return LogReport{}, s.storeErr("find by id", err)
	}

	log := exercise.Filter(u.Log, in.LogQuery)
	return LogReport{Username: u.Username, Count: len(log), Log: render(log)}, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.Nop()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// storeErr classifies a store failure. Malformed and unknown ids both
// read as a missing user.
func (s *Service) storeErr(op string, err error) error {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, store.ErrMalformedID), errors.Is(err, store.ErrNotFound):
		return exercise.Wrap(exercise.UserNotFound, MsgUserNotFound, err)
	case errors.As(err, &ve):
		return exercise.Wrap(exercise.PersistenceValidation, ve.Message, err)
	}
	s.logger().Error("store failure", "op", op, "error", err)
	return exercise.Wrap(exercise.PersistenceFailure, op+" failed", err)
}

func missing(field string) error {
	return exercise.E(exercise.MissingField, "Missing required field ("+field+")")
}

func render(log []exercise.Entry) []LogItem {
	out := make([]LogItem, len(log))
	for i, e := range log {
		out[i] = LogItem{Description: e.Description, Duration: e.Duration, Date: ymd.Format(e.Date)}
	}
	return out
}
