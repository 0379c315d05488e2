// Package postgres implements store.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/example/exercise-tracker/internal/db"
	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/example/exercise-tracker/internal/migrate"
	"github.com/example/exercise-tracker/internal/store"
)

// messages for CHECK constraints declared in the schema
var constraintMessages = map[string]store.ValidationError{
	"users_username_required":        {Field: "username", Message: "Path `username` is required."},
	"exercises_description_required": {Field: "description", Message: "description required"},
	"exercises_duration_nonnegative": {Field: "duration", Message: "duration must be >= 0"},
}

type Store struct {
	db *db.DB
}

var _ store.Store = (*Store)(nil)

func New(d *db.DB) *Store { return &Store{db: d} }

// Open connects to databaseURL. The returned store owns the pool.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	d, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	return migrate.Up(ctx, s.db, migrate.Postgres)
}

func (s *Store) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) ([]exercise.User, error) {
	rows, err := s.db.Query(ctx, `SELECT id::text, username FROM users WHERE username=$1 ORDER BY seq`, username)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []exercise.User
	for rows.Next() {
		var u exercise.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	for i := range out {
		if out[i].Log, err = s.log(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, username string) (exercise.User, error) {
	if err := store.CheckUsername(username); err != nil {
		return exercise.User{}, err
	}
	u := exercise.User{ID: store.NewID(), Username: username, Log: []exercise.Entry{}}
	if err := s.db.Exec(ctx, `INSERT INTO users (id, username) VALUES ($1, $2)`, u.ID, u.Username); err != nil {
		return exercise.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) ListAll(ctx context.Context) ([]exercise.UserSummary, error) {
	rows, err := s.db.Query(ctx, `SELECT id::text, username FROM users ORDER BY seq`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []exercise.UserSummary{}
	for rows.Next() {
		var u exercise.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, translate(rows.Err())
}

func (s *Store) FindByID(ctx context.Context, id string) (exercise.User, error) {
	uid, err := store.ParseID(id)
	if err != nil {
		return exercise.User{}, err
	}

	u := exercise.User{ID: uid.String()}
	if err := s.db.QueryRow(ctx, `SELECT username FROM users WHERE id=$1`, u.ID).Scan(&u.Username); err != nil {
		if db.IsNotFound(err) {
			return exercise.User{}, store.ErrNotFound
		}
		return exercise.User{}, translate(err)
	}

	if u.Log, err = s.log(ctx, u.ID); err != nil {
		return exercise.User{}, err
	}
	return u, nil
}

func (s *Store) AppendEntry(ctx context.Context, id string, e exercise.Entry) (exercise.User, error) {
	uid, err := store.ParseID(id)
	if err != nil {
		return exercise.User{}, err
	}
	if err := store.CheckEntry(e); err != nil {
		return exercise.User{}, err
	}

	err = s.db.Exec(ctx, `INSERT INTO exercises (user_id, description, duration, date) VALUES ($1, $2, $3, $4)`,
		uid.String(), e.Description, e.Duration, e.Date)
	if err != nil {
		return exercise.User{}, translate(err)
	}
	return s.FindByID(ctx, uid.String())
}

func (s *Store) log(ctx context.Context, userID string) ([]exercise.Entry, error) {
	rows, err := s.db.Query(ctx, `
SELECT description, duration, date
FROM exercises
WHERE user_id=$1
ORDER BY id ASC`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []exercise.Entry{}
	for rows.Next() {
		var e exercise.Entry
		var d time.Time
		if err := rows.Scan(&e.Description, &e.Duration, &d); err != nil {
			return nil, err
		}
		e.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		out = append(out, e)
	}
	return out, translate(rows.Err())
}

// translate maps server errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch db.SQLState(err) {
	case db.CodeUniqueViolation:
		return store.ErrDuplicateUsername
	case db.CodeForeignKeyViolation:
		return store.ErrNotFound
	case db.CodeInvalidTextRepr:
		return store.ErrMalformedID
	case db.CodeCheckViolation, db.CodeNotNullViolation:
		if ve, ok := constraintMessages[db.ConstraintName(err)]; ok {
			return &ve
		}
		return &store.ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}
	return db.WrapNotFound(err)
}
