// Package sqlite implements store.Store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/exercise-tracker/internal/db"
	"github.com/example/exercise-tracker/internal/exercise"
	"github.com/example/exercise-tracker/internal/migrate"
	"github.com/example/exercise-tracker/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open opens the database at dsn (a path, a file: URI or ":memory:").
// A single connection is kept so writes serialize and in-memory databases
// survive between calls.
func Open(ctx context.Context, dsn string) (*Store, error) {
	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	d.SetMaxOpenConns(1)
	d.SetConnMaxLifetime(0)
	d.SetConnMaxIdleTime(0)

	if err := d.PingContext(ctx); err != nil {
		d.Close()
		return nil, err
	}
	if _, err := d.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		d.Close()
		return nil, err
	}
	return &Store{db: d}, nil
}

// target adapts *sql.DB to migrate.Target.
type target struct{ db *sql.DB }

func (t target) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.db.ExecContext(ctx, query, args...)
	return err
}

func (t target) QueryRow(ctx context.Context, query string, args ...any) db.Row {
	return t.db.QueryRowContext(ctx, query, args...)
}

func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	return migrate.Up(ctx, target{db: s.db}, migrate.SQLite)
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) FindByUsername(ctx context.Context, username string) ([]exercise.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username FROM users WHERE username = ? ORDER BY rowid`, username)
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
	rows.Close()

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
	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, username) VALUES (?, ?)`, u.ID, u.Username); err != nil {
		return exercise.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) ListAll(ctx context.Context) ([]exercise.UserSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username FROM users ORDER BY rowid`)
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
	err = s.db.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, u.ID).Scan(&u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return exercise.User{}, store.ErrNotFound
	}
	if err != nil {
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

	_, err = s.db.ExecContext(ctx, `INSERT INTO exercises (user_id, description, duration, date) VALUES (?, ?, ?, ?)`,
		uid.String(), e.Description, e.Duration, e.Date.UTC().Format(time.DateOnly))
	if err != nil {
		return exercise.User{}, translate(err)
	}
	return s.FindByID(ctx, uid.String())
}

func (s *Store) log(ctx context.Context, userID string) ([]exercise.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT description, duration, date
FROM exercises
WHERE user_id = ?
ORDER BY id ASC`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := []exercise.Entry{}
	for rows.Next() {
		var e exercise.Entry
		var d string
		if err := rows.Scan(&e.Description, &e.Duration, &d); err != nil {
			return nil, err
		}
		if e.Date, err = time.Parse(time.DateOnly, d); err != nil {
			return nil, fmt.Errorf("sqlite: bad date %q for user %s: %w", d, userID, err)
		}
		out = append(out, e)
	}
	return out, translate(rows.Err())
}

// translate maps constraint failures onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return fmt.Errorf("sqlite: %w", err)
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return store.ErrDuplicateUsername
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return store.ErrNotFound
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		msg := se.Error()
		switch {
		case strings.Contains(msg, "username"):
			return &store.ValidationError{Field: "username", Message: "Path `username` is required."}
		case strings.Contains(msg, "description"):
			return &store.ValidationError{Field: "description", Message: "description required"}
		case strings.Contains(msg, "duration"):
			return &store.ValidationError{Field: "duration", Message: "duration must be >= 0"}
		}
		return &store.ValidationError{Message: "validation failed: " + msg}
	}
	return fmt.Errorf("sqlite: %w", err)
}
