// Package exercise holds the exercise log domain: users, their log
// entries, the log filter and the error kinds surfaced to callers.
package exercise

import (
	"errors"
	"time"
)

// User owns an append-only log of entries.
type User struct {
	ID       string
	Username string
	Log      []Entry
}

// UserSummary is a user without its log.
type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Summary drops the log.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// Entry is one exercise record. Date is midnight UTC of the day it was done.
type Entry struct {
	Description string
	Duration    int64
	Date        time.Time
}

func (e Entry) Validate() error {
	if e.Description == "" {
		return errors.New("description required")
	}
	if e.Duration < 0 {
		return errors.New("duration must be >= 0")
	}
	if e.Date.IsZero() {
		return errors.New("date required")
	}
	return nil
}
