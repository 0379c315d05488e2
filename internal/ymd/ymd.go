// Package ymd converts between calendar days and their YYYY-MM-DD text form.
package ymd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var pattern = regexp.MustCompile(`^[0-9]{1,4}-[0-9]{1,2}-[0-9]{1,2}$`)

// Format renders t's calendar day as YYYY-MM-DD. Month and day are
// zero-padded; the year is not.
func Format(t time.Time) string {
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Parse reads a YYYY-MM-DD day and returns midnight UTC of that day.
// ok is false when s does not match the pattern or names a day that
// does not exist.
func Parse(s string) (time.Time, bool) {
	if !pattern.MatchString(s) {
		return time.Time{}, false
	}
	parts := strings.Split(s, "-")
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])
	if y < 1 || m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

// Today returns midnight UTC of the calendar day containing now.
func Today(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
