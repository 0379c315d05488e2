package exercise

import (
	"regexp"
	"strconv"

	"github.com/example/exercise-tracker/internal/ymd"
)

var digits = regexp.MustCompile(`^[0-9]+$`)

// LogQuery holds the raw, optional log filters as received from a caller.
// Empty means absent.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// Filter returns the entries of log that fall within q, in log order.
// Bounds that do not parse and limits that are not plain non-negative
// integers are ignored. log is not modified.
func Filter(log []Entry, q LogQuery) []Entry {
	out := make([]Entry, 0, len(log))
	out = append(out, log...)

	if from, ok := ymd.Parse(q.From); q.From != "" && ok {
		out = keep(out, func(e Entry) bool { return !e.Date.Before(from) })
	}
	if to, ok := ymd.Parse(q.To); q.To != "" && ok {
		out = keep(out, func(e Entry) bool { return !e.Date.After(to) })
	}
	if q.Limit != "" && digits.MatchString(q.Limit) {
		// overflow means the limit exceeds any log length
		if n, err := strconv.Atoi(q.Limit); err == nil && n < len(out) {
			out = out[:n]
		}
	}
	return out
}

func keep(es []Entry, pred func(Entry) bool) []Entry {
	out := es[:0]
	for _, e := range es {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	return digits.MatchString(s)
}
