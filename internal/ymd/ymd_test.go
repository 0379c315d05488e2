package ymd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), "2023-05-01"},
		{time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC), "2023-12-31"},
		// a Wednesday; day-of-month, not weekday
		{time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC), "2024-01-17"},
		{time.Date(999, time.March, 9, 0, 0, 0, 0, time.UTC), "999-03-09"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2023-01-10", "2023-05-01", "2024-02-29", "1999-12-31", "2000-01-01"} {
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			d, ok := Parse(s)
			require.True(t, ok)
			assert.Equal(t, s, Format(d))
			assert.Equal(t, time.UTC, d.Location())
			assert.Zero(t, d.Hour())
		})
	}
}

func TestParseShortForms(t *testing.T) {
	t.Parallel()

	d, ok := Parse("2023-5-1")
	require.True(t, ok)
	assert.Equal(t, "2023-05-01", Format(d))

	d, ok = Parse("99-1-2")
	require.True(t, ok)
	assert.Equal(t, 99, d.Year())
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"2023",
		"2023-01",
		"20230101",
		"2023/01/01",
		"2023-01-01T00:00:00Z",
		"12345-01-01",
		"2023-001-01",
		"2023-01-001",
		"2023--01-01",
		"abcd-01-01",
		"2023-0a-01",
		" 2023-01-01",
		"2023-01-01 ",
		"-2023-01-01",
		"2023-13-01",
		"2023-00-10",
		"2023-02-30",
		"2023-02-29",
		"2023-04-31",
		"2023-01-00",
		"0000-01-01",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			_, ok := Parse(s)
			assert.False(t, ok)
		})
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2023, time.May, 2, 5, 30, 0, 0, loc) // 2023-05-01 19:30 UTC
	got := Today(now)
	assert.Equal(t, "2023-05-01", Format(got))
	assert.Equal(t, time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), got)
}
