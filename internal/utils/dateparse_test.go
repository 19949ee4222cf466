package utils

import (
	"testing"
	"time"

	"github.com/ramanasai/diary/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateKey(t *testing.T) {
	loc := time.UTC
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	key := func(t time.Time) string { return t.Format(journal.DateLayout) }

	tests := []struct {
		in   string
		want string
	}{
		{"today", key(today)},
		{"Yesterday", key(today.AddDate(0, 0, -1))},
		{"tomorrow", key(today.AddDate(0, 0, 1))},
		{"3 days ago", key(today.AddDate(0, 0, -3))},
		{"2w ago", key(today.AddDate(0, 0, -14))},
		{"last week", key(today.AddDate(0, 0, -7))},
		{"2025-01-15", "2025-01-15"},
		{"2025/01/15", "2025-01-15"},
		{"20250115", "2025-01-15"},
		{"Jan 15, 2025", "2025-01-15"},
		{today.Weekday().String(), key(today)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateKey(tt.in, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateKeyErrors(t *testing.T) {
	for _, in := range []string{"", "someday", "2025-13-40", "2025-02-30"} {
		_, err := ParseDateKey(in, time.UTC)
		assert.ErrorIs(t, err, journal.ErrValidation, in)
	}
}

func TestGetDateRange(t *testing.T) {
	since, until, err := GetDateRange("today", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, since, until)

	since, until, err = GetDateRange("week", time.UTC)
	require.NoError(t, err)
	s, _ := time.Parse(journal.DateLayout, since)
	u, _ := time.Parse(journal.DateLayout, until)
	assert.Equal(t, time.Monday, s.Weekday())
	assert.Equal(t, 6*24*time.Hour, u.Sub(s))

	since, until, err = GetDateRange("month", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "01", since[8:])
	assert.Equal(t, since[:7], until[:7])

	_, _, err = GetDateRange("fortnight", time.UTC)
	assert.Error(t, err)
}
