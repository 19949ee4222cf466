package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/journal"
)

var agoPattern = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks|m|month|months|y|year|years)\s+ago$`)

// ParseFlexibleDate resolves natural words and common layouts to a calendar
// day in loc (midnight).
func ParseFlexibleDate(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	if loc == nil {
		loc = time.Local
	}

	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch input {
	case "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "last week":
		return today.AddDate(0, 0, -7), nil
	case "last month":
		return today.AddDate(0, -1, 0), nil
	case "last year":
		return today.AddDate(-1, 0, 0), nil
	}

	if m := agoPattern.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2][0] {
		case 'd':
			return today.AddDate(0, 0, -n), nil
		case 'w':
			return today.AddDate(0, 0, -7*n), nil
		case 'm':
			return today.AddDate(0, -n, 0), nil
		case 'y':
			return today.AddDate(-n, 0, 0), nil
		}
	}

	// weekday names mean the most recent such day, today included
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, -i)
		name := strings.ToLower(d.Weekday().String())
		if input == name || input == name[:3] {
			return d, nil
		}
	}

	formats := []string{
		journal.DateLayout,
		"2006/01/02",
		"2006.01.02",
		"20060102",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"2 January 2006",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// ParseDateKey is ParseFlexibleDate formatted as an entry key.
func ParseDateKey(input string, loc *time.Location) (string, error) {
	t, err := ParseFlexibleDate(input, loc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", journal.ErrValidation, err)
	}
	return t.Format(journal.DateLayout), nil
}

// GetDateRange returns inclusive since/until entry keys for a preset.
func GetDateRange(preset string, loc *time.Location) (since, until string, err error) {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	key := func(t time.Time) string { return t.Format(journal.DateLayout) }

	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "today":
		return key(today), key(today), nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return key(y), key(y), nil
	case "week":
		weekday := int(today.Weekday())
		if weekday == 0 { // Sunday
			weekday = 7
		}
		start := today.AddDate(0, 0, -(weekday - 1))
		return key(start), key(start.AddDate(0, 0, 6)), nil
	case "month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return key(start), key(start.AddDate(0, 1, -1)), nil
	case "year":
		return fmt.Sprintf("%d-01-01", today.Year()), fmt.Sprintf("%d-12-31", today.Year()), nil
	case "last7days", "last-7-days":
		return key(today.AddDate(0, 0, -6)), key(today), nil
	case "last30days", "last-30-days":
		return key(today.AddDate(0, 0, -29)), key(today), nil
	case "last90days", "last-90-days":
		return key(today.AddDate(0, 0, -89)), key(today), nil
	default:
		return "", "", fmt.Errorf("unknown date preset: %s", preset)
	}
}
