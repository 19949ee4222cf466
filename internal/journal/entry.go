package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted date format for entry keys.
const DateLayout = "2006-01-02"

// Default placeholder text used when mood or body are left empty.
const (
	DefaultMoodPlaceholder = "(no mood)"
	DefaultBodyPlaceholder = "(empty)"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("entry not found")
)

// Entry is one diary record keyed by its date.
type Entry struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
	Body string `json:"body"`
}

// legacyEntry is the document shape written by the first release of the app.
type legacyEntry struct {
	Date string `json:"日期"`
	Mood string `json:"心情"`
	Body string `json:"內容"`
}

// UnmarshalJSON accepts both the current and the legacy field names.
func (e *Entry) UnmarshalJSON(b []byte) error {
	type plain Entry
	var cur plain
	if err := json.Unmarshal(b, &cur); err != nil {
		return err
	}
	if cur.Date == "" {
		var old legacyEntry
		if err := json.Unmarshal(b, &old); err != nil {
			return err
		}
		if old.Date != "" {
			*e = Entry{Date: old.Date, Mood: old.Mood, Body: old.Body}
			return nil
		}
	}
	*e = Entry(cur)
	return nil
}

// Input carries the raw form values for an upsert.
type Input struct {
	Date string
	Mood string
	Body string
}

// Normalize trims the input the way the form does before saving.
func (in Input) Normalize() Input {
	return Input{
		Date: strings.TrimSpace(in.Date),
		Mood: strings.TrimSpace(in.Mood),
		Body: strings.TrimRight(in.Body, " \t\r\n"),
	}
}

// ValidateDate reports whether s is a real calendar date in DateLayout.
func ValidateDate(s string) error {
	if s == "" {
		return fmt.Errorf("%w: date is empty", ErrValidation)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, s)
	}
	return nil
}

// Today returns the current date in loc formatted as an entry key.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format(DateLayout)
}

// Preview renders the one-line label used in date lists.
func (e Entry) Preview() string {
	first := e.Body
	if i := strings.IndexAny(first, "\r\n"); i >= 0 {
		first = first[:i]
	}
	if r := []rune(first); len(r) > 10 {
		first = string(r[:10]) + "..."
	}
	return fmt.Sprintf("%s (%s) %s", e.Date, e.Mood, first)
}
