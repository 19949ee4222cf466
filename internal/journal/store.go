package journal

import (
	"fmt"
	"sort"
	"strings"
)

// Store is the in-memory date -> entry collection. It is not safe for
// concurrent use; callers own it from a single goroutine.
type Store struct {
	entries         map[string]Entry
	moodPlaceholder string
	bodyPlaceholder string
}

type StoreOption func(*Store)

// WithPlaceholders overrides the text stored for empty mood and body.
// Empty arguments keep the defaults.
func WithPlaceholders(mood, body string) StoreOption {
	return func(s *Store) {
		if mood != "" {
			s.moodPlaceholder = mood
		}
		if body != "" {
			s.bodyPlaceholder = body
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries:         make(map[string]Entry),
		moodPlaceholder: DefaultMoodPlaceholder,
		bodyPlaceholder: DefaultBodyPlaceholder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) build(in Input) (Entry, error) {
	in = in.Normalize()
	if err := ValidateDate(in.Date); err != nil {
		return Entry{}, err
	}
	e := Entry{Date: in.Date, Mood: in.Mood, Body: in.Body}
	if e.Mood == "" {
		e.Mood = s.moodPlaceholder
	}
	if e.Body == "" {
		e.Body = s.bodyPlaceholder
	}
	return e, nil
}

// Upsert validates in and stores the resulting entry, replacing any entry
// already present for the same date.
func (s *Store) Upsert(in Input) (Entry, error) {
	e, err := s.build(in)
	if err != nil {
		return Entry{}, err
	}
	s.entries[e.Date] = e
	return e, nil
}

func (s *Store) Get(date string) (Entry, error) {
	e, ok := s.entries[strings.TrimSpace(date)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	return e, nil
}

func (s *Store) Has(date string) bool {
	_, ok := s.entries[strings.TrimSpace(date)]
	return ok
}

// Remove deletes the entry for date.
func (s *Store) Remove(date string) error {
	date = strings.TrimSpace(date)
	if _, ok := s.entries[date]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	delete(s.entries, date)
	return nil
}

func (s *Store) Len() int { return len(s.entries) }

// List returns all entries ordered by ascending date.
func (s *Store) List() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Replace swaps the whole collection for entries. Every entry is validated
// first; on error the store keeps its previous contents. When a date repeats
// the later entry wins.
func (s *Store) Replace(entries []Entry) error {
	next := make(map[string]Entry, len(entries))
	for i, e := range entries {
		built, err := s.build(Input{Date: e.Date, Mood: e.Mood, Body: e.Body})
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		next[built.Date] = built
	}
	s.entries = next
	return nil
}

// Range returns entries with since <= date <= until. Empty bounds are open.
func (s *Store) Range(since, until string) []Entry {
	var out []Entry
	for _, e := range s.List() {
		if since != "" && e.Date < since {
			continue
		}
		if until != "" && e.Date > until {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Search returns entries whose mood or body contains query, ignoring case.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.List()
	}
	var out []Entry
	for _, e := range s.List() {
		if strings.Contains(strings.ToLower(e.Mood), q) || strings.Contains(strings.ToLower(e.Body), q) {
			out = append(out, e)
		}
	}
	return out
}
