package journal

import (
	"sort"
	"time"
)

// MoodCount is the number of entries recorded with a given mood.
type MoodCount struct {
	Mood  string
	Count int
}

// Stats summarises a store for the summary view.
type Stats struct {
	Total         int
	First         string
	Last          string
	Moods         []MoodCount // most frequent first
	CurrentStreak int         // consecutive days ending today or yesterday
	LongestStreak int
	ThisMonth     int
}

// Summarize computes Stats relative to today (a DateLayout string).
func (s *Store) Summarize(today string) Stats {
	entries := s.List()
	st := Stats{Total: len(entries)}
	if len(entries) == 0 {
		return st
	}
	st.First = entries[0].Date
	st.Last = entries[len(entries)-1].Date

	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Mood]++
		if len(today) >= 7 && len(e.Date) >= 7 && e.Date[:7] == today[:7] {
			st.ThisMonth++
		}
	}
	for mood, n := range counts {
		st.Moods = append(st.Moods, MoodCount{Mood: mood, Count: n})
	}
	sort.Slice(st.Moods, func(i, j int) bool {
		if st.Moods[i].Count != st.Moods[j].Count {
			return st.Moods[i].Count > st.Moods[j].Count
		}
		return st.Moods[i].Mood < st.Moods[j].Mood
	})

	run := 1
	st.LongestStreak = 1
	for i := 1; i < len(entries); i++ {
		if daysBetween(entries[i-1].Date, entries[i].Date) == 1 {
			run++
		} else {
			run = 1
		}
		if run > st.LongestStreak {
			st.LongestStreak = run
		}
	}

	// run now holds the streak ending at the last entry
	if gap := daysBetween(st.Last, today); gap == 0 || gap == 1 {
		st.CurrentStreak = run
	}
	return st
}

func daysBetween(a, b string) int {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return -1
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return -1
	}
	return int(tb.Sub(ta).Hours() / 24)
}
