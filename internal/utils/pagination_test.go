package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		name                 string
		total, per, cur      int
		wantPage, wantPages  int
		wantStart, wantEnd   int
		wantSummary, wantNav string
	}{
		{"empty", 0, 10, 1, 1, 1, 0, 0, "No entries", ""},
		{"single page", 3, 10, 1, 1, 1, 0, 3, "Showing 1-3 of 3 entries", ""},
		{"middle page", 25, 10, 2, 2, 3, 10, 20, "Showing 11-20 of 25 entries (page 2 of 3)", "use --page 1 for previous, use --page 3 for next"},
		{"past the end clamps", 25, 10, 9, 3, 3, 20, 25, "Showing 21-25 of 25 entries (page 3 of 3)", "use --page 2 for previous"},
		{"unlimited", 1, 0, 1, 1, 1, 0, 1, "Showing 1-1 of 1 entry", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.per, tt.cur)
			assert.Equal(t, tt.wantPage, p.Current)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			start, end := p.Bounds()
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantSummary, p.FormatSummary())
			assert.Equal(t, tt.wantNav, p.FormatNavigation())
		})
	}
}
