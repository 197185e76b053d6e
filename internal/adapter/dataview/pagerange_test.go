package dataview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/holocron/internal/core/domain"
)

func labelStrings(labels []domain.PageLabel) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		current  int
		expected []string
	}{
		{"no pages", 0, 1, []string{}},
		{"single page", 1, 1, []string{"1"}},
		{"few pages", 5, 3, []string{"1", "2", "3", "4", "5"}},
		{"exactly seven", 7, 7, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"start", 10, 1, []string{"1", "2", "3", "4", "5", "…", "10"}},
		{"start edge", 10, 4, []string{"1", "2", "3", "4", "5", "…", "10"}},
		{"end", 10, 10, []string{"1", "…", "6", "7", "8", "9", "10"}},
		{"end edge", 10, 7, []string{"1", "…", "6", "7", "8", "9", "10"}},
		{"middle", 10, 6, []string{"1", "…", "5", "6", "7", "…", "10"}},
		{"middle low", 10, 5, []string{"1", "…", "4", "5", "6", "…", "10"}},
		{"eight pages", 8, 5, []string{"1", "…", "4", "5", "6", "7", "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, labelStrings(Summarize(tt.total, tt.current)))
		})
	}
}

func TestSummarize_Invariants(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			labels := Summarize(total, current)
			require.NotEmpty(t, labels)

			assert.Equal(t, domain.PageNumber(1), labels[0], "total=%d current=%d", total, current)
			assert.Equal(t, domain.PageNumber(total), labels[len(labels)-1], "total=%d current=%d", total, current)
			assert.LessOrEqual(t, len(labels), 9)

			last := 0
			for _, l := range labels {
				if l.Ellipsis {
					continue
				}
				assert.Greater(t, l.Page, last, "total=%d current=%d", total, current)
				last = l.Page
			}
		}
	}
}

func TestSummarize_CurrentPageVisible(t *testing.T) {
	for total := 8; total <= 20; total++ {
		for current := 1; current <= total; current++ {
			assert.Contains(t, Summarize(total, current), domain.PageNumber(current))
		}
	}
}
