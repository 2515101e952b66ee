package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChurnScore(t *testing.T) {
	tests := []struct {
		name        string
		counts      map[string]int
		relPath     string
		historyDays int
		expected    float64
	}{
		{
			name:        "half-daily change rate",
			counts:      map[string]int{"src/hot.ts": 45},
			relPath:     "src/hot.ts",
			historyDays: 90,
			expected:    50.0,
		},
		{
			name:        "daily change rate saturates",
			counts:      map[string]int{"src/hot.ts": 30},
			relPath:     "src/hot.ts",
			historyDays: 30,
			expected:    100.0,
		},
		{
			name:        "above daily rate clamps",
			counts:      map[string]int{"src/hot.ts": 365},
			relPath:     "src/hot.ts",
			historyDays: 30,
			expected:    100.0,
		},
		{
			name:        "occasional changes",
			counts:      map[string]int{"src/calm.ts": 9},
			relPath:     "src/calm.ts",
			historyDays: 90,
			expected:    10.0,
		},
		{
			name:        "file never changed",
			counts:      map[string]int{"other.ts": 12},
			relPath:     "src/new.ts",
			historyDays: 90,
			expected:    0.0,
		},
		{
			name:        "empty history",
			counts:      map[string]int{},
			relPath:     "src/a.ts",
			historyDays: 90,
			expected:    0.0,
		},
		{
			name:        "zero window clamps to one day",
			counts:      map[string]int{"src/a.ts": 1},
			relPath:     "src/a.ts",
			historyDays: 0,
			expected:    100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ChurnScore(tt.counts, tt.relPath, tt.historyDays), 1e-9)
		})
	}
}
