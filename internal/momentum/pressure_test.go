package momentum

import (
	"testing"
	"time"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

func TestEstimateMinute(t *testing.T) {
	now := time.Date(2025, 3, 8, 16, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		utcDate  string
		expected int
	}{
		{
			name:     "RFC3339 with Z suffix",
			utcDate:  "2025-03-08T15:30:00Z",
			expected: 30,
		},
		{
			name:     "RFC3339 with explicit offset",
			utcDate:  "2025-03-08T16:30:00+01:00",
			expected: 30,
		},
		{
			name:     "space separated layout",
			utcDate:  "2025-03-08 15:15:00",
			expected: 45,
		},
		{
			name:     "fractional seconds",
			utcDate:  "2025-03-08 15:15:00.123456",
			expected: 45,
		},
		{
			name:     "clamped to 120 for long-running matches",
			utcDate:  "2025-03-08 10:00:00",
			expected: 120,
		},
		{
			name:     "clamped to 1 for future kickoff",
			utcDate:  "2025-03-08T17:00:00Z",
			expected: 1,
		},
		{
			name:     "empty timestamp falls back",
			utcDate:  "",
			expected: FallbackMinute,
		},
		{
			name:     "garbage timestamp falls back",
			utcDate:  "not-a-date",
			expected: FallbackMinute,
		},
		{
			name:     "partial timestamp falls back",
			utcDate:  "2025-03-08",
			expected: FallbackMinute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateMinute(tt.utcDate, now)
			if got != tt.expected {
				t.Errorf("EstimateMinute(%q) = %d, want %d", tt.utcDate, got, tt.expected)
			}
		})
	}
}

func TestPressureIndex(t *testing.T) {
	tests := []struct {
		name      string
		minute    int
		scoreHome int
		scoreAway int
		prev      *domain.Snapshot
		expected  float64
	}{
		{
			name:     "level score at half time is base pressure only",
			minute:   45,
			expected: 10.0,
		},
		{
			name:     "level score at full time",
			minute:   90,
			expected: 20.0,
		},
		{
			name:     "level score at kickoff",
			minute:   0,
			expected: 0.0,
		},
		{
			name:      "score impact is clamped at +60",
			minute:    45,
			scoreHome: 5,
			scoreAway: 0,
			expected:  70.0,
		},
		{
			name:      "score impact is clamped at -60",
			minute:    45,
			scoreHome: 0,
			scoreAway: 5,
			expected:  -50.0,
		},
		{
			name:      "home goal since previous snapshot adds 40",
			minute:    90,
			scoreHome: 2,
			scoreAway: 0,
			prev:      &domain.Snapshot{ScoreHome: 1, ScoreAway: 0},
			expected:  100.0, // 20 + 60 + 40 = 120, clamped
		},
		{
			name:      "away goal since previous snapshot subtracts 40",
			minute:    45,
			scoreHome: 0,
			scoreAway: 1,
			prev:      &domain.Snapshot{ScoreHome: 0, ScoreAway: 0},
			expected:  10.0 - 30.0 - 40.0,
		},
		{
			name:      "goals on both sides cancel the trend impact",
			minute:    45,
			scoreHome: 1,
			scoreAway: 1,
			prev:      &domain.Snapshot{ScoreHome: 0, ScoreAway: 0},
			expected:  10.0,
		},
		{
			name:      "no trend impact without a previous snapshot",
			minute:    45,
			scoreHome: 1,
			scoreAway: 0,
			expected:  40.0,
		},
		{
			name:      "unchanged score keeps trend impact at zero",
			minute:    60,
			scoreHome: 1,
			scoreAway: 0,
			prev:      &domain.Snapshot{ScoreHome: 1, ScoreAway: 0},
			expected:  float64(60)/90.0*20.0 + 30.0,
		},
		{
			name:      "lower clamp at -100",
			minute:    0,
			scoreHome: 0,
			scoreAway: 2,
			prev:      &domain.Snapshot{ScoreHome: 0, ScoreAway: 1},
			expected:  -100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PressureIndex(tt.minute, tt.scoreHome, tt.scoreAway, tt.prev)
			if got != tt.expected {
				t.Errorf("PressureIndex(%d, %d, %d) = %v, want %v",
					tt.minute, tt.scoreHome, tt.scoreAway, got, tt.expected)
			}
			if got < -100 || got > 100 {
				t.Errorf("pressure %v outside [-100, 100]", got)
			}
		})
	}
}
