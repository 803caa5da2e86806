package game

import (
	"strings"
	"testing"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

func pending(outcome string, predHome, predAway, actHome, actAway int) *domain.PendingPrediction {
	return &domain.PendingPrediction{
		Prediction: domain.Prediction{
			Outcome:   outcome,
			HomeGoals: predHome,
			AwayGoals: predAway,
		},
		ActualHome: actHome,
		ActualAway: actAway,
	}
}

func TestScorePoints(t *testing.T) {
	tests := []struct {
		name     string
		p        *domain.PendingPrediction
		expected int
	}{
		{
			name:     "wrong outcome scores nothing",
			p:        pending(domain.OutcomeHome, 2, 0, 0, 1),
			expected: 0,
		},
		{
			name:     "correct home outcome",
			p:        pending(domain.OutcomeHome, 3, 1, 2, 0),
			expected: 100,
		},
		{
			name:     "correct away outcome",
			p:        pending(domain.OutcomeAway, 0, 1, 1, 3),
			expected: 100,
		},
		{
			name:     "correct draw pays the draw rate",
			p:        pending(domain.OutcomeDraw, 2, 2, 1, 1),
			expected: 120,
		},
		{
			name:     "exact score adds the bonus",
			p:        pending(domain.OutcomeHome, 2, 0, 2, 0),
			expected: 300,
		},
		{
			name:     "exact draw stacks both bonuses",
			p:        pending(domain.OutcomeDraw, 1, 1, 1, 1),
			expected: 320,
		},
		{
			name:     "exact score with wrong outcome still scores nothing",
			p:        pending(domain.OutcomeAway, 2, 0, 2, 0),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePoints(tt.p); got != tt.expected {
				t.Errorf("ScorePoints() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestActualOutcome(t *testing.T) {
	tests := []struct {
		home, away int
		expected   string
	}{
		{2, 0, domain.OutcomeHome},
		{0, 3, domain.OutcomeAway},
		{1, 1, domain.OutcomeDraw},
		{0, 0, domain.OutcomeDraw},
	}
	for _, tt := range tests {
		if got := ActualOutcome(tt.home, tt.away); got != tt.expected {
			t.Errorf("ActualOutcome(%d, %d) = %q, want %q", tt.home, tt.away, got, tt.expected)
		}
	}
}

func TestWinProbabilities(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		home     int
		draw     int
		away     int
	}{
		{name: "neutral pressure", pressure: 0, home: 33, draw: 34, away: 33},
		{name: "strong home pressure", pressure: 100, home: 63, draw: 34, away: 3},
		{name: "strong away pressure", pressure: -100, home: 3, draw: 34, away: 63},
		{name: "mild home pressure", pressure: 10, home: 36, draw: 34, away: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WinProbabilities(tt.pressure)
			if got.Home != tt.home || got.Draw != tt.draw || got.Away != tt.away {
				t.Errorf("split = %d/%d/%d, want %d/%d/%d",
					got.Home, got.Draw, got.Away, tt.home, tt.draw, tt.away)
			}
			if got.Home+got.Draw+got.Away != 100 {
				t.Errorf("split must sum to 100, got %d", got.Home+got.Draw+got.Away)
			}
		})
	}
}

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateReferralCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("code length = %d, want 8", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(referralAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("expected distinct codes across generations")
	}
}
