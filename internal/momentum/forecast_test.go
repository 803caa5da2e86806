package momentum

import (
	"testing"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

func snapshotsWithPressure(values ...float64) []*domain.Snapshot {
	out := make([]*domain.Snapshot, len(values))
	for i, v := range values {
		out[i] = &domain.Snapshot{PressureIndex: v}
	}
	return out
}

func TestForecastFrom(t *testing.T) {
	tests := []struct {
		name            string
		pressures       []float64
		wantLevel       string
		wantProbability int
		wantExplanation string
	}{
		{
			name:            "no snapshots",
			pressures:       nil,
			wantLevel:       domain.LevelInconclusive,
			wantProbability: 0,
			wantExplanation: "Insufficient data for trend analysis.",
		},
		{
			name:            "two snapshots are not enough",
			pressures:       []float64{50, 90},
			wantLevel:       domain.LevelInconclusive,
			wantProbability: 0,
			wantExplanation: "Insufficient data for trend analysis.",
		},
		{
			name:            "constant sequence is moderate at 50",
			pressures:       []float64{10, 10, 10},
			wantLevel:       domain.LevelModerate,
			wantProbability: 50,
			wantExplanation: "Slope: 0.00, Var: 0.0. Downward pressure.",
		},
		{
			name:            "steep climb caps probability at 100",
			pressures:       []float64{0, 10, 20, 30},
			wantLevel:       domain.LevelHigh,
			wantProbability: 100,
			wantExplanation: "Slope: 10.00, Var: 125.0. Upward trend.",
		},
		{
			name:            "steep fall floors probability at 0",
			pressures:       []float64{30, 20, 10, 0},
			wantLevel:       domain.LevelLow,
			wantProbability: 0,
			wantExplanation: "Slope: -10.00, Var: 125.0. Downward pressure.",
		},
		{
			name:            "slope of exactly one stays moderate",
			pressures:       []float64{0, 1, 2},
			wantLevel:       domain.LevelModerate,
			wantProbability: 59,
			wantExplanation: "Slope: 1.00, Var: 0.7. Upward trend.",
		},
		{
			name:            "only the last ten snapshots count",
			pressures:       []float64{-90, 95, -90, 95, -90, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20},
			wantLevel:       domain.LevelModerate,
			wantProbability: 50,
			wantExplanation: "Slope: 0.00, Var: 0.0. Downward pressure.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForecastFrom(snapshotsWithPressure(tt.pressures...))
			if got.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", got.Level, tt.wantLevel)
			}
			if got.Probability != tt.wantProbability {
				t.Errorf("probability = %d, want %d", got.Probability, tt.wantProbability)
			}
			if got.Explanation != tt.wantExplanation {
				t.Errorf("explanation = %q, want %q", got.Explanation, tt.wantExplanation)
			}
		})
	}
}

func TestForecastProbabilityBounds(t *testing.T) {
	sequences := [][]float64{
		{-100, -100, -100},
		{100, 100, 100},
		{-100, 100, -100, 100, -100, 100},
		{0, 50, -50, 100, -100, 25, -25, 75, -75, 10, 90},
	}

	for _, seq := range sequences {
		got := ForecastFrom(snapshotsWithPressure(seq...))
		if got.Probability < 0 || got.Probability > 100 {
			t.Errorf("probability %d for %v outside [0, 100]", got.Probability, seq)
		}
	}
}

func TestFitTrendDegenerate(t *testing.T) {
	if _, ok := fitTrend(nil); ok {
		t.Error("fit of empty input should not be ok")
	}
	if _, ok := fitTrend([]float64{5}); ok {
		t.Error("fit of a single point should not be ok")
	}

	fit, ok := fitTrend([]float64{0, 10})
	if !ok {
		t.Fatal("fit of two points should be ok")
	}
	if fit.Slope != 10 {
		t.Errorf("slope = %v, want 10", fit.Slope)
	}
	if fit.Intercept != 0 {
		t.Errorf("intercept = %v, want 0", fit.Intercept)
	}
}
