package momentum

import (
	"fmt"
	"math"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	"github.com/KaavyaOfficial/momentum-fc/pkg/tools"
)

const (
	forecastWindow     = 10
	minForecastSamples = 3
	maxVolatilityHit   = 20.0
)

// trendFit is the explicit value-or-fallback result of the regression, so
// the degenerate path is visible instead of hidden behind a recover.
type trendFit struct {
	Slope     float64
	Intercept float64
	Variance  float64
}

// fitTrend fits a first-degree least-squares line to ys against their index
// (x = 0,1,2,...) and computes the population variance of ys. ok is false
// when the fit degenerates (too few points or a non-finite result).
func fitTrend(ys []float64) (trendFit, bool) {
	n := float64(len(ys))
	if len(ys) < 2 {
		return trendFit{}, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return trendFit{}, false
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	mean := sumY / n
	var variance float64
	for _, y := range ys {
		d := y - mean
		variance += d * d
	}
	variance /= n

	fit := trendFit{Slope: slope, Intercept: intercept, Variance: variance}
	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return trendFit{}, false
	}
	return fit, true
}

// ForecastFrom derives a momentum forecast from the snapshot history,
// ordered oldest to newest. The last ten pressure values feed the fit; a
// high variance penalizes confidence.
func ForecastFrom(snapshots []*domain.Snapshot) domain.Forecast {
	if len(snapshots) < minForecastSamples {
		return domain.Forecast{
			Level:       domain.LevelInconclusive,
			Probability: 0,
			Explanation: "Insufficient data for trend analysis.",
		}
	}

	window := snapshots
	if len(window) > forecastWindow {
		window = window[len(window)-forecastWindow:]
	}
	ys := make([]float64, len(window))
	for i, s := range window {
		ys[i] = s.PressureIndex
	}

	fit, ok := fitTrend(ys)
	if !ok {
		return domain.Forecast{
			Level:       domain.LevelModerate,
			Probability: 50,
			Explanation: "Calculating...",
		}
	}

	volatilityPenalty := math.Min(fit.Variance/10.0, maxVolatilityHit)
	probability := tools.Clamp(50.0+fit.Slope*10.0-volatilityPenalty, 0.0, 100.0)

	level := domain.LevelLow
	if fit.Slope > 1 {
		level = domain.LevelHigh
	} else if fit.Slope > -1 {
		level = domain.LevelModerate
	}

	explanation := fmt.Sprintf("Slope: %.2f, Var: %.1f. ", fit.Slope, fit.Variance)
	if fit.Slope > 0 {
		explanation += "Upward trend."
	} else {
		explanation += "Downward pressure."
	}

	return domain.Forecast{
		Level:       level,
		Probability: int(probability),
		Explanation: explanation,
	}
}
