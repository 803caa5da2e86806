// Package momentum holds the in-match pressure, forecast and chart
// computations. Everything here is a pure function over domain types; the
// poll engine feeds it and the web layer reads it.
package momentum

import (
	"time"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	"github.com/KaavyaOfficial/momentum-fc/pkg/tools"
)

const (
	// FallbackMinute is used whenever the kickoff timestamp cannot be
	// parsed. A bad timestamp must never abort the poll cycle.
	FallbackMinute = 45

	minMinute = 1
	maxMinute = 120
)

// kickoffLayouts cover the feed's RFC3339 timestamps and the plain
// space-separated form the demo generator emits.
var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// EstimateMinute derives the elapsed match minute from the kickoff
// timestamp, clamped to [1, 120]. Malformed input yields FallbackMinute.
func EstimateMinute(utcDate string, now time.Time) int {
	if utcDate == "" {
		return FallbackMinute
	}

	var kickoff time.Time
	parsed := false
	for _, layout := range kickoffLayouts {
		if t, err := time.ParseInLocation(layout, utcDate, time.UTC); err == nil {
			kickoff = t
			parsed = true
			break
		}
	}
	if !parsed {
		return FallbackMinute
	}

	minute := int(now.Sub(kickoff).Minutes())
	if minute < minMinute {
		return minMinute
	}
	if minute > maxMinute {
		return maxMinute
	}
	return minute
}

// PressureIndex computes the bounded momentum scalar for the current
// observation. Only the immediately preceding snapshot is consulted; prev
// is nil on first observation.
//
//	base         = (minute / 90) * 20
//	score impact = clamp(scoreDiff * 30, -60, 60)
//	trend impact = +40 if home scored since prev, -40 if away scored
//	               (both may apply)
//	pressure     = clamp(base + score impact + trend impact, -100, 100)
func PressureIndex(minute, scoreHome, scoreAway int, prev *domain.Snapshot) float64 {
	base := float64(minute) / 90.0 * 20.0

	scoreDiff := float64(scoreHome - scoreAway)
	scoreImpact := tools.Clamp(scoreDiff*30.0, -60.0, 60.0)

	trendImpact := 0.0
	if prev != nil {
		if scoreHome > prev.ScoreHome {
			trendImpact += 40.0
		}
		if scoreAway > prev.ScoreAway {
			trendImpact -= 40.0
		}
	}

	return tools.Clamp(base+scoreImpact+trendImpact, -100.0, 100.0)
}
