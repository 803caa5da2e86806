// Package game implements the prediction mini-game: point scoring for
// settled predictions, referral codes and bonuses, and the heuristic
// win-probability split shown on prediction pages.
package game

import (
	"crypto/rand"
	"fmt"
	"math"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

// Point awards.
const (
	PointsOutcome    = 100
	PointsDrawBonus  = 120
	PointsExactScore = 200
	PointsReferral   = 50
)

const referralCodeLength = 8

const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferralCode returns a random 8-character code over A-Z0-9.
func GenerateReferralCode() (string, error) {
	buf := make([]byte, referralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating referral code: %w", err)
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(buf), nil
}

// ActualOutcome classifies a final score.
func ActualOutcome(home, away int) string {
	switch {
	case home > away:
		return domain.OutcomeHome
	case away > home:
		return domain.OutcomeAway
	default:
		return domain.OutcomeDraw
	}
}

// ScorePoints settles one prediction against a final score. A correct
// outcome is worth 100 points, 120 when that outcome is a draw, and an
// exact scoreline adds 200 on top.
func ScorePoints(p *domain.PendingPrediction) int {
	actual := ActualOutcome(p.ActualHome, p.ActualAway)
	if p.Outcome != actual {
		return 0
	}

	points := PointsOutcome
	if actual == domain.OutcomeDraw {
		points = PointsDrawBonus
	}
	if p.HomeGoals == p.ActualHome && p.AwayGoals == p.ActualAway {
		points += PointsExactScore
	}
	return points
}

// WinProbabilities turns the current pressure index into a rough
// three-way split. Positive pressure shifts weight from the away side to
// the home side; the draw share absorbs rounding so the three values
// always sum to 100.
func WinProbabilities(pressure float64) domain.Analysis {
	home := 33 + pressure*0.3
	away := 33 - pressure*0.3
	draw := 100 - home - away

	total := home + away + draw
	h := int(math.Trunc(home / total * 100))
	a := int(math.Trunc(away / total * 100))
	d := 100 - h - a

	return domain.Analysis{
		Home:        h,
		Draw:        d,
		Away:        a,
		Explanation: "Based on current momentum slope and pressure intensity.",
	}
}
