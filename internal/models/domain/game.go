package domain

import "time"

// Prediction outcomes.
const (
	OutcomeHome = "HOME"
	OutcomeDraw = "DRAW"
	OutcomeAway = "AWAY"
)

// Prediction statuses.
const (
	PredictionPending = "PENDING"
	PredictionScored  = "SCORED"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	ReferralCode   string    `json:"referralCode"`
	ReferredByCode string    `json:"referredByCode,omitempty"`
	Points         int       `json:"points"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Prediction struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	MatchID       int64     `json:"matchId"`
	Outcome       string    `json:"outcome"`
	HomeGoals     int       `json:"homeGoals"`
	AwayGoals     int       `json:"awayGoals"`
	PointsAwarded int       `json:"pointsAwarded"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Referral struct {
	ID             int64     `json:"id"`
	ReferrerUserID int64     `json:"referrerUserId"`
	ReferredUserID int64     `json:"referredUserId"`
	BonusPoints    int       `json:"bonusPoints"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// PendingPrediction joins a PENDING prediction with the final score of its
// FINISHED match for the scoring pass.
type PendingPrediction struct {
	Prediction
	ActualHome int `json:"actualHome"`
	ActualAway int `json:"actualAway"`
}

// Analysis holds the heuristic win probabilities shown on the per-match
// prediction page. Values are percentages summing to 100.
type Analysis struct {
	Home        int    `json:"home"`
	Draw        int    `json:"draw"`
	Away        int    `json:"away"`
	Explanation string `json:"explanation"`
}
