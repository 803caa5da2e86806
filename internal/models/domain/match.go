package domain

import (
	"time"
)

// Match statuses as delivered by the upstream feed. Values outside this set
// are carried through as opaque strings.
const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusLive      = "LIVE"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusStarting  = "STARTING"
)

// ActiveStatuses are the statuses that mark a match as currently tracked.
// A tracked match that disappears from the feed is flipped to FINISHED.
var ActiveStatuses = []string{StatusLive, StatusInPlay, StatusTimed, StatusStarting}

// MatchState is the canonical per-match record. Created on first sighting
// in the feed, updated in place on every poll cycle, never deleted.
type MatchState struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	Status      string    `json:"status"`
	UTCDate     string    `json:"utcDate"`
	ScoreHome   int       `json:"scoreHome"`
	ScoreAway   int       `json:"scoreAway"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (m *MatchState) IsLive() bool {
	return m.Status == StatusLive || m.Status == StatusInPlay || m.Status == StatusPaused
}

// Snapshot is one timestamped observation of a match's minute, score and
// pressure index. Append-only; trimmed by recency, never mutated.
type Snapshot struct {
	ID            int64     `json:"id"`
	MatchID       int64     `json:"matchId"`
	CapturedAt    time.Time `json:"capturedAt"`
	Minute        int       `json:"minute"`
	ScoreHome     int       `json:"scoreHome"`
	ScoreAway     int       `json:"scoreAway"`
	PressureIndex float64   `json:"pressureIndex"`
}

// Forecast levels.
const (
	LevelInconclusive = "Inconclusive"
	LevelLow          = "Low"
	LevelModerate     = "Moderate"
	LevelHigh         = "High"
)

// Forecast is a directional confidence estimate derived from the recent
// pressure-index trend.
type Forecast struct {
	Level       string `json:"level"`
	Probability int    `json:"probability"`
	Explanation string `json:"explanation"`
}

// FeedStatus is the explicit result of the most recent poll cycle, owned by
// the engine and read by the web layer.
type FeedStatus struct {
	Status    string    `json:"status"`
	LastCheck time.Time `json:"lastCheck"`
	Error     string    `json:"error,omitempty"`
}
