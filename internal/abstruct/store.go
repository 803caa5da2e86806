package abstruct

import (
	"context"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

// Store is the persistence surface the poll engine and the web layer rely
// on. The production implementation lives in internal/storage.
type Store interface {
	// Matches.
	UpsertMatch(ctx context.Context, m *domain.MatchState) error
	MatchByID(ctx context.Context, id int64) (*domain.MatchState, error)
	LiveMatches(ctx context.Context) ([]*domain.MatchState, error)
	OpenMatches(ctx context.Context) ([]*domain.MatchState, error)
	FinishAbsentMatches(ctx context.Context, seenIDs []int64) error

	// Snapshots. LastSnapshot returns (nil, nil) when a match has none.
	InsertSnapshot(ctx context.Context, s *domain.Snapshot) error
	LastSnapshot(ctx context.Context, matchID int64) (*domain.Snapshot, error)
	SnapshotsAsc(ctx context.Context, matchID int64) ([]*domain.Snapshot, error)
	TrimSnapshots(ctx context.Context, matchID int64, keep int) error

	// Prediction game.
	CreateUser(ctx context.Context, username, referralCode, referredByCode string) (*domain.User, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
	UserByReferralCode(ctx context.Context, code string) (*domain.User, error)
	AddPoints(ctx context.Context, userID int64, points int) error
	InsertReferral(ctx context.Context, referrerID, referredID int64, bonusPoints int) error
	InsertPrediction(ctx context.Context, p *domain.Prediction) error
	PredictedMatchIDs(ctx context.Context, userID int64) (map[int64]bool, error)
	PendingPredictionsForFinished(ctx context.Context) ([]*domain.PendingPrediction, error)
	MarkPredictionScored(ctx context.Context, predictionID int64, points int) error
	Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
}
