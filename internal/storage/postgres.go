package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

// ErrDuplicate marks a unique-constraint violation (username taken,
// prediction already placed).
var ErrDuplicate = errors.New("duplicate record")

// PostgresStore manages the connection to PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewPostgresStore opens and verifies a PostgreSQL connection.
func NewPostgresStore(connectionString string, logger *logger.Logger) (*PostgresStore, error) {
	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	logger.Info("Successfully connected to PostgreSQL database")
	return &PostgresStore{db: db, logger: logger}, nil
}

// Migrate creates the schema if it does not exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			status TEXT NOT NULL,
			utc_date TEXT NOT NULL DEFAULT '',
			score_home INTEGER NOT NULL DEFAULT 0,
			score_away INTEGER NOT NULL DEFAULT 0,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT NOT NULL REFERENCES matches(id),
			captured_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			minute INTEGER NOT NULL,
			score_home INTEGER NOT NULL,
			score_away INTEGER NOT NULL,
			pressure_index DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_match_captured ON snapshots(match_id, captured_at)`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			referral_code TEXT UNIQUE NOT NULL,
			referred_by_code TEXT,
			points INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS predictions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			match_id BIGINT NOT NULL,
			predicted_outcome TEXT NOT NULL,
			predicted_home_goals INTEGER NOT NULL DEFAULT 0,
			predicted_away_goals INTEGER NOT NULL DEFAULT 0,
			points_awarded INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, match_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_status ON predictions(status)`,

		`CREATE TABLE IF NOT EXISTS referrals (
			id BIGSERIAL PRIMARY KEY,
			referrer_user_id BIGINT NOT NULL REFERENCES users(id),
			referred_user_id BIGINT NOT NULL REFERENCES users(id),
			bonus_points INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := p.db.ExecContext(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}

// UpsertMatch inserts a match on first sighting and refreshes status,
// score and last_updated thereafter.
func (p *PostgresStore) UpsertMatch(ctx context.Context, m *domain.MatchState) error {
	if m == nil {
		return errors.New("match is nil")
	}

	query := `
		INSERT INTO matches (id, name, home_team, away_team, status, utc_date, score_home, score_away, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
			score_home = EXCLUDED.score_home,
			score_away = EXCLUDED.score_away,
			last_updated = CURRENT_TIMESTAMP
	`

	_, err := p.db.ExecContext(ctx, query,
		m.ID, m.Name, m.HomeTeam, m.AwayTeam, m.Status, m.UTCDate, m.ScoreHome, m.ScoreAway)
	return err
}

func (p *PostgresStore) MatchByID(ctx context.Context, id int64) (*domain.MatchState, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, name, home_team, away_team, status, utc_date, score_home, score_away, last_updated
		FROM matches WHERE id = $1`, id)

	m := &domain.MatchState{}
	err := row.Scan(&m.ID, &m.Name, &m.HomeTeam, &m.AwayTeam, &m.Status, &m.UTCDate,
		&m.ScoreHome, &m.ScoreAway, &m.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LiveMatches returns the matches currently in play, most recently updated
// first.
func (p *PostgresStore) LiveMatches(ctx context.Context) ([]*domain.MatchState, error) {
	return p.queryMatches(ctx, `
		SELECT id, name, home_team, away_team, status, utc_date, score_home, score_away, last_updated
		FROM matches
		WHERE status IN ('LIVE', 'IN_PLAY', 'PAUSED')
		ORDER BY last_updated DESC`)
}

// OpenMatches returns the matches still available for prediction, earliest
// kickoff first.
func (p *PostgresStore) OpenMatches(ctx context.Context) ([]*domain.MatchState, error) {
	return p.queryMatches(ctx, `
		SELECT id, name, home_team, away_team, status, utc_date, score_home, score_away, last_updated
		FROM matches
		WHERE status IN ('LIVE', 'IN_PLAY', 'PAUSED', 'SCHEDULED', 'TIMED')
		ORDER BY utc_date ASC`)
}

func (p *PostgresStore) queryMatches(ctx context.Context, query string, args ...any) ([]*domain.MatchState, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.MatchState
	for rows.Next() {
		m := &domain.MatchState{}
		if err := rows.Scan(&m.ID, &m.Name, &m.HomeTeam, &m.AwayTeam, &m.Status, &m.UTCDate,
			&m.ScoreHome, &m.ScoreAway, &m.LastUpdated); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// FinishAbsentMatches flips previously active matches that are missing from
// the current feed response to FINISHED.
func (p *PostgresStore) FinishAbsentMatches(ctx context.Context, seenIDs []int64) error {
	const activeStatuses = `('LIVE', 'IN_PLAY', 'TIMED', 'STARTING')`

	if len(seenIDs) == 0 {
		_, err := p.db.ExecContext(ctx,
			`UPDATE matches SET status = 'FINISHED' WHERE status IN `+activeStatuses)
		return err
	}

	_, err := p.db.ExecContext(ctx,
		`UPDATE matches SET status = 'FINISHED' WHERE status IN `+activeStatuses+` AND NOT (id = ANY($1))`,
		int64Array(seenIDs))
	return err
}

func (p *PostgresStore) InsertSnapshot(ctx context.Context, s *domain.Snapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}

	query := `
		INSERT INTO snapshots (match_id, minute, score_home, score_away, pressure_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, captured_at
	`
	return p.db.QueryRowContext(ctx, query,
		s.MatchID, s.Minute, s.ScoreHome, s.ScoreAway, s.PressureIndex).Scan(&s.ID, &s.CapturedAt)
}

// LastSnapshot returns the most recent snapshot for a match, or (nil, nil)
// when none exists yet.
func (p *PostgresStore) LastSnapshot(ctx context.Context, matchID int64) (*domain.Snapshot, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, match_id, captured_at, minute, score_home, score_away, pressure_index
		FROM snapshots
		WHERE match_id = $1
		ORDER BY captured_at DESC, id DESC
		LIMIT 1`, matchID)

	s := &domain.Snapshot{}
	err := row.Scan(&s.ID, &s.MatchID, &s.CapturedAt, &s.Minute, &s.ScoreHome, &s.ScoreAway, &s.PressureIndex)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SnapshotsAsc returns the full retained history for a match, oldest first.
func (p *PostgresStore) SnapshotsAsc(ctx context.Context, matchID int64) ([]*domain.Snapshot, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, match_id, captured_at, minute, score_home, score_away, pressure_index
		FROM snapshots
		WHERE match_id = $1
		ORDER BY captured_at ASC, id ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*domain.Snapshot
	for rows.Next() {
		s := &domain.Snapshot{}
		if err := rows.Scan(&s.ID, &s.MatchID, &s.CapturedAt, &s.Minute, &s.ScoreHome, &s.ScoreAway, &s.PressureIndex); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// TrimSnapshots deletes everything but the keep most recent snapshots of a
// match.
func (p *PostgresStore) TrimSnapshots(ctx context.Context, matchID int64, keep int) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE match_id = $1 AND id NOT IN (
			SELECT id FROM snapshots
			WHERE match_id = $1
			ORDER BY captured_at DESC, id DESC
			LIMIT $2
		)`, matchID, keep)
	return err
}

func (p *PostgresStore) CreateUser(ctx context.Context, username, referralCode, referredByCode string) (*domain.User, error) {
	u := &domain.User{
		Username:       username,
		ReferralCode:   referralCode,
		ReferredByCode: referredByCode,
	}

	var referredBy sql.NullString
	if referredByCode != "" {
		referredBy = sql.NullString{String: referredByCode, Valid: true}
	}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO users (username, referral_code, referred_by_code)
		VALUES ($1, $2, $3)
		RETURNING id, points, created_at`,
		username, referralCode, referredBy).Scan(&u.ID, &u.Points, &u.CreatedAt)
	if err != nil {
		return nil, wrapDuplicate(err)
	}
	return u, nil
}

func (p *PostgresStore) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return p.queryUser(ctx, `WHERE username = $1`, username)
}

func (p *PostgresStore) UserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return p.queryUser(ctx, `WHERE referral_code = $1`, code)
}

func (p *PostgresStore) queryUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, username, referral_code, COALESCE(referred_by_code, ''), points, created_at
		FROM users `+where, arg)

	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.ReferralCode, &u.ReferredByCode, &u.Points, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (p *PostgresStore) AddPoints(ctx context.Context, userID int64, points int) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE users SET points = points + $1 WHERE id = $2`, points, userID)
	return err
}

func (p *PostgresStore) InsertReferral(ctx context.Context, referrerID, referredID int64, bonusPoints int) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO referrals (referrer_user_id, referred_user_id, bonus_points)
		VALUES ($1, $2, $3)`, referrerID, referredID, bonusPoints)
	return err
}

func (p *PostgresStore) InsertPrediction(ctx context.Context, pr *domain.Prediction) error {
	if pr == nil {
		return errors.New("prediction is nil")
	}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO predictions (user_id, match_id, predicted_outcome, predicted_home_goals, predicted_away_goals)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at`,
		pr.UserID, pr.MatchID, pr.Outcome, pr.HomeGoals, pr.AwayGoals).Scan(&pr.ID, &pr.Status, &pr.CreatedAt)
	return wrapDuplicate(err)
}

func (p *PostgresStore) PredictedMatchIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT match_id FROM predictions WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// PendingPredictionsForFinished returns every PENDING prediction whose
// match has FINISHED, joined with the final score.
func (p *PostgresStore) PendingPredictionsForFinished(ctx context.Context) ([]*domain.PendingPrediction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.match_id, p.predicted_outcome,
			p.predicted_home_goals, p.predicted_away_goals,
			m.score_home, m.score_away
		FROM predictions p
		JOIN matches m ON p.match_id = m.id
		WHERE p.status = 'PENDING' AND m.status = 'FINISHED'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []*domain.PendingPrediction
	for rows.Next() {
		pp := &domain.PendingPrediction{}
		if err := rows.Scan(&pp.ID, &pp.UserID, &pp.MatchID, &pp.Outcome,
			&pp.HomeGoals, &pp.AwayGoals, &pp.ActualHome, &pp.ActualAway); err != nil {
			return nil, err
		}
		pending = append(pending, pp)
	}
	return pending, rows.Err()
}

func (p *PostgresStore) MarkPredictionScored(ctx context.Context, predictionID int64, points int) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE predictions SET points_awarded = $1, status = 'SCORED' WHERE id = $2`,
		points, predictionID)
	return err
}

func (p *PostgresStore) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT username, points FROM users ORDER BY points DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LeaderboardEntry
	for rows.Next() {
		e := &domain.LeaderboardEntry{}
		if err := rows.Scan(&e.Username, &e.Points); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection.
func (p *PostgresStore) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// DB exposes the underlying handle for diagnostics tooling.
func (p *PostgresStore) DB() *sql.DB {
	return p.db
}

func wrapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// int64Array adapts an id slice to the driver's array binding.
func int64Array(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}
