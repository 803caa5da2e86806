package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/KaavyaOfficial/momentum-fc/internal/abstruct"
	"github.com/KaavyaOfficial/momentum-fc/internal/feed"
	"github.com/KaavyaOfficial/momentum-fc/internal/game"
	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	"github.com/KaavyaOfficial/momentum-fc/internal/models/eventdata"
	feedmodels "github.com/KaavyaOfficial/momentum-fc/internal/models/feed"
	"github.com/KaavyaOfficial/momentum-fc/internal/momentum"
	"github.com/KaavyaOfficial/momentum-fc/internal/options"
	"github.com/KaavyaOfficial/momentum-fc/internal/storage"
	"github.com/KaavyaOfficial/momentum-fc/pkg/constants"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

const eventBufferSize = 16

// Feed statuses shown on the live page and /api/status.
const (
	StatusUnknown         = "Unknown"
	StatusHealthy         = "Healthy"
	StatusDemoMode        = "Demo Mode"
	StatusAPIError        = "API Error"
	StatusConnectionError = "Connection Error"
)

type liveFeed interface {
	LiveMatches(ctx context.Context, competitions []int64) ([]*feedmodels.Match, error)
}

type demoFeed interface {
	Matches() []*feedmodels.Match
}

// Engine runs the poll cycle: fetch the live set, persist match state and
// pressure snapshots, settle predictions on finished matches, refresh the
// in-memory live cache and emit lifecycle events.
type Engine struct {
	logger *logger.Logger
	opts   *options.Options
	store  abstruct.Store
	cache  *storage.LiveCache
	feed   liveFeed
	demo   demoFeed

	eventChan chan []byte
	broadcast chan<- []byte

	mu     sync.RWMutex
	status domain.FeedStatus

	now func() time.Time
}

func NewEngine(l *logger.Logger, o *options.Options, store abstruct.Store, cache *storage.LiveCache, client liveFeed) *Engine {
	return &Engine{
		logger:    l,
		opts:      o,
		store:     store,
		cache:     cache,
		feed:      client,
		demo:      feed.NewDemoGenerator(),
		eventChan: make(chan []byte, eventBufferSize),
		status:    domain.FeedStatus{Status: StatusUnknown},
		now:       time.Now,
	}
}

// Events is the stream of marshaled lifecycle envelopes for the sender.
// It is closed when the engine stops.
func (e *Engine) Events() <-chan []byte {
	return e.eventChan
}

// SetBroadcast wires the WebSocket hub's inbound channel. Broadcasting is
// best effort: a full channel drops the payload rather than stalling the
// poll cycle.
func (e *Engine) SetBroadcast(ch chan<- []byte) {
	e.broadcast = ch
}

// Status returns the latest feed health reading.
func (e *Engine) Status() domain.FeedStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Start polls on the configured interval until the context is cancelled.
// The first cycle runs immediately so pages have data right after boot.
func (e *Engine) Start(ctx context.Context) {
	interval := time.Duration(e.opts.PollIntervalSeconds) * time.Second
	e.logger.Info("Starting poll engine, interval: ", interval)

	if err := e.RunOnce(ctx); err != nil {
		e.logger.Warn("Poll cycle failed: ", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Poll engine stopped")
			close(e.eventChan)
			return
		case <-ticker.C:
			if err := e.RunOnce(ctx); err != nil {
				e.logger.Warn("Poll cycle failed: ", err)
			}
		}
	}
}

// RunOnce executes a single poll cycle. A feed failure aborts the cycle
// before any write so stored state never reflects a partial response.
func (e *Engine) RunOnce(ctx context.Context) error {
	now := e.now().UTC()

	var records []*feedmodels.Match
	demoMode := e.opts.DemoMode()
	if demoMode {
		records = e.demo.Matches()
	} else {
		var err error
		records, err = e.feed.LiveMatches(ctx, e.opts.Competitions)
		if err != nil {
			status := StatusConnectionError
			var apiErr *feed.APIError
			if errors.As(err, &apiErr) {
				status = StatusAPIError
			}
			e.setStatus(status, err.Error(), now)
			return err
		}
	}

	records = feed.FilterByCompetition(records, e.opts.Competitions)

	prevLive := make(map[int64]bool, e.cache.Len())
	for _, entry := range e.cache.All() {
		prevLive[entry.Match.ID] = true
	}

	seenIDs := make([]int64, 0, len(records))
	entries := make([]*storage.LiveEntry, 0, len(records))
	var created, updated []*domain.MatchState
	var snapshots []*domain.Snapshot

	for _, rec := range records {
		m := feed.Normalize(rec)
		m.LastUpdated = now
		seenIDs = append(seenIDs, m.ID)

		prev, err := e.store.LastSnapshot(ctx, m.ID)
		if err != nil {
			e.logger.Error("Failed to load last snapshot for match ", m.ID, ": ", err)
			continue
		}

		if err := e.store.UpsertMatch(ctx, m); err != nil {
			e.logger.Error("Failed to upsert match ", m.ID, ": ", err)
			continue
		}

		minute := momentum.EstimateMinute(m.UTCDate, now)
		pressure := momentum.PressureIndex(minute, m.ScoreHome, m.ScoreAway, prev)

		snap := &domain.Snapshot{
			MatchID:       m.ID,
			CapturedAt:    now,
			Minute:        minute,
			ScoreHome:     m.ScoreHome,
			ScoreAway:     m.ScoreAway,
			PressureIndex: pressure,
		}
		if err := e.store.InsertSnapshot(ctx, snap); err != nil {
			e.logger.Error("Failed to insert snapshot for match ", m.ID, ": ", err)
		} else {
			snapshots = append(snapshots, snap)
			if err := e.store.TrimSnapshots(ctx, m.ID, e.opts.SnapshotCap); err != nil {
				e.logger.Error("Failed to trim snapshots for match ", m.ID, ": ", err)
			}
		}

		if prev == nil {
			created = append(created, m)
		} else {
			updated = append(updated, m)
		}
		entries = append(entries, &storage.LiveEntry{Match: m, Pressure: pressure})
		delete(prevLive, m.ID)
	}

	if err := e.store.FinishAbsentMatches(ctx, seenIDs); err != nil {
		e.logger.Error("Failed to finish absent matches: ", err)
	}

	finished := make([]int64, 0, len(prevLive))
	for id := range prevLive {
		finished = append(finished, id)
	}

	e.scorePredictions(ctx)
	e.cache.Replace(entries)

	if demoMode {
		e.setStatus(StatusDemoMode, "", now)
	} else {
		e.setStatus(StatusHealthy, "", now)
	}

	e.emitEvents(created, updated, finished, snapshots)
	e.broadcastLive(entries)

	return nil
}

// scorePredictions settles every pending prediction whose match finished.
func (e *Engine) scorePredictions(ctx context.Context) {
	pending, err := e.store.PendingPredictionsForFinished(ctx)
	if err != nil {
		e.logger.Error("Failed to load pending predictions: ", err)
		return
	}

	for _, p := range pending {
		points := game.ScorePoints(p)
		if err := e.store.MarkPredictionScored(ctx, p.ID, points); err != nil {
			e.logger.Error("Failed to mark prediction ", p.ID, " scored: ", err)
			continue
		}
		if points > 0 {
			if err := e.store.AddPoints(ctx, p.UserID, points); err != nil {
				e.logger.Error("Failed to award points to user ", p.UserID, ": ", err)
			}
		}
	}
}

func (e *Engine) setStatus(status, errMsg string, at time.Time) {
	e.mu.Lock()
	e.status = domain.FeedStatus{Status: status, LastCheck: at, Error: errMsg}
	e.mu.Unlock()
}

func (e *Engine) emitEvents(created, updated []*domain.MatchState, finished []int64, snapshots []*domain.Snapshot) {
	if len(created) > 0 {
		e.emit(eventdata.Match{EventType: constants.MATCH_NEW, Source: constants.SOURCE, Data: created})
	}
	if len(updated) > 0 {
		e.emit(eventdata.MatchUpd{EventType: constants.MATCH_UPDATE, Source: constants.SOURCE, Data: updated})
	}
	if len(finished) > 0 {
		e.emit(eventdata.FinishedMatch{EventType: constants.MATCH_FINISHED, Source: constants.SOURCE, Data: finished})
	}
	if len(snapshots) > 0 {
		e.emit(eventdata.SnapshotNew{EventType: constants.SNAPSHOT_NEW, Source: constants.SOURCE, Data: snapshots})
	}
}

func (e *Engine) emit(envelope interface{}) {
	data, err := sonic.Marshal(envelope)
	if err != nil {
		e.logger.Error("Failed to marshal event: ", err)
		return
	}
	select {
	case e.eventChan <- data:
	default:
		e.logger.Warn("Event buffer full, dropping event")
	}
}

type liveMatchPayload struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ScoreHome int     `json:"scoreHome"`
	ScoreAway int     `json:"scoreAway"`
	Pressure  float64 `json:"pressure"`
}

type livePayload struct {
	Type    string              `json:"type"`
	Matches []*liveMatchPayload `json:"matches"`
}

func (e *Engine) broadcastLive(entries []*storage.LiveEntry) {
	if e.broadcast == nil {
		return
	}

	payload := livePayload{Type: "live_update", Matches: make([]*liveMatchPayload, 0, len(entries))}
	for _, entry := range entries {
		payload.Matches = append(payload.Matches, &liveMatchPayload{
			ID:        entry.Match.ID,
			Name:      entry.Match.Name,
			ScoreHome: entry.Match.ScoreHome,
			ScoreAway: entry.Match.ScoreAway,
			Pressure:  entry.Pressure,
		})
	}

	data, err := sonic.Marshal(payload)
	if err != nil {
		e.logger.Error("Failed to marshal live payload: ", err)
		return
	}
	select {
	case e.broadcast <- data:
	default:
	}
}
