package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"

	"github.com/KaavyaOfficial/momentum-fc/internal/game"
	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	feedmodels "github.com/KaavyaOfficial/momentum-fc/internal/models/feed"
	"github.com/KaavyaOfficial/momentum-fc/internal/momentum"
	"github.com/KaavyaOfficial/momentum-fc/internal/storage"
)

const (
	leaderboardLimit  = 50
	upcomingDaysAhead = 7
	recentSnapshots   = 12
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home", struct {
		Theme    string
		Username string
		Status   domain.FeedStatus
	}{themeOf(r), cookieValue(r, cookieUsername), s.status.Status()})
}

type liveMatchView struct {
	Match      *domain.MatchState
	Pressure   float64
	Sparkline  template.HTML
	IsFollowed bool
	SecondsAgo int
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	followed := followedSet(r)
	now := time.Now().UTC()

	entries := s.cache.All()
	if len(entries) == 0 {
		// Cold cache right after boot, fall back to stored state.
		matches, err := s.store.LiveMatches(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, m := range matches {
			entry := &storage.LiveEntry{Match: m}
			if snap, err := s.store.LastSnapshot(r.Context(), m.ID); err == nil && snap != nil {
				entry.Pressure = snap.PressureIndex
			}
			entries = append(entries, entry)
		}
	}

	views := make([]*liveMatchView, 0, len(entries))
	for _, entry := range entries {
		snaps, err := s.store.SnapshotsAsc(r.Context(), entry.Match.ID)
		if err != nil {
			s.logger.Error("Failed to load snapshots for match ", entry.Match.ID, ": ", err)
		}
		views = append(views, &liveMatchView{
			Match:      entry.Match,
			Pressure:   entry.Pressure,
			Sparkline:  template.HTML(momentum.Sparkline(snaps)),
			IsFollowed: followed[strconv.FormatInt(entry.Match.ID, 10)],
			SecondsAgo: int(now.Sub(entry.Match.LastUpdated).Seconds()),
		})
	}

	var featured *liveMatchView
	if len(views) > 0 {
		featured = views[0]
	}

	s.render(w, "live", struct {
		Theme    string
		Matches  []*liveMatchView
		Featured *liveMatchView
	}{themeOf(r), views, featured})
}

type matchEvent struct {
	Time  string
	Event string
	Desc  string
}

// Placeholder timeline until a per-event feed is wired in.
var demoEvents = []matchEvent{
	{"85'", "Substitution", "Fresh legs for the final push."},
	{"72'", "Yellow Card", "High intensity foul."},
	{"45'", "Half Time", "Teams regrouping."},
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	match, err := s.store.MatchByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if match == nil {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	snaps, err := s.store.SnapshotsAsc(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Most recent first, capped for the table.
	recent := make([]*domain.Snapshot, 0, recentSnapshots)
	for i := len(snaps) - 1; i >= 0 && len(recent) < recentSnapshots; i-- {
		recent = append(recent, snaps[i])
	}

	var pressure float64
	if len(snaps) > 0 {
		pressure = snaps[len(snaps)-1].PressureIndex
	}

	s.render(w, "match", struct {
		Theme      string
		Match      *domain.MatchState
		Snapshots  []*domain.Snapshot
		Chart      template.HTML
		Forecast   domain.Forecast
		Pressure   float64
		IsFollowed bool
		Events     []matchEvent
	}{
		themeOf(r),
		match,
		recent,
		template.HTML(momentum.Chart(snaps)),
		momentum.ForecastFrom(snaps),
		pressure,
		followedSet(r)[strconv.FormatInt(id, 10)],
		demoEvents,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handlePredictPost(w, r)
		return
	}

	username := cookieValue(r, cookieUsername)
	if username == "" {
		s.render(w, "predict_reg", struct{ Theme string }{themeOf(r)})
		return
	}

	user, err := s.store.UserByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		// Stale cookie, re-register.
		s.render(w, "predict_reg", struct{ Theme string }{themeOf(r)})
		return
	}

	open, err := s.store.OpenMatches(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	predicted, err := s.store.PredictedMatchIDs(r.Context(), user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	available := make([]*domain.MatchState, 0, len(open))
	for _, m := range open {
		if !predicted[m.ID] {
			available = append(available, m)
		}
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	s.render(w, "predict_list", struct {
		Theme   string
		User    *domain.User
		Matches []*domain.MatchState
		RefLink string
	}{themeOf(r), user, available, scheme + "://" + r.Host + "/ref/" + user.ReferralCode})
}

func (s *Server) handlePredictPost(w http.ResponseWriter, r *http.Request) {
	username := cookieValue(r, cookieUsername)
	if username == "" {
		s.registerUser(w, r)
		return
	}

	user, err := s.store.UserByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Redirect(w, r, "/predict", http.StatusFound)
		return
	}

	matchID, _ := strconv.ParseInt(r.FormValue("match_id"), 10, 64)
	homeGoals, _ := strconv.Atoi(r.FormValue("home_goals"))
	awayGoals, _ := strconv.Atoi(r.FormValue("away_goals"))

	p := &domain.Prediction{
		UserID:    user.ID,
		MatchID:   matchID,
		Outcome:   r.FormValue("outcome"),
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		Status:    domain.PredictionPending,
	}
	if err := s.store.InsertPrediction(r.Context(), p); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			http.Error(w, "You already predicted this match!", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/predict", http.StatusFound)
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	candidate := strings.TrimSpace(r.FormValue("username"))
	if len(candidate) < 3 || len(candidate) > 20 {
		http.Error(w, "Username must be 3-20 characters", http.StatusBadRequest)
		return
	}

	code, err := game.GenerateReferralCode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	referredBy := cookieValue(r, cookieReferred)
	user, err := s.store.CreateUser(r.Context(), candidate, code, referredBy)
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		// Already registered, just log them back in.
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		if referredBy != "" {
			s.awardReferral(r, referredBy, user.ID)
		}
	}

	setCookie(w, cookieUsername, candidate, yearSeconds)
	http.Redirect(w, r, "/predict", http.StatusFound)
}

func (s *Server) awardReferral(r *http.Request, code string, referredID int64) {
	referrer, err := s.store.UserByReferralCode(r.Context(), code)
	if err != nil || referrer == nil {
		return
	}
	if err := s.store.AddPoints(r.Context(), referrer.ID, game.PointsReferral); err != nil {
		s.logger.Error("Failed to award referral points: ", err)
		return
	}
	if err := s.store.InsertReferral(r.Context(), referrer.ID, referredID, game.PointsReferral); err != nil {
		s.logger.Error("Failed to record referral: ", err)
	}
}

func (s *Server) handlePredictMatch(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	match, err := s.store.MatchByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if match == nil {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	snap, err := s.store.LastSnapshot(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var pressure float64
	if snap != nil {
		pressure = snap.PressureIndex
	}

	s.render(w, "predict", struct {
		Theme    string
		Match    *domain.MatchState
		Analysis domain.Analysis
	}{themeOf(r), match, game.WinProbabilities(pressure)})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Leaderboard(r.Context(), leaderboardLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.render(w, "leaderboard", struct {
		Theme           string
		Users           []*domain.LeaderboardEntry
		CurrentUsername string
	}{themeOf(r), users, cookieValue(r, cookieUsername)})
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Theme   string
		Matches []*feedmodels.Match
		Note    string
	}{Theme: themeOf(r)}

	if s.opts.DemoMode() {
		data.Note = "API Key required for upcoming matches."
	} else {
		matches, err := s.upcoming.UpcomingMatches(r.Context(), s.opts.Competitions, upcomingDaysAhead)
		if err != nil {
			s.logger.Error("Failed to fetch upcoming matches: ", err)
		} else {
			data.Matches = matches
		}
	}

	s.render(w, "upcoming", data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about", struct{ Theme string }{themeOf(r)})
}

func (s *Server) handleReferral(w http.ResponseWriter, r *http.Request) {
	setCookie(w, cookieReferred, mux.Vars(r)["code"], hourSeconds)
	http.Redirect(w, r, "/predict", http.StatusFound)
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	followed := followedIDs(r)

	next := make([]string, 0, len(followed)+1)
	removed := false
	for _, f := range followed {
		if f == id {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if !removed {
		next = append(next, id)
	}

	setCookie(w, cookieFollowed, strings.Join(next, ","), yearSeconds)

	target := r.Referer()
	if target == "" {
		target = "/live"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	theme := r.FormValue("theme")
	if theme == "" {
		theme = defaultTheme
	}
	setCookie(w, cookieTheme, theme, yearSeconds)

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"feed":        s.status.Status(),
		"liveMatches": s.cache.Len(),
		"demoMode":    s.opts.DemoMode(),
	})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	snaps, err := s.store.SnapshotsAsc(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"matchId":   id,
		"snapshots": snaps,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
