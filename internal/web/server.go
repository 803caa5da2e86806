// Package web serves the rendered pages, the JSON API and the live
// WebSocket stream.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/KaavyaOfficial/momentum-fc/internal/abstruct"
	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	feedmodels "github.com/KaavyaOfficial/momentum-fc/internal/models/feed"
	"github.com/KaavyaOfficial/momentum-fc/internal/options"
	"github.com/KaavyaOfficial/momentum-fc/internal/storage"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

type statusSource interface {
	Status() domain.FeedStatus
}

type upcomingSource interface {
	UpcomingMatches(ctx context.Context, competitions []int64, daysAhead int) ([]*feedmodels.Match, error)
}

type Server struct {
	opts       *options.Options
	logger     *logger.Logger
	store      abstruct.Store
	cache      *storage.LiveCache
	status     statusSource
	upcoming   upcomingSource
	hub        *Hub
	pages      pageSet
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

func NewServer(
	opts *options.Options,
	l *logger.Logger,
	store abstruct.Store,
	cache *storage.LiveCache,
	status statusSource,
	upcoming upcomingSource,
	hub *Hub,
) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:     opts,
		logger:   l,
		store:    store,
		cache:    cache,
		status:   status,
		upcoming: upcoming,
		hub:      hub,
		pages:    pages,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// Router builds the full route table, CORS included.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleHome).Methods("GET")
	router.HandleFunc("/live", s.handleLive).Methods("GET")
	router.HandleFunc("/match/{id:[0-9]+}", s.handleMatch).Methods("GET")
	router.HandleFunc("/predict", s.handlePredict).Methods("GET", "POST")
	router.HandleFunc("/predict/{id:[0-9]+}", s.handlePredictMatch).Methods("GET")
	router.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")
	router.HandleFunc("/upcoming", s.handleUpcoming).Methods("GET")
	router.HandleFunc("/about", s.handleAbout).Methods("GET")
	router.HandleFunc("/ref/{code}", s.handleReferral).Methods("GET")
	router.HandleFunc("/toggle-follow/{id:[0-9]+}", s.handleToggleFollow).Methods("GET")
	router.HandleFunc("/set_theme", s.handleSetTheme).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/snapshots", s.handleSnapshots).Methods("GET")

	router.HandleFunc("/ws", s.handleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(router)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.opts.Port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Listening on :", s.opts.Port)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server shutdown error: ", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade error: ", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}
