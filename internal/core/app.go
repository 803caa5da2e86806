package core

import (
	"github.com/KaavyaOfficial/momentum-fc/internal/abstruct"
	"github.com/KaavyaOfficial/momentum-fc/internal/feed"
	"github.com/KaavyaOfficial/momentum-fc/internal/options"
	"github.com/KaavyaOfficial/momentum-fc/internal/storage"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

type App struct {
	Opts   *options.Options
	Logger *logger.Logger
	Store  *storage.PostgresStore
	Cache  *storage.LiveCache
	Client *feed.Client
	Engine *Engine
	Sender abstruct.Sender
}

func InitApp() (*App, error) {
	l := logger.NewLogger()

	o, err := options.NewOptions()
	if err != nil {
		return nil, err
	}
	if o.LogPath != "" {
		l.SetPath(o.LogPath)
	}
	if o.DemoMode() {
		l.Warn("No API token configured, running in demo mode")
	}

	store, err := storage.NewPostgresStore(o.DatabaseURL, l)
	if err != nil {
		return nil, err
	}

	cache := storage.NewLiveCache()
	client := feed.NewClient(o)
	engine := NewEngine(l, o, store, cache, client)

	var sender abstruct.Sender
	if o.KafkaEnabled {
		sender = NewSenderKafka(l, o, engine.Events())
	} else {
		sender = NewNoopSender(l, engine.Events())
	}

	return &App{
		Opts:   o,
		Logger: l,
		Store:  store,
		Cache:  cache,
		Client: client,
		Engine: engine,
		Sender: sender,
	}, nil
}
