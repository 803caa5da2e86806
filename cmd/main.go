package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "github.com/KaavyaOfficial/momentum-fc/internal/core"
	"github.com/KaavyaOfficial/momentum-fc/internal/web"
	"github.com/KaavyaOfficial/momentum-fc/pkg/logger"
)

func main() {
	appInit, err := app.InitApp()
	if err != nil {
		logger.NewLogger().Fatal("Failed to initialize: ", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := appInit.Store.Migrate(ctx); err != nil {
		appInit.Logger.Fatal("Migration failed: ", err)
	}

	hub := web.NewHub(appInit.Logger)
	appInit.Engine.SetBroadcast(hub.Broadcast())

	server, err := web.NewServer(
		appInit.Opts,
		appInit.Logger,
		appInit.Store,
		appInit.Cache,
		appInit.Engine,
		appInit.Client,
		hub,
	)
	if err != nil {
		appInit.Logger.Fatal("Failed to build server: ", err)
	}

	go hub.Run()
	go appInit.Sender.Start(appInit.Opts.KafkaTopic)
	go appInit.Engine.Start(ctx)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appInit.Logger.Fatal("Server failed: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	appInit.Logger.Info("Shutting down")
	cancel()
	server.Stop()
	appInit.Sender.Stop()
	if err := appInit.Store.Close(); err != nil {
		appInit.Logger.Error("Failed to close store: ", err)
	}
}
