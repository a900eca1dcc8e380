package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/padelclub/padel-league/config"
	"github.com/padelclub/padel-league/db"
	"github.com/padelclub/padel-league/handlers"
	"github.com/padelclub/padel-league/realtime"
	"github.com/padelclub/padel-league/repositories"
	api "github.com/padelclub/padel-league/routes"
	"github.com/padelclub/padel-league/services"
	"github.com/padelclub/padel-league/statesync"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Realtime hub: one room, the Masters aggregate.
	wsHub := realtime.NewHub(logger)
	go wsHub.Run()

	// Repositories.
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	shiftRepo := repositories.NewPostgresShiftRepository(dbConn)
	leagueMatchRepo := repositories.NewPostgresLeagueMatchRepository(dbConn)
	mastersRepo := repositories.NewPostgresMastersRepository(dbConn)

	// The mirror pushes every accepted aggregate snapshot to the hub, so
	// both local writes and remote ones (via the change feed) fan out to
	// connected clients the same way.
	mirror := statesync.NewMirror(func(snap statesync.Snapshot) {
		wsHub.Broadcast("MASTERS_STATE", map[string]interface{}{
			"state":    snap.State,
			"revision": snap.Revision,
		})
	})

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	feed := statesync.NewFeed(cfg.DatabaseURL, mastersRepo, mirror, logger)
	go func() {
		if err := feed.Run(feedCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("masters change feed stopped", slog.Any("error", err))
		}
	}()
	logger.Info("masters change feed started")

	// Services.
	playerService := services.NewPlayerService(playerRepo)
	shiftService := services.NewShiftService(shiftRepo)
	leagueService := services.NewLeagueService(leagueMatchRepo)
	mastersService := services.NewMastersService(mastersRepo, playerRepo, mirror)

	// HTTP handlers and routes.
	playerHandler := handlers.NewPlayerHandler(playerService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	leagueHandler := handlers.NewLeagueHandler(leagueService)
	mastersHandler := handlers.NewMastersHandler(mastersService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		playerHandler,
		shiftHandler,
		leagueHandler,
		mastersHandler,
		webSocketHandler,
		cfg.AllowedOrigins,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stopFeed()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
	}
	logger.Info("application exited")
}
