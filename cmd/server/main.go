package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/tic-tac-toe-solo/internal/api/controller"
	"ctchen222/tic-tac-toe-solo/internal/api/service"
	"ctchen222/tic-tac-toe-solo/internal/bot"
	"ctchen222/tic-tac-toe-solo/internal/config"
	"ctchen222/tic-tac-toe-solo/internal/db"
	"ctchen222/tic-tac-toe-solo/internal/logger"
	"ctchen222/tic-tac-toe-solo/internal/server"
	"ctchen222/tic-tac-toe-solo/internal/session"
	"ctchen222/tic-tac-toe-solo/internal/telemetry"
	"ctchen222/tic-tac-toe-solo/web"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./config.yml", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Initialize telemetry before the logger so the log bridge picks up the provider
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Create the session store
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.Session.TTL)
	default:
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	// Create the opponent
	corners, err := bot.ParseCornerPolicy(cfg.CornerSelection)
	if err != nil {
		return err
	}
	analyzer, err := bot.NewAnalyzer(cfg.Probabilities(), bot.WithCornerPolicy(corners))
	if err != nil {
		return err
	}

	// Create services and controllers
	sessions, err := session.NewService(store, analyzer)
	if err != nil {
		return err
	}
	tokens := service.NewTokenService(cfg.Session.TokenSecret, cfg.Session.TTL)
	games := controller.NewGameController(sessions, analyzer, tokens, cfg)

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.NewServer(cfg, sessions, games, web.Static())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "addr", cfg.HTTPAddr, "store", cfg.Session.Store)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return err
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("Server exiting")
	return nil
}
