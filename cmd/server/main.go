package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedran77/taskmate/internal/config"
	"github.com/vedran77/taskmate/internal/database"
	"github.com/vedran77/taskmate/internal/gateway"
	postgresrepo "github.com/vedran77/taskmate/internal/repository/postgres"
	"github.com/vedran77/taskmate/internal/service"
	"github.com/vedran77/taskmate/internal/transport/http/handlers"
	"github.com/vedran77/taskmate/internal/transport/http/middleware"
	"github.com/vedran77/taskmate/internal/transport/ws"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Database
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	friendRepo := postgresrepo.NewFriendRepo(pool)
	sharedTaskRepo := postgresrepo.NewSharedTaskRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)

	// Gateway
	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub, logger)
	registrars := []gateway.Registrar{
		gateway.NewFriendLifecycle(friendRepo, notifier, logger),
		gateway.NewSharedTaskLifecycle(sharedTaskRepo, notifier, logger),
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userRepo, logger)
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, registrars, logger))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{Addr: addr, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
