package main

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/controller"
	apirepository "ctchen222/Tic-Tac-Toe-Minimax/internal/api/repository"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/config"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/db"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/hub"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/logger"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/repository"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/server"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/telemetry"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(os.Stdout, cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	// Initialize Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Initialize SQLite DB
	DB, err := db.Connect(ctx, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer DB.Close()
	if err := db.InitializeDB(ctx, DB); err != nil {
		return err
	}

	// Create repositories
	gameRepo := repository.NewGameRepository(rdb)
	playerRepo := repository.NewPlayerRepository(rdb)
	userRepo := apirepository.NewUserRepository(DB)

	// Create services
	userService := service.NewUserService(userRepo, cfg.JWTSecret)
	selector, err := bot.NewSelector()
	if err != nil {
		return err
	}

	// Create controllers
	userController := controller.NewUserController(userService)
	boardController := controller.NewBoardController(selector)

	// Create hub
	h := hub.NewHub(gameRepo, playerRepo, selector, cfg.ComputerMoveDelay)
	go h.Run(ctx)

	// Create the Gin-based server
	srv := server.NewServer(h, userService, userController, boardController, cfg.WebDir)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: otelhttp.NewHandler(srv.Engine(), "http"),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
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
