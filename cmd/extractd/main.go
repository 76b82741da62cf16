package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/splitbill/receipt-extract/internal/common"
	"github.com/splitbill/receipt-extract/internal/pipeline"
	"github.com/splitbill/receipt-extract/internal/remote"
	"github.com/splitbill/receipt-extract/internal/server"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load environment variables; a missing .env is fine in production
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	cfg := common.LoadConfig()

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	endpoint := remote.ResolveEndpoint(cfg.Remote)
	logger.Info("remote endpoint resolved", "url", endpoint)

	client := remote.NewClient(remote.Config{Endpoint: endpoint, Timeout: cfg.Remote.Timeout}, logger)
	proc := pipeline.NewProcessor(logger, client, nil, pipeline.NewLocalPipeline(logger))
	svc := server.NewService(proc, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	svc.Register(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
