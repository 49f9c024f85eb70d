package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerview/ledgerview/internal/api"
	"github.com/ledgerview/ledgerview/internal/bookkeeper"
	"github.com/ledgerview/ledgerview/internal/directory"
	"github.com/ledgerview/ledgerview/internal/infrastructure/config"
	"github.com/ledgerview/ledgerview/internal/infrastructure/logging"
	"github.com/ledgerview/ledgerview/internal/review"
	"github.com/ledgerview/ledgerview/internal/upload"
)

func main() {
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		port       = flag.Int("port", 0, "Override the configured server port")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configFile)
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *verbose {
		cfg.Observability.Logging.Level = "debug"
	}

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	client := bookkeeper.NewClient(bookkeeper.Config{
		BaseURL:        cfg.Bookkeeper.BaseURL,
		AccountsPath:   cfg.Bookkeeper.AccountsPath,
		NewAccountPath: cfg.Bookkeeper.NewAccountPath,
		UploadPath:     cfg.Bookkeeper.UploadPath,
		TablePath:      cfg.Bookkeeper.TablePath,
		Timeout:        time.Duration(cfg.Bookkeeper.TimeoutSeconds) * time.Second,
	}, logger)

	dir := directory.NewService(client, logger)
	session := review.NewSession(client, cfg.Review.PageSize, logger)
	uploads := upload.NewService(client, dir, cfg.Upload.AcceptedExtensions, logger)

	// Warm the account directory; the UI can retry via ?refresh=1 if the
	// remote is not up yet.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := dir.Refresh(ctx); err != nil {
		logger.Warn("initial account refresh failed", slog.String("error", err.Error()))
	}
	cancel()

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, api.Services{
		Directory: dir,
		Session:   session,
		Uploads:   uploads,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
