// Package main is the entry point for the chat API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/config"
	"github.com/rvrjc/campusbot/internal/engine"
	"github.com/rvrjc/campusbot/internal/handler"
	"github.com/rvrjc/campusbot/internal/intent"
	natsclient "github.com/rvrjc/campusbot/internal/nats"
	"github.com/rvrjc/campusbot/internal/service"
	"github.com/rvrjc/campusbot/pkg/logger"
	"github.com/rvrjc/campusbot/pkg/tracing"
)

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobal(log)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info("starting chat server")

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "campusbot", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer func() { _ = tracing.Shutdown(ctx, tp) }()
		}
	}

	store, err := intent.LoadFile(cfg.IntentsPath)
	if err != nil {
		return fmt.Errorf("load intents: %w", err)
	}
	for _, name := range store.Unreachable() {
		log.Warn("intent has no keywords and can only be reached by follow-up", zap.String("intent", name))
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts.Logger = log.Logger.Named("engine")
	eng, err := engine.New(store, opts)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	log.Info("intents loaded",
		zap.String("path", cfg.IntentsPath),
		zap.Int("intents", store.Len()),
		zap.Int("lexicon", eng.Lexicon().Len()),
		zap.String("strategy", string(opts.Strategy)),
	)

	var (
		natsClient *natsclient.Client
		publisher  service.Publisher
	)
	if cfg.NATSURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		natsClient, err = natsclient.Connect(connectCtx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		cancel()
		if err != nil {
			return err
		}
		defer natsClient.Close()
		publisher = natsclient.NewPublisher(natsClient.Conn(), cfg.NATSSubjectPrefix)
		log.Info("publishing exchange events",
			zap.String("subject", natsclient.SessionFilter(cfg.NATSSubjectPrefix)),
		)
	}

	sessionSvc := service.NewSessionService(log)
	chatSvc := service.NewChatService(eng, sessionSvc, publisher, log)

	router := handler.NewRouter(handler.Handlers{
		Health:   handler.NewHealthHandler(natsClient, store.Len()),
		Chat:     handler.NewChatHandler(chatSvc, cfg.MaxMessageLength, log),
		Sessions: handler.NewSessionHandler(sessionSvc, log),
		Topics:   handler.NewTopicsHandler(eng),
	}, cfg.CORSAllowedOrigins, log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      otelhttp.NewHandler(router, "campusbot"),
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
	return nil
}
