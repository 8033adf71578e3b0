package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"docpilot/internal/config"
	"docpilot/internal/domain"
	"docpilot/internal/handler"
	"docpilot/internal/metrics"
	"docpilot/internal/port"
	"docpilot/internal/router"
	"docpilot/internal/service"
	"docpilot/internal/session/memory"
	"docpilot/internal/session/redisstore"
	"docpilot/internal/upstage"
	"docpilot/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Core holds the services shared by the HTTP server and the CLI.
type Core struct {
	Metrics    *metrics.Metrics
	Intake     service.FileIntake
	Documents  service.DocumentService
	Extraction service.ExtractionService
	Chat       service.ChatService
	Analysis   service.AnalysisService

	redis *redisstore.Store
}

// NewCore wires the vendor client, conversation store and services.
func NewCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	m := metrics.New()
	encoder := upstage.NewEncoder(&cfg.Upstage)
	client := upstage.NewClient(&cfg.Upstage, upstage.WithMetrics(m))

	core := &Core{Metrics: m, Intake: service.NewFileIntake(&cfg.Upload)}

	var store port.ConversationStore
	switch cfg.Session.Store {
	case "redis":
		rs, err := redisstore.NewFromConfig(ctx, &cfg.Session)
		if err != nil {
			return nil, err
		}
		core.redis = rs
		store = rs
	case "", "memory":
		store = memory.NewStore(cfg.Session.TTL)
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Session.Store)
	}

	docs, err := service.NewDocumentService(domain.ParseMode(cfg.Upstage.ParseMode), service.ParseModeDeps{
		Encoder: encoder,
		Gateway: client,
	})
	if err != nil {
		_ = core.Close()
		return nil, err
	}

	core.Documents = docs
	core.Extraction = service.NewExtractionService(encoder, client)
	core.Chat = service.NewChatService(encoder, client, store)
	core.Analysis = service.NewAnalysisService(docs, core.Chat, m, cfg.Session.TTL)
	return core, nil
}

// Close releases the conversation store connection, if any.
func (c *Core) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

// Handler builds the gin engine over the core services.
func (c *Core) Handler(cfg *config.Config) http.Handler {
	deps := map[string]handler.Pinger{}
	if c.redis != nil {
		deps["redis"] = c.redis
	}

	return router.Setup(
		cfg,
		c.Metrics,
		handler.NewRelayHandler(c.Intake, c.Documents, c.Extraction, c.Chat),
		handler.NewHealthHandler(&cfg.Upstage, deps),
		handler.NewAnalysisHandler(c.Intake, c.Analysis),
		handler.NewConversationHandler(c.Chat),
		handler.NewExtractionHandler(c.Intake, c.Extraction),
		handler.NewSchemaHandler(),
		handler.NewExportHandler(),
	)
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := NewCore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() { _ = core.Close() }()

	if !cfg.Upstage.Configured() {
		logger.Warn(ctx, "UPSTAGE_API_KEY is not set; vendor calls will be rejected")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           core.Handler(cfg),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting", "addr", cfg.Server.Port, "environment", cfg.Server.Environment,
			"session_store", cfg.Session.Store, "parse_mode", cfg.Upstage.ParseMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
