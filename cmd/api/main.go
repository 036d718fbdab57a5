package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"mockupstudio/internal/adapter/repo"
	"mockupstudio/internal/export"
	"mockupstudio/internal/gallery"
	"mockupstudio/internal/http/handlers"
	httpapi "mockupstudio/internal/http/httpapi"
	"mockupstudio/internal/infra"
	"mockupstudio/internal/infra/credentials"
	"mockupstudio/internal/providers/image"
	"mockupstudio/internal/storage"
	"mockupstudio/internal/studio"
)

const sweepInterval = time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The database is optional: it only backs the attempt log and the stored key.
	var (
		recorder studio.Recorder
		stats    handlers.GenerationStats
		pool     *pgxpool.Pool
	)
	if cfg.DatabaseURL != "" {
		pool, err = infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("database unavailable; continuing without generation log")
		} else {
			defer pool.Close()
			runner := infra.NewSQLRunner(pool, logger)
			if err := repo.EnsureSchema(ctx, runner); err != nil {
				logger.Warn().Err(err).Msg("failed to ensure schema")
			}
			genLog := repo.NewGenerationLog(runner, &logger)
			recorder, stats = genLog, genLog

			key, err := credentials.NewStore(runner).ResolveGeminiAPIKey(ctx, cfg.GeminiAPIKey)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to load stored gemini api key")
			} else if key != "" && cfg.GeminiAPIKey == "" {
				logger.Info().Msg("using gemini api key from integration tokens")
				cfg.GeminiAPIKey = key
			}
		}
	}
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	backend, err := image.NewBackend(ctx, cfg.ImageProvider, image.Settings{
		APIKey:          cfg.GeminiAPIKey,
		BaseURL:         cfg.GeminiBaseURL,
		Model:           cfg.GeminiModel,
		HTTPClient:      &http.Client{Timeout: cfg.GenerationTimeout},
		Logger:          &logger,
		AllowMissingKey: true,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build image backend")
	}
	if closer, ok := backend.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	client := image.NewClient(backend, &logger)

	opts := []studio.Option{studio.WithLogger(&logger)}
	if recorder != nil {
		opts = append(opts, studio.WithRecorder(recorder))
	}
	sessions := gallery.NewSessions()
	svc := studio.NewService(studio.New(client, opts...), sessions, &logger)

	app := handlers.NewApp(svc, client.Provider(), logger)
	if stats != nil {
		app.Stats = stats
	}
	sink, err := newSink(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("export storage unavailable")
	} else {
		app.Exporter = export.NewExporter(sink, "designs", &logger)
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go sweepSessions(ctx, sessions, cfg.SessionIdle, logger)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("provider", client.Provider()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newSink prefers MinIO when it is configured and falls back to the local
// export directory.
func newSink(ctx context.Context, cfg *infra.Config) (storage.Sink, error) {
	if cfg.ObjectStoreEnabled() {
		return storage.NewObjectStore(ctx, storage.ObjectStoreConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
	}
	return storage.NewFileStore(cfg.StoragePath)
}

func sweepSessions(ctx context.Context, sessions *gallery.Sessions, idle time.Duration, logger infra.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(idle); n > 0 {
				logger.Debug().Int("removed", n).Int("active", sessions.Len()).Msg("idle sessions swept")
			}
		}
	}
}
