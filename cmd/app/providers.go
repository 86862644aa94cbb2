package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-chatbot/internal/domain/auth"
	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
	"github.com/yanqian/faq-chatbot/internal/infra/config"
	"github.com/yanqian/faq-chatbot/internal/infra/faqcatalog"
	"github.com/yanqian/faq-chatbot/internal/infra/faqstats"
	"github.com/yanqian/faq-chatbot/internal/infra/historyrepo"
	"github.com/yanqian/faq-chatbot/internal/infra/userrepo"
	httpiface "github.com/yanqian/faq-chatbot/internal/interface/http"
)

// historyStore persists both chat turns and feedback.
type historyStore interface {
	chat.Repository
	feedback.Repository
}

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{TopRecommendations: cfg.FAQ.TopRecommendations}
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{HistoryLimit: cfg.History.ListLimit}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideStaticDir(cfg *config.Config) httpiface.StaticDir {
	return httpiface.StaticDir(cfg.HTTP.StaticDir)
}

// providePostgresPool returns nil when no DSN is configured or the database is
// unreachable; dependents fall back to their in-memory implementations.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, postgres backends disabled")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, postgres backends disabled", "error", err)
		return nil, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, postgres backends disabled", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, postgres backends disabled", "error", err)
		pool.Close()
		return nil, noop
	}
	logger.Info("postgres pool ready")
	return pool, pool.Close
}

func provideCatalog(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*faq.Catalog, error) {
	source, err := buildCatalogSource(cfg, pool, logger)
	if err != nil {
		return nil, err
	}
	return faq.NewCatalog(source, cfg.Catalog.Cache, logger), nil
}

func buildCatalogSource(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (faq.CatalogSource, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceS3:
		s3 := cfg.Catalog.S3
		logger.Info("faq catalog from object storage", "bucket", s3.Bucket, "key", s3.Key)
		return faqcatalog.NewObjectSource(faqcatalog.ObjectConfig{
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Bucket:    s3.Bucket,
			Key:       s3.Key,
			Region:    s3.Region,
		}, logger)
	case config.CatalogSourcePostgres:
		if pool != nil {
			logger.Info("faq catalog from postgres")
			return faqcatalog.NewPostgresSource(pool, logger), nil
		}
		logger.Error("postgres unavailable, reading faq catalog from file", "path", cfg.Catalog.Path)
	}
	logger.Info("faq catalog from file", "path", cfg.Catalog.Path)
	return faqcatalog.NewFileSource(cfg.Catalog.Path, logger), nil
}

func provideReloadScheduler(cfg *config.Config, catalog *faq.Catalog, logger *slog.Logger) *faqcatalog.ReloadScheduler {
	return faqcatalog.NewReloadScheduler(catalog, cfg.Catalog.ReloadSchedule, logger)
}

func provideStatsStore(cfg *config.Config, logger *slog.Logger) (faq.StatsStore, func()) {
	noop := func() {}
	if !cfg.Stats.Redis.Enabled {
		return faqstats.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Stats.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory stats", "error", err)
		return faqstats.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory stats", "error", err)
		return faqstats.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory stats", "error", err)
		client.Close()
		return faqstats.NewMemoryStore(), noop
	}
	logger.Info("faq valkey stats enabled", "addr", cfg.Stats.Redis.Addr)
	return faqstats.NewValkeyStore(client, cfg.Stats.Redis.Prefix, logger), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideHistoryStore(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (historyStore, func()) {
	noop := func() {}
	switch cfg.History.Driver {
	case config.HistoryDriverSQLite:
		store, err := historyrepo.OpenSQLite(cfg.History.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite history, using memory store", "path", cfg.History.SQLitePath, "error", err)
			return historyrepo.NewMemoryStore(), noop
		}
		logger.Info("sqlite history enabled", "path", cfg.History.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("close sqlite history failed", "error", err)
			}
		}
	case config.HistoryDriverPostgres:
		if pool != nil {
			logger.Info("postgres history enabled")
			return historyrepo.NewPostgresStore(pool), noop
		}
		logger.Error("postgres unavailable, using memory history store")
	}
	return historyrepo.NewMemoryStore(), noop
}

func provideChatRepository(store historyStore) chat.Repository {
	return store
}

func provideFeedbackRepository(store historyStore) feedback.Repository {
	return store
}

func provideAuthRepository(pool *pgxpool.Pool, logger *slog.Logger) auth.Repository {
	if pool == nil {
		logger.Info("using memory user repository")
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}
