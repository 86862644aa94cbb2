package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	History  HistoryConfig  `yaml:"history"`
	Postgres PostgresConfig `yaml:"postgres"`
	Stats    StatsConfig    `yaml:"stats"`
	Auth     AuthConfig     `yaml:"auth"`
	FAQ      FAQConfig      `yaml:"faq"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	StaticDir    string          `yaml:"staticDir"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries of read-only API requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
}

// Catalog source kinds.
const (
	CatalogSourceFile     = "file"
	CatalogSourceS3       = "s3"
	CatalogSourcePostgres = "postgres"
)

// CatalogConfig locates the FAQ catalog.
type CatalogConfig struct {
	Source         string   `yaml:"source"`
	Path           string   `yaml:"path"`
	Cache          bool     `yaml:"cache"`
	ReloadSchedule string   `yaml:"reloadSchedule"`
	S3             S3Config `yaml:"s3"`
}

// S3Config points at a catalog object in S3-compatible storage.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	Region    string `yaml:"region"`
}

// History drivers.
const (
	HistoryDriverMemory   = "memory"
	HistoryDriverSQLite   = "sqlite"
	HistoryDriverPostgres = "postgres"
)

// HistoryConfig selects where chat turns and feedback are stored.
type HistoryConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlitePath"`
	// ListLimit caps admin listings of chat history.
	ListLimit int `yaml:"listLimit"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// StatsConfig configures the query statistics store.
type StatsConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for the valkey store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// AuthConfig drives token signing for the placeholder auth endpoints.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// FAQConfig controls the FAQ service behavior.
type FAQConfig struct {
	TopRecommendations int `yaml:"topRecommendations"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("FAQ_CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = strings.ToLower(v)
	}
	if v := os.Getenv("FAQ_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("FAQ_CATALOG_CACHE"); v != "" {
		cfg.Catalog.Cache = parseBool(v)
	}
	if v := os.Getenv("FAQ_CATALOG_RELOAD_SCHEDULE"); v != "" {
		cfg.Catalog.ReloadSchedule = v
	}
	if v := os.Getenv("FAQ_CATALOG_S3_ENDPOINT"); v != "" {
		cfg.Catalog.S3.Endpoint = v
	}
	if v := os.Getenv("FAQ_CATALOG_S3_ACCESS_KEY"); v != "" {
		cfg.Catalog.S3.AccessKey = v
	}
	if v := os.Getenv("FAQ_CATALOG_S3_SECRET_KEY"); v != "" {
		cfg.Catalog.S3.SecretKey = v
	}
	if v := os.Getenv("FAQ_CATALOG_S3_BUCKET"); v != "" {
		cfg.Catalog.S3.Bucket = v
	}
	if v := os.Getenv("FAQ_CATALOG_S3_KEY"); v != "" {
		cfg.Catalog.S3.Key = v
	}
	if v := os.Getenv("FAQ_CATALOG_S3_REGION"); v != "" {
		cfg.Catalog.S3.Region = v
	}
	if v := os.Getenv("HISTORY_DRIVER"); v != "" {
		cfg.History.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("HISTORY_SQLITE_PATH"); v != "" {
		cfg.History.SQLitePath = v
	}
	if v := os.Getenv("HISTORY_LIST_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.ListLimit = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("STATS_REDIS_ENABLED"); v != "" {
		cfg.Stats.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("STATS_REDIS_ADDR"); v != "" {
		cfg.Stats.Redis.Addr = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("FAQ_RECOMMENDATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopRecommendations = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
			CORSOrigins: []string{"*"},
			StaticDir:   "static",
		},
		Catalog: CatalogConfig{
			Source: CatalogSourceFile,
			Path:   "faqs.json",
			Cache:  true,
		},
		History: HistoryConfig{
			Driver:     HistoryDriverSQLite,
			SQLitePath: "chat_history.db",
			ListLimit:  500,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Stats: StatsConfig{
			Redis: RedisConfig{Prefix: "faq"},
		},
		Auth: AuthConfig{
			Secret:   "dev-secret-change-me",
			TokenTTL: time.Hour,
		},
		FAQ: FAQConfig{
			TopRecommendations: 10,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	switch c.Catalog.Source {
	case CatalogSourceFile:
		if strings.TrimSpace(c.Catalog.Path) == "" {
			return errors.New("catalog.path cannot be empty for the file source")
		}
	case CatalogSourceS3:
		if strings.TrimSpace(c.Catalog.S3.Endpoint) == "" || strings.TrimSpace(c.Catalog.S3.Bucket) == "" || strings.TrimSpace(c.Catalog.S3.Key) == "" {
			return errors.New("catalog.s3 endpoint, bucket and key are required for the s3 source")
		}
	case CatalogSourcePostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return errors.New("postgres.dsn is required for the postgres catalog source")
		}
	default:
		return fmt.Errorf("catalog.source %q is not supported", c.Catalog.Source)
	}
	switch c.History.Driver {
	case HistoryDriverMemory, HistoryDriverPostgres:
	case HistoryDriverSQLite:
		if strings.TrimSpace(c.History.SQLitePath) == "" {
			return errors.New("history.sqlitePath cannot be empty for the sqlite driver")
		}
	default:
		return fmt.Errorf("history.driver %q is not supported", c.History.Driver)
	}
	if c.History.ListLimit < 0 {
		return errors.New("history.listLimit cannot be negative")
	}
	if c.Postgres.MaxConns < 0 || c.Postgres.MinConns < 0 {
		return errors.New("postgres connection limits cannot be negative")
	}
	if c.Stats.Redis.Enabled && strings.TrimSpace(c.Stats.Redis.Addr) == "" {
		return errors.New("stats.redis.addr cannot be empty when redis is enabled")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.FAQ.TopRecommendations < 0 {
		return errors.New("faq.topRecommendations cannot be negative")
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
