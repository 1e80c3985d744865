package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	ML       MLConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Log      LogConfig
	Worker   WorkerConfig
	Terminal TerminalConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type BackendConfig struct {
	BaseURL        string
	ProxyPrefix    string
	RequestTimeout time.Duration
}

type MLConfig struct {
	RequestTimeout  time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// StorageConfig - durable key-value storage used for sessions and local favorites
type StorageConfig struct {
	Driver string // redis | badger | postgres | sqlite | memory
	Path   string
	DSN    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName    string
	TTL           time.Duration
	EncryptionKey string
}

type CatalogConfig struct {
	PageSize    int
	PriceLow    int
	PriceMedium int
	PriceHigh   int
}

type CacheConfig struct {
	CatalogTTL         time.Duration
	VibeTagsTTL        time.Duration
	FavoritesTTL       time.Duration
	RecommendationsTTL time.Duration
}

type AuthConfig struct {
	LoginRatePerMinute int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled         bool
	CatalogInterval time.Duration
}

// TerminalConfig - settings of the interactive terminal client
type TerminalConfig struct {
	HistoryFile string
	Namespace   string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env is optional, the environment alone is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
			ProxyPrefix:    v.GetString("BACKEND_PROXY_PREFIX"),
			RequestTimeout: time.Duration(v.GetInt("BACKEND_REQUEST_TIMEOUT")) * time.Second,
		},
		ML: MLConfig{
			RequestTimeout:  time.Duration(v.GetInt("ML_REQUEST_TIMEOUT")) * time.Second,
			BreakerFailures: v.GetUint32("ML_BREAKER_MAX_FAILURES"),
			BreakerTimeout:  time.Duration(v.GetInt("ML_BREAKER_TIMEOUT")) * time.Second,
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Path:   v.GetString("STORAGE_PATH"),
			DSN:    v.GetString("STORAGE_DSN"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			CookieName:    v.GetString("SESSION_COOKIE_NAME"),
			TTL:           time.Duration(v.GetInt("SESSION_TTL")) * time.Hour,
			EncryptionKey: v.GetString("SESSION_ENCRYPTION_KEY"),
		},
		Catalog: CatalogConfig{
			PageSize:    v.GetInt("CATALOG_PAGE_SIZE"),
			PriceLow:    v.GetInt("PRICE_TIER_LOW"),
			PriceMedium: v.GetInt("PRICE_TIER_MEDIUM"),
			PriceHigh:   v.GetInt("PRICE_TIER_HIGH"),
		},
		Cache: CacheConfig{
			CatalogTTL:         time.Duration(v.GetInt("CATALOG_CACHE_TTL")) * time.Second,
			VibeTagsTTL:        time.Duration(v.GetInt("VIBE_TAG_CACHE_TTL")) * time.Second,
			FavoritesTTL:       time.Duration(v.GetInt("FAVORITES_CACHE_TTL")) * time.Second,
			RecommendationsTTL: time.Duration(v.GetInt("RECOMMENDATIONS_CACHE_TTL")) * time.Second,
		},
		Auth: AuthConfig{
			LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			CatalogInterval: time.Duration(v.GetInt("WORKER_CATALOG_INTERVAL")) * time.Second,
		},
		Terminal: TerminalConfig{
			HistoryFile: v.GetString("CLI_HISTORY_FILE"),
			Namespace:   v.GetString("CLI_SESSION_NAMESPACE"),
		},
	}

	cfg.applyDefaults()

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	return cfg, nil
}

// applyDefaults - set default values if not provided
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Backend.RequestTimeout == 0 {
		c.Backend.RequestTimeout = 15 * time.Second
	}
	if c.ML.RequestTimeout == 0 {
		c.ML.RequestTimeout = 60 * time.Second
	}
	if c.ML.BreakerFailures == 0 {
		c.ML.BreakerFailures = 5
	}
	if c.ML.BreakerTimeout == 0 {
		c.ML.BreakerTimeout = 30 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "redis"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "cairogo_sid"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 720 * time.Hour
	}
	if c.Catalog.PageSize == 0 {
		c.Catalog.PageSize = 12
	}
	if c.Catalog.PriceLow == 0 {
		c.Catalog.PriceLow = 200
	}
	if c.Catalog.PriceMedium == 0 {
		c.Catalog.PriceMedium = 500
	}
	if c.Catalog.PriceHigh == 0 {
		c.Catalog.PriceHigh = 1000
	}
	if c.Cache.CatalogTTL == 0 {
		c.Cache.CatalogTTL = 5 * time.Minute
	}
	if c.Cache.VibeTagsTTL == 0 {
		c.Cache.VibeTagsTTL = time.Hour
	}
	if c.Cache.FavoritesTTL == 0 {
		c.Cache.FavoritesTTL = time.Minute
	}
	if c.Cache.RecommendationsTTL == 0 {
		c.Cache.RecommendationsTTL = 30 * time.Minute
	}
	if c.Auth.LoginRatePerMinute == 0 {
		c.Auth.LoginRatePerMinute = 10
	}
	if c.Worker.CatalogInterval == 0 {
		c.Worker.CatalogInterval = 10 * time.Minute
	}
	if c.Terminal.HistoryFile == "" {
		c.Terminal.HistoryFile = ".cairogo_history"
	}
	if c.Terminal.Namespace == "" {
		c.Terminal.Namespace = "local"
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
