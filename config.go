package attendly

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/attendly/attendly-go/cache"
	"github.com/attendly/attendly-go/rest"
)

// Config carries all client tuning. Zero values are filled in by
// defaults; construct via [DefaultConfig] or [ConfigFromEnv] and adjust.
type Config struct {
	API       APIConfig
	Storage   StorageConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
}

// APIConfig locates the backend.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "https://api.attendly.app/v1".
	BaseURL string
	// Timeout bounds one round trip. Defaults to rest.DefaultTimeout.
	Timeout time.Duration
}

// StorageConfig locates the object-storage service for profile and event
// images. Optional; when BaseURL is empty, upload operations fail with a
// configuration error.
type StorageConfig struct {
	BaseURL   string
	Bucket    string
	AccessKey string
}

// CacheConfig tunes the recommendation cache.
type CacheConfig struct {
	// RecommendationTTL is the freshness window. Defaults to cache.DefaultTTL.
	RecommendationTTL time.Duration
	// Namespace prefixes every persisted key, isolating client instances
	// sharing one Redis database. Defaults to "attendly".
	Namespace string
}

// RateLimitConfig throttles outbound requests. Zero RequestsPerSecond
// disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// DefaultConfig returns the baseline configuration. BaseURL must still be
// set by the caller.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: rest.DefaultTimeout,
		},
		Cache: CacheConfig{
			RecommendationTTL: cache.DefaultTTL,
			Namespace:         "attendly",
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
	}
}

// Validate reports the first configuration problem.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: API.BaseURL is required")
	}
	if c.API.Timeout < 0 {
		return errors.New("config: API.Timeout must not be negative")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return errors.New("config: RateLimit.RequestsPerSecond must not be negative")
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		return errors.New("config: RateLimit.Burst must be positive when throttling is enabled")
	}
	return nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.API.Timeout == 0 {
		c.API.Timeout = def.API.Timeout
	}
	if c.Cache.RecommendationTTL == 0 {
		c.Cache.RecommendationTTL = def.Cache.RecommendationTTL
	}
	if c.Cache.Namespace == "" {
		c.Cache.Namespace = def.Cache.Namespace
	}
	if c.Audit.Enabled && c.Audit.BufferSize == 0 {
		c.Audit.BufferSize = def.Audit.BufferSize
	}
	return c
}

// envConfig is the envdecode mapping for [ConfigFromEnv].
type envConfig struct {
	APIBaseURL string        `env:"ATTENDLY_API_BASE_URL,required"`
	APITimeout time.Duration `env:"ATTENDLY_API_TIMEOUT,default=30s"`

	StorageBaseURL   string `env:"ATTENDLY_STORAGE_BASE_URL"`
	StorageBucket    string `env:"ATTENDLY_STORAGE_BUCKET,default=avatars"`
	StorageAccessKey string `env:"ATTENDLY_STORAGE_ACCESS_KEY"`

	CacheTTL       time.Duration `env:"ATTENDLY_CACHE_TTL,default=30m"`
	CacheNamespace string        `env:"ATTENDLY_CACHE_NAMESPACE,default=attendly"`

	RateRPS   float64 `env:"ATTENDLY_RATE_RPS,default=0"`
	RateBurst int     `env:"ATTENDLY_RATE_BURST,default=0"`

	AuditEnabled bool `env:"ATTENDLY_AUDIT_ENABLED,default=false"`
	AuditBuffer  int  `env:"ATTENDLY_AUDIT_BUFFER,default=256"`
}

// ConfigFromEnv loads configuration from the environment, first merging a
// .env file when one exists (development convenience; a missing file is
// not an error).
func ConfigFromEnv() (Config, error) {
	_ = godotenv.Load()

	var env envConfig
	if err := envdecode.StrictDecode(&env); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: env.APIBaseURL,
			Timeout: env.APITimeout,
		},
		Storage: StorageConfig{
			BaseURL:   env.StorageBaseURL,
			Bucket:    env.StorageBucket,
			AccessKey: env.StorageAccessKey,
		},
		Cache: CacheConfig{
			RecommendationTTL: env.CacheTTL,
			Namespace:         env.CacheNamespace,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: env.RateRPS,
			Burst:             env.RateBurst,
		},
		Audit: AuditConfig{
			Enabled:    env.AuditEnabled,
			BufferSize: env.AuditBuffer,
			DropIfFull: true,
		},
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
