package attendly

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/attendly/attendly-go/cache"
	"github.com/attendly/attendly-go/kv"
	"github.com/attendly/attendly-go/rest"
	"github.com/attendly/attendly-go/session"
	"github.com/attendly/attendly-go/storage"
	"github.com/attendly/attendly-go/token"
)

// Builder assembles a [Client]. Every dependency is explicit — there are
// no package-level singletons, so tests substitute fakes without
// process-wide state leakage. A Builder is single-use.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	httpClient *http.Client
	transport  rest.Transport
	tokens     token.Store
	kvStore    kv.Store
	logger     *zerolog.Logger
	auditSink  AuditSink

	built bool
}

// New creates a Builder with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis supplies the Redis client backing the token store, the kv
// store, and the recommendation cache. Not needed when explicit stores
// are supplied via [Builder.WithTokenStore] and [Builder.WithKV].
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient supplies a custom *http.Client for the default transport.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithTransport replaces the transport entirely; the rate limiter and
// timeout configuration then do not apply.
func (b *Builder) WithTransport(t rest.Transport) *Builder {
	b.transport = t
	return b
}

// WithTokenStore replaces the Redis-backed token store.
func (b *Builder) WithTokenStore(s token.Store) *Builder {
	b.tokens = s
	return b
}

// WithKV replaces the Redis-backed key/value store.
func (b *Builder) WithKV(s kv.Store) *Builder {
	b.kvStore = s
	return b
}

// WithLogger supplies a zerolog logger for debug-level request logging.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithAuditSink supplies the audit sink; auditing also needs
// Config.Audit.Enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates configuration, wires the stores, caches, and session
// manager, and returns the ready Client.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tokens := b.tokens
	kvStore := b.kvStore
	if tokens == nil || kvStore == nil {
		if b.redis == nil {
			return nil, errors.New("redis client required unless token and kv stores are supplied")
		}
		if tokens == nil {
			tokens = token.NewRedisStore(b.redis, cfg.Cache.Namespace+":tok")
		}
		if kvStore == nil {
			kvStore = kv.NewRedis(b.redis, cfg.Cache.Namespace+":kv")
		}
	}

	transport := b.transport
	if transport == nil {
		httpClient := b.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.API.Timeout}
		}
		var limiter *rate.Limiter
		if cfg.RateLimit.RequestsPerSecond > 0 {
			limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		}
		transport = rest.NewHTTPTransport(httpClient, limiter)
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	c := &Client{
		cfg:       cfg,
		builder:   rest.NewRequestBuilder(cfg.API.BaseURL),
		transport: transport,
		tokens:    tokens,
		kv:        kvStore,
		logger:    logger,
		metrics:   NewMetrics(),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	c.recommendations = cache.NewTTL[[]Recommendation](
		kvStore, cfg.Cache.Namespace+":recs", cfg.Cache.RecommendationTTL)
	c.images = cache.NewImages(c.fetchImage, cache.ImageHooks{
		OnFetch:  func() { c.metrics.Inc(MetricImageFetches) },
		OnShared: func() { c.metrics.Inc(MetricImageShared) },
		OnHit:    func() { c.metrics.Inc(MetricImageCacheHits) },
	})
	c.session = session.NewManager(kvStore, tokens, c.refreshRecommendations)

	if cfg.Storage.BaseURL != "" {
		c.storage = storage.New(cfg.Storage.BaseURL, cfg.Storage.AccessKey, transport)
	}

	b.built = true
	return c, nil
}
