package goCred

import (
	"errors"
	"io"
	"log/slog"

	"github.com/MrEthical07/goCred/denylist"
	"github.com/MrEthical07/goCred/generator"
	"github.com/MrEthical07/goCred/internal/rate"
	"github.com/MrEthical07/goCred/password"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an Engine. A Builder is single-use and not safe for
// concurrent use.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	denylist  denylist.Checker
	auditSink AuditSink
	logger    *slog.Logger
	random    io.Reader

	built bool
}

// New starts a Builder from DefaultConfig. Redis is optional; it is required
// only for the generation throttle and backs the denylist when supplied.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the client used by the throttle and the Redis denylist.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithDenylist installs a custom checker and enables the denylist.
func (b *Builder) WithDenylist(checker denylist.Checker) *Builder {
	b.denylist = checker
	b.config.Denylist.Enabled = checker != nil
	return b
}

// WithAuditSink sets the destination for audit events when Audit.Enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the engine logger. The default discards everything.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithRandom replaces crypto/rand.Reader as the entropy source for password
// generation and for the simulated bcrypt salt. The reader must be
// cryptographically secure and safe for concurrent use.
func (b *Builder) WithRandom(r io.Reader) *Builder {
	b.random = r
	return b
}

// WithMetricsEnabled overrides Config.Metrics.Enabled. When false the engine
// records no counters and MetricsSnapshot returns empty maps.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms overrides Config.Metrics.EnableLatencyHistograms.
// The generation latency histogram is only recorded while metrics are enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Engine. It performs
// no network I/O.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Throttle.Enabled && b.redis == nil {
		return nil, errors.New("Throttle requires redis client")
	}

	logger := b.logger
	if logger == nil {
		logger = discardLogger()
	}

	hasher, err := password.NewArgon2(cfg.Credential.argon2())
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:    cfg,
		generator: generator.New(b.random),
		random:    b.random,
		hasher:    hasher,
		metrics:   NewMetrics(cfg.Metrics),
		logger:    logger,
	}

	if cfg.Denylist.Enabled {
		switch {
		case b.denylist != nil:
			engine.denylist = b.denylist
		case b.redis != nil:
			engine.denylist = denylist.NewRedisStore(b.redis, cfg.Denylist.RedisKey)
		default:
			engine.denylist = denylist.NewMemory(cfg.Denylist.Words...)
		}
	}

	if cfg.Throttle.Enabled {
		engine.throttle = rate.New(b.redis, rate.Config{
			MaxPerWindow: cfg.Throttle.MaxPerWindow,
			Window:       cfg.Throttle.Window(),
		})
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink, logger)

	b.built = true

	logger.Debug("engine built",
		slog.Bool("denylist", engine.denylist != nil),
		slog.Bool("throttle", engine.throttle != nil),
		slog.Bool("audit", engine.audit != nil),
		slog.Bool("metrics", cfg.Metrics.Enabled),
	)

	return engine, nil
}
