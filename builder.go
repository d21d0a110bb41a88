package navguard

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dineflow/navguard/store"
	"github.com/dineflow/navguard/token"
)

// Builder defines a public type used by navguard APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	router  Router
	alerter Alerter
	binder  TokenBinder

	logger    *zerolog.Logger
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithRouter describes the withrouter operation and its observable behavior.
func (b *Builder) WithRouter(r Router) *Builder {
	b.router = r
	return b
}

// WithAlerter describes the withalerter operation and its observable behavior.
func (b *Builder) WithAlerter(a Alerter) *Builder {
	b.alerter = a
	return b
}

// WithTokenBinder describes the withtokenbinder operation and its observable behavior.
func (b *Builder) WithTokenBinder(binder TokenBinder) *Builder {
	b.binder = binder
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.logger = &log
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Controller, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, ErrRedisRequired
	}
	if b.router == nil {
		return nil, ErrRouterRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if b.logger != nil {
		log = *b.logger
	}

	alerter := b.alerter
	if alerter == nil {
		alerter = noopAlerter{}
	}

	controller := &Controller{
		config:    cfg,
		store:     store.New(b.redis, cfg.Store.KeyPrefix, b.binder, log),
		inspector: token.NewInspector(cfg.Token.ExpiryMargin),
		router:    b.router,
		alerter:   alerter,
		log:       log,
		state:     StateUninitialized,
	}

	controller.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	controller.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return controller, nil
}
