package navguard

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/dineflow/navguard/token"
)

// Config defines a public type used by navguard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token   TokenConfig
	Store   StoreConfig
	Alerts  AlertConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by navguard APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// ExpiryMargin is subtracted from a token's real expiry; tokens inside
	// the window count as expired. Defaults to 5 minutes.
	ExpiryMargin time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by navguard APIs.
//
// StoreConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StoreConfig struct {
	// KeyPrefix namespaces the three session keys in Redis.
	KeyPrefix string
}

/*
====================================
ALERT CONFIG
====================================
*/

// AlertConfig holds the user-facing texts surfaced through the Alerter.
type AlertConfig struct {
	SessionExpiredTitle   string
	SessionExpiredMessage string
	InvalidSessionTitle   string
	InvalidSessionMessage string
}

// AuditConfig defines a public type used by navguard APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by navguard APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			ExpiryMargin: token.DefaultExpiryMargin,
		},
		Store: StoreConfig{
			KeyPrefix: "ng",
		},
		Alerts: AlertConfig{
			SessionExpiredTitle:   "Session Expired",
			SessionExpiredMessage: "Your session has expired. Please log in again.",
			InvalidSessionTitle:   "Invalid Session",
			InvalidSessionMessage: "Your session is no longer valid. Please log in again.",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Config is all value fields; a copy is a deep copy.
func cloneConfig(cfg Config) Config {
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c Config) Validate() error {
	if c.Token.ExpiryMargin < 0 || c.Token.ExpiryMargin > time.Hour {
		return ErrInvalidExpiryMargin
	}
	if c.Store.KeyPrefix == "" {
		return ErrInvalidKeyPrefix
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return ErrInvalidAuditBuffer
	}
	return nil
}

/*
====================================
ENVIRONMENT CONFIG
====================================
*/

type envConfig struct {
	RedisAddr      string        `env:"NAVGUARD_REDIS_ADDR, default=localhost:6379"`
	RedisPassword  string        `env:"NAVGUARD_REDIS_PASSWORD"`
	RedisDB        int           `env:"NAVGUARD_REDIS_DB, default=0"`
	KeyPrefix      string        `env:"NAVGUARD_KEY_PREFIX, default=ng"`
	ExpiryMargin   time.Duration `env:"NAVGUARD_EXPIRY_MARGIN, default=5m"`
	AuditEnabled   bool          `env:"NAVGUARD_AUDIT_ENABLED, default=false"`
	AuditBuffer    int           `env:"NAVGUARD_AUDIT_BUFFER, default=256"`
	MetricsEnabled bool          `env:"NAVGUARD_METRICS_ENABLED, default=true"`
}

// EnvSettings carries environment-derived connection settings that sit
// outside Config proper. The caller owns the Redis client and passes it to
// [Builder.WithRedis].
type EnvSettings struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ConfigFromEnv builds a Config from NAVGUARD_* environment variables,
// starting from [DefaultConfig].
func ConfigFromEnv(ctx context.Context) (Config, EnvSettings, error) {
	var ec envConfig
	if err := envconfig.Process(ctx, &ec); err != nil {
		return Config{}, EnvSettings{}, err
	}

	cfg := DefaultConfig()
	cfg.Store.KeyPrefix = ec.KeyPrefix
	cfg.Token.ExpiryMargin = ec.ExpiryMargin
	cfg.Audit.Enabled = ec.AuditEnabled
	cfg.Audit.BufferSize = ec.AuditBuffer
	cfg.Metrics.Enabled = ec.MetricsEnabled

	settings := EnvSettings{
		RedisAddr:     ec.RedisAddr,
		RedisPassword: ec.RedisPassword,
		RedisDB:       ec.RedisDB,
	}

	return cfg, settings, cfg.Validate()
}
