// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"simplesocial/internal/config"
	"simplesocial/internal/database"
	"simplesocial/internal/middleware"
	"simplesocial/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Version is reported in traces.
const Version = "1.0.0"

// Runtime holds the connections opened by InitRuntime.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	shutdownTracing func(context.Context) error
}

// LoadConfig loads the configuration and applies its APP_ENV and LOG_LEVEL
// to middleware.Logger, so every command logs the same way.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	middleware.ConfigureLogger(cfg.Env, cfg.LogLevel)
	return cfg, nil
}

// InitRuntime sets up logging and tracing, connects to the database and, when
// configured, to Redis.
func InitRuntime(cfg *config.Config, serviceName string) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing setup failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	return &Runtime{
		DB:              db,
		Redis:           ConnectRedis(cfg.RedisURL),
		shutdownTracing: shutdownTracing,
	}, nil
}

// Close flushes traces. Database and Redis connections are left to their owner.
func (r *Runtime) Close(ctx context.Context) error {
	if r.shutdownTracing == nil {
		return nil
	}
	return r.shutdownTracing(ctx)
}
