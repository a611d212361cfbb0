// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/campusbridge/campusbridge/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	metrics.MustRegister()
	logger.Info("startup complete",
		zap.Bool("cache_enabled", deps.Redis != nil),
		zap.Bool("events_enabled", appCfg.AMQPURL != ""))
	return nil
}
