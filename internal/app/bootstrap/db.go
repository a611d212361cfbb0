// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"github.com/campusbridge/campusbridge/internal/app/system/indexes"
	"github.com/campusbridge/campusbridge/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes every backend connection the app needs: Mongo
// (required), Redis (optional cache), and RabbitMQ (optional events).
// Optional backends are skipped, not failed, when unconfigured.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("mongo connected", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Events:        events.Noop{},
	}

	if appCfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache is an optimization; a dead Redis at boot should not
			// stop the service.
			logger.Warn("redis unreachable; profile cache disabled", zap.Error(err))
		} else {
			deps.Redis = rdb
			logger.Info("redis connected", zap.String("addr", appCfg.RedisAddr))
		}
	}

	if appCfg.AMQPURL != "" {
		pub, err := events.NewRabbit(appCfg.AMQPURL, appCfg.AMQPExchange)
		if err != nil {
			logger.Warn("rabbitmq unreachable; lifecycle events disabled", zap.Error(err))
		} else {
			deps.Events = pub
			logger.Info("rabbitmq connected", zap.String("exchange", appCfg.AMQPExchange))
		}
	}

	return deps, nil
}

// EnsureSchema makes sure collections, validators, and indexes exist.
// Everything it does is idempotent, so restarts are safe.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
