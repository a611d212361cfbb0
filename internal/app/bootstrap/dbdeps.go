// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Redis is nil when redis_addr is not configured; the profile cache
	// then passes every read through to Mongo.
	Redis *redis.Client

	// Events is never nil: a missing broker config yields events.Noop.
	Events events.Publisher
}
