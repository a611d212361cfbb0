// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP/HTTPS ports,
// TLS, logging, request limits); AppConfig is everything specific to this
// application. The struct is passed to most lifecycle hooks, so any
// configuration needed during startup, request handling, or shutdown
// lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: campusbridge-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Redis profile cache. Blank RedisAddr disables caching entirely; the
	// document store then serves every read.
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration

	// RabbitMQ lifecycle events. Blank AMQPURL swaps in the no-op
	// publisher.
	AMQPURL      string
	AMQPExchange string

	// Advice service (mentor-type suggestions and free-text guidance).
	// Blank AdviceBaseURL means every suggestion call degrades.
	AdviceBaseURL      string
	AdviceClientID     string
	AdviceClientSecret string
	AdviceTokenURL     string

	// Minimum time the matching flow stays in its loading state.
	MinLoadingDelay time.Duration
}
