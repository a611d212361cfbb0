// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/matching"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CampusBridge.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CAMPUSBRIDGE_MONGO_URI, CAMPUSBRIDGE_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "campusbridge", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "campusbridge-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Redis profile cache
	{Name: "redis_addr", Default: "", Desc: "Redis address for the profile cache (blank disables caching)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},
	{Name: "profile_cache_ttl", Default: "5m", Desc: "Profile cache TTL (e.g., 5m, 30s)"},

	// RabbitMQ lifecycle events
	{Name: "amqp_url", Default: "", Desc: "RabbitMQ URL for lifecycle events (blank disables publishing)"},
	{Name: "amqp_exchange", Default: "campusbridge", Desc: "RabbitMQ topic exchange name"},

	// Advice service
	{Name: "advice_base_url", Default: "", Desc: "Advice service base URL (blank degrades all suggestion calls)"},
	{Name: "advice_client_id", Default: "", Desc: "OAuth2 client ID for the advice service"},
	{Name: "advice_client_secret", Default: "", Desc: "OAuth2 client secret for the advice service"},
	{Name: "advice_token_url", Default: "", Desc: "OAuth2 token endpoint for the advice service"},

	// Matching flow
	{Name: "min_loading_delay", Default: "600ms", Desc: "Minimum visible duration of the matching loading state"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CAMPUSBRIDGE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAMPUSBRIDGE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		RedisAddr:       appValues.String("redis_addr"),
		RedisPassword:   appValues.String("redis_password"),
		RedisDB:         appValues.Int("redis_db"),
		ProfileCacheTTL: appValues.Duration("profile_cache_ttl", 5*time.Minute),

		AMQPURL:      appValues.String("amqp_url"),
		AMQPExchange: appValues.String("amqp_exchange"),

		AdviceBaseURL:      appValues.String("advice_base_url"),
		AdviceClientID:     appValues.String("advice_client_id"),
		AdviceClientSecret: appValues.String("advice_client_secret"),
		AdviceTokenURL:     appValues.String("advice_token_url"),

		MinLoadingDelay: appValues.Duration("min_loading_delay", matching.DefaultMinVisibleLoading),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked up front to catch configuration errors
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.AdviceClientID != "" && appCfg.AdviceTokenURL == "" {
		return fmt.Errorf("advice_client_id is set but advice_token_url is empty")
	}

	return nil
}
