// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/campusbridge/campusbridge/internal/app/account"
	"github.com/campusbridge/campusbridge/internal/app/advice"
	accountopsfeature "github.com/campusbridge/campusbridge/internal/app/features/accountops"
	advisorfeature "github.com/campusbridge/campusbridge/internal/app/features/advisor"
	healthfeature "github.com/campusbridge/campusbridge/internal/app/features/health"
	mentorshipfeature "github.com/campusbridge/campusbridge/internal/app/features/mentorship"
	profilefeature "github.com/campusbridge/campusbridge/internal/app/features/profile"
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	signupfeature "github.com/campusbridge/campusbridge/internal/app/features/signup"
	"github.com/campusbridge/campusbridge/internal/app/matching"
	mentorstore "github.com/campusbridge/campusbridge/internal/app/store/mentors"
	"github.com/campusbridge/campusbridge/internal/app/store/profilecache"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router wires every feature:
// signup/signin, profile reads and merge writes, the mentor-matching flow,
// account lifecycle operations, the advisor endpoint, and health/metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := respond.NewErrorLogger(logger)

	// Stores and collaborators shared across features.
	users := userstore.New(deps.MongoDatabase)
	mentors := mentorstore.New(deps.MongoDatabase)
	cache := profilecache.New(users, deps.Redis, appCfg.ProfileCacheTTL, logger)
	authn := auth.NewLocalAuthenticator(deps.MongoDatabase)
	adviceClient := advice.New(advice.Config{
		BaseURL:      appCfg.AdviceBaseURL,
		ClientID:     appCfg.AdviceClientID,
		ClientSecret: appCfg.AdviceClientSecret,
		TokenURL:     appCfg.AdviceTokenURL,
	}, logger)
	matches := matching.NewRegistry(users, mentors, adviceClient, appCfg.MinLoadingDelay, logger)
	accountSvc := account.NewService(authn, users, cache, deps.Events, logger)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	// Signup / signin / signout (no session required)
	signupHandler := signupfeature.NewHandler(authn, users, sessionMgr, deps.Events, errLog, logger)
	r.Mount("/auth", signupfeature.Routes(signupHandler))

	// Everything below needs a signed-in user.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		profileHandler := profilefeature.NewHandler(users, cache, deps.Events, errLog, logger)
		r.Mount("/profile", profilefeature.Routes(profileHandler))

		mentorshipHandler := mentorshipfeature.NewHandler(matches, errLog, logger)
		r.Mount("/matching", mentorshipfeature.Routes(mentorshipHandler))

		accountHandler := accountopsfeature.NewHandler(accountSvc, sessionMgr, matches, errLog, logger)
		r.Mount("/account", accountopsfeature.Routes(accountHandler))

		advisorHandler := advisorfeature.NewHandler(adviceClient, errLog, logger)
		r.Mount("/advice", advisorfeature.Routes(advisorHandler))
	})

	return r, nil
}
