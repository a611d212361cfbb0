// internal/app/features/signup/handler.go
package signup

import (
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"github.com/campusbridge/campusbridge/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler owns signup, sign-in, and sign-out.
type Handler struct {
	Auth     auth.Authenticator
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Events   events.Publisher
	Limits   *ratelimit.SigninLimiter
	Log      *zap.Logger
	ErrLog   *respond.ErrorLogger
}

// NewHandler constructs a signup Handler.
func NewHandler(authn auth.Authenticator, users *userstore.Store, sessions *auth.SessionManager, pub events.Publisher, errLog *respond.ErrorLogger, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Handler{
		Auth:     authn,
		Users:    users,
		Sessions: sessions,
		Events:   pub,
		Limits:   ratelimit.NewSigninLimiter(),
		Log:      logger,
		ErrLog:   errLog,
	}
}
