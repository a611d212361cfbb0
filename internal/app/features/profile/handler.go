// internal/app/features/profile/handler.go
package profile

import (
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/store/profilecache"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"go.uber.org/zap"
)

// Handler owns all profile handlers.
type Handler struct {
	Users  *userstore.Store
	Cache  *profilecache.Cache
	Events events.Publisher
	Log    *zap.Logger
	ErrLog *respond.ErrorLogger
}

// NewHandler constructs a profile Handler.
func NewHandler(users *userstore.Store, cache *profilecache.Cache, pub events.Publisher, errLog *respond.ErrorLogger, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Handler{
		Users:  users,
		Cache:  cache,
		Events: pub,
		Log:    logger,
		ErrLog: errLog,
	}
}
