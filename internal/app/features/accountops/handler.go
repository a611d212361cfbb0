// internal/app/features/accountops/handler.go
package accountops

import (
	"github.com/campusbridge/campusbridge/internal/app/account"
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/matching"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler exposes the account lifecycle operations over HTTP.
type Handler struct {
	Account  *account.Service
	Sessions *auth.SessionManager
	Matches  *matching.Registry
	Log      *zap.Logger
	ErrLog   *respond.ErrorLogger
}

// NewHandler constructs an accountops Handler.
func NewHandler(svc *account.Service, sessions *auth.SessionManager, matches *matching.Registry, errLog *respond.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Account:  svc,
		Sessions: sessions,
		Matches:  matches,
		Log:      logger,
		ErrLog:   errLog,
	}
}
