// internal/app/features/mentorship/handler.go
package mentorship

import (
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/matching"
	"go.uber.org/zap"
)

// Handler exposes the matching flow over HTTP. All state lives in the
// per-user orchestrators behind the registry.
type Handler struct {
	Matches *matching.Registry
	Log     *zap.Logger
	ErrLog  *respond.ErrorLogger
}

// NewHandler constructs a mentorship Handler.
func NewHandler(matches *matching.Registry, errLog *respond.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Matches: matches, Log: logger, ErrLog: errLog}
}
