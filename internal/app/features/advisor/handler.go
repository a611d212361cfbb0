// internal/app/features/advisor/handler.go
package advisor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campusbridge/campusbridge/internal/app/advice"
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/sanitize"
	"go.uber.org/zap"
)

// Handler fronts the free-text advice endpoint. Unlike the matching
// suggestions, a failed advice call is the caller's whole answer, so it is
// reported instead of degraded.
type Handler struct {
	Advice *advice.Client
	Log    *zap.Logger
	ErrLog *respond.ErrorLogger
}

// NewHandler constructs an advisor Handler.
func NewHandler(client *advice.Client, errLog *respond.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Advice: client, Log: logger, ErrLog: errLog}
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Advice string `json:"advice"`
}

// HandleAsk answers POST /advice with role-aware guidance from the advice
// service.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode advice request failed", err, "Invalid request body.")
		return
	}
	query := strings.TrimSpace(sanitize.Text(req.Query))
	if query == "" {
		respond.Error(w, http.StatusBadRequest, "A question is required.")
		return
	}

	answer, err := h.Advice.Ask(r.Context(), su.Role, query)
	if err != nil {
		h.Log.Warn("advice request failed", zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "The advisor is unavailable right now. Please try again later.")
		return
	}
	respond.JSON(w, http.StatusOK, askResponse{Advice: answer})
}
