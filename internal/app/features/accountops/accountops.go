// internal/app/features/accountops/accountops.go
package accountops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusbridge/campusbridge/internal/app/account"
	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/normalize"
	"github.com/campusbridge/campusbridge/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type changeEmailRequest struct {
	Password string `json:"password"`
	NewEmail string `json:"new_email"`
}

type deleteRequest struct {
	Password string `json:"password"`
}

// HandleChangePassword answers POST /account/password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode password request failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Remote())
	defer cancel()

	if err := h.Account.ChangePassword(ctx, su.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		h.opError(w, r, "change password failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeEmail answers POST /account/email. On success the session
// cookie is rewritten so the mirrored email stays current.
func (h *Handler) HandleChangeEmail(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode email request failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Remote())
	defer cancel()

	if err := h.Account.ChangeEmail(ctx, su.ID, req.Password, req.NewEmail); err != nil {
		h.opError(w, r, "change email failed", err)
		return
	}

	updated := *su
	updated.Email = normalize.Email(req.NewEmail)
	if err := h.Sessions.SaveSessionUser(w, r, updated); err != nil {
		h.Log.Warn("session refresh after email change failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete answers POST /account/delete. On success the session is
// cleared and the caller's matching state is dropped.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode delete request failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Remote())
	defer cancel()

	if err := h.Account.Delete(ctx, su.ID, req.Password); err != nil {
		h.opError(w, r, "delete account failed", err)
		return
	}

	h.Matches.Drop(su.ID)
	if err := h.Sessions.ClearSession(w, r); err != nil {
		h.Log.Warn("clear session after delete failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// opError maps a lifecycle failure onto a status. Validation and
// credential errors carry messages meant for the operator; everything else
// is a masked 502 because the auth collaborator or store misbehaved.
func (h *Handler) opError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	switch {
	case account.IsValidation(err):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrBadCredential):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrEmailInUse):
		respond.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrNoAccount):
		respond.Error(w, http.StatusNotFound, err.Error())
	default:
		h.Log.Error(logMsg, zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "The operation could not be completed. Your account is unchanged.")
	}
}
