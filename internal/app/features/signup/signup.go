// internal/app/features/signup/signup.go
package signup

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/authutil"
	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"github.com/campusbridge/campusbridge/internal/app/system/normalize"
	"github.com/campusbridge/campusbridge/internal/app/system/timeouts"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"go.uber.org/zap"
)

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// HandleSignup registers a credential with the auth collaborator, creates
// the profile document, and signs the new user in.
//
// Profile creation is create-if-absent, so a duplicate submission (double
// click, retry) signs the user into the existing profile instead of
// failing or clobbering it.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode signup request failed", err, "Invalid request body.")
		return
	}

	req.FullName = normalize.Name(req.FullName)
	if req.FullName == "" {
		respond.Error(w, http.StatusBadRequest, "Full name is required.")
		return
	}
	if err := authutil.ValidateEmail(req.Email); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	accountID, err := h.Auth.CreateAccount(ctx, req.Email, req.Password)
	if err == auth.ErrEmailInUse {
		respond.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create account failed", err, "Could not create your account. Please try again.")
		return
	}

	u := models.User{
		ID:            accountID,
		FullName:      req.FullName,
		Email:         req.Email,
		Role:          role,
		NotifyByEmail: true,
		NotifyMatches: true,
		Attrs:         models.NewRoleAttributes(role),
	}
	created, err := h.Users.Create(ctx, u)
	if err != nil {
		// The credential exists but the profile does not; surfacing the
		// error lets the user retry signup, which will reuse the account.
		h.ErrLog.LogServerError(w, r, "create profile failed", err, "Could not create your profile. Please try again.")
		return
	}
	if created {
		h.publish(ctx, events.KeyUserRegistered, events.UserRegistered{
			UserID: accountID,
			Email:  normalize.Email(req.Email),
			Role:   string(role),
			At:     time.Now().UTC(),
		})
	}

	h.signIn(w, r, accountID)
}

// HandleSignin verifies an email/password pair and starts a session.
func (h *Handler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode signin request failed", err, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}
	if ok, reason := h.Limits.Check(r, req.Email); !ok {
		respond.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	accountID, err := h.Auth.SignIn(ctx, req.Email, req.Password)
	if err == auth.ErrBadCredential {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "signin failed", err, "Sign-in is unavailable right now. Please try again.")
		return
	}
	h.Limits.ResetEmail(req.Email)

	h.signIn(w, r, accountID)
}

// HandleSignout clears the session cookie.
func (h *Handler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.ClearSession(w, r); err != nil {
		h.Log.Warn("clear session failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// signIn loads the profile, saves the session cookie, and answers with the
// session summary.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, accountID string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Get(ctx, accountID)
	if err == userstore.ErrNotFound {
		respond.Error(w, http.StatusConflict, "No profile exists for this account. Please sign up again.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "Could not load your profile.")
		return
	}
	if u.Deleted {
		respond.Error(w, http.StatusGone, "This account has been deleted.")
		return
	}

	su := auth.SessionUser{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Role:  string(u.Role),
	}
	if err := h.Sessions.SaveSessionUser(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Could not start your session.")
		return
	}

	respond.JSON(w, http.StatusOK, sessionResponse{
		UserID:   u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
	})
}

func (h *Handler) publish(ctx context.Context, key string, event any) {
	if err := h.Events.Publish(ctx, key, event); err != nil {
		h.Log.Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}
