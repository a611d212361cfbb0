// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"

	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/privileges"
	"github.com/campusbridge/campusbridge/internal/app/system/timeouts"
	"github.com/campusbridge/campusbridge/internal/domain/models"
)

// capabilityView is one resolved capability with its display label.
type capabilityView struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// profileView is the full profile response: the user document plus the
// capabilities resolved from the static role table.
type profileView struct {
	User         *models.User     `json:"user"`
	RoleLabel    string           `json:"role_label"`
	Capabilities []capabilityView `json:"capabilities"`
}

// ServeProfile answers GET /profile with the signed-in user's document and
// resolved capabilities.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Cache.Get(ctx, su.ID)
	if err == userstore.ErrNotFound {
		respond.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogUnavailable(w, r, "load profile failed", err, "Could not load your profile.")
		return
	}

	caps, err := privileges.Resolve(u.Role)
	if err != nil {
		// A stored role missing from the table is a deployment defect, not
		// an operator mistake.
		h.ErrLog.LogServerError(w, r, "resolve privileges failed", err, "Could not load your profile.")
		return
	}

	view := profileView{User: u, RoleLabel: u.Role.Label()}
	for _, c := range caps.List() {
		view.Capabilities = append(view.Capabilities, capabilityView{
			Token: string(c),
			Label: privileges.Label(c),
		})
	}
	respond.JSON(w, http.StatusOK, view)
}
