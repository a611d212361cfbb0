// internal/app/features/profile/update.go
package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"github.com/campusbridge/campusbridge/internal/app/system/normalize"
	"github.com/campusbridge/campusbridge/internal/app/system/sanitize"
	"github.com/campusbridge/campusbridge/internal/app/system/timeouts"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// HandleUpdateGeneral answers PATCH /profile. The body carries only the
// fields the caller wants to change; everything absent is left untouched.
// Unknown fields are ignored rather than rejected.
func (h *Handler) HandleUpdateGeneral(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode profile patch failed", err, "Invalid request body.")
		return
	}

	patch := bson.M{}
	if raw, ok := body["full_name"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			respond.Error(w, http.StatusBadRequest, "full_name must be a string.")
			return
		}
		v = normalize.Name(sanitize.Text(v))
		if v == "" {
			respond.Error(w, http.StatusBadRequest, "Full name cannot be empty.")
			return
		}
		patch["full_name"] = v
	}
	for _, f := range []string{"photo_url", "campus_involvement", "languages_spoken"} {
		raw, ok := body[f]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			respond.Error(w, http.StatusBadRequest, f+" must be a string.")
			return
		}
		patch[f] = sanitize.Text(v)
	}
	for _, f := range []string{"notify_by_email", "notify_matches"} {
		raw, ok := body[f]
		if !ok {
			continue
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			respond.Error(w, http.StatusBadRequest, f+" must be a boolean.")
			return
		}
		patch[f] = v
	}
	for _, f := range []string{"offer_tags", "seeking_tags"} {
		raw, ok := body[f]
		if !ok {
			continue
		}
		var v []string
		if err := json.Unmarshal(raw, &v); err != nil {
			respond.Error(w, http.StatusBadRequest, f+" must be an array of strings.")
			return
		}
		patch[f] = normalize.Tags(sanitize.TextSlice(v))
	}

	h.applyMerge(w, r, su.ID, patch)
}

// HandleUpdateRoleFields answers PATCH /profile/role. The patch is checked
// against the caller's stored role: fields belonging to another role are
// dropped, and values are type-checked against the role's attribute set.
func (h *Handler) HandleUpdateRoleFields(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role, err := models.ParseRole(su.Role)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "session role invalid", err, "Could not update your profile.")
		return
	}

	raw, err := readBody(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode role patch failed", err, "Invalid request body.")
		return
	}

	// Decode into the typed variant first so a wrong-typed value is an
	// error, not a silently stored mismatch.
	attrs := models.NewRoleAttributes(role)
	if err := json.Unmarshal(raw, attrs); err != nil {
		respond.Error(w, http.StatusBadRequest, "One or more fields have the wrong type.")
		return
	}

	var supplied map[string]json.RawMessage
	if err := json.Unmarshal(raw, &supplied); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode role patch failed", err, "Invalid request body.")
		return
	}

	flat, err := flattenAttrs(attrs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "flatten role patch failed", err, "Could not update your profile.")
		return
	}

	allowed := models.RoleFieldSet(role)
	patch := bson.M{}
	for name := range supplied {
		if _, ok := allowed[name]; !ok {
			continue // not a field of this role
		}
		v := flat[name]
		if s, isStr := v.(string); isStr {
			v = sanitize.Text(s)
		}
		patch[name] = v
	}

	h.applyMerge(w, r, su.ID, patch)
}

type mentorRequest struct {
	IsMentor  bool    `json:"is_mentor"`
	Expertise *string `json:"mentor_expertise"`
	Bio       *string `json:"mentor_bio"`
}

// HandleSetMentorStatus answers POST /profile/mentor. Opting out clears
// the mentor fields at write time regardless of what the body carries.
func (h *Handler) HandleSetMentorStatus(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req mentorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode mentor request failed", err, "Invalid request body.")
		return
	}

	patch := bson.M{"is_mentor": req.IsMentor}
	if req.IsMentor {
		if req.Expertise != nil {
			patch["mentor_expertise"] = sanitize.Text(*req.Expertise)
		}
		if req.Bio != nil {
			patch["mentor_bio"] = sanitize.Text(*req.Bio)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Merge(ctx, su.ID, patch); err != nil {
		h.mergeError(w, r, err)
		return
	}
	h.Cache.Invalidate(ctx, su.ID)

	if err := h.Events.Publish(ctx, events.KeyMentorStatusSet, events.MentorStatusSet{
		UserID:   su.ID,
		IsMentor: req.IsMentor,
		At:       time.Now().UTC(),
	}); err != nil {
		h.Log.Warn("event publish failed", zap.String("key", events.KeyMentorStatusSet), zap.Error(err))
	}

	h.serveUpdated(w, r, su.ID)
}

// applyMerge runs the merge write, invalidates the cache, and answers with
// the updated document. An empty patch is a no-op that still answers 200.
func (h *Handler) applyMerge(w http.ResponseWriter, r *http.Request, userID string, patch bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Merge(ctx, userID, patch); err != nil {
		h.mergeError(w, r, err)
		return
	}
	h.Cache.Invalidate(ctx, userID)
	h.serveUpdated(w, r, userID)
}

func (h *Handler) serveUpdated(w http.ResponseWriter, r *http.Request, userID string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Get(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload profile failed", err, "Saved, but could not reload your profile.")
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

func (h *Handler) mergeError(w http.ResponseWriter, r *http.Request, err error) {
	if err == userstore.ErrNotFound {
		respond.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	if userstore.IsUnavailable(err) {
		h.ErrLog.LogUnavailable(w, r, "profile merge failed", err, "The profile store is unavailable. Please try again.")
		return
	}
	h.ErrLog.LogServerError(w, r, "profile merge failed", err, "Could not save your profile.")
}

// readBody slurps the request body for double decoding.
func readBody(r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// flattenAttrs converts a typed variant into a field→value map keyed by
// the bson field names, matching how the document is stored.
func flattenAttrs(attrs models.RoleAttributes) (map[string]any, error) {
	b, err := bson.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := bson.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
