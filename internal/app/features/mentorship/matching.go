// internal/app/features/mentorship/matching.go
package mentorship

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/matching"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
)

type stateView struct {
	State    matching.State    `json:"state"`
	Selected []string          `json:"selected"`
	Results  *matching.Results `json:"results,omitempty"`
}

type toggleRequest struct {
	Tag string `json:"tag"`
}

type toggleResponse struct {
	Selected bool     `json:"selected"`
	Tags     []string `json:"tags"`
}

// ServeState answers GET /matching with the caller's flow state.
func (h *Handler) ServeState(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	o := h.Matches.Get(su.ID)
	view := stateView{State: o.State(), Selected: o.Selected()}
	if res, ok := o.Results(); ok {
		view.Results = &res
	}
	respond.JSON(w, http.StatusOK, view)
}

// HandleToggle flips one interest tag on or off while selecting.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		respond.Error(w, http.StatusBadRequest, "A tag is required.")
		return
	}

	o := h.Matches.Get(su.ID)
	selected, err := o.Toggle(req.Tag)
	if err != nil {
		respond.Error(w, http.StatusConflict, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, toggleResponse{Selected: selected, Tags: o.Selected()})
}

// HandleSubmit runs the matching flow to completion and answers with the
// results. The request blocks through the loading phase; clients polling
// GET /matching meanwhile see state "loading".
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	o := h.Matches.Get(su.ID)
	res, err := o.Submit(r.Context())
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, res)
	case errors.Is(err, matching.ErrNoSelection):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, matching.ErrNotSelecting):
		respond.Error(w, http.StatusConflict, err.Error())
	case userstore.IsUnavailable(err):
		h.ErrLog.LogUnavailable(w, r, "mentor query failed", err, "Matching is unavailable right now. Please try again.")
	default:
		h.ErrLog.LogServerError(w, r, "matching submit failed", err, "Matching failed. Please try again.")
	}
}

// ServeResults answers GET /matching/results, 409 outside the results
// state.
func (h *Handler) ServeResults(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	o := h.Matches.Get(su.ID)
	res, ok := o.Results()
	if !ok {
		respond.Error(w, http.StatusConflict, "No results to show. Submit a selection first.")
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// HandleReset returns the flow to selecting with nothing selected.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	o := h.Matches.Get(su.ID)
	if err := o.Reset(); err != nil {
		respond.Error(w, http.StatusConflict, "A match is in progress. Wait for it to finish.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
