// Package matching drives the mentor-matching flow: a per-user state
// machine Selecting → Loading → Results with an explicit reset back to
// Selecting.
//
// On submit the orchestrator runs three strictly sequential steps:
//
//  1. persist the selected interests as the user's seeking tags — a merge
//     write whose failure is logged and swallowed, because showing
//     mentors outranks preference durability;
//  2. query the document store for every mentor candidate — the
//     authoritative answer for who is shown;
//  3. ask the advice service for ranked suggestions — best-effort
//     annotation, degraded to empty on any failure.
//
// A minimum visible loading duration is applied before Results so the
// loading state is never imperceptibly brief. That delay is a
// perceived-progress choice, not a correctness requirement.
package matching

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/advice"
	"github.com/campusbridge/campusbridge/internal/app/system/metrics"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"go.uber.org/zap"
)

// State is the orchestrator's lifecycle state.
type State string

const (
	StateSelecting State = "selecting"
	StateLoading   State = "loading"
	StateResults   State = "results"
)

// DefaultMinVisibleLoading is the default minimum time spent in Loading.
const DefaultMinVisibleLoading = 600 * time.Millisecond

var (
	// ErrNoSelection rejects a submit with no interests selected.
	ErrNoSelection = errors.New("select at least one interest before matching")
	// ErrNotSelecting rejects toggles/submits outside the Selecting state.
	ErrNotSelecting = errors.New("matching flow is not accepting selections")
)

// PreferenceWriter persists the selected interests onto the profile.
type PreferenceWriter interface {
	SetSeekingTags(ctx context.Context, userID string, tags []string) error
}

// CandidateLister runs the direct mentor query.
type CandidateLister interface {
	ListMentors(ctx context.Context) ([]models.MentorCandidate, error)
}

// SuggestionClient is the best-effort advice-service call.
type SuggestionClient interface {
	SuggestMentorTypes(ctx context.Context, interests []string) advice.SuggestionsResult
}

// Results is what the Results state presents. Candidates come from the
// direct query in store order; Suggestions are supplementary and may be
// empty whenever the advice call degraded.
type Results struct {
	Candidates  []models.MentorCandidate `json:"candidates"`
	Suggestions []advice.Suggestion      `json:"suggestions"`
	Degraded    bool                     `json:"degraded"`
}

// Orchestrator is one user's matching session. Safe for concurrent use.
type Orchestrator struct {
	userID     string
	prefs      PreferenceWriter
	candidates CandidateLister
	advisor    SuggestionClient
	minVisible time.Duration
	log        *zap.Logger

	mu       sync.Mutex
	state    State
	selected []string
	results  Results
}

// New builds an Orchestrator in the Selecting state.
func New(userID string, prefs PreferenceWriter, candidates CandidateLister, advisor SuggestionClient, minVisible time.Duration, logger *zap.Logger) *Orchestrator {
	if minVisible < 0 {
		minVisible = DefaultMinVisibleLoading
	}
	return &Orchestrator{
		userID:     userID,
		prefs:      prefs,
		candidates: candidates,
		advisor:    advisor,
		minVisible: minVisible,
		log:        logger,
		state:      StateSelecting,
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Selected returns the currently selected interests in toggle order.
func (o *Orchestrator) Selected() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.selected))
	copy(out, o.selected)
	return out
}

// Toggle adds the interest if absent and removes it if present. Only
// valid while Selecting. Reports whether the tag is selected afterward.
func (o *Orchestrator) Toggle(tag string) (selected bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateSelecting {
		return false, ErrNotSelecting
	}
	for i, t := range o.selected {
		if t == tag {
			o.selected = append(o.selected[:i], o.selected[i+1:]...)
			return false, nil
		}
	}
	o.selected = append(o.selected, tag)
	return true, nil
}

// Submit runs the Loading steps and transitions to Results. A failed
// candidate query is fatal to this submit: the machine returns to
// Selecting with the selection intact so the user can retry. Preference
// persistence and advice failures never abort the flow.
func (o *Orchestrator) Submit(ctx context.Context) (Results, error) {
	o.mu.Lock()
	if o.state != StateSelecting {
		o.mu.Unlock()
		return Results{}, ErrNotSelecting
	}
	if len(o.selected) == 0 {
		o.mu.Unlock()
		return Results{}, ErrNoSelection
	}
	interests := make([]string, len(o.selected))
	copy(interests, o.selected)
	o.state = StateLoading
	o.mu.Unlock()

	started := time.Now()

	// Step 1: persist preferences, best-effort. The persisted tags should
	// reflect the selection that produced the shown results, which is why
	// this runs before the queries.
	if err := o.prefs.SetSeekingTags(ctx, o.userID, interests); err != nil {
		metrics.MatchPrefSaveFailures.Inc()
		o.log.Warn("seeking-tag persistence failed; matching continues",
			zap.String("user_id", o.userID),
			zap.Error(err))
	}

	// Step 2: the authoritative candidate query.
	candidates, err := o.candidates.ListMentors(ctx)
	if err != nil {
		o.mu.Lock()
		o.state = StateSelecting
		o.mu.Unlock()
		return Results{}, err
	}

	// Step 3: best-effort suggestions.
	sugg := o.advisor.SuggestMentorTypes(ctx, interests)
	if sugg.Degraded {
		metrics.AdviceDegradedTotal.Inc()
		o.log.Info("advice suggestions degraded",
			zap.String("user_id", o.userID),
			zap.String("reason", sugg.Reason))
	}

	if err := o.holdLoading(ctx, started); err != nil {
		o.mu.Lock()
		o.state = StateSelecting
		o.mu.Unlock()
		return Results{}, err
	}

	res := Results{
		Candidates:  candidates,
		Suggestions: sugg.Suggestions,
		Degraded:    sugg.Degraded,
	}
	if res.Suggestions == nil {
		res.Suggestions = []advice.Suggestion{}
	}

	o.mu.Lock()
	o.state = StateResults
	o.results = res
	o.mu.Unlock()

	metrics.MatchRunsTotal.WithLabelValues(boolLabel(sugg.Degraded)).Inc()
	return res, nil
}

// Results returns the presented results. Only meaningful in StateResults.
func (o *Orchestrator) Results() (Results, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateResults {
		return Results{}, false
	}
	return o.results, true
}

// Reset returns to Selecting, discarding the previous selection and
// results. A Reset during Loading is rejected.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateLoading {
		return ErrNotSelecting
	}
	o.state = StateSelecting
	o.selected = nil
	o.results = Results{}
	return nil
}

// holdLoading keeps the machine in Loading until the minimum visible
// duration has elapsed, honoring cancellation.
func (o *Orchestrator) holdLoading(ctx context.Context, started time.Time) error {
	remaining := o.minVisible - time.Since(started)
	if remaining <= 0 {
		return nil
	}
	select {
	case <-time.After(remaining):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
