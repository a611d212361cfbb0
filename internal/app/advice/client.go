// Package advice is the client for the external advice-generation
// service.
//
// The match-suggestion call is strictly best-effort: transport errors,
// non-2xx statuses, and malformed bodies all degrade to "no suggestions"
// with a reason, never to a caller-visible failure. The degrade path is a
// first-class branch (SuggestionsResult.Degraded), not a swallowed error.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// Suggestion is one ranked mentor-type suggestion from the service.
type Suggestion struct {
	MentorType string `json:"mentorType"`
	Reason     string `json:"reason"`
}

// SuggestionsResult is the typed outcome of a match-suggestion call.
// When Degraded is true, Suggestions is empty and Reason says why; the
// matching flow proceeds on the direct candidate query alone.
type SuggestionsResult struct {
	Suggestions []Suggestion
	Degraded    bool
	Reason      string
}

// Client talks HTTP+JSON to the advice service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Config configures the advice client. When ClientID is set, requests are
// authenticated with an OAuth2 client-credentials token source.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// New builds a Client. An empty BaseURL yields a client whose calls
// always degrade — useful for deployments without the service.
func New(cfg Config, logger *zap.Logger) *Client {
	httpClient := http.DefaultClient
	if cfg.ClientID != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(context.Background())
	}
	return &Client{baseURL: cfg.BaseURL, http: httpClient, log: logger}
}

// SuggestMentorTypes asks the service for ranked mentor-type suggestions
// for the given interests. It never returns an error: every failure mode
// is folded into a degraded result.
func (c *Client) SuggestMentorTypes(ctx context.Context, interests []string) SuggestionsResult {
	if c.baseURL == "" {
		return degraded("advice service not configured")
	}

	body, err := json.Marshal(struct {
		Interests []string `json:"interests"`
	}{Interests: interests})
	if err != nil {
		return degraded("encode request: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/match-suggestions", bytes.NewReader(body))
	if err != nil {
		return degraded("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("advice service unreachable", zap.Error(err))
		return degraded("unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("advice service returned non-2xx", zap.Int("status", resp.StatusCode))
		return degraded(fmt.Sprintf("status %d", resp.StatusCode))
	}

	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn("advice service response malformed", zap.Error(err))
		return degraded("malformed response: " + err.Error())
	}

	return SuggestionsResult{Suggestions: out.Suggestions}
}

// Ask sends a free-text advice request for a role. Unlike the suggestion
// call, callers see this error: the response is the primary output here,
// so there is nothing sensible to degrade to.
func (c *Client) Ask(ctx context.Context, role, query string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("advice service not configured")
	}

	body, err := json.Marshal(struct {
		Role  string `json:"role"`
		Query string `json:"query"`
	}{Role: role, Query: query})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/advice", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("advice service returned status %d", resp.StatusCode)
	}

	var out struct {
		Advice string `json:"advice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode advice response: %w", err)
	}
	return out.Advice, nil
}

func degraded(reason string) SuggestionsResult {
	return SuggestionsResult{Degraded: true, Reason: reason}
}
