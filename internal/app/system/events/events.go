// Package events publishes account-lifecycle events to a topic exchange.
// Publishing is best-effort everywhere it is used: a broker outage must
// never fail a signup or an account operation.
package events

import (
	"context"
	"time"
)

// Routing keys for the campusbridge exchange.
const (
	KeyUserRegistered  = "user.registered"
	KeyEmailChanged    = "user.email_changed"
	KeyAccountDeleted  = "user.deleted"
	KeyMentorStatusSet = "user.mentor_status"
)

// UserRegistered is published after a successful signup.
type UserRegistered struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	At     time.Time `json:"at"`
}

// EmailChanged is published after the auth collaborator accepts an email
// change and the profile mirror is updated.
type EmailChanged struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

// AccountDeleted is published after the auth collaborator deletes the
// account. The profile document is soft-deleted, never removed.
type AccountDeleted struct {
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// MentorStatusSet is published when a user toggles mentor opt-in.
type MentorStatusSet struct {
	UserID   string    `json:"user_id"`
	IsMentor bool      `json:"is_mentor"`
	At       time.Time `json:"at"`
}

// Publisher sends one event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// Noop is the Publisher used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close() error                               { return nil }
