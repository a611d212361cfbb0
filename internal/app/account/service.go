// Package account implements the account lifecycle operations: change
// password, change email, delete account.
//
// Every operation follows the same shape: validate local preconditions
// (no remote I/O happens if these fail) → reauthenticate against the auth
// collaborator with the current credential → perform the mutation → on
// success, update the profile mirror and publish an event. On failure the
// collaborator's error is surfaced verbatim and nothing is mutated.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/authutil"
	"github.com/campusbridge/campusbridge/internal/app/system/events"
	"github.com/campusbridge/campusbridge/internal/app/system/metrics"
	"go.uber.org/zap"
)

// ValidationError is a locally detected precondition failure. Handlers
// report it immediately; no remote call was attempted.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(msg string) error { return &ValidationError{msg: msg} }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProfileMirror is the slice of the user store the lifecycle operations
// touch: mirrored email and the soft-delete marker.
type ProfileMirror interface {
	SetEmail(ctx context.Context, id, email string) error
	SoftDelete(ctx context.Context, id string) error
}

// CacheInvalidator drops any cached profile copy after a mutation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

// Service owns the three lifecycle operations.
type Service struct {
	auth   auth.Authenticator
	users  ProfileMirror
	cache  CacheInvalidator
	events events.Publisher
	log    *zap.Logger
}

// NewService wires a Service. cache may be nil.
func NewService(authn auth.Authenticator, users ProfileMirror, cache CacheInvalidator, pub events.Publisher, logger *zap.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{auth: authn, users: users, cache: cache, events: pub, log: logger}
}

// ChangePassword validates, reauthenticates with the current password,
// then replaces it. The credential store is the only thing mutated.
func (s *Service) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	if strings.TrimSpace(current) == "" {
		return s.fail("password", validationErr("current password is required"))
	}
	if err := authutil.ValidatePassword(newPassword); err != nil {
		return s.fail("password", validationErr(err.Error()))
	}
	if newPassword != confirm {
		return s.fail("password", validationErr("new passwords do not match"))
	}
	if newPassword == current {
		return s.fail("password", validationErr("new password cannot be the same as your current password"))
	}

	if err := s.auth.Reauthenticate(ctx, userID, current); err != nil {
		return s.fail("password", err)
	}
	if err := s.auth.ChangePassword(ctx, userID, newPassword); err != nil {
		return s.fail("password", err)
	}

	metrics.AccountOpsTotal.WithLabelValues("password", "ok").Inc()
	return nil
}

// ChangeEmail validates, reauthenticates, changes the login email, then
// mirrors the new address onto the profile document. The new address is
// re-verified by the auth collaborator out of band.
func (s *Service) ChangeEmail(ctx context.Context, userID, password, newEmail string) error {
	if err := authutil.ValidateEmail(newEmail); err != nil {
		return s.fail("email", validationErr(err.Error()))
	}
	if strings.TrimSpace(password) == "" {
		return s.fail("email", validationErr("password is required"))
	}

	if err := s.auth.Reauthenticate(ctx, userID, password); err != nil {
		return s.fail("email", err)
	}
	if err := s.auth.ChangeEmail(ctx, userID, newEmail); err != nil {
		return s.fail("email", err)
	}

	// The credential change has landed; a mirror failure is still this
	// operation's failure, but we say so in the log for operators.
	if err := s.users.SetEmail(ctx, userID, newEmail); err != nil {
		s.log.Error("email changed at auth collaborator but profile mirror failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return s.fail("email", err)
	}
	s.invalidate(ctx, userID)

	s.publish(ctx, events.KeyEmailChanged, events.EmailChanged{
		UserID: userID,
		Email:  newEmail,
		At:     time.Now().UTC(),
	})
	metrics.AccountOpsTotal.WithLabelValues("email", "ok").Inc()
	return nil
}

// Delete validates, reauthenticates, deletes the credential, then
// soft-deletes the profile document. The soft-delete is best-effort: its
// failure does not change the outcome, since the account itself is gone.
func (s *Service) Delete(ctx context.Context, userID, password string) error {
	if strings.TrimSpace(password) == "" {
		return s.fail("delete", validationErr("password is required"))
	}

	if err := s.auth.Reauthenticate(ctx, userID, password); err != nil {
		return s.fail("delete", err)
	}
	if err := s.auth.DeleteAccount(ctx, userID); err != nil {
		return s.fail("delete", err)
	}

	if err := s.users.SoftDelete(ctx, userID); err != nil {
		s.log.Warn("profile soft-delete failed after account deletion",
			zap.String("user_id", userID),
			zap.Error(err))
	}
	s.invalidate(ctx, userID)

	s.publish(ctx, events.KeyAccountDeleted, events.AccountDeleted{
		UserID: userID,
		At:     time.Now().UTC(),
	})
	metrics.AccountOpsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

func (s *Service) fail(op string, err error) error {
	outcome := "error"
	if IsValidation(err) {
		outcome = "invalid"
	}
	metrics.AccountOpsTotal.WithLabelValues(op, outcome).Inc()
	return err
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

func (s *Service) publish(ctx context.Context, key string, event any) {
	if err := s.events.Publish(ctx, key, event); err != nil {
		s.log.Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}
