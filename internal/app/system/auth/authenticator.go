// internal/app/system/auth/authenticator.go
package auth

import (
	"context"
	"errors"
)

// Authenticator is the external auth collaborator. Account lifecycle
// operations (change password, change email, delete) reauthenticate with
// the current credential before mutating anything, and surface the
// collaborator's error messages verbatim — the core never retries.
type Authenticator interface {
	// CreateAccount registers a credential and returns the new opaque
	// account ID.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// SignIn verifies an email/password pair and returns the account ID.
	SignIn(ctx context.Context, email, password string) (string, error)

	// Reauthenticate verifies the current credential for the account.
	Reauthenticate(ctx context.Context, accountID, password string) error

	// ChangePassword replaces the account's password. Callers must
	// Reauthenticate first.
	ChangePassword(ctx context.Context, accountID, newPassword string) error

	// ChangeEmail replaces the account's login email. The new address is
	// re-verified out of band.
	ChangeEmail(ctx context.Context, accountID, newEmail string) error

	// DeleteAccount removes the credential. Profile soft-deletion is the
	// caller's responsibility.
	DeleteAccount(ctx context.Context, accountID string) error
}

// Errors surfaced by Authenticator implementations. Handlers pass their
// messages through to the operator unchanged.
var (
	ErrBadCredential = errors.New("the password you entered is incorrect")
	ErrEmailInUse    = errors.New("an account with this email already exists")
	ErrNoAccount     = errors.New("account not found")
)
