// internal/app/system/auth/local_test.go
package auth_test

import (
	"errors"
	"testing"

	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/indexes"
	"github.com/campusbridge/campusbridge/internal/testutil"
)

func TestCreateAccountAndSignIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := auth.NewLocalAuthenticator(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := a.CreateAccount(ctx, " Dana@Example.EDU ", "correct-horse")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if id == "" {
		t.Fatal("CreateAccount returned an empty account id")
	}

	// The stored email is normalized, so lookup is case-insensitive.
	got, err := a.SignIn(ctx, "dana@example.edu", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if got != id {
		t.Errorf("SignIn returned %q, want %q", got, id)
	}

	if _, err := a.SignIn(ctx, "dana@example.edu", "wrong"); !errors.Is(err, auth.ErrBadCredential) {
		t.Errorf("wrong password = %v, want ErrBadCredential", err)
	}
	if _, err := a.SignIn(ctx, "nobody@example.edu", "correct-horse"); !errors.Is(err, auth.ErrBadCredential) {
		t.Errorf("unknown email = %v, want ErrBadCredential", err)
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The uniqueness guarantee lives in the credentials index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	a := auth.NewLocalAuthenticator(db)
	if _, err := a.CreateAccount(ctx, "dana@example.edu", "correct-horse"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if _, err := a.CreateAccount(ctx, "DANA@example.edu", "other-password"); !errors.Is(err, auth.ErrEmailInUse) {
		t.Fatalf("duplicate email = %v, want ErrEmailInUse", err)
	}
}

func TestReauthenticateAndChangePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := auth.NewLocalAuthenticator(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := a.CreateAccount(ctx, "dana@example.edu", "old-password")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if err := a.Reauthenticate(ctx, id, "old-password"); err != nil {
		t.Fatalf("Reauthenticate failed: %v", err)
	}
	if err := a.Reauthenticate(ctx, id, "wrong"); !errors.Is(err, auth.ErrBadCredential) {
		t.Errorf("wrong password = %v, want ErrBadCredential", err)
	}
	if err := a.Reauthenticate(ctx, "no-such-id", "old-password"); !errors.Is(err, auth.ErrNoAccount) {
		t.Errorf("unknown account = %v, want ErrNoAccount", err)
	}

	if err := a.ChangePassword(ctx, id, "new-password"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if err := a.Reauthenticate(ctx, id, "old-password"); !errors.Is(err, auth.ErrBadCredential) {
		t.Error("old password should no longer work")
	}
	if err := a.Reauthenticate(ctx, id, "new-password"); err != nil {
		t.Errorf("new password should work: %v", err)
	}
}

func TestChangeEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := auth.NewLocalAuthenticator(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := a.CreateAccount(ctx, "old@example.edu", "correct-horse")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := a.ChangeEmail(ctx, id, " New@Example.EDU "); err != nil {
		t.Fatalf("ChangeEmail failed: %v", err)
	}

	if _, err := a.SignIn(ctx, "new@example.edu", "correct-horse"); err != nil {
		t.Errorf("sign-in with the new email failed: %v", err)
	}
	if _, err := a.SignIn(ctx, "old@example.edu", "correct-horse"); !errors.Is(err, auth.ErrBadCredential) {
		t.Error("the old email should no longer sign in")
	}
	if err := a.ChangeEmail(ctx, "no-such-id", "x@example.edu"); !errors.Is(err, auth.ErrNoAccount) {
		t.Errorf("unknown account = %v, want ErrNoAccount", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := auth.NewLocalAuthenticator(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := a.CreateAccount(ctx, "dana@example.edu", "correct-horse")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := a.DeleteAccount(ctx, id); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if err := a.Reauthenticate(ctx, id, "correct-horse"); !errors.Is(err, auth.ErrNoAccount) {
		t.Errorf("deleted account = %v, want ErrNoAccount", err)
	}
	if err := a.DeleteAccount(ctx, id); !errors.Is(err, auth.ErrNoAccount) {
		t.Errorf("double delete = %v, want ErrNoAccount", err)
	}
}
