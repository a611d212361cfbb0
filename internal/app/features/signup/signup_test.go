// internal/app/features/signup/signup_test.go
package signup_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/campusbridge/campusbridge/internal/app/features/respond"
	"github.com/campusbridge/campusbridge/internal/app/features/signup"
	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/app/system/auth"
	"github.com/campusbridge/campusbridge/internal/app/system/normalize"
	"github.com/campusbridge/campusbridge/internal/testutil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryAuth is an in-memory Authenticator keyed by normalized email.
type memoryAuth struct {
	ids       map[string]string // email -> account id
	passwords map[string]string // account id -> password
}

func newMemoryAuth() *memoryAuth {
	return &memoryAuth{ids: map[string]string{}, passwords: map[string]string{}}
}

func (m *memoryAuth) CreateAccount(ctx context.Context, email, password string) (string, error) {
	email = normalize.Email(email)
	if _, exists := m.ids[email]; exists {
		return "", auth.ErrEmailInUse
	}
	id := uuid.NewString()
	m.ids[email] = id
	m.passwords[id] = password
	return id, nil
}

func (m *memoryAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	id, ok := m.ids[normalize.Email(email)]
	if !ok || m.passwords[id] != password {
		return "", auth.ErrBadCredential
	}
	return id, nil
}

func (m *memoryAuth) Reauthenticate(ctx context.Context, accountID, password string) error {
	if m.passwords[accountID] != password {
		return auth.ErrBadCredential
	}
	return nil
}

func (m *memoryAuth) ChangePassword(ctx context.Context, accountID, newPassword string) error {
	m.passwords[accountID] = newPassword
	return nil
}

func (m *memoryAuth) ChangeEmail(ctx context.Context, accountID, newEmail string) error {
	return nil
}

func (m *memoryAuth) DeleteAccount(ctx context.Context, accountID string) error {
	delete(m.passwords, accountID)
	return nil
}

func newHandler(t *testing.T) (*signup.Handler, *userstore.Store, *memoryAuth) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)
	logger := zap.NewNop()
	sessions, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "campusbridge_test", "", false, logger)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	authn := newMemoryAuth()
	h := signup.NewHandler(authn, users, sessions, nil, respond.NewErrorLogger(logger), logger)
	return h, users, authn
}

type signupBody struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func TestSignup(t *testing.T) {
	h, users, _ := newHandler(t)
	router := signup.Routes(h)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signup", signupBody{
		FullName: "  Dana   Cruz ",
		Email:    "dana@example.edu",
		Password: "correct-horse",
		Role:     "professional",
	}, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		UserID   string `json:"user_id"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	testutil.DecodeJSON(t, rec.ResponseRecorder, &resp)
	if resp.FullName != "Dana Cruz" {
		t.Errorf("full name = %q", resp.FullName)
	}
	if resp.Role != "professional" {
		t.Errorf("role = %q", resp.Role)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("signup should start a session")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := users.Get(ctx, resp.UserID)
	if err != nil {
		t.Fatalf("profile missing after signup: %v", err)
	}
	if !u.IsMentor {
		t.Error("professional signups are mentors from day one")
	}
	if !u.NotifyByEmail || !u.NotifyMatches {
		t.Error("notification preferences should default on")
	}
}

func TestSignupValidation(t *testing.T) {
	h, _, _ := newHandler(t)
	router := signup.Routes(h)

	cases := []struct {
		name string
		body signupBody
	}{
		{"missing name", signupBody{Email: "a@b.com", Password: "correct-horse", Role: "alumni"}},
		{"bad email", signupBody{FullName: "A", Email: "nope", Password: "correct-horse", Role: "alumni"}},
		{"weak password", signupBody{FullName: "A", Email: "a@b.com", Password: "short", Role: "alumni"}},
		{"bad role", signupBody{FullName: "A", Email: "a@b.com", Password: "correct-horse", Role: "wizard"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signup", tc.body, testutil.TestUser{}))
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	h, _, _ := newHandler(t)
	router := signup.Routes(h)

	body := signupBody{FullName: "Dana Cruz", Email: "dana@example.edu", Password: "correct-horse", Role: "alumni"}
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signup", body, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signup", body, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusConflict)
}

func TestSigninRoundTrip(t *testing.T) {
	h, _, _ := newHandler(t)
	router := signup.Routes(h)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signup", signupBody{
		FullName: "Dana Cruz", Email: "dana@example.edu", Password: "correct-horse", Role: "alumni",
	}, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signin", map[string]string{
		"email": "dana@example.edu", "password": "correct-horse",
	}, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signin", map[string]string{
		"email": "dana@example.edu", "password": "wrong-password",
	}, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestSigninDeletedAccount(t *testing.T) {
	h, users, _ := newHandler(t)
	router := signup.Routes(h)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signup", signupBody{
		FullName: "Dana Cruz", Email: "dana@example.edu", Password: "correct-horse", Role: "alumni",
	}, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		UserID string `json:"user_id"`
	}
	testutil.DecodeJSON(t, rec.ResponseRecorder, &resp)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := users.SoftDelete(ctx, resp.UserID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, "POST", "/signin", map[string]string{
		"email": "dana@example.edu", "password": "correct-horse",
	}, testutil.TestUser{}))
	rec.AssertStatus(t, http.StatusGone)
}

func TestSignout(t *testing.T) {
	h, _, _ := newHandler(t)

	rec := testutil.NewRecorder()
	signup.Routes(h).ServeHTTP(rec, testutil.NewRequest("POST", "/signout"))
	rec.AssertStatus(t, http.StatusNoContent)
}
