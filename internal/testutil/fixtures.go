package testutil

import (
	"context"
	"testing"

	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a profile document with the given role through the
// store, so creation-time invariants (role validation, mentor enrollment
// for professionals, timestamps) apply exactly as in production.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, role models.Role) models.User {
	f.t.Helper()

	u := models.User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Email:    email,
		Role:     role,
		Attrs:    models.NewRoleAttributes(role),
	}
	store := userstore.New(f.db)
	if _, err := store.Create(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	created, err := store.Get(ctx, u.ID)
	if err != nil {
		f.t.Fatalf("failed to reload test user: %v", err)
	}
	return *created
}

// CreateMentor creates a user with mentor opt-in and the given expertise.
func (f *Fixtures) CreateMentor(ctx context.Context, fullName, email string, role models.Role, expertise, bio string) models.User {
	f.t.Helper()

	u := models.User{
		ID:              uuid.NewString(),
		FullName:        fullName,
		Email:           email,
		Role:            role,
		IsMentor:        true,
		MentorExpertise: expertise,
		MentorBio:       bio,
		Attrs:           models.NewRoleAttributes(role),
	}
	store := userstore.New(f.db)
	if _, err := store.Create(ctx, u); err != nil {
		f.t.Fatalf("failed to create test mentor: %v", err)
	}
	created, err := store.Get(ctx, u.ID)
	if err != nil {
		f.t.Fatalf("failed to reload test mentor: %v", err)
	}
	return *created
}
