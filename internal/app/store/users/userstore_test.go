// internal/app/store/users/userstore_test.go
package userstore_test

import (
	"reflect"
	"testing"
	"time"

	userstore "github.com/campusbridge/campusbridge/internal/app/store/users"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"github.com/campusbridge/campusbridge/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{
		ID:       uuid.NewString(),
		FullName: "  Dana   Cruz ",
		Email:    " Dana@Example.EDU ",
		Role:     models.RoleInternationalStudent,
		Attrs:    models.NewRoleAttributes(models.RoleInternationalStudent),
	}
	created, err := store.Create(ctx, u)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created {
		t.Fatal("Create should report created=true for a new id")
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.FullName != "Dana Cruz" {
		t.Errorf("full name not normalized: %q", got.FullName)
	}
	if got.Email != "dana@example.edu" {
		t.Errorf("email not normalized: %q", got.Email)
	}
	if got.Role != models.RoleInternationalStudent {
		t.Errorf("role = %q", got.Role)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be set at creation")
	}

	is, ok := got.Attrs.(*models.InternationalStudentAttrs)
	if !ok {
		t.Fatalf("Attrs has wrong type %T", got.Attrs)
	}
	if is.YearOfStudy != 1 {
		t.Errorf("year_of_study default = %d, want 1", is.YearOfStudy)
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{
		ID:       uuid.NewString(),
		FullName: "First Submission",
		Email:    "first@example.edu",
		Role:     models.RoleAlumni,
		Attrs:    models.NewRoleAttributes(models.RoleAlumni),
	}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := u
	dup.FullName = "Second Submission"
	created, err := store.Create(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate Create should be a no-op, got %v", err)
	}
	if created {
		t.Error("duplicate Create should report created=false")
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.FullName != "First Submission" {
		t.Errorf("duplicate Create clobbered the document: %q", got.FullName)
	}
}

func TestCreateProfessionalIsMentor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{
		ID:       uuid.NewString(),
		FullName: "Pat Lee",
		Email:    "pat@example.com",
		Role:     models.RoleProfessional,
		Attrs:    models.NewRoleAttributes(models.RoleProfessional),
	}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.IsMentor {
		t.Error("professionals must be mentors at creation")
	}
}

func TestCreateRejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{ID: uuid.NewString(), FullName: "X", Email: "x@example.com", Role: models.Role("faculty")}
	if _, err := store.Create(ctx, u); err == nil {
		t.Fatal("Create should reject an unknown role")
	}

	// Variant and declared role must agree.
	u = models.User{
		ID:       uuid.NewString(),
		FullName: "X",
		Email:    "x@example.com",
		Role:     models.RoleAlumni,
		Attrs:    models.NewRoleAttributes(models.RoleProfessional),
	}
	if _, err := store.Create(ctx, u); err == nil {
		t.Fatal("Create should reject a variant that disagrees with the role")
	}
}

func TestMergeTouchesOnlySuppliedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Dana Cruz", "dana@example.edu", models.RoleDomesticStudent)

	// Seed several fields, then patch a disjoint subset.
	if err := store.Merge(ctx, u.ID, bson.M{
		"campus_involvement":   "robotics club",
		"financial_aid_status": "partial",
		"university":           "State U",
	}); err != nil {
		t.Fatalf("seed merge failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // stored timestamps have millisecond precision
	if err := store.Merge(ctx, u.ID, bson.M{"languages_spoken": "English, Spanish"}); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LanguagesSpoken != "English, Spanish" {
		t.Errorf("languages_spoken = %q", got.LanguagesSpoken)
	}
	if got.CampusInvolvement != "robotics club" {
		t.Errorf("campus_involvement should survive an unrelated merge, got %q", got.CampusInvolvement)
	}
	ds := got.Attrs.(*models.DomesticStudentAttrs)
	if ds.FinancialAidStatus != "partial" || ds.University != "State U" {
		t.Errorf("role fields should survive an unrelated merge: %+v", ds)
	}
	if !got.UpdatedAt.After(u.UpdatedAt) {
		t.Error("updated_at should advance on every merge")
	}
}

func TestMergeStripsImmutableFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Dana Cruz", "dana@example.edu", models.RoleAlumni)

	err := store.Merge(ctx, u.ID, bson.M{
		"role":       string(models.RoleProfessional),
		"created_at": "never",
		"photo_url":  "https://img.example/x.png",
	})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Role != models.RoleAlumni {
		t.Errorf("role must never change via merge, got %q", got.Role)
	}
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Error("created_at must never change via merge")
	}
	if got.PhotoURL != "https://img.example/x.png" {
		t.Errorf("mutable field in the same patch should land, got %q", got.PhotoURL)
	}
}

func TestMergeMentorOptOutClearsMentorFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateMentor(ctx, "Dana Cruz", "dana@example.edu", models.RoleAlumni, "career advice", "20 years in industry")

	// Opt out without mentioning the mentor content fields.
	if err := store.Merge(ctx, u.ID, bson.M{"is_mentor": false}); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.IsMentor {
		t.Error("is_mentor should be false")
	}
	if got.MentorExpertise != "" || got.MentorBio != "" {
		t.Errorf("mentor content must be cleared on opt-out, got (%q, %q)", got.MentorExpertise, got.MentorBio)
	}
}

func TestMergeMissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Merge(ctx, "no-such-id", bson.M{"photo_url": "x"}); err != userstore.ErrNotFound {
		t.Fatalf("merge of a missing user = %v, want ErrNotFound", err)
	}
}

func TestMergeEmptyPatchIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Dana Cruz", "dana@example.edu", models.RoleAlumni)
	if err := store.Merge(ctx, u.ID, bson.M{}); err != nil {
		t.Fatalf("empty merge should succeed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.UpdatedAt.Equal(u.UpdatedAt) {
		t.Error("empty merge should not touch updated_at")
	}
}

func TestSetSeekingTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Dana Cruz", "dana@example.edu", models.RoleInternationalStudent)
	if err := store.SetSeekingTags(ctx, u.ID, []string{" Research ", "career", "research", ""}); err != nil {
		t.Fatalf("SetSeekingTags failed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got.SeekingTags, []string{"Research", "career"}) {
		t.Errorf("seeking_tags = %v", got.SeekingTags)
	}
}

func TestSetEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Dana Cruz", "dana@example.edu", models.RoleAlumni)
	if err := store.SetEmail(ctx, u.ID, "  New@Example.EDU "); err != nil {
		t.Fatalf("SetEmail failed: %v", err)
	}

	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Email != "new@example.edu" {
		t.Errorf("email = %q", got.Email)
	}
}

func TestSoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Dana Cruz", "dana@example.edu", models.RoleAlumni)
	if err := store.SoftDelete(ctx, u.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// The document is retained, marked, and timestamped.
	got, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get after soft delete failed: %v", err)
	}
	if !got.Deleted {
		t.Error("deleted flag should be set")
	}
	if got.DeletedAt == nil || got.DeletedAt.IsZero() {
		t.Error("deleted_at should be set")
	}
	if got.FullName != "Dana Cruz" {
		t.Error("soft delete must not remove profile content")
	}
}
