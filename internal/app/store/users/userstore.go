// Package userstore is the profile persistence adapter over the `users`
// collection.
//
// Writes are partial merges only: callers include exactly the fields they
// intend to change and everything else on the document is left untouched.
// There is no optimistic-concurrency token — two concurrent merges to
// disjoint field sets both land; concurrent writes to the same field are
// last-write-wins. The adapter never retries; retry policy belongs to
// callers.
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/system/normalize"
	"github.com/campusbridge/campusbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the users collection name.
const Collection = "users"

var (
	// ErrNotFound is returned when no profile document exists for the id.
	ErrNotFound = errors.New("user profile not found")

	errBadRole = errors.New("role must be one of international_student|domestic_student|alumni|professional")
)

// immutable fields are stripped from every merge patch. Role is fixed at
// creation and updated_at is owned by the adapter.
var immutable = []string{"_id", "role", "created_at", "updated_at"}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Get loads a profile document by account id, decoding the role variant
// for the stored role and defaulting any absent fields.
func (s *Store) Get(ctx context.Context, id string) (*models.User, error) {
	raw, err := s.c.FindOne(ctx, bson.M{"_id": id}).Raw()
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return models.DecodeUser(raw)
}

// Create inserts the profile document for a new account. The role is
// fixed here and Professionals are enrolled as mentors unconditionally.
//
// Create is create-if-absent: a second call for the same id is a no-op
// (created=false, nil error) so a duplicate signup submission can never
// clobber an existing profile.
func (s *Store) Create(ctx context.Context, u models.User) (created bool, err error) {
	if !u.Role.Valid() {
		return false, errBadRole
	}
	if u.Attrs != nil && u.Attrs.AttrRole() != u.Role {
		return false, errBadRole
	}

	u.FullName = normalize.Name(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.OfferTags = normalize.Tags(u.OfferTags)
	u.SeekingTags = normalize.Tags(u.SeekingTags)

	// Professional accounts are mentors from day one; no opt-out at
	// creation time.
	u.IsMentor = u.IsMentor || u.Role == models.RoleProfessional
	if !u.IsMentor {
		u.MentorExpertise = ""
		u.MentorBio = ""
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	doc, err := flatten(u)
	if err != nil {
		return false, err
	}

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if isDupID(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Merge applies a partial update to the profile document. Only the fields
// present in patch are written; updated_at is set on every successful
// write. Immutable fields in the patch are dropped, never an error.
//
// Mentor-flag invariant: a patch that sets is_mentor=false also clears
// mentor_expertise and mentor_bio, whether or not the caller included
// them, so no stale mentor content survives an opt-out.
func (s *Store) Merge(ctx context.Context, id string, patch bson.M) error {
	if len(patch) == 0 {
		return nil
	}

	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	for _, k := range immutable {
		delete(set, k)
	}
	if v, ok := set["is_mentor"]; ok {
		if isMentor, _ := v.(bool); !isMentor {
			set["mentor_expertise"] = ""
			set["mentor_bio"] = ""
		}
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSeekingTags merges a new seeking-tag set onto the profile. Tags are
// deduplicated; order of first appearance is kept.
func (s *Store) SetSeekingTags(ctx context.Context, id string, tags []string) error {
	return s.Merge(ctx, id, bson.M{"seeking_tags": normalize.Tags(tags)})
}

// SetEmail mirrors an accepted email change onto the profile document.
func (s *Store) SetEmail(ctx context.Context, id, email string) error {
	return s.Merge(ctx, id, bson.M{"email": normalize.Email(email)})
}

// SoftDelete marks the profile deleted with a timestamp. The document is
// retained; nothing in this codebase hard-deletes users.
func (s *Store) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return s.Merge(ctx, id, bson.M{"deleted": true, "deleted_at": now})
}

// flatten turns a User plus its role variant into one flat document.
func flatten(u models.User) (bson.M, error) {
	doc := bson.M{}
	b, err := bson.Marshal(u)
	if err != nil {
		return nil, err
	}
	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if u.Attrs != nil {
		ab, err := bson.Marshal(u.Attrs)
		if err != nil {
			return nil, err
		}
		var attrs bson.M
		if err := bson.Unmarshal(ab, &attrs); err != nil {
			return nil, err
		}
		for k, v := range attrs {
			doc[k] = v
		}
	}
	return doc, nil
}

// isDupID reports a duplicate-key error on _id (the create-if-absent case).
func isDupID(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
