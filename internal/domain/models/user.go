// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// User is the root profile entity, one document per account in the `users`
// collection, keyed by the account ID issued by the auth collaborator.
//
// The document is a flat field bag: common fields below plus the variant
// fields of exactly one RoleAttributes set, selected by Role. Variant
// fields of the other roles are absent from the document, not empty.
//
// NOTE:
//   - Role is fixed at creation. Nothing in this codebase updates it.
//   - Writes to users are partial merges only; see userstore.Merge.
type User struct {
	ID       string `bson:"_id" json:"id"` // account id from the auth collaborator
	FullName string `bson:"full_name" json:"full_name"`
	Email    string `bson:"email" json:"email"`
	PhotoURL string `bson:"photo_url" json:"photo_url"`
	Role     Role   `bson:"role" json:"role"`

	// Mentor opt-in. When IsMentor is false, MentorExpertise and MentorBio
	// are cleared at write time so no stale mentor content survives an
	// opt-out.
	IsMentor        bool   `bson:"is_mentor" json:"is_mentor"`
	MentorExpertise string `bson:"mentor_expertise" json:"mentor_expertise"`
	MentorBio       string `bson:"mentor_bio" json:"mentor_bio"`

	// Interest tags used as matching signal. No duplicate labels.
	OfferTags   []string `bson:"offer_tags" json:"offer_tags"`
	SeekingTags []string `bson:"seeking_tags" json:"seeking_tags"`

	// Common preferences, present regardless of role.
	CampusInvolvement string `bson:"campus_involvement" json:"campus_involvement"`
	LanguagesSpoken   string `bson:"languages_spoken" json:"languages_spoken"`
	NotifyByEmail     bool   `bson:"notify_by_email" json:"notify_by_email"`
	NotifyMatches     bool   `bson:"notify_matches" json:"notify_matches"`

	// Soft-delete marker, set after the auth collaborator deletes the
	// account. Documents are never hard-deleted.
	Deleted   bool       `bson:"deleted,omitempty" json:"deleted,omitempty"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Attrs is the decoded role variant. It is not a bson field of its
	// own: the variant fields live flat on the document and are decoded
	// via DecodeUser.
	Attrs RoleAttributes `bson:"-" json:"attrs"`
}

// DecodeUser decodes a raw users document into a User, including the role
// variant for the stored role. Variant fields absent from the document get
// role-appropriate defaults; fields belonging to other roles are ignored.
func DecodeUser(raw bson.Raw) (*User, error) {
	var u User
	if err := bson.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	attrs, err := DecodeRoleAttributes(u.Role, raw)
	if err != nil {
		return nil, err
	}
	u.Attrs = attrs
	return &u, nil
}

// MentorCandidate is the projection of a mentor user shown in matching
// results. Any user with is_mentor=true is a candidate.
type MentorCandidate struct {
	ID        string `bson:"_id" json:"id"`
	FullName  string `bson:"full_name" json:"full_name"`
	PhotoURL  string `bson:"photo_url" json:"photo_url"`
	Expertise string `bson:"mentor_expertise" json:"expertise"`
	Bio       string `bson:"mentor_bio" json:"bio"`
}
