// Package mentorstore answers the direct candidate query: every user with
// is_mentor=true that has not been soft-deleted. This query is the
// authoritative source for who appears in matching results; advice-service
// suggestions only annotate it.
package mentorstore

import (
	"context"

	"github.com/campusbridge/campusbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// ListMentors returns mentor candidates in store order. No ranking is
// applied here; presentation order is whatever the query returns.
func (s *Store) ListMentors(ctx context.Context) ([]models.MentorCandidate, error) {
	filter := bson.M{
		"is_mentor": true,
		"deleted":   bson.M{"$ne": true},
	}
	proj := bson.M{
		"_id":              1,
		"full_name":        1,
		"photo_url":        1,
		"mentor_expertise": 1,
		"mentor_bio":       1,
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetProjection(proj))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MentorCandidate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
