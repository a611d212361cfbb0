// internal/app/system/auth/local.go
package auth

import (
	"context"
	"time"

	"github.com/campusbridge/campusbridge/internal/app/system/authutil"
	"github.com/campusbridge/campusbridge/internal/app/system/normalize"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// credential is a document in the `credentials` collection. Kept separate
// from the users collection so profile merges can never touch a password
// hash.
type credential struct {
	ID           string    `bson:"_id"` // account id, mirrored as users._id
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// LocalAuthenticator is the default Authenticator backed by the service's
// own Mongo database and bcrypt. Deployments that front an external
// identity provider swap this out behind the Authenticator interface.
type LocalAuthenticator struct {
	c *mongo.Collection
}

// NewLocalAuthenticator builds a LocalAuthenticator over db.
func NewLocalAuthenticator(db *mongo.Database) *LocalAuthenticator {
	return &LocalAuthenticator{c: db.Collection("credentials")}
}

func (a *LocalAuthenticator) CreateAccount(ctx context.Context, email, password string) (string, error) {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	cred := credential{
		ID:           uuid.NewString(),
		Email:        normalize.Email(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := a.c.InsertOne(ctx, cred); err != nil {
		if wafflemongo.IsDup(err) {
			return "", ErrEmailInUse
		}
		return "", err
	}
	return cred.ID, nil
}

func (a *LocalAuthenticator) SignIn(ctx context.Context, email, password string) (string, error) {
	var cred credential
	err := a.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		// Hash anyway so an unknown email costs the same as a bad password.
		_ = authutil.CheckPassword(password, "")
		return "", ErrBadCredential
	}
	if err != nil {
		return "", err
	}
	if !authutil.CheckPassword(password, cred.PasswordHash) {
		return "", ErrBadCredential
	}
	return cred.ID, nil
}

func (a *LocalAuthenticator) Reauthenticate(ctx context.Context, accountID, password string) error {
	var cred credential
	err := a.c.FindOne(ctx, bson.M{"_id": accountID}).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		return ErrNoAccount
	}
	if err != nil {
		return err
	}
	if !authutil.CheckPassword(password, cred.PasswordHash) {
		return ErrBadCredential
	}
	return nil
}

func (a *LocalAuthenticator) ChangePassword(ctx context.Context, accountID, newPassword string) error {
	hash, err := authutil.HashPassword(newPassword)
	if err != nil {
		return err
	}
	res, err := a.c.UpdateOne(ctx, bson.M{"_id": accountID}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoAccount
	}
	return nil
}

func (a *LocalAuthenticator) ChangeEmail(ctx context.Context, accountID, newEmail string) error {
	res, err := a.c.UpdateOne(ctx, bson.M{"_id": accountID}, bson.M{"$set": bson.M{
		"email":      normalize.Email(newEmail),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrEmailInUse
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoAccount
	}
	return nil
}

func (a *LocalAuthenticator) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := a.c.DeleteOne(ctx, bson.M{"_id": accountID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoAccount
	}
	return nil
}
