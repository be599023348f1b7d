// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists vault owners, keyed by their Google subject.
type Store struct {
	c *mongo.Collection
}

// New constructs a Store over db's users collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// UpsertGoogleUser creates or refreshes a user record on sign-in and
// returns the stored user. The Google subject is the stable identity;
// email, name, and picture are refreshed on every login.
func (s *Store) UpsertGoogleUser(ctx context.Context, sub, email, name, picture string) (models.User, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"email":         email,
			"name":          name,
			"name_ci":       text.Fold(name),
			"picture":       picture,
			"last_login_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"google_sub": sub,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"google_sub": sub}, update, opts).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByID returns a user by document ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
