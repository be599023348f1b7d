// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an authenticated vault owner. Users are created on first
// Google sign-in and looked up by the Google subject on every login.
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email  string             `bson:"email" json:"email"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	NameCI string             `bson:"name_ci,omitempty" json:"name_ci,omitempty"` // lowercase, diacritics-stripped

	// GoogleSub is the stable subject identifier from Google's ID token.
	GoogleSub string `bson:"google_sub" json:"google_sub"`

	Picture string `bson:"picture,omitempty" json:"picture,omitempty"`

	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	LastLoginAt time.Time `bson:"last_login_at" json:"last_login_at"`
}
