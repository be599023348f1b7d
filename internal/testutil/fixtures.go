package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

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

// CreateUser creates a test user as if they had signed in with Google.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, googleSub string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		Name:        name,
		NameCI:      text.Fold(name),
		GoogleSub:   googleSub,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateResource creates a minimal test resource for the given owner.
func (f *Fixtures) CreateResource(ctx context.Context, ownerID, title, typ string) models.Resource {
	f.t.Helper()
	return f.CreateResourceAt(ctx, ownerID, title, typ, time.Now().UTC())
}

// CreateResourceAt creates a test resource with an explicit creation
// time, for tests that exercise list ordering.
func (f *Fixtures) CreateResourceAt(ctx context.Context, ownerID, title, typ string, createdAt time.Time) models.Resource {
	f.t.Helper()

	resource := models.Resource{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Type:      typ,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	_, err := f.db.Collection("resources").InsertOne(ctx, resource)
	if err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}

	return resource
}
