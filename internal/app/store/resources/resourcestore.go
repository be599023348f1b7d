// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/vaulthub/internal/app/system/media"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Validation and lookup errors. Validation errors and ErrNotFound abort
// the operation and propagate to the caller; everything the preview
// pipeline can throw is absorbed below this boundary.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidType   = errors.New("type must be one of article, video, photo, note")
	ErrInvalidURL    = errors.New("url must be a valid absolute http(s) URL")
)

// Store is the resource store adapter: Mongo-backed CRUD over the
// resources collection, orchestrating media attachment resolution and
// file storage around each mutation.
//
// Listing deliberately filters by equality only and sorts in memory.
// Adding a server-side order-by to an owner-scoped query would require
// a composite index; keeping the sort local keeps the infrastructure
// setup at "create a database, done". Do not "optimize" this into a
// server-side sort.
type Store struct {
	c        *mongo.Collection
	resolver *media.Resolver
	log      *zap.Logger
}

// New constructs a Store over db's resources collection.
func New(db *mongo.Database, resolver *media.Resolver, logger *zap.Logger) *Store {
	return &Store{
		c:        db.Collection("resources"),
		resolver: resolver,
		log:      logger,
	}
}

// CreateInput carries the caller-supplied fields for a new resource.
type CreateInput struct {
	Title        string
	URL          string
	Type         string
	Tags         []string
	Notes        string
	ReminderDate *time.Time
}

// UpdatePatch is a shallow patch over an existing resource. Nil fields
// are left untouched. Tags replaces the whole tag list when non-nil.
type UpdatePatch struct {
	Title *string
	URL   *string
	Type  *string
	Tags  []string
	Notes *string

	ReminderDate  *time.Time
	ClearReminder bool
}

// Create validates in, resolves the media attachment (upload wins over
// URL preview), and inserts a new resource owned by ownerID. CreatedAt
// and UpdatedAt are both set to now.
func (s *Store) Create(ctx context.Context, in CreateInput, ownerID string, up *media.Upload) (models.Resource, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Resource{}, ErrTitleRequired
	}

	typ := in.Type
	if typ == "" {
		typ = models.DefaultResourceType
	}
	if !models.IsValidResourceType(typ) {
		return models.Resource{}, ErrInvalidType
	}

	rawURL := strings.TrimSpace(in.URL)
	if rawURL != "" && !urlutil.IsValidAbsHTTPURL(rawURL) {
		return models.Resource{}, ErrInvalidURL
	}

	att, err := s.resolver.Resolve(ctx, ownerID, nil, rawURL, up)
	if err != nil {
		return models.Resource{}, err
	}

	now := time.Now().UTC()
	res := models.Resource{
		ID:           primitive.NewObjectID(),
		Title:        title,
		URL:          rawURL,
		Type:         typ,
		Tags:         cleanTags(in.Tags),
		Notes:        in.Notes,
		MediaURL:     att.MediaURL,
		MediaPath:    att.MediaPath,
		MediaName:    att.MediaName,
		URLPreview:   att.Preview,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
		ReminderDate: in.ReminderDate,
	}

	if _, err := s.c.InsertOne(ctx, res); err != nil {
		return models.Resource{}, fmt.Errorf("insert resource: %w", err)
	}
	return res, nil
}

// GetByID returns a resource by its ID, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Resource, error) {
	var r models.Resource
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Resource{}, ErrNotFound
	}
	if err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// Update loads the prior state, resolves the media attachment against
// it, shallow-merges patch over the prior fields, refreshes UpdatedAt,
// and writes the result. Concurrent updates to the same id are
// last-write-wins; there is no optimistic-concurrency check.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch UpdatePatch, up *media.Upload) (models.Resource, error) {
	prior, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}

	next := prior

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return models.Resource{}, ErrTitleRequired
		}
		next.Title = t
	}
	if patch.Type != nil {
		if !models.IsValidResourceType(*patch.Type) {
			return models.Resource{}, ErrInvalidType
		}
		next.Type = *patch.Type
	}
	if patch.URL != nil {
		u := strings.TrimSpace(*patch.URL)
		if u != "" && !urlutil.IsValidAbsHTTPURL(u) {
			return models.Resource{}, ErrInvalidURL
		}
		next.URL = u
	}
	if patch.Tags != nil {
		next.Tags = cleanTags(patch.Tags)
	}
	if patch.Notes != nil {
		next.Notes = *patch.Notes
	}
	if patch.ReminderDate != nil {
		next.ReminderDate = patch.ReminderDate
	}
	if patch.ClearReminder {
		next.ReminderDate = nil
	}

	att, err := s.resolver.Resolve(ctx, prior.OwnerID, &prior, next.URL, up)
	if err != nil {
		return models.Resource{}, err
	}
	next.MediaURL = att.MediaURL
	next.MediaPath = att.MediaPath
	next.MediaName = att.MediaName
	next.URLPreview = att.Preview

	next.UpdatedAt = time.Now().UTC()

	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": id}, next); err != nil {
		return models.Resource{}, fmt.Errorf("update resource: %w", err)
	}
	return next, nil
}

// Delete removes a resource. A stored upload backing it is released
// best-effort first: a failure to release is logged and swallowed so
// the record still goes away (the object may already be gone).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	prior, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if prior.HasMedia() {
		s.resolver.ReleaseMedia(ctx, prior.MediaPath)
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns all of an owner's resources, newest first.
//
// The query filters by owner equality only, with no server-side
// order-by; the sort happens in memory. See the Store doc comment
// before changing this.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Resource, error) {
	return s.list(ctx, bson.M{"owner_id": ownerID})
}

// ListByOwnerAndType is ListByOwner narrowed by an equality predicate
// on the resource type, sorted the same way.
func (s *Store) ListByOwnerAndType(ctx context.Context, ownerID, typ string) ([]models.Resource, error) {
	return s.list(ctx, bson.M{"owner_id": ownerID, "type": typ})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Resource, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Resource
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	sortNewestFirst(out)
	return out, nil
}

// sortNewestFirst orders by CreatedAt descending. Ties break on
// ObjectID descending: ObjectIDs embed their creation time, so this
// approximates insertion order and keeps the result deterministic
// instead of leaning on whatever order the store enumerates.
func sortNewestFirst(rs []models.Resource) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.After(rs[j].CreatedAt)
		}
		return rs[i].ID.Hex() > rs[j].ID.Hex()
	})
}

// cleanTags trims each tag and drops empties, preserving insertion
// order. Duplicates are kept; display order is insertion order.
func cleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
