// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is a single saved item in a user's vault: an article, video,
// photo, or note, optionally backed by an uploaded file or a derived
// link preview.
//
// Invariant: at most one of MediaPath/MediaURL and URLPreview is set.
// An uploaded file supersedes and clears any derived preview. A resource
// with neither is valid (a pure note, or a URL whose preview was
// unavailable). The resource store enforces this through the media
// resolver; nothing else writes these fields.
type Resource struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title"`

	URL  string `bson:"url,omitempty" json:"url,omitempty"`
	Type string `bson:"type" json:"type"` // see resourcetypes.go

	// Tags keep insertion order; that order is display order.
	// Duplicates are allowed.
	Tags  []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes string   `bson:"notes,omitempty" json:"notes,omitempty"`

	// MediaURL is the durable retrieval locator for an uploaded file.
	// MediaPath is the storage key used to release the object later;
	// MediaName is the original filename for download headers.
	MediaURL  string `bson:"media_url,omitempty" json:"media_url,omitempty"`
	MediaPath string `bson:"media_path,omitempty" json:"media_path,omitempty"`
	MediaName string `bson:"media_name,omitempty" json:"media_name,omitempty"`

	URLPreview *PreviewRecord `bson:"url_preview,omitempty" json:"url_preview,omitempty"`

	OwnerID string `bson:"owner_id" json:"owner_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	ReminderDate *time.Time `bson:"reminder_date,omitempty" json:"reminder_date,omitempty"`
}

// HasMedia reports whether this resource is backed by an uploaded file.
func (r *Resource) HasMedia() bool {
	return r.MediaPath != ""
}

// HasPreview reports whether this resource carries a derived link preview.
func (r *Resource) HasPreview() bool {
	return r.URLPreview != nil
}
