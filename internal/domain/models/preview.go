// internal/domain/models/preview.go
package models

// Preview kind identifiers stored in PreviewRecord.Type.
//
// These are stable keys describing how a resource's URL is previewed,
// not what the resource itself is (see resourcetypes.go for that).
const (
	PreviewYouTube       = "youtube"
	PreviewYouTubeShort  = "youtube-short"
	PreviewArticle       = "article"
	PreviewInstagramReel = "instagram-reel"
	PreviewTikTok        = "tiktok"
	PreviewLink          = "link"
)

// PreviewRecord is derived display metadata for a resource's URL. It is
// recomputed whole whenever the governing URL changes or an upload
// supersedes it, and it is never persisted outside the owning Resource.
//
// Title and Description are always non-empty; the metadata fetcher falls
// back to generic strings rather than leaving them blank.
type PreviewRecord struct {
	Type        string `bson:"type" json:"type"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`

	// Image is an absolute URL to a representative thumbnail, or empty
	// when the platform blocks scraping or no usable image was found.
	Image string `bson:"image,omitempty" json:"image,omitempty"`

	// VideoID and EmbedURL are set for the YouTube kinds only.
	VideoID  string `bson:"video_id,omitempty" json:"video_id,omitempty"`
	EmbedURL string `bson:"embed_url,omitempty" json:"embed_url,omitempty"`

	// URL is the original source the record was derived from.
	URL string `bson:"url" json:"url"`
}
