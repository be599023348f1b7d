// internal/domain/models/resourcetypes.go
package models

// Canonical resource type identifiers.
//
// These values are stored in the database in the Resource.Type field and
// are used throughout the application as stable keys. The enumeration is
// closed: validation rejects anything not listed here.
const (
	ResourceTypeArticle = "article"
	ResourceTypeVideo   = "video"
	ResourceTypePhoto   = "photo"
	ResourceTypeNote    = "note"
)

// ResourceTypes is the full set of allowed resource type identifiers.
//
// This slice is the single source of truth for validation. Any new type
// must be added here to be considered valid.
var ResourceTypes = []string{
	ResourceTypeArticle,
	ResourceTypeVideo,
	ResourceTypePhoto,
	ResourceTypeNote,
}

// DefaultResourceType is used when no specific type is provided.
const DefaultResourceType = ResourceTypeArticle

// IsValidResourceType reports whether t is a member of the closed
// resource type enumeration. Matching is case-sensitive.
func IsValidResourceType(t string) bool {
	for _, v := range ResourceTypes {
		if v == t {
			return true
		}
	}
	return false
}
