// Package query filters an already-fetched in-memory resource list for
// display. It is pure and synchronous: no store round-trip, no
// reordering. Its results must stay behaviorally consistent with the
// store's type-scoped listings so that live local filtering and a
// server re-query show the same rows.
package query

import (
	"strings"

	"github.com/dalemusser/vaulthub/internal/domain/models"
)

// Filter narrows all by resource type, then by a free-text term.
//
// typ, when non-empty, must match Resource.Type exactly (the enum is
// case-sensitive). term, when non-empty after trimming, matches
// case-insensitively as a substring of the title, any tag, or the
// notes. Both predicates AND together; empty type and empty term return
// the input unchanged. Relative order is always preserved.
func Filter(all []models.Resource, typ, term string) []models.Resource {
	term = strings.ToLower(strings.TrimSpace(term))
	if typ == "" && term == "" {
		return all
	}

	out := make([]models.Resource, 0, len(all))
	for _, r := range all {
		if typ != "" && r.Type != typ {
			continue
		}
		if term != "" && !matchesTerm(&r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTerm(r *models.Resource, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(r.Notes), term)
}
