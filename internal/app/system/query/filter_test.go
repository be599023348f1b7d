package query_test

import (
	"testing"

	"github.com/dalemusser/vaulthub/internal/app/system/query"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func fixture() []models.Resource {
	return []models.Resource{
		{Title: "Go Concurrency Patterns", Type: models.ResourceTypeArticle, Tags: []string{"golang", "concurrency"}},
		{Title: "Baking Sourdough", Type: models.ResourceTypeVideo, Tags: []string{"cooking"}, Notes: "great starter recipe"},
		{Title: "Trip photos", Type: models.ResourceTypePhoto, Tags: []string{"travel", "Japan"}},
		{Title: "Shopping list", Type: models.ResourceTypeNote, Notes: "flour, yeast, golang stickers"},
	}
}

func titles(rs []models.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func TestFilter_EmptyPredicatesReturnInputUnchanged(t *testing.T) {
	all := fixture()
	got := query.Filter(all, "", "")
	assert.Equal(t, titles(all), titles(got))

	// Whitespace-only term counts as empty.
	got = query.Filter(all, "", "   ")
	assert.Equal(t, titles(all), titles(got))
}

func TestFilter_ByType(t *testing.T) {
	got := query.Filter(fixture(), models.ResourceTypeVideo, "")
	assert.Equal(t, []string{"Baking Sourdough"}, titles(got))
}

func TestFilter_TermMatchesTitleCaseInsensitively(t *testing.T) {
	got := query.Filter(fixture(), "", "SOURDOUGH")
	assert.Equal(t, []string{"Baking Sourdough"}, titles(got))
}

func TestFilter_TermMatchesTagsAndNotes(t *testing.T) {
	// "golang" appears as a tag on one resource and in the notes of
	// another; both match, in their original order.
	got := query.Filter(fixture(), "", "golang")
	assert.Equal(t, []string{"Go Concurrency Patterns", "Shopping list"}, titles(got))

	got = query.Filter(fixture(), "", "japan")
	assert.Equal(t, []string{"Trip photos"}, titles(got))
}

func TestFilter_TypeAndTermANDTogether(t *testing.T) {
	got := query.Filter(fixture(), models.ResourceTypeNote, "golang")
	assert.Equal(t, []string{"Shopping list"}, titles(got))

	got = query.Filter(fixture(), models.ResourceTypeArticle, "sourdough")
	assert.Empty(t, got)
}

func TestFilter_TermTrimmed(t *testing.T) {
	got := query.Filter(fixture(), "", "  trip  ")
	assert.Equal(t, []string{"Trip photos"}, titles(got))
}

func TestFilter_NoMatches(t *testing.T) {
	got := query.Filter(fixture(), "", "zzzzzz")
	assert.Empty(t, got)
}

func TestFilter_PreservesOrder(t *testing.T) {
	all := fixture()
	got := query.Filter(all, "", "o")
	// Every fixture title or note contains an "o"; order must be intact.
	assert.Equal(t, titles(all), titles(got))
}
