package search

import (
	"testing"

	"github.com/renohome/listing-service/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestMatches_EmptyCriteriaMatchesEverything(t *testing.T) {
	listings := []entity.Listing{
		{Title: "Townhome Onnut", Type: entity.TypeTownhome, Category: entity.CategoryHot},
		{Title: "House Ramindra", Type: entity.TypeHouse, Category: entity.CategoryNew},
		{Title: ""}, // no type, no category, no region at all
	}
	c := NewCriteria()
	for _, l := range listings {
		assert.True(t, Matches(l, c), "empty criteria must match %q", l.Title)
	}
}

func TestMatches_TextHitsTitleOrLocation(t *testing.T) {
	l := entity.Listing{Title: "Townhome Onnut 44", Location: "Suan Luang, Bangkok"}

	cases := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"onnut", true},   // title, case-insensitive
		{"ONNUT", true},   // title, upper
		{"bangkok", true}, // location
		{"suan luang", true},
		{"chiang mai", false},
	}
	for _, tc := range cases {
		c := NewCriteria()
		c.Text = tc.query
		assert.Equal(t, tc.want, Matches(l, c), "query %q", tc.query)
	}
}

func TestMatches_TypeFacet(t *testing.T) {
	townhome := entity.Listing{Type: entity.TypeTownhome}
	house := entity.Listing{Type: entity.TypeHouse}
	garbage := entity.Listing{Type: "warehouse"}

	c := NewCriteria()
	c.Types = []entity.PropertyType{entity.TypeHouse}

	assert.False(t, Matches(townhome, c))
	assert.True(t, Matches(house, c))
	// Unknown types silently fail an active filter, never error.
	assert.False(t, Matches(garbage, c))

	// Widening the selection never drops a previous match.
	c.Types = append(c.Types, entity.TypeTownhome)
	assert.True(t, Matches(house, c))
	assert.True(t, Matches(townhome, c))
}

func TestMatches_CategoryFacet(t *testing.T) {
	hot := entity.Listing{Category: entity.CategoryHot}
	newer := entity.Listing{Category: entity.CategoryNew}

	c := NewCriteria()
	c.Category = entity.CategoryHot
	assert.True(t, Matches(hot, c))
	assert.False(t, Matches(newer, c))

	c.Category = entity.CategoryAll
	assert.True(t, Matches(hot, c))
	assert.True(t, Matches(newer, c))

	// Zero value behaves like the wildcard.
	c.Category = ""
	assert.True(t, Matches(newer, c))
}

func TestMatches_RegionFacets(t *testing.T) {
	bangna := entity.Listing{Province: "Samut Prakan", District: "Bang Phli"}
	onnut := entity.Listing{Province: "Bangkok", District: "Suan Luang"}
	bare := entity.Listing{} // listing without region fields

	c := NewCriteria()
	c.Provinces = []string{"Bangkok"}
	assert.True(t, Matches(onnut, c))
	assert.False(t, Matches(bangna, c))
	assert.False(t, Matches(bare, c), "missing province never matches an active filter")

	c.Districts = []string{"Suan Luang"}
	assert.True(t, Matches(onnut, c))

	// District facet matches on the listing's own field, even without a
	// province selection.
	c = NewCriteria()
	c.Districts = []string{"Bang Phli"}
	assert.True(t, Matches(bangna, c))
	assert.False(t, Matches(onnut, c))
}

func TestMatches_FacetsCombineWithAND(t *testing.T) {
	l := entity.Listing{
		Title:    "Nordic house Ramindra",
		Location: "Ramindra, Bangkok",
		Type:     entity.TypeHouse,
		Category: entity.CategoryNew,
		Province: "Bangkok",
	}

	c := NewCriteria()
	c.Text = "ramindra"
	c.Types = []entity.PropertyType{entity.TypeHouse}
	c.Category = entity.CategoryNew
	c.Provinces = []string{"Bangkok"}
	assert.True(t, Matches(l, c))

	// One failing facet sinks the whole predicate.
	c.Types = []entity.PropertyType{entity.TypeCondo}
	assert.False(t, Matches(l, c))
}
