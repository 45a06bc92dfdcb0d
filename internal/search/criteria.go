package search

import "github.com/renohome/listing-service/internal/entity"

// Criteria is the full set of storefront filter selections. It is a plain
// value: handlers build a fresh one per request and the engine never mutates
// it. An empty Text and empty slices mean "no restriction" for that facet;
// CategoryAll is likewise a wildcard.
type Criteria struct {
	Text      string
	Types     []entity.PropertyType
	Category  entity.Category
	Provinces []string
	Districts []string
}

// NewCriteria returns the wide-open criteria that matches every listing.
func NewCriteria() Criteria {
	return Criteria{Category: entity.CategoryAll}
}

// Clone returns a deep copy so callers can derive a new selection without
// sharing facet slices with the original.
func (c Criteria) Clone() Criteria {
	out := c
	out.Types = append([]entity.PropertyType(nil), c.Types...)
	out.Provinces = append([]string(nil), c.Provinces...)
	out.Districts = append([]string(nil), c.Districts...)
	return out
}
