package search

import (
	"strings"

	"github.com/renohome/listing-service/internal/entity"
)

// Matches decides whether a single listing satisfies every active facet of
// the criteria. Facets combine with AND; inside a facet, selected values
// combine with OR. The predicate is pure and never fails: a listing with a
// missing province, district or garbage type simply does not match an active
// filter on that field.
func Matches(l entity.Listing, c Criteria) bool {
	return matchText(l, c.Text) &&
		matchType(l, c.Types) &&
		matchCategory(l, c.Category) &&
		matchMember(l.Province, c.Provinces) &&
		matchMember(l.District, c.Districts)
}

// matchText hits on either title or location, case-insensitively. The empty
// query matches everything.
func matchText(l entity.Listing, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Location), q)
}

func matchType(l entity.Listing, types []entity.PropertyType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if l.Type == t {
			return true
		}
	}
	return false
}

func matchCategory(l entity.Listing, cat entity.Category) bool {
	// Treat the zero value like the explicit wildcard so a half-built
	// Criteria behaves the same as NewCriteria().
	return cat == "" || cat == entity.CategoryAll || l.Category == cat
}

func matchMember(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if value == s {
			return true
		}
	}
	return false
}
