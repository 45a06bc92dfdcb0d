// Package search is the storefront's filter-and-sort engine. It operates on
// an in-memory snapshot of listings and is purely functional: no I/O, no
// shared state, safe to re-run on every criteria or snapshot change.
package search

import "github.com/renohome/listing-service/internal/entity"

// Search filters the snapshot with the criteria, keeping snapshot order, then
// stably sorts the surviving listings by key. It never mutates its inputs and
// calling it twice with the same inputs yields the same ordered result.
func Search(listings []entity.Listing, c Criteria, key SortKey) []entity.Listing {
	filtered := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, c) {
			filtered = append(filtered, l)
		}
	}
	return SortListings(filtered, key)
}
