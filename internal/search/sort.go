package search

import (
	"sort"

	"github.com/renohome/listing-service/internal/entity"
)

type SortKey string

const (
	SortDateDesc  SortKey = "date-desc"
	SortDateAsc   SortKey = "date-asc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// DefaultSortKey is newest-first, matching the storefront's landing view.
const DefaultSortKey = SortDateDesc

// ParseSortKey maps user input to a SortKey. Anything unrecognized,
// including the empty string, falls back to the default rather than erroring.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDateDesc, SortDateAsc, SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return DefaultSortKey
	}
}

// SortListings orders a copy of listings by the given key and returns it; the
// input slice is left untouched. The sort is stable, so listings that compare
// equal keep their original relative order. Missing or malformed dates sort
// as oldest.
func SortListings(listings []entity.Listing, key SortKey) []entity.Listing {
	out := append([]entity.Listing(nil), listings...)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ListedAt().Before(out[j].ListedAt()) })
	default:
		// date-desc, and the safety net for any key that slipped past
		// ParseSortKey.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ListedAt().After(out[j].ListedAt()) })
	}
	return out
}
