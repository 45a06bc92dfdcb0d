package entity

import "time"

type PropertyType string

const (
	TypeHouse    PropertyType = "house"
	TypeTownhome PropertyType = "townhome"
	TypeCondo    PropertyType = "condo"
)

type Category string

const (
	CategoryAll Category = "all"
	CategoryNew Category = "new"
	CategoryHot Category = "hot"
)

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusSold      ListingStatus = "sold"
)

// Zone describes a room or area inside a listing (e.g. kitchen, master
// bedroom). Opaque to search; rendered on the detail page only.
type Zone struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Size        string   `json:"size,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Listing is a property announcement. Price is in whole baht. Date is the
// listing date in ISO form ("2006-01-02"); an empty Date sorts as oldest.
// Images holds URLs, the first one being the cover photo.
type Listing struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Price       int64         `json:"price"`
	Location    string        `json:"location"`
	Province    string        `json:"province,omitempty"`
	District    string        `json:"district,omitempty"`
	SubDistrict string        `json:"subDistrict,omitempty"`
	ZipCode     string        `json:"zipCode,omitempty"`
	Type        PropertyType  `json:"type"`
	Category    Category      `json:"category"`
	Status      ListingStatus `json:"status"`
	Date        string        `json:"date,omitempty"`
	Views       int64         `json:"views"`
	Beds        int           `json:"beds"`
	Baths       int           `json:"baths"`
	Area        int           `json:"area"`
	Description string        `json:"desc,omitempty"`
	MapURL      string        `json:"mapUrl,omitempty"`
	Images      []string      `json:"images"`
	Zones       []Zone        `json:"zones,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// DateLayout is the wire format of Listing.Date.
const DateLayout = "2006-01-02"

// ListedAt parses Listing.Date. A missing or malformed date yields the zero
// time, which sorts before any real listing date.
func (l Listing) ListedAt() time.Time {
	if l.Date == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, l.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CoverImage returns the first image URL, or "" when the listing has none.
func (l Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

const hotViewsThreshold = 100

// IsNew reports whether the listing was posted within one month of now.
// Sold listings never carry the badge.
func (l Listing) IsNew(now time.Time) bool {
	if l.Status == StatusSold || l.Date == "" {
		return false
	}
	return l.ListedAt().After(now.AddDate(0, -1, 0))
}

// IsHot reports whether the listing should carry the popular badge: either
// tagged hot at creation time or viewed more than the threshold.
func (l Listing) IsHot() bool {
	if l.Status == StatusSold {
		return false
	}
	return l.Category == CategoryHot || l.Views > hotViewsThreshold
}
