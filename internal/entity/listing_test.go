package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListedAt(t *testing.T) {
	l := Listing{Date: "2025-09-15"}
	assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), l.ListedAt())

	assert.True(t, Listing{}.ListedAt().IsZero(), "missing date sorts as oldest")
	assert.True(t, Listing{Date: "15/09/2025"}.ListedAt().IsZero(), "malformed date sorts as oldest")
}

func TestCoverImage(t *testing.T) {
	assert.Equal(t, "", Listing{}.CoverImage())
	assert.Equal(t, "a.jpg", Listing{Images: []string{"a.jpg", "b.jpg"}}.CoverImage())
}

func TestIsNew(t *testing.T) {
	now := time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

	recent := Listing{Date: "2025-11-18", Status: StatusAvailable}
	assert.True(t, recent.IsNew(now))

	stale := Listing{Date: "2025-09-15", Status: StatusAvailable}
	assert.False(t, stale.IsNew(now))

	sold := Listing{Date: "2025-11-18", Status: StatusSold}
	assert.False(t, sold.IsNew(now), "sold listings never carry the new badge")

	undated := Listing{Status: StatusAvailable}
	assert.False(t, undated.IsNew(now))
}

func TestIsHot(t *testing.T) {
	assert.True(t, Listing{Category: CategoryHot, Status: StatusAvailable}.IsHot())
	assert.True(t, Listing{Category: CategoryAll, Views: 340, Status: StatusAvailable}.IsHot())
	assert.False(t, Listing{Category: CategoryAll, Views: 100, Status: StatusAvailable}.IsHot(),
		"threshold is strictly more than 100 views")
	assert.False(t, Listing{Category: CategoryHot, Status: StatusSold}.IsHot())
}
