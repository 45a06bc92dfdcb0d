package repository

import (
	"context"
	"errors"

	"github.com/renohome/listing-service/internal/entity"
)

var ErrNotFound = errors.New("listing not found")

// ListingRepository is the persistence port for listings. Snapshot returns
// every listing (the storefront filters in memory); Watch blocks until ctx is
// done, invoking onChange whenever the underlying collection changes.
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	UpdateStatus(ctx context.Context, id string, status entity.ListingStatus) error
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context) ([]entity.Listing, error)
	IncrementViews(ctx context.Context, id string) error
	Watch(ctx context.Context, onChange func()) error
}

// RegionRepository supplies the static province hierarchy.
type RegionRepository interface {
	Provinces(ctx context.Context) ([]entity.Province, error)
}
