package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/renohome/listing-service/internal/entity"
	"github.com/renohome/listing-service/internal/port/cache"
	"github.com/renohome/listing-service/internal/port/repository"
	"github.com/renohome/listing-service/internal/region"
	"github.com/renohome/listing-service/internal/search"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const snapshotCacheKey = "listings:snapshot"

const snapshotCacheTTL = time.Minute

// SearchUseCase feeds the storefront: it owns the listings snapshot (cached,
// invalidated by the change-stream watcher) and runs the pure search engine
// over it. Criteria always arrive as a value from the handler; nothing here
// holds filter state between calls.
type SearchUseCase struct {
	repo       repository.ListingRepository
	regionRepo repository.RegionRepository
	cacheRepo  cache.CacheRepository
	logger     *zap.Logger
}

func NewSearchUseCase(
	repo repository.ListingRepository,
	regionRepo repository.RegionRepository,
	cacheRepo cache.CacheRepository,
	logger *zap.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		repo:       repo,
		regionRepo: regionRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

// Search resolves the current snapshot and returns the filtered, ordered
// listings for the given criteria.
func (uc *SearchUseCase) Search(ctx context.Context, c search.Criteria, key search.SortKey) ([]entity.Listing, error) {
	ctx, span := otel.Tracer("search").Start(ctx, "SearchUseCase.Search")
	defer span.End()

	snapshot, err := uc.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("SearchUseCase.Search: failed to load snapshot: %w", err)
	}
	return search.Search(snapshot, c, key), nil
}

// snapshot returns the full listing collection, served from Redis when fresh.
// Cache trouble is never fatal; the repository is the source of truth.
func (uc *SearchUseCase) snapshot(ctx context.Context) ([]entity.Listing, error) {
	if uc.cacheRepo != nil {
		if raw, err := uc.cacheRepo.Get(ctx, snapshotCacheKey); err == nil {
			var cached []entity.Listing
			if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
				uc.logger.Debug("Listings snapshot served from cache", zap.Int("count", len(cached)))
				return cached, nil
			}
			uc.logger.Warn("Failed to unmarshal cached snapshot, dropping it")
			if delErr := uc.cacheRepo.Delete(ctx, snapshotCacheKey); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted snapshot from cache", zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to get snapshot from cache", zap.Error(err))
		}
	}

	snapshot, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		if raw, marshalErr := json.Marshal(snapshot); marshalErr == nil {
			if setErr := uc.cacheRepo.Set(ctx, snapshotCacheKey, raw, snapshotCacheTTL); setErr != nil {
				uc.logger.Warn("Failed to cache listings snapshot", zap.Error(setErr))
			}
		}
	}
	return snapshot, nil
}

// WatchListings follows the repository's change feed until ctx is done,
// invalidating the cached snapshot on every change so the next search sees a
// fresh collection. Safe to run in its own goroutine.
func (uc *SearchUseCase) WatchListings(ctx context.Context) error {
	return uc.repo.Watch(ctx, func() {
		if uc.cacheRepo == nil {
			return
		}
		if err := uc.cacheRepo.Delete(context.Background(), snapshotCacheKey); err != nil {
			uc.logger.Warn("Failed to invalidate snapshot cache after change event", zap.Error(err))
		} else {
			uc.logger.Debug("Snapshot cache invalidated after change event")
		}
	})
}

// ProvinceOptions lists province names for the filter UI; empty until the
// region dataset has loaded.
func (uc *SearchUseCase) ProvinceOptions(ctx context.Context) ([]string, error) {
	data, err := uc.regionData(ctx)
	if err != nil {
		return nil, err
	}
	return region.ProvinceNames(data), nil
}

// DistrictOptions lists the districts reachable from the selected provinces.
func (uc *SearchUseCase) DistrictOptions(ctx context.Context, provinces []string) ([]region.DistrictOption, error) {
	data, err := uc.regionData(ctx)
	if err != nil {
		return nil, err
	}
	return region.DistrictsFor(provinces, data), nil
}

// SubDistrictOptions lists sub-districts for the listing-creation form.
func (uc *SearchUseCase) SubDistrictOptions(ctx context.Context, province, district string) ([]entity.SubDistrict, error) {
	data, err := uc.regionData(ctx)
	if err != nil {
		return nil, err
	}
	return region.SubDistrictsFor(province, district, data), nil
}

// ZipCode resolves the zip of a sub-district; ok is false when unknown.
func (uc *SearchUseCase) ZipCode(ctx context.Context, province, district, subDistrict string) (string, bool, error) {
	data, err := uc.regionData(ctx)
	if err != nil {
		return "", false, err
	}
	zip, ok := region.ZipCodeFor(province, district, subDistrict, data)
	return zip, ok, nil
}

// DeselectProvince applies the cascade rule for a removed province and
// returns the corrected criteria.
func (uc *SearchUseCase) DeselectProvince(ctx context.Context, province string, c search.Criteria) (search.Criteria, error) {
	data, err := uc.regionData(ctx)
	if err != nil {
		return c, err
	}
	return region.DeselectProvince(province, c, data), nil
}

func (uc *SearchUseCase) regionData(ctx context.Context) ([]entity.Province, error) {
	if uc.regionRepo == nil {
		return nil, nil
	}
	data, err := uc.regionRepo.Provinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("SearchUseCase: failed to load region data: %w", err)
	}
	return data, nil
}
