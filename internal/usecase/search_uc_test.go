package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/renohome/listing-service/internal/entity"
	"github.com/renohome/listing-service/internal/port/cache"
	"github.com/renohome/listing-service/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockRegionRepository struct{ mock.Mock }

func (m *MockRegionRepository) Provinces(ctx context.Context) ([]entity.Province, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Province), args.Error(1)
}

func searchSnapshot() []entity.Listing {
	return []entity.Listing{
		{
			ID: "1", Title: "Townhome Onnut", Location: "Onnut, Bangkok",
			Province: "Bangkok", Type: entity.TypeTownhome,
			Category: entity.CategoryNew, Status: entity.StatusAvailable,
			Price: 3290000, Date: "2025-09-15",
		},
		{
			ID: "2", Title: "House Ramindra", Location: "Ramindra, Bangkok",
			Province: "Bangkok", Type: entity.TypeHouse,
			Category: entity.CategoryHot, Status: entity.StatusAvailable,
			Price: 5500000, Date: "2025-11-18",
		},
	}
}

func TestSearch_CacheMissLoadsFromRepoAndCaches(t *testing.T) {
	repo := new(MockListingRepository)
	cacheRepo := new(MockCacheRepository)
	uc := NewSearchUseCase(repo, nil, cacheRepo, zap.NewNop())

	cacheRepo.On("Get", mock.Anything, snapshotCacheKey).Return(nil, cache.ErrNotFound)
	repo.On("Snapshot", mock.Anything).Return(searchSnapshot(), nil)
	cacheRepo.On("Set", mock.Anything, snapshotCacheKey, mock.Anything, snapshotCacheTTL).Return(nil)

	c := search.NewCriteria()
	c.Types = []entity.PropertyType{entity.TypeHouse}

	got, err := uc.Search(context.Background(), c, search.DefaultSortKey)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	cacheRepo.AssertExpectations(t)
}

func TestSearch_ServedFromCache(t *testing.T) {
	repo := new(MockListingRepository)
	cacheRepo := new(MockCacheRepository)
	uc := NewSearchUseCase(repo, nil, cacheRepo, zap.NewNop())

	raw, err := json.Marshal(searchSnapshot())
	require.NoError(t, err)
	cacheRepo.On("Get", mock.Anything, snapshotCacheKey).Return(raw, nil)

	got, err := uc.Search(context.Background(), search.NewCriteria(), search.SortPriceAsc)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID, "cheaper listing first under price-asc")
	repo.AssertNotCalled(t, "Snapshot", mock.Anything)
}

func TestSearch_CorruptedCacheEntryIsDropped(t *testing.T) {
	repo := new(MockListingRepository)
	cacheRepo := new(MockCacheRepository)
	uc := NewSearchUseCase(repo, nil, cacheRepo, zap.NewNop())

	cacheRepo.On("Get", mock.Anything, snapshotCacheKey).Return([]byte("{not json"), nil)
	cacheRepo.On("Delete", mock.Anything, snapshotCacheKey).Return(nil)
	repo.On("Snapshot", mock.Anything).Return(searchSnapshot(), nil)
	cacheRepo.On("Set", mock.Anything, snapshotCacheKey, mock.Anything, snapshotCacheTTL).Return(nil)

	got, err := uc.Search(context.Background(), search.NewCriteria(), search.DefaultSortKey)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	cacheRepo.AssertExpectations(t)
}

func TestSearch_WorksWithoutCache(t *testing.T) {
	repo := new(MockListingRepository)
	uc := NewSearchUseCase(repo, nil, nil, zap.NewNop())

	repo.On("Snapshot", mock.Anything).Return(searchSnapshot(), nil)

	got, err := uc.Search(context.Background(), search.NewCriteria(), search.DefaultSortKey)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID, "default order is newest first")
}

func TestDistrictOptions_UsesRegionDataset(t *testing.T) {
	regionRepo := new(MockRegionRepository)
	uc := NewSearchUseCase(new(MockListingRepository), regionRepo, nil, zap.NewNop())

	regionRepo.On("Provinces", mock.Anything).Return([]entity.Province{
		{Name: "Chonburi", Districts: []entity.District{{Name: "Bang Lamung"}}},
	}, nil)

	got, err := uc.DistrictOptions(context.Background(), []string{"Chonburi"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bang Lamung", got[0].Name)
	assert.Equal(t, "Chonburi", got[0].Province)
}

func TestDeselectProvince_CascadesThroughDataset(t *testing.T) {
	regionRepo := new(MockRegionRepository)
	uc := NewSearchUseCase(new(MockListingRepository), regionRepo, nil, zap.NewNop())

	regionRepo.On("Provinces", mock.Anything).Return([]entity.Province{
		{Name: "Chonburi", Districts: []entity.District{{Name: "Bang Lamung"}}},
	}, nil)

	c := search.NewCriteria()
	c.Provinces = []string{"Chonburi"}
	c.Districts = []string{"Bang Lamung"}

	got, err := uc.DeselectProvince(context.Background(), "Chonburi", c)

	require.NoError(t, err)
	assert.Empty(t, got.Provinces)
	assert.Empty(t, got.Districts)
}

func TestProvinceOptions_NoRegionRepo(t *testing.T) {
	uc := NewSearchUseCase(new(MockListingRepository), nil, nil, zap.NewNop())

	got, err := uc.ProvinceOptions(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}
