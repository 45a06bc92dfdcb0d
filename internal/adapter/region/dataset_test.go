package region

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/renohome/listing-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const datasetJSON = `[
	{
		"name_th": "Bangkok",
		"amphure": [
			{
				"name_th": "Lat Phrao",
				"tambon": [
					{"name_th": "Lat Phrao", "zip_code": "10230"},
					{"name_th": "Chorakhe Bua", "zip_code": "10230"}
				]
			}
		]
	}
]`

func newDatasetRepo(url string) *DatasetRepository {
	return NewDatasetRepository(config.RegionConfig{
		DatasetURL:   url,
		FetchTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestProvinces_LoadsFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(datasetJSON))
	}))
	defer srv.Close()

	repo := newDatasetRepo(srv.URL)

	got, err := repo.Provinces(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bangkok", got[0].Name)
	require.Len(t, got[0].Districts, 1)
	assert.Len(t, got[0].Districts[0].SubDistricts, 2)
}

func TestProvinces_LoadSurvivesCancelledRequestContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(datasetJSON))
	}))
	defer srv.Close()

	repo := newDatasetRepo(srv.URL)

	// The first caller hanging up must not poison the dataset for the
	// process: the load is detached from the request context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := repo.Provinces(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.Provinces(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProvinces_RetriesAfterTransientFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(datasetJSON))
	}))
	defer srv.Close()

	repo := newDatasetRepo(srv.URL)

	got, err := repo.Provinces(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got, "failed load degrades to no options")

	got, err = repo.Provinces(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1, "a later call retries the load once the dataset is reachable")
	assert.Equal(t, "Bangkok", got[0].Name)
}

func TestProvinces_LoadedOnce(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(datasetJSON))
	}))
	defer srv.Close()

	repo := newDatasetRepo(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := repo.Provinces(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), calls.Load(), "a successful load is not repeated")
}

func TestProvinces_NoSourceConfigured(t *testing.T) {
	repo := NewDatasetRepository(config.RegionConfig{}, zap.NewNop())

	got, err := repo.Provinces(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}
