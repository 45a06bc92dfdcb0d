package region

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/renohome/listing-service/internal/config"
	"github.com/renohome/listing-service/internal/entity"
	"go.uber.org/zap"
)

// DatasetRepository serves the Thai administrative hierarchy from a published
// JSON dataset, fetched on first use and kept in memory for the process
// lifetime. While the dataset has not loaded yet Provinces returns an empty
// slice, so lookups upstream degrade to "no options yet"; a failed load is
// retried on the next call.
type DatasetRepository struct {
	cfg    config.RegionConfig
	client *http.Client
	logger *zap.Logger

	mu     sync.RWMutex
	loaded bool
	data   []entity.Province
}

// datasetProvince mirrors the published dataset's wire shape, which nests
// amphoe (district) and tambon (sub-district) records.
type datasetProvince struct {
	Name      string `json:"name_th"`
	Districts []struct {
		Name         string `json:"name_th"`
		SubDistricts []struct {
			Name    string `json:"name_th"`
			ZipCode string `json:"zip_code"`
		} `json:"tambon"`
	} `json:"amphure"`
}

func NewDatasetRepository(cfg config.RegionConfig, logger *zap.Logger) *DatasetRepository {
	return &DatasetRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		logger: logger,
	}
}

// Provinces returns the hierarchy, loading it on first use. The load is
// detached from the caller's context: the dataset outlives any single request,
// so a client hanging up mid-fetch must not poison it for everyone else. A
// load failure yields an empty result for this call and is retried on the
// next one.
func (r *DatasetRepository) Provinces(ctx context.Context) ([]entity.Province, error) {
	r.mu.RLock()
	if r.loaded {
		data := r.data
		r.mu.RUnlock()
		return data, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.data, nil
	}

	data, err := r.load(context.WithoutCancel(ctx))
	if err != nil {
		r.logger.Warn("Region dataset unavailable, lookups return no options until it loads", zap.Error(err))
		return nil, nil
	}
	r.data = data
	r.loaded = true
	r.logger.Info("Region dataset loaded", zap.Int("provinces", len(data)))
	return r.data, nil
}

func (r *DatasetRepository) load(ctx context.Context) ([]entity.Province, error) {
	raw, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var wire []datasetProvince
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode region dataset: %w", err)
	}

	provinces := make([]entity.Province, 0, len(wire))
	for _, wp := range wire {
		p := entity.Province{Name: wp.Name}
		for _, wd := range wp.Districts {
			d := entity.District{Name: wd.Name}
			for _, ws := range wd.SubDistricts {
				d.SubDistricts = append(d.SubDistricts, entity.SubDistrict{
					Name:    ws.Name,
					ZipCode: ws.ZipCode,
				})
			}
			p.Districts = append(p.Districts, d)
		}
		provinces = append(provinces, p)
	}
	return provinces, nil
}

func (r *DatasetRepository) fetch(ctx context.Context) ([]byte, error) {
	if r.cfg.DatasetURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.DatasetURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build region dataset request: %w", err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch region dataset from %s: %w", r.cfg.DatasetURL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("region dataset fetch returned status %d", resp.StatusCode)
		}
		buf, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read region dataset body: %w", err)
		}
		return buf, nil
	}

	if r.cfg.DatasetFile != "" {
		raw, err := os.ReadFile(r.cfg.DatasetFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read region dataset file %s: %w", r.cfg.DatasetFile, err)
		}
		return raw, nil
	}

	return nil, fmt.Errorf("no region dataset source configured")
}
