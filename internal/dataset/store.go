// Package dataset persists session datasets as flat tabular files:
// CSV and a JSON record array, with ISO-8601 date fields. There is
// deliberately no database behind this; the files are the system of
// record.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/therapy-report-api/internal/model"
	"github.com/jwalitptl/therapy-report-api/pkg/metrics"
)

// ErrNoData marks a missing or empty dataset file. It is a
// recoverable condition: callers report "no data" and stop cleanly
// instead of operating on partial input.
var ErrNoData = errors.New("no session data available")

// Store reads and writes session datasets. Parsed loads are memoized
// per path; saves invalidate, so readers never see a stale dataset
// after regeneration.
type Store struct {
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

// NewStore builds a store with the given cache TTL. A nil metrics
// receiver disables load counting, which CLI callers use.
func NewStore(ttl time.Duration, m *metrics.Metrics) *Store {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Store{cache: gocache.New(ttl, 2*ttl), metrics: m}
}

func (s *Store) countLoad(format, status string) {
	if s.metrics != nil {
		s.metrics.DatasetLoads.WithLabelValues(format, status).Inc()
	}
}

func (s *Store) SaveCSV(path string, records []model.SessionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	s.cache.Delete(cacheKey("csv", path))
	return nil
}

func (s *Store) LoadCSV(path string) ([]model.SessionRecord, error) {
	key := cacheKey("csv", path)
	if cached, ok := s.cache.Get(key); ok {
		s.countLoad("csv", "cache_hit")
		return cached.([]model.SessionRecord), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.countLoad("csv", "no_data")
			return nil, fmt.Errorf("%s: %w", path, ErrNoData)
		}
		s.countLoad("csv", "error")
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		s.countLoad("csv", "error")
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	s.cache.SetDefault(key, records)
	s.countLoad("csv", "success")
	return records, nil
}

func (s *Store) SaveJSON(path string, records []model.SessionRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	s.cache.Delete(cacheKey("json", path))
	return nil
}

func (s *Store) LoadJSON(path string) ([]model.SessionRecord, error) {
	key := cacheKey("json", path)
	if cached, ok := s.cache.Get(key); ok {
		s.countLoad("json", "cache_hit")
		return cached.([]model.SessionRecord), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.countLoad("json", "no_data")
			return nil, fmt.Errorf("%s: %w", path, ErrNoData)
		}
		s.countLoad("json", "error")
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var records []model.SessionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.countLoad("json", "error")
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	s.cache.SetDefault(key, records)
	s.countLoad("json", "success")
	return records, nil
}

func cacheKey(format, path string) string {
	return format + ":" + path
}

// Source binds a Store to the configured CSV path so consumers can
// load the active dataset without knowing where it lives.
type Source struct {
	store *Store
	path  string
}

func NewSource(store *Store, path string) *Source {
	return &Source{store: store, path: path}
}

func (s *Source) Load() ([]model.SessionRecord, error) {
	return s.store.LoadCSV(s.path)
}
