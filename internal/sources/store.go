package sources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chrissnell/circadian/internal/series"
	"github.com/chrissnell/circadian/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type dataset struct {
	config config.DatasetData
	source Source
}

// Store is the single entry point for raw data. It fetches datasets on
// demand and keeps every successful, non-empty load keyed by dataset name.
// A failed load is logged and reported as an empty series; it is not cached,
// so the next Ensure tries again.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]dataset
	order    []string
	cache    map[string]series.RawSeries
	loadedAt map[string]time.Time
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

// DatasetStatus reports what the store currently holds for one dataset
type DatasetStatus struct {
	Name     string     `json:"name"`
	Metric   string     `json:"metric"`
	Gender   string     `json:"gender"`
	Source   string     `json:"source"`
	Location string     `json:"location"`
	Loaded   bool       `json:"loaded"`
	Samples  int        `json:"samples"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// NewStore creates a store over already-built sources, keyed by dataset name.
func NewStore(datasets []config.DatasetData, srcs map[string]Source, timeout time.Duration, logger *zap.SugaredLogger) (*Store, error) {
	s := &Store{
		datasets: make(map[string]dataset, len(datasets)),
		cache:    make(map[string]series.RawSeries),
		loadedAt: make(map[string]time.Time),
		timeout:  timeout,
		logger:   logger,
	}

	for _, d := range datasets {
		src, ok := srcs[d.Name]
		if !ok {
			return nil, fmt.Errorf("no source for dataset %s", d.Name)
		}
		s.datasets[d.Name] = dataset{config: d, source: src}
		s.order = append(s.order, d.Name)
	}

	return s, nil
}

// Ensure returns the raw series for name, fetching it if it is not cached.
func (s *Store) Ensure(ctx context.Context, name string) series.RawSeries {
	s.mu.RLock()
	raw, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return raw
	}
	return s.fetch(ctx, name)
}

// Reload drops any cached copy of name and fetches it again.
func (s *Store) Reload(ctx context.Context, name string) series.RawSeries {
	s.mu.Lock()
	delete(s.cache, name)
	delete(s.loadedAt, name)
	s.mu.Unlock()
	return s.fetch(ctx, name)
}

// EnsureAll loads the named datasets concurrently and returns once every
// fetch has finished or failed.
func (s *Store) EnsureAll(ctx context.Context, names ...string) map[string]series.RawSeries {
	results := make([]series.RawSeries, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i] = s.Ensure(gctx, name)
			return nil
		})
	}
	// fetch logs failures and never returns an error, so Wait only joins.
	_ = g.Wait()

	out := make(map[string]series.RawSeries, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out
}

// Find returns the name of the dataset recording metric for gender.
func (s *Store) Find(metric, gender string) (string, bool) {
	for _, name := range s.order {
		d := s.datasets[name].config
		if d.Metric == metric && d.Gender == gender {
			return name, true
		}
	}
	return "", false
}

// Has reports whether name is a configured dataset.
func (s *Store) Has(name string) bool {
	_, ok := s.datasets[name]
	return ok
}

// Names lists the configured datasets in configuration order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Status describes every configured dataset.
func (s *Store) Status() []DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make([]DatasetStatus, 0, len(s.order))
	for _, name := range s.order {
		d := s.datasets[name]
		st := DatasetStatus{
			Name:     name,
			Metric:   d.config.Metric,
			Gender:   d.config.Gender,
			Source:   d.config.Source,
			Location: d.source.Describe(),
		}
		if raw, ok := s.cache[name]; ok {
			st.Loaded = true
			st.Samples = raw.Len()
			at := s.loadedAt[name]
			st.LoadedAt = &at
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// AnyLoaded reports whether at least one dataset is cached.
func (s *Store) AnyLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache) > 0
}

func (s *Store) fetch(ctx context.Context, name string) series.RawSeries {
	d, ok := s.datasets[name]
	if !ok {
		s.logger.Warnf("unknown dataset %s requested", name)
		return series.RawSeries{}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := d.source.Fetch(ctx)
	if err != nil {
		s.logger.Errorw("dataset unavailable", "dataset", name, "source", d.source.Describe(), "error", err)
		return series.RawSeries{}
	}
	if raw.Len() == 0 {
		s.logger.Warnw("dataset is empty", "dataset", name, "source", d.source.Describe())
		return series.RawSeries{}
	}

	s.mu.Lock()
	s.cache[name] = raw
	s.loadedAt[name] = time.Now()
	s.mu.Unlock()

	s.logger.Debugw("dataset loaded", "dataset", name, "samples", raw.Len(), "duration", time.Since(start))
	return raw
}
