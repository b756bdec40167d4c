package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/chrissnell/circadian/internal/controllers"
	"github.com/chrissnell/circadian/internal/database"
	"github.com/chrissnell/circadian/internal/sources"
	"github.com/chrissnell/circadian/pkg/config"
	"go.uber.org/zap"
)

// StorageManager owns the dataset store and, when TimescaleDB is configured,
// the database connection its sources read from
type StorageManager struct {
	Store    *sources.Store
	DBClient *database.Client
	logger   *zap.SugaredLogger
}

// NewStorageManager connects to configured databases and builds a source for every dataset
func NewStorageManager(c *config.ConfigData, logger *zap.SugaredLogger) (*StorageManager, error) {
	s := &StorageManager{logger: logger}

	var loader sources.SampleLoader
	if c.Storage.TimescaleDB != nil && c.Storage.TimescaleDB.ConnectionString != "" {
		s.DBClient = database.NewClient(c.Storage.TimescaleDB.ConnectionString, logger)
		if err := s.DBClient.Connect(); err != nil {
			return nil, fmt.Errorf("could not connect to TimescaleDB: %v", err)
		}
		loader = s.DBClient
	}

	timeout := c.Analysis.FetchTimeoutDuration()
	srcs, err := sources.Build(c.Datasets, controllers.NewHTTPClient(timeout), loader)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.Store, err = sources.NewStore(c.Datasets, srcs, timeout, logger)
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Preload fetches every dataset once so the first request is served from cache.
// Failures are logged by the store and retried on demand.
func (s *StorageManager) Preload(ctx context.Context) {
	start := time.Now()
	s.Store.EnsureAll(ctx, s.Store.Names()...)

	loaded := 0
	for _, st := range s.Store.Status() {
		if st.Loaded {
			loaded++
		}
	}
	s.logger.Infof("preloaded %d of %d datasets in %v", loaded, len(s.Store.Names()), time.Since(start))
	if loaded == 0 {
		s.logger.Warn("no datasets could be loaded; views will fail until a source recovers")
	}
}

// Close releases the database connection, if any
func (s *StorageManager) Close() error {
	if s.DBClient == nil {
		return nil
	}
	return s.DBClient.Close()
}
