// Package sources fetches raw datasets and caches the ones that loaded.
package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chrissnell/circadian/internal/series"
	"github.com/chrissnell/circadian/pkg/config"
)

// Source fetches and parses one dataset.
type Source interface {
	Fetch(ctx context.Context) (series.RawSeries, error)
	// Describe names the location for log messages
	Describe() string
}

// New builds the Source for a configured dataset. samples is only needed for
// datasets stored in TimescaleDB and may be nil otherwise.
func New(d config.DatasetData, client *http.Client, samples SampleLoader) (Source, error) {
	switch d.Source {
	case config.SourceFile, "":
		return &FileSource{Path: d.Path}, nil
	case config.SourceHTTP:
		return &HTTPSource{URL: d.URL, Client: client}, nil
	case config.SourceTimescaleDB:
		if samples == nil {
			return nil, fmt.Errorf("dataset %s is stored in TimescaleDB but no database is configured", d.Name)
		}
		return &TimescaleDBSource{Dataset: d.Name, Loader: samples}, nil
	}
	return nil, fmt.Errorf("dataset %s: unsupported source %q", d.Name, d.Source)
}

// Build creates a Source for every dataset, keyed by dataset name.
func Build(datasets []config.DatasetData, client *http.Client, samples SampleLoader) (map[string]Source, error) {
	srcs := make(map[string]Source, len(datasets))
	for _, d := range datasets {
		src, err := New(d, client, samples)
		if err != nil {
			return nil, err
		}
		srcs[d.Name] = src
	}
	return srcs, nil
}
