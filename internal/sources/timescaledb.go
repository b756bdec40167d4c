package sources

import (
	"context"
	"math"

	"github.com/chrissnell/circadian/internal/database"
	"github.com/chrissnell/circadian/internal/series"
)

// SampleLoader is the part of the database client a TimescaleDBSource needs
type SampleLoader interface {
	LoadSamples(ctx context.Context, dataset string) ([]database.Sample, error)
}

// TimescaleDBSource reads a dataset from the samples table
type TimescaleDBSource struct {
	Dataset string
	Loader  SampleLoader
}

func (t *TimescaleDBSource) Fetch(ctx context.Context) (series.RawSeries, error) {
	samples, err := t.Loader.LoadSamples(ctx, t.Dataset)
	if err != nil {
		return nil, err
	}
	return samplesToRaw(samples), nil
}

func (t *TimescaleDBSource) Describe() string {
	return "timescaledb:" + t.Dataset
}

// samplesToRaw lays ordered samples out by minute. Minutes missing from the
// table and NULL values both become NaN so indexes stay aligned.
func samplesToRaw(samples []database.Sample) series.RawSeries {
	if len(samples) == 0 {
		return series.RawSeries{}
	}

	n := samples[len(samples)-1].Minute + 1
	if n <= 0 {
		return series.RawSeries{}
	}
	raw := make(series.RawSeries, n)
	for i := range raw {
		raw[i] = series.RawSample{math.NaN()}
	}

	for _, s := range samples {
		if s.Minute < 0 || s.Minute >= n || !s.Value.Valid {
			continue
		}
		raw[s.Minute] = series.RawSample{s.Value.Float64}
	}

	return raw
}
