// Package engine runs the full load, window, normalize and difference pipeline
// for one selector state.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/chrissnell/circadian/internal/series"
	"github.com/chrissnell/circadian/internal/sources"
	"github.com/chrissnell/circadian/pkg/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAllSourcesFailed is returned when none of the datasets could be loaded.
var ErrAllSourcesFailed = errors.New("all datasets failed to load")

// DataStore is what the engine needs from sources.Store
type DataStore interface {
	Find(metric, gender string) (string, bool)
	EnsureAll(ctx context.Context, names ...string) map[string]series.RawSeries
	Reload(ctx context.Context, name string) series.RawSeries
}

var _ DataStore = (*sources.Store)(nil)

// Engine computes chart data from the datasets held by a store
type Engine struct {
	store    DataStore
	analysis config.AnalysisData
	baseline series.Baseline
	logger   *zap.SugaredLogger
}

// New creates an engine. The analysis settings supply request defaults, the
// difference baseline and the estrous cycle length.
func New(store DataStore, analysis config.AnalysisData, logger *zap.SugaredLogger) (*Engine, error) {
	baseline, err := series.ParseBaseline(analysis.Baseline)
	if err != nil {
		return nil, err
	}

	return &Engine{
		store:    store,
		analysis: analysis,
		baseline: baseline,
		logger:   logger,
	}, nil
}

// NewRequest builds a request from raw selector tokens, using the configured
// defaults for empty ones.
func (e *Engine) NewRequest(rangeSel, gender, phase string) (Request, error) {
	if rangeSel == "" {
		rangeSel = e.analysis.DefaultRange
	}
	if gender == "" {
		gender = e.analysis.DefaultGender
	}
	if phase == "" {
		phase = e.analysis.DefaultPhase
	}

	g, err := ParseGender(gender)
	if err != nil {
		return Request{}, err
	}
	p, err := series.ParsePhase(phase)
	if err != nil {
		return Request{}, err
	}

	return Request{Range: rangeSel, Gender: g, Phase: p}, nil
}

type datasetKey struct {
	metric string
	gender string
}

var allKeys = []datasetKey{
	{config.MetricTemperature, config.GenderFemale},
	{config.MetricTemperature, config.GenderMale},
	{config.MetricActivity, config.GenderFemale},
	{config.MetricActivity, config.GenderMale},
}

// Compute loads all datasets, waits for every fetch to finish, and builds
// the chart data for req. It fails only when no dataset could be loaded.
func (e *Engine) Compute(ctx context.Context, req Request) (*Result, error) {
	raws, names := e.load(ctx)

	total := 0
	for _, raw := range raws {
		if raw.Len() > total {
			total = raw.Len()
		}
	}
	if total == 0 {
		return nil, ErrAllSourcesFailed
	}

	window := series.ResolveWindow(req.Range, total)
	nights := series.NightIntervals(window.Mode)

	result := &Result{
		ID:           uuid.NewString(),
		Request:      req,
		Window:       window,
		Temperature:  e.buildMetric(ctx, config.MetricTemperature, raws, names, window, req),
		Activity:     e.buildMetric(ctx, config.MetricActivity, raws, names, window, req),
		Nights:       nights,
		NightsScaled: series.ScaleIntervals(nights, window.Divisor),
		ComputedAt:   time.Now(),
	}

	e.logger.Debugw("computed view",
		"id", result.ID,
		"range", req.Range,
		"gender", req.Gender,
		"phase", req.Phase,
		"window_start", window.Start,
		"window_end", window.End,
	)

	return result, nil
}

// Window resolves a selector against the longest loaded dataset.
func (e *Engine) Window(ctx context.Context, selector string) (series.Window, error) {
	raws, _ := e.load(ctx)

	total := 0
	for _, raw := range raws {
		if raw.Len() > total {
			total = raw.Len()
		}
	}
	if total == 0 {
		return series.Window{}, ErrAllSourcesFailed
	}

	return series.ResolveWindow(selector, total), nil
}

func (e *Engine) load(ctx context.Context) (map[datasetKey]series.RawSeries, map[datasetKey]string) {
	names := make(map[datasetKey]string, len(allKeys))
	var toLoad []string
	for _, k := range allKeys {
		if name, ok := e.store.Find(k.metric, k.gender); ok {
			names[k] = name
			toLoad = append(toLoad, name)
		}
	}

	loaded := e.store.EnsureAll(ctx, toLoad...)

	raws := make(map[datasetKey]series.RawSeries, len(allKeys))
	for k, name := range names {
		raws[k] = loaded[name]
	}
	return raws, names
}

func (e *Engine) buildMetric(ctx context.Context, metric string, raws map[datasetKey]series.RawSeries, names map[datasetKey]string, w series.Window, req Request) MetricView {
	opts := []series.NormalizeOption{series.WithPhase(req.Phase, e.analysis.CycleLength)}
	side := func(gender string) series.NormalizedSeries {
		k := datasetKey{metric, gender}
		return series.Normalize(e.ensureSide(ctx, raws[k], names[k]), w, opts...)
	}

	var view MetricView
	if req.Gender.includesFemale() {
		female := side(config.GenderFemale)
		sum := series.Summarize(female)
		view.Female = female
		view.FemaleSummary = &sum
	}
	if req.Gender.includesMale() {
		male := side(config.GenderMale)
		sum := series.Summarize(male)
		view.Male = male
		view.MaleSummary = &sum
	}

	// A difference needs both sides, so it is only built for the "both" filter.
	if req.Gender != GenderBoth {
		return view
	}

	view.Difference = &DifferenceView{
		Series:   series.Difference(view.Female, view.Male, w, e.baseline),
		Baseline: e.baseline,
	}
	if len(view.Female) == 0 {
		view.Difference.Degenerate = append(view.Difference.Degenerate, config.GenderFemale)
	}
	if len(view.Male) == 0 {
		view.Difference.Degenerate = append(view.Difference.Degenerate, config.GenderMale)
	}

	return view
}

// ensureSide re-fetches a dataset that came back empty so a difference is
// only computed against a constant when the data really is unavailable.
func (e *Engine) ensureSide(ctx context.Context, raw series.RawSeries, name string) series.RawSeries {
	if raw.Len() > 0 || name == "" {
		return raw
	}

	e.logger.Infof("dataset %s is empty, reloading before computing differences", name)
	return e.store.Reload(ctx, name)
}
