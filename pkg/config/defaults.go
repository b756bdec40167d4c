package config

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	DefaultListenAddr   = "0.0.0.0"
	DefaultPort         = 8080
	DefaultRange        = "all"
	DefaultGender       = "both"
	DefaultPhase        = "all"
	DefaultBaseline     = "zero"
	DefaultCycleLength  = 4 * 1440
	DefaultFetchTimeout = 10 * time.Second
	DefaultDataDir      = "data"
)

// DefaultDatasets returns the four standard recordings as files under dir.
func DefaultDatasets(dir string) []DatasetData {
	return []DatasetData{
		{Name: "female_temp", Metric: MetricTemperature, Gender: GenderFemale, Source: SourceFile, Path: filepath.Join(dir, "female_temp.csv")},
		{Name: "male_temp", Metric: MetricTemperature, Gender: GenderMale, Source: SourceFile, Path: filepath.Join(dir, "male_temp.csv")},
		{Name: "female_act", Metric: MetricActivity, Gender: GenderFemale, Source: SourceFile, Path: filepath.Join(dir, "female_act.csv")},
		{Name: "male_act", Metric: MetricActivity, Gender: GenderMale, Source: SourceFile, Path: filepath.Join(dir, "male_act.csv")},
	}
}

// ApplyDefaults fills in every setting the configuration source left empty.
func ApplyDefaults(c *ConfigData) {
	if len(c.Datasets) == 0 {
		c.Datasets = DefaultDatasets(DefaultDataDir)
	}
	for i := range c.Datasets {
		if c.Datasets[i].Source == "" {
			c.Datasets[i].Source = SourceFile
		}
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	a := &c.Analysis
	if a.DefaultRange == "" {
		a.DefaultRange = DefaultRange
	}
	if a.DefaultGender == "" {
		a.DefaultGender = DefaultGender
	}
	if a.DefaultPhase == "" {
		a.DefaultPhase = DefaultPhase
	}
	if a.Baseline == "" {
		a.Baseline = DefaultBaseline
	}
	if a.CycleLength == 0 {
		a.CycleLength = DefaultCycleLength
	}
	if a.FetchTimeout == "" {
		a.FetchTimeout = DefaultFetchTimeout.String()
	}
}

// Validate checks the dataset list for unknown kinds, missing locations and duplicate names
func Validate(c *ConfigData) error {
	seen := make(map[string]bool)
	for _, d := range c.Datasets {
		if d.Name == "" {
			return fmt.Errorf("dataset with empty name")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate dataset name: %s", d.Name)
		}
		seen[d.Name] = true

		switch d.Metric {
		case MetricTemperature, MetricActivity:
		default:
			return fmt.Errorf("dataset %s: unknown metric %q", d.Name, d.Metric)
		}

		switch d.Gender {
		case GenderFemale, GenderMale:
		default:
			return fmt.Errorf("dataset %s: unknown gender %q", d.Name, d.Gender)
		}

		switch d.Source {
		case SourceFile:
			if d.Path == "" {
				return fmt.Errorf("dataset %s: file source requires a path", d.Name)
			}
		case SourceHTTP:
			if d.URL == "" {
				return fmt.Errorf("dataset %s: http source requires a url", d.Name)
			}
		case SourceTimescaleDB:
			if c.Storage.TimescaleDB == nil || c.Storage.TimescaleDB.ConnectionString == "" {
				return fmt.Errorf("dataset %s: timescaledb source requires storage.timescaledb to be configured", d.Name)
			}
		default:
			return fmt.Errorf("dataset %s: unknown source %q", d.Name, d.Source)
		}
	}

	if c.GRPC != nil && c.GRPC.Port < 0 {
		return fmt.Errorf("invalid gRPC port %d", c.GRPC.Port)
	}

	return nil
}
