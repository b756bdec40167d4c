package main

import (
	"path/filepath"
	"testing"

	"github.com/chrissnell/circadian/pkg/config"
)

func TestConvert(t *testing.T) {
	in := &config.ConfigData{Datasets: config.DefaultDatasets("/srv/data")}
	in.Analysis.Baseline = "zero"
	config.ApplyDefaults(in)

	dbPath := filepath.Join(t.TempDir(), "config.db")
	if err := convert(dbPath, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := config.Load(dbPath, config.BackendSQLite)
	if err != nil {
		t.Fatalf("failed to read converted config: %v", err)
	}
	if len(out.Datasets) != 4 {
		t.Errorf("expected 4 datasets, got %d", len(out.Datasets))
	}
	if out.Analysis.Baseline != "zero" {
		t.Errorf("expected baseline zero, got %q", out.Analysis.Baseline)
	}
}
