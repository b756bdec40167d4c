package main

import (
	"math"
	"testing"

	"github.com/chrissnell/circadian/internal/series"
)

func TestSampleRow(t *testing.T) {
	row := sampleRow("female_temp", 3, 37.25)
	if row[0] != "female_temp" || row[1] != 3 || row[2] != 37.25 {
		t.Errorf("unexpected row %v", row)
	}

	row = sampleRow("female_temp", 4, math.NaN())
	if row[2] != nil {
		t.Errorf("expected NULL for a NaN sample, got %v", row[2])
	}
}

func TestImportList(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    int
		wantErr bool
	}{
		{"directory", Config{ConfigDir: "data"}, 4, false},
		{"single file", Config{Dataset: "female_temp", CSVFile: "f.csv"}, 1, false},
		{"file without dataset", Config{CSVFile: "f.csv"}, 0, true},
		{"nothing", Config{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importList(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d imports, got %d", tt.want, len(got))
			}
		})
	}
}

func TestCountMissing(t *testing.T) {
	raw := series.ParseCSVString("36.5\nbad\n\n36.7\ninf")
	if got := countMissing(raw); got != 3 {
		t.Errorf("expected 3 missing samples, got %d", got)
	}
}
