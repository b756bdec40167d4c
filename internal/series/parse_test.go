package series

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseCSVString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]float64
	}{
		{
			name:     "empty input",
			input:    "",
			expected: [][]float64{},
		},
		{
			name:     "whitespace only",
			input:    "  \n\n ",
			expected: [][]float64{},
		},
		{
			name:     "single column",
			input:    "36.5\n36.7\n36.9\n",
			expected: [][]float64{{36.5}, {36.7}, {36.9}},
		},
		{
			name:     "multiple columns and CRLF",
			input:    "1,2\r\n3, 4 \r\n",
			expected: [][]float64{{1, 2}, {3, 4}},
		},
		{
			name:     "non-numeric fields become NaN",
			input:    "value\n36.5\nn/a\n",
			expected: [][]float64{{math.NaN()}, {36.5}, {math.NaN()}},
		},
		{
			name:     "infinities become NaN",
			input:    "36.5\ninf\n-Inf\n+Infinity\n36.7",
			expected: [][]float64{{36.5}, {math.NaN()}, {math.NaN()}, {math.NaN()}, {36.7}},
		},
		{
			name:     "blank line inside keeps its index",
			input:    "1\n\n3",
			expected: [][]float64{{1}, {math.NaN()}, {3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := ParseCSVString(tt.input)

			if len(raw) != len(tt.expected) {
				t.Fatalf("expected %d rows, got %d", len(tt.expected), len(raw))
			}

			for i, row := range raw {
				if len(row) != len(tt.expected[i]) {
					t.Fatalf("row %d: expected %d fields, got %d", i, len(tt.expected[i]), len(row))
				}
				for j, v := range row {
					want := tt.expected[i][j]
					if math.IsNaN(want) {
						if !math.IsNaN(v) {
							t.Errorf("row %d field %d: expected NaN, got %v", i, j, v)
						}
						continue
					}
					if v != want {
						t.Errorf("row %d field %d: expected %v, got %v", i, j, want, v)
					}
				}
			}
		})
	}
}

func TestParseCSVReader(t *testing.T) {
	raw, err := ParseCSV(strings.NewReader("1\n2\n3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Len() != 3 {
		t.Errorf("expected 3 rows, got %d", raw.Len())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestParseCSVReadError(t *testing.T) {
	if _, err := ParseCSV(failingReader{}); err == nil {
		t.Fatal("expected an error from a failing reader")
	}
}

func TestNormalizeAfterInfiniteTokens(t *testing.T) {
	raw := ParseCSVString("36.5\ninf\n36.7\nInfinity")
	points := Normalize(raw, Window{Start: 0, End: 4, Divisor: 1})

	if len(points) != 2 {
		t.Fatalf("expected 2 finite points, got %d", len(points))
	}
	for i, p := range points {
		if math.IsInf(p.Value, 0) || math.IsInf(p.Change, 0) {
			t.Errorf("point %d is not finite: %+v", i, p)
		}
	}
	if math.Abs(points[1].Change-0.2) > 1e-9 {
		t.Errorf("expected change 0.2 across the dropped row, got %v", points[1].Change)
	}
}
