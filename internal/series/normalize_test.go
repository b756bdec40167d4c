package series

import (
	"math"
	"reflect"
	"testing"
)

func rawFromValues(values ...float64) RawSeries {
	raw := make(RawSeries, len(values))
	for i, v := range values {
		raw[i] = RawSample{v}
	}
	return raw
}

func TestNormalizeDropsNaN(t *testing.T) {
	raw := rawFromValues(36.5, 36.7, math.NaN(), 36.9)
	w := Window{Start: 0, End: 4, Divisor: 1}

	points := Normalize(raw, w)

	expected := []NormalizedPoint{
		{Time: 0, Value: 36.5, Change: 0},
		{Time: 1, Value: 36.7, Change: 0.2},
		{Time: 3, Value: 36.9, Change: 0.2},
	}

	if len(points) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(points))
	}
	for i, p := range points {
		if p.Time != expected[i].Time || p.Value != expected[i].Value {
			t.Errorf("point %d: expected %+v, got %+v", i, expected[i], p)
		}
		if math.Abs(p.Change-expected[i].Change) > 1e-9 {
			t.Errorf("point %d: expected change %.3f, got %.3f", i, expected[i].Change, p.Change)
		}
	}
}

func TestNormalizeChangeAtWindowBoundary(t *testing.T) {
	raw := rawFromValues(1, 2, 4, 7, 11)

	tests := []struct {
		name    string
		window  Window
		changes []float64
		times   []float64
	}{
		{
			name:    "window at start of series",
			window:  Window{Start: 0, End: 3, Divisor: 1},
			changes: []float64{0, 1, 2},
			times:   []float64{0, 1, 2},
		},
		{
			name:    "window looks left of its start",
			window:  Window{Start: 2, End: 5, Divisor: 1},
			changes: []float64{2, 3, 4},
			times:   []float64{0, 1, 2},
		},
		{
			name:    "divisor scales time",
			window:  Window{Start: 1, End: 5, Divisor: 2},
			changes: []float64{1, 2, 3, 4},
			times:   []float64{0, 0.5, 1, 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Normalize(raw, tt.window)
			if len(points) != len(tt.changes) {
				t.Fatalf("expected %d points, got %d", len(tt.changes), len(points))
			}
			for i, p := range points {
				if p.Change != tt.changes[i] {
					t.Errorf("point %d: expected change %v, got %v", i, tt.changes[i], p.Change)
				}
				if p.Time != tt.times[i] {
					t.Errorf("point %d: expected time %v, got %v", i, tt.times[i], p.Time)
				}
			}
		})
	}
}

func TestNormalizeNeverEmitsNaN(t *testing.T) {
	raw := rawFromValues(math.NaN(), math.NaN(), 5, math.NaN(), 6, math.NaN())
	raw = append(raw, RawSample{})

	points := Normalize(raw, Window{Start: 0, End: 10, Divisor: 1})

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsNaN(p.Change) {
			t.Errorf("point %d carries NaN: %+v", i, p)
		}
	}
	if points[0].Change != 0 {
		t.Errorf("first valid sample should have change 0, got %v", points[0].Change)
	}
	if points[1].Change != 1 {
		t.Errorf("expected change 1 across the NaN gap, got %v", points[1].Change)
	}
}

func TestNormalizeIsOrderedSubsequence(t *testing.T) {
	raw := make(RawSeries, 3*MinutesPerDay)
	for i := range raw {
		v := float64(i)
		if i%7 == 0 {
			v = math.NaN()
		}
		raw[i] = RawSample{v}
	}

	w := ResolveWindow("day2", raw.Len())
	points := Normalize(raw, w)

	if len(points) > w.Len() {
		t.Fatalf("output length %d exceeds window length %d", len(points), w.Len())
	}
	for i := 1; i < len(points); i++ {
		if points[i].Time <= points[i-1].Time {
			t.Fatalf("points out of order at %d: %v then %v", i, points[i-1].Time, points[i].Time)
		}
	}
	for _, p := range points {
		if p.Value != float64(w.Start)+p.Time {
			t.Fatalf("point at time %v has value %v, not the sliced input", p.Time, p.Value)
		}
	}
}

func TestNormalizeClampsShortSeries(t *testing.T) {
	raw := rawFromValues(1, 2, 3)

	if points := Normalize(raw, ResolveWindow("week2", raw.Len())); len(points) != 0 {
		t.Errorf("expected no points past the end of the data, got %d", len(points))
	}
	if points := Normalize(raw, ResolveWindow("week1", raw.Len())); len(points) != 3 {
		t.Errorf("expected 3 points, got %d", len(points))
	}
	if points := Normalize(nil, ResolveWindow("all", 0)); len(points) != 0 {
		t.Errorf("expected no points from an empty series, got %d", len(points))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := rawFromValues(3, math.NaN(), 4, 4.5, 2)
	w := Window{Start: 1, End: 5, Divisor: 1}

	first := Normalize(raw, w)
	second := Normalize(raw, w)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize is not repeatable: %+v vs %+v", first, second)
	}
}

func TestIsEstrusPhase(t *testing.T) {
	tests := []struct {
		index, cycle int
		expected     bool
	}{
		{0, 4, false},
		{1, 4, false},
		{2, 4, true},
		{3, 4, true},
		{4, 4, false},
		{7, 4, true},
		{5, 0, true},
	}

	for _, tt := range tests {
		if got := IsEstrusPhase(tt.index, tt.cycle); got != tt.expected {
			t.Errorf("IsEstrusPhase(%d, %d): expected %v, got %v", tt.index, tt.cycle, tt.expected, got)
		}
	}
}

func TestNormalizeEstrusPhase(t *testing.T) {
	raw := rawFromValues(0, 1, 2, 3, 4, 5, 6, 7)
	w := Window{Start: 0, End: 8, Divisor: 1}

	points := Normalize(raw, w, WithPhase(PhaseEstrus, 4))

	expectedTimes := []float64{2, 3, 6, 7}
	if len(points) != len(expectedTimes) {
		t.Fatalf("expected %d points, got %d", len(expectedTimes), len(points))
	}
	for i, p := range points {
		if p.Time != expectedTimes[i] {
			t.Errorf("point %d: expected time %v, got %v", i, expectedTimes[i], p.Time)
		}
		if p.Change != 1 {
			t.Errorf("point %d: change should still use the raw predecessor, got %v", i, p.Change)
		}
	}
}

func TestParsePhase(t *testing.T) {
	if p, err := ParsePhase(""); err != nil || p != PhaseAll {
		t.Errorf("empty phase: got %q, %v", p, err)
	}
	if p, err := ParsePhase("estrus"); err != nil || p != PhaseEstrus {
		t.Errorf("estrus phase: got %q, %v", p, err)
	}
	if _, err := ParsePhase("diestrus"); err == nil {
		t.Error("expected an error for an unknown phase")
	}
}
