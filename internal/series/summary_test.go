package series

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := NormalizedSeries{
		{Time: 0, Value: 2, Change: 0},
		{Time: 1, Value: 4, Change: 2},
		{Time: 2, Value: 4, Change: 0},
		{Time: 3, Value: 6, Change: 2},
		{Time: 4, Value: 4, Change: -2},
	}

	sum := Summarize(s)

	if sum.Count != 5 {
		t.Errorf("expected count 5, got %d", sum.Count)
	}
	if sum.MinTime != 0 || sum.MaxTime != 4 {
		t.Errorf("expected time extent [0,4], got [%v,%v]", sum.MinTime, sum.MaxTime)
	}
	if sum.MinValue != 2 || sum.MaxValue != 6 {
		t.Errorf("expected value extent [2,6], got [%v,%v]", sum.MinValue, sum.MaxValue)
	}
	if math.Abs(sum.Mean-4) > 1e-9 {
		t.Errorf("expected mean 4, got %v", sum.Mean)
	}
	if math.Abs(sum.StdDev-math.Sqrt(2)) > 1e-9 {
		t.Errorf("expected std dev %v, got %v", math.Sqrt(2), sum.StdDev)
	}
	if sum.Rising != 2 || sum.Falling != 1 {
		t.Errorf("expected 2 rising and 1 falling, got %d and %d", sum.Rising, sum.Falling)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if sum := Summarize(nil); sum != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", sum)
	}

	sum := Summarize(NormalizedSeries{{Time: 3, Value: 36.6}})
	if sum.Mean != 36.6 || sum.StdDev != 0 {
		t.Errorf("single point: expected mean 36.6 and std dev 0, got %+v", sum)
	}
}
