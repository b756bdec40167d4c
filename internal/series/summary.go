package series

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the extent of a normalized series, enough to size chart axes
type Summary struct {
	Count    int     `json:"count"`
	MinTime  float64 `json:"min_time"`
	MaxTime  float64 `json:"max_time"`
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Rising   int     `json:"rising"`
	Falling  int     `json:"falling"`
}

// Summarize computes the Summary of s. An empty series gives a zero Summary.
func Summarize(s NormalizedSeries) Summary {
	if len(s) == 0 {
		return Summary{}
	}

	values := s.Values()
	sum := Summary{
		Count:    len(s),
		MinTime:  s[0].Time,
		MaxTime:  s[len(s)-1].Time,
		MinValue: floats.Min(values),
		MaxValue: floats.Max(values),
	}

	if len(values) > 1 {
		sum.Mean, sum.StdDev = stat.MeanStdDev(values, nil)
	} else {
		sum.Mean = values[0]
	}

	for _, p := range s {
		switch {
		case p.Change > 0:
			sum.Rising++
		case p.Change < 0:
			sum.Falling++
		}
	}

	return sum
}
