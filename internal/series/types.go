// Package series turns raw per-minute CSV samples into windowed, change-annotated
// series and female-minus-male difference series for charting.
package series

// Samples per day; every input file carries one sample per minute.
const MinutesPerDay = 1440

// Length of the lights-on/lights-off half cycle, in minutes.
const HalfDayMinutes = MinutesPerDay / 2

// RawSample is one CSV row. Only column 0 is consumed downstream.
type RawSample []float64

// RawSeries holds one RawSample per minute, indexed from 0. It is never
// modified after it has been loaded.
type RawSeries []RawSample

// Len returns the number of raw samples.
func (r RawSeries) Len() int {
	return len(r)
}

// Value returns column 0 of sample i, or NaN when the row is empty.
func (r RawSeries) Value(i int) float64 {
	if len(r[i]) == 0 {
		return nan
	}
	return r[i][0]
}

// NormalizedPoint is a single plottable sample inside a window
type NormalizedPoint struct {
	Time   float64 `json:"time"`
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// NormalizedSeries is the windowed series for one metric and one gender.
type NormalizedSeries []NormalizedPoint

// DifferencePoint is the female-minus-male value at an aligned index
type DifferencePoint struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

type DifferenceSeries []DifferencePoint

// NightInterval is a lights-off span used for shading.
type NightInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
