package series

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Baseline picks the constant that stands in for a side with no data at all.
// It is derived from the partner side, the one that does have data.
type Baseline string

const (
	// BaselineZero compares the present side against 0.
	BaselineZero Baseline = "zero"
	// BaselineFirst compares the present side against its own first value.
	BaselineFirst Baseline = "first"
	// BaselineMean compares the present side against its own mean.
	BaselineMean Baseline = "mean"
)

// ParseBaseline converts a baseline token. An empty token means BaselineZero.
func ParseBaseline(s string) (Baseline, error) {
	switch Baseline(s) {
	case "", BaselineZero:
		return BaselineZero, nil
	case BaselineFirst:
		return BaselineFirst, nil
	case BaselineMean:
		return BaselineMean, nil
	}
	return "", fmt.Errorf("unknown baseline %q", s)
}

// Difference joins two normalized series by position and returns
// female minus male at every index up to the longer of the two. A side that
// has run out carries its last observed value forward. A side with no data at
// all is replaced by a constant chosen by b from the partner side, so the
// result becomes the partner's distance from that constant.
func Difference(female, male NormalizedSeries, w Window, b Baseline) DifferenceSeries {
	n := len(female)
	if len(male) > n {
		n = len(male)
	}

	divisor := w.Divisor
	if divisor == 0 {
		divisor = 1
	}

	var prevFemale, prevMale float64
	switch {
	case len(female) == 0:
		prevFemale = baselineValue(male, b)
	case len(male) == 0:
		prevMale = baselineValue(female, b)
	}

	diff := make(DifferenceSeries, n)
	for i := 0; i < n; i++ {
		fv, mv := prevFemale, prevMale
		if i < len(female) {
			fv = female[i].Value
			prevFemale = fv
		}
		if i < len(male) {
			mv = male[i].Value
			prevMale = mv
		}

		diff[i] = DifferencePoint{
			Time:  float64(i) / divisor,
			Value: fv - mv,
		}
	}

	return diff
}

// baselineValue is the constant b derives from partner. An empty partner gives 0.
func baselineValue(partner NormalizedSeries, b Baseline) float64 {
	if len(partner) == 0 {
		return 0
	}

	switch b {
	case BaselineFirst:
		return partner[0].Value
	case BaselineMean:
		return stat.Mean(partner.Values(), nil)
	default:
		return 0
	}
}

// Values returns the point values in order.
func (s NormalizedSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}
