package series

import (
	"fmt"
	"math"
)

// Phase selects which part of the estrous cycle is kept when normalizing.
type Phase string

const (
	PhaseAll    Phase = "all"
	PhaseEstrus Phase = "estrus"
)

// DefaultCycleLength is a four-day estrous cycle, in minutes.
const DefaultCycleLength = 4 * MinutesPerDay

// ParsePhase converts a phase token. An empty token means PhaseAll.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case "", PhaseAll:
		return PhaseAll, nil
	case PhaseEstrus:
		return PhaseEstrus, nil
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

// IsEstrusPhase reports whether the raw sample index falls in the second half
// of its cycle. A non-positive cycle length disables the filter.
func IsEstrusPhase(index, cycleLength int) bool {
	if cycleLength <= 0 {
		return true
	}
	return index%cycleLength >= cycleLength/2
}

type normalizeOptions struct {
	phase       Phase
	cycleLength int
}

// NormalizeOption tunes Normalize.
type NormalizeOption func(*normalizeOptions)

// WithPhase keeps only the samples belonging to phase. cycleLength is in samples.
func WithPhase(phase Phase, cycleLength int) NormalizeOption {
	return func(o *normalizeOptions) {
		o.phase = phase
		o.cycleLength = cycleLength
	}
}

// Normalize slices raw to the window and turns every sample into a point with
// a window-relative time and the change from the preceding raw sample.
//
// The change always looks at the raw predecessor, including the sample just
// left of the window. If that predecessor is NaN, the nearest earlier valid
// sample is used instead, and a sample with no valid predecessor gets 0.
// Samples whose value is NaN are dropped. Normalize does not modify raw.
func Normalize(raw RawSeries, w Window, opts ...NormalizeOption) NormalizedSeries {
	o := normalizeOptions{phase: PhaseAll}
	for _, opt := range opts {
		opt(&o)
	}

	start, end := w.Clamp(raw.Len())
	divisor := w.Divisor
	if divisor == 0 {
		divisor = 1
	}

	lastValid := nan
	for j := start - 1; j >= 0; j-- {
		if v := raw.Value(j); !math.IsNaN(v) {
			lastValid = v
			break
		}
	}

	points := make(NormalizedSeries, 0, end-start)
	for idx := start; idx < end; idx++ {
		v := raw.Value(idx)
		prev := lastValid
		if !math.IsNaN(v) {
			lastValid = v
		}

		if math.IsNaN(v) {
			continue
		}
		if o.phase == PhaseEstrus && !IsEstrusPhase(idx, o.cycleLength) {
			continue
		}

		change := 0.0
		if !math.IsNaN(prev) {
			change = v - prev
		}

		points = append(points, NormalizedPoint{
			Time:   float64(idx-start) / divisor,
			Value:  v,
			Change: change,
		})
	}

	return points
}
