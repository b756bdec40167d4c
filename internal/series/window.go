package series

import (
	"strconv"
	"strings"
)

// Mode is the granularity of the selected time range.
type Mode string

const (
	ModeDay  Mode = "day"
	ModeWeek Mode = "week"
	ModeAll  Mode = "all"
)

// Number of days covered by a full recording.
const RecordedDays = 14

const (
	labelDays    = "Time (Days)"
	labelMinutes = "Time (Minutes)"
)

// Window is the [Start, End) range of raw sample indexes selected for display,
// plus the divisor that converts a local index into the displayed time unit.
// End may run past the data; Clamp gives the usable bounds.
type Window struct {
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Divisor float64 `json:"divisor"`
	Label   string  `json:"label"`
	Mode    Mode    `json:"mode"`
}

// Clamp returns the window bounds limited to a series of length n.
func (w Window) Clamp(n int) (start, end int) {
	start, end = w.Start, w.End
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// Len is the nominal number of samples the window spans.
func (w Window) Len() int {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start
}

// ResolveWindow maps a time-range selector such as "day3", "week1" or "all"
// onto sample indexes. Anything it does not recognize selects the whole series.
func ResolveWindow(selector string, totalLength int) Window {
	switch {
	case strings.HasPrefix(selector, "week"):
		start := 0
		if selector != "week1" {
			start = 7 * MinutesPerDay
		}
		return Window{
			Start:   start,
			End:     start + 7*MinutesPerDay,
			Divisor: MinutesPerDay,
			Label:   labelDays,
			Mode:    ModeWeek,
		}

	case strings.HasPrefix(selector, "day"):
		if day, ok := dayNumber(selector); ok {
			start := (day - 1) * MinutesPerDay
			return Window{
				Start:   start,
				End:     start + MinutesPerDay,
				Divisor: 1,
				Label:   labelMinutes,
				Mode:    ModeDay,
			}
		}
	}

	return Window{
		Start:   0,
		End:     totalLength,
		Divisor: MinutesPerDay,
		Label:   labelDays,
		Mode:    ModeAll,
	}
}

// ParseSelector reports whether selector is part of the range grammar.
// ResolveWindow accepts anything; this is for callers that want to reject typos.
func ParseSelector(selector string) bool {
	switch {
	case selector == "all":
		return true
	case strings.HasPrefix(selector, "week"):
		return true
	case strings.HasPrefix(selector, "day"):
		_, ok := dayNumber(selector)
		return ok
	}
	return false
}

// ModeForSelector returns the window mode a selector resolves to.
func ModeForSelector(selector string) Mode {
	return ResolveWindow(selector, 0).Mode
}

func dayNumber(selector string) (int, bool) {
	day, err := strconv.Atoi(strings.TrimPrefix(selector, "day"))
	if err != nil || day < 1 || day > RecordedDays {
		return 0, false
	}
	return day, true
}
