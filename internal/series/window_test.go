package series

import (
	"fmt"
	"testing"
)

const fullLength = RecordedDays * MinutesPerDay

func TestResolveWindowDays(t *testing.T) {
	for day := 1; day <= RecordedDays; day++ {
		selector := fmt.Sprintf("day%d", day)
		t.Run(selector, func(t *testing.T) {
			w := ResolveWindow(selector, fullLength)

			if w.End-w.Start != MinutesPerDay {
				t.Errorf("expected window of %d samples, got %d", MinutesPerDay, w.End-w.Start)
			}
			if w.Start != (day-1)*MinutesPerDay {
				t.Errorf("expected start %d, got %d", (day-1)*MinutesPerDay, w.Start)
			}
			if w.Divisor != 1 {
				t.Errorf("expected divisor 1, got %v", w.Divisor)
			}
			if w.Label != "Time (Minutes)" {
				t.Errorf("unexpected label %q", w.Label)
			}
			if w.Mode != ModeDay {
				t.Errorf("expected mode day, got %s", w.Mode)
			}
		})
	}
}

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		selector string
		total    int
		expected Window
	}{
		{"week1", fullLength, Window{Start: 0, End: 7 * MinutesPerDay, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeWeek}},
		{"week2", fullLength, Window{Start: 7 * MinutesPerDay, End: 14 * MinutesPerDay, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeWeek}},
		{"week9", fullLength, Window{Start: 7 * MinutesPerDay, End: 14 * MinutesPerDay, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeWeek}},
		{"all", 500, Window{Start: 0, End: 500, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeAll}},
		{"bogus", 500, Window{Start: 0, End: 500, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeAll}},
		{"day0", 500, Window{Start: 0, End: 500, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeAll}},
		{"day15", 500, Window{Start: 0, End: 500, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeAll}},
		{"dayx", 500, Window{Start: 0, End: 500, Divisor: MinutesPerDay, Label: "Time (Days)", Mode: ModeAll}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			w := ResolveWindow(tt.selector, tt.total)
			if w != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, w)
			}
			if w.Mode == ModeWeek && w.End-w.Start != 7*MinutesPerDay {
				t.Errorf("week window spans %d samples", w.End-w.Start)
			}
		})
	}
}

func TestWindowClamp(t *testing.T) {
	w := ResolveWindow("week2", 12000)

	start, end := w.Clamp(12000)
	if start != 7*MinutesPerDay || end != 12000 {
		t.Errorf("expected [%d,12000), got [%d,%d)", 7*MinutesPerDay, start, end)
	}

	start, end = w.Clamp(100)
	if start != 100 || end != 100 {
		t.Errorf("expected empty range at 100, got [%d,%d)", start, end)
	}
}

func TestParseSelector(t *testing.T) {
	valid := []string{"all", "week1", "week2", "day1", "day14"}
	invalid := []string{"", "day0", "day15", "month", "dayx"}

	for _, s := range valid {
		if !ParseSelector(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	for _, s := range invalid {
		if ParseSelector(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestModeForSelector(t *testing.T) {
	if m := ModeForSelector("day4"); m != ModeDay {
		t.Errorf("expected day, got %s", m)
	}
	if m := ModeForSelector("week2"); m != ModeWeek {
		t.Errorf("expected week, got %s", m)
	}
	if m := ModeForSelector("all"); m != ModeAll {
		t.Errorf("expected all, got %s", m)
	}
}
