package series

// NightIntervals returns the lights-off spans, in minutes, for a window mode.
// Lights go off at minute 0 of every day shown and stay off for twelve hours.
// The result depends on nothing but the mode.
func NightIntervals(mode Mode) []NightInterval {
	days := RecordedDays
	switch mode {
	case ModeDay:
		days = 1
	case ModeWeek:
		days = 7
	}

	intervals := make([]NightInterval, days)
	for i := range intervals {
		start := float64(i * MinutesPerDay)
		intervals[i] = NightInterval{Start: start, End: start + HalfDayMinutes}
	}
	return intervals
}

// ScaleIntervals converts minute-based intervals into a window's time unit.
func ScaleIntervals(intervals []NightInterval, divisor float64) []NightInterval {
	if divisor == 0 {
		divisor = 1
	}
	scaled := make([]NightInterval, len(intervals))
	for i, iv := range intervals {
		scaled[i] = NightInterval{Start: iv.Start / divisor, End: iv.End / divisor}
	}
	return scaled
}

// ParseMode converts a mode token.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeDay, ModeWeek, ModeAll:
		return Mode(s), true
	}
	return "", false
}
