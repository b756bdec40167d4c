package series

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var nan = math.NaN()

// ParseCSV reads comma-separated numeric rows. Fields that do not parse as a
// finite float become NaN and stay in place so that row indexes keep lining
// up with minutes; Normalize drops them later. The only error returned is a
// read error.
func ParseCSV(r io.Reader) (RawSeries, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV data: %w", err)
	}
	return ParseCSVString(string(data)), nil
}

// ParseCSVString is ParseCSV for text already in memory.
func ParseCSVString(text string) RawSeries {
	text = strings.TrimSpace(text)
	if text == "" {
		return RawSeries{}
	}

	lines := strings.Split(text, "\n")
	raw := make(RawSeries, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		fields := strings.Split(line, ",")

		row := make(RawSample, len(fields))
		for i, field := range fields {
			row[i] = parseField(field)
		}
		raw = append(raw, row)
	}

	return raw
}

func parseField(field string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsInf(v, 0) {
		return nan
	}
	return v
}
