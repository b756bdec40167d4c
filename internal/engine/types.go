package engine

import (
	"fmt"
	"time"

	"github.com/chrissnell/circadian/internal/series"
)

// Gender selects which normalized series a computation returns.
type Gender string

const (
	GenderBoth   Gender = "both"
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// ParseGender converts a gender filter token.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderBoth, GenderFemale, GenderMale:
		return Gender(s), nil
	}
	return "", fmt.Errorf("unknown gender filter %q", s)
}

func (g Gender) includesFemale() bool {
	return g == GenderBoth || g == GenderFemale
}

func (g Gender) includesMale() bool {
	return g == GenderBoth || g == GenderMale
}

// Request is one selector state coming from the UI.
type Request struct {
	Range  string       `json:"range"`
	Gender Gender       `json:"gender"`
	Phase  series.Phase `json:"phase"`
}

// DifferenceView is the female-minus-male series of one metric, built only
// when both genders are selected. Degenerate
// lists the sides that had no data at all, in which case the series measures
// the other side against a constant.
type DifferenceView struct {
	Series     series.DifferenceSeries `json:"series"`
	Baseline   series.Baseline         `json:"baseline"`
	Degenerate []string                `json:"degenerate,omitempty"`
}

// MetricView holds everything the charts need for temperature or activity.
type MetricView struct {
	Female        series.NormalizedSeries `json:"female,omitempty"`
	Male          series.NormalizedSeries `json:"male,omitempty"`
	FemaleSummary *series.Summary         `json:"female_summary,omitempty"`
	MaleSummary   *series.Summary         `json:"male_summary,omitempty"`
	Difference    *DifferenceView         `json:"difference,omitempty"`
}

// Result is the output of one computation. It is rebuilt from scratch for
// every request and never modified afterwards.
type Result struct {
	ID           string                 `json:"id"`
	Request      Request                `json:"request"`
	Window       series.Window          `json:"window"`
	Temperature  MetricView             `json:"temperature"`
	Activity     MetricView             `json:"activity"`
	Nights       []series.NightInterval `json:"nights"`
	NightsScaled []series.NightInterval `json:"nights_scaled"`
	ComputedAt   time.Time              `json:"computed_at"`
}
