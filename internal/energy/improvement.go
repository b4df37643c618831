// Package energy derives the manual-vs-AI efficiency figure shown on the dashboard.
package energy

import (
	"fmt"
	"math"
)

type Classification int

const (
	NoChange Classification = iota
	Improved
	Decreased
)

func (c Classification) String() string {
	switch c {
	case Improved:
		return "improved"
	case Decreased:
		return "decreased"
	default:
		return "no_change"
	}
}

// Badge is the short label rendered next to the percentage.
func (c Classification) Badge() string {
	switch c {
	case Improved:
		return "Reduced"
	case Decreased:
		return "Increased"
	default:
		return ""
	}
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Classification) UnmarshalText(b []byte) error {
	switch string(b) {
	case "improved":
		*c = Improved
	case "decreased":
		*c = Decreased
	case "no_change":
		*c = NoChange
	default:
		return fmt.Errorf("unknown classification %q", b)
	}
	return nil
}

type ImprovementResult struct {
	Percent        int            `json:"percent"`
	Classification Classification `json:"classification"`
	// NoBaseline is set when the manual period consumed nothing, so a zero
	// percent carries no information about the AI period.
	NoBaseline bool `json:"no_baseline"`
}

// Improvement returns the relative reduction of aiKWh against manualKWh as a
// signed integer percent. Non-finite intermediate values resolve to 0 and
// values beyond the int range saturate with their sign kept.
func Improvement(manualKWh, aiKWh float64) ImprovementResult {
	raw := (manualKWh - aiKWh) / manualKWh * 100

	percent := 0
	if !math.IsNaN(raw) && !math.IsInf(raw, 0) {
		percent = toInt(math.Round(raw))
	}

	res := ImprovementResult{Percent: percent, NoBaseline: manualKWh == 0}
	switch {
	case percent > 0:
		res.Classification = Improved
	case percent < 0:
		res.Classification = Decreased
	}
	return res
}

// toInt converts a rounded value, clamping to [math.MinInt, math.MaxInt].
// float64(math.MaxInt) rounds up to 2^63 (or 2^31), one past the range.
func toInt(v float64) int {
	switch {
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	}
	return int(v)
}
