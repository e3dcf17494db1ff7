package training

import "math"

// Trend is the direction between an exercise's two most recent weights.
type Trend string

const (
	TrendUp    Trend = "up"
	TrendDown  Trend = "down"
	TrendEqual Trend = "equal"
	TrendSolo  Trend = "solo"
)

// equalThreshold is the smallest weight change reported as up or down.
const equalThreshold = 0.1

// TrendResult pairs a Trend with its magnitude. Delta is nil for TrendSolo.
type TrendResult struct {
	Trend Trend    `json:"trend"`
	Delta *float64 `json:"delta,omitempty"`
}

// Symbol is a one-rune marker for list views.
func (t Trend) Symbol() string {
	switch t {
	case TrendUp:
		return "▲"
	case TrendDown:
		return "▼"
	case TrendEqual:
		return "="
	default:
		return "·"
	}
}

// ComputeTrend compares the first two entries, which must be date-descending.
func ComputeTrend(entries []TrainingEntry) TrendResult {
	if len(entries) < 2 {
		return TrendResult{Trend: TrendSolo}
	}
	latest, ok := ParseWeight(entries[0].Weight)
	if !ok {
		return TrendResult{Trend: TrendSolo}
	}
	previous, ok := ParseWeight(entries[1].Weight)
	if !ok {
		return TrendResult{Trend: TrendSolo}
	}

	diff := latest - previous
	switch {
	case math.Abs(diff) < equalThreshold:
		zero := 0.0
		return TrendResult{Trend: TrendEqual, Delta: &zero}
	case diff > 0:
		return TrendResult{Trend: TrendUp, Delta: &diff}
	default:
		magnitude := -diff
		return TrendResult{Trend: TrendDown, Delta: &magnitude}
	}
}
