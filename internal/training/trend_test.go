package training

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func entriesWithWeights(weights ...string) []TrainingEntry {
	out := make([]TrainingEntry, len(weights))
	for i, w := range weights {
		out[i] = TrainingEntry{ID: string(rune('a' + i)), Weight: Quantity(w)}
	}
	return out
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name      string
		weights   []string
		wantTrend Trend
		wantDelta *float64
	}{
		{name: "no entries", weights: nil, wantTrend: TrendSolo},
		{name: "single entry", weights: []string{"100"}, wantTrend: TrendSolo},
		{name: "below threshold", weights: []string{"100", "100.05"}, wantTrend: TrendEqual, wantDelta: ptr(0)},
		{name: "identical", weights: []string{"60", "60"}, wantTrend: TrendEqual, wantDelta: ptr(0)},
		{name: "up", weights: []string{"105", "100"}, wantTrend: TrendUp, wantDelta: ptr(5)},
		{name: "down", weights: []string{"95", "100"}, wantTrend: TrendDown, wantDelta: ptr(5)},
		{name: "only first two count", weights: []string{"50", "40", "500"}, wantTrend: TrendUp, wantDelta: ptr(10)},
		{name: "units ignored", weights: []string{"82,5 kg", "80kg"}, wantTrend: TrendUp, wantDelta: ptr(2.5)},
		{name: "latest unparsable", weights: []string{"heavy", "100"}, wantTrend: TrendSolo},
		{name: "previous unparsable", weights: []string{"100", ""}, wantTrend: TrendSolo},
		{name: "infinite", weights: []string{"1e999", "100"}, wantTrend: TrendSolo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrend(entriesWithWeights(tt.weights...))
			require.Equal(t, tt.wantTrend, got.Trend)
			if tt.wantDelta == nil {
				require.Nil(t, got.Delta)
				return
			}
			require.NotNil(t, got.Delta)
			require.InDelta(t, *tt.wantDelta, *got.Delta, 1e-9)
		})
	}
}

func TestComputeTrend_ThresholdEdge(t *testing.T) {
	got := ComputeTrend(entriesWithWeights("100.1", "100"))
	require.NotEqual(t, TrendSolo, got.Trend)
	require.NotNil(t, got.Delta)
	require.GreaterOrEqual(t, *got.Delta, 0.0)
}

func TestTrendSymbol(t *testing.T) {
	require.Equal(t, "▲", TrendUp.Symbol())
	require.Equal(t, "▼", TrendDown.Symbol())
	require.Equal(t, "=", TrendEqual.Symbol())
	require.Equal(t, "·", TrendSolo.Symbol())
}

func ptr(v float64) *float64 { return &v }
