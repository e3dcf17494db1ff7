package training

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in     Quantity
		want   float64
		wantOK bool
	}{
		{"100", 100, true},
		{" 82.5 ", 82.5, true},
		{"82,5", 82.5, true},
		{"1,234", 1.234, true},
		{"1,2,3", 1, true},
		{"80kg", 80, true},
		{"-2.5", -2.5, true},
		{".5", 0.5, true},
		{"1e2", 100, true},
		{"1,000.5", 1, true},
		{"", 0, false},
		{"kg", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"1e400", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, ok := ParseWeight(tt.in)
			require.Equal(t, tt.wantOK, ok)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseReps(t *testing.T) {
	n, ok := ParseReps(" 8 ")
	require.True(t, ok)
	require.Equal(t, 8, n)

	_, ok = ParseReps("8-10")
	require.False(t, ok)
}
