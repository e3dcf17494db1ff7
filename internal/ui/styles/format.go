package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/maragym/gymlog/internal/training"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	// Truncate rune by rune
	result := ""
	for _, r := range s {
		test := result + string(r)
		if lipgloss.Width(test) > maxWidth-3 {
			break
		}
		result = test
	}

	return result + "..."
}

// FormatTrend renders a trend marker with its delta, e.g. "▲ +2.5".
// Solo trends render as a muted dot with no number.
func FormatTrend(r training.TrendResult) string {
	symbol := r.Trend.Symbol()
	switch r.Trend {
	case training.TrendUp:
		return lipgloss.NewStyle().Foreground(TrendUpColor).Render(symbol + " +" + FormatDelta(r.Delta))
	case training.TrendDown:
		return lipgloss.NewStyle().Foreground(TrendDownColor).Render(symbol + " -" + FormatDelta(r.Delta))
	case training.TrendEqual:
		return lipgloss.NewStyle().Foreground(TrendEqualColor).Render(symbol)
	default:
		return MutedStyle.Render(symbol)
	}
}

// FormatDelta prints a delta with at most two decimals and no trailing zeros.
func FormatDelta(delta *float64) string {
	if delta == nil {
		return ""
	}
	s := fmt.Sprintf("%.2f", *delta)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
