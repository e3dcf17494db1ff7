package markdown

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maragym/gymlog/internal/routine"
)

// stripANSI removes ANSI escape codes from a string for easier testing.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNew(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())

	_, err = New(80, "light")
	require.NoError(t, err)
}

func TestRenderer_Render_List(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)

	result, err := r.Render("- Movilidad escapular\n- 5 min remo en máquina")
	require.NoError(t, err)

	stripped := stripANSI(result)
	require.Contains(t, stripped, "Movilidad escapular")
	require.Contains(t, stripped, "5 min remo en máquina")
}

func TestRenderer_RenderDay(t *testing.T) {
	r, err := New(100, "dark")
	require.NoError(t, err)

	day, ok := routine.DayByKey("legs")
	require.True(t, ok)

	result, err := r.RenderDay(day)
	require.NoError(t, err)

	stripped := stripANSI(result)
	require.Contains(t, stripped, "LEGS (pierna)")
	require.Contains(t, stripped, "Hip Thrust")
	require.Contains(t, stripped, "Calentamiento")
}
