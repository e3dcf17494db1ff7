package training

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHistories(t *testing.T) {
	exercises := []Exercise{
		{ID: "bench", Name: "Press de banca con barra"},
		{ID: "squat", Name: "Sentadilla con barra"},
		{ID: "idle", Name: "Pec Deck"},
	}
	entries := []TrainingEntry{
		{ID: "3", ExerciseID: "bench", Weight: "85", Date: "2024-03-03"},
		{ID: "2", ExerciseID: "squat", Weight: "100", Date: "2024-03-02"},
		{ID: "1", ExerciseID: "bench", Weight: "80", Date: "2024-03-01"},
		{ID: "0", ExerciseID: "orphan", Weight: "10", Date: "2024-02-01"},
	}

	got := BuildHistories(exercises, entries)
	require.Len(t, got, 3)

	require.Equal(t, "bench", got[0].Exercise.ID)
	require.Equal(t, []string{"3", "1"}, entryIDs(got[0].Entries))
	require.Equal(t, TrendUp, got[0].Trend)
	require.InDelta(t, 5.0, *got[0].Delta, 1e-9)

	require.Equal(t, TrendSolo, got[1].Trend)
	require.Nil(t, got[1].Delta)

	require.Empty(t, got[2].Entries)
	require.Equal(t, TrendSolo, got[2].Trend)
}

func TestHistoryExercises_LocaleOrder(t *testing.T) {
	in := []Exercise{
		{ID: "1", Name: "Remo con barra"},
		{ID: "2", Name: "ñandú"},
		{ID: "3", Name: "Oblicuos"},
		{ID: "4", Name: "nado"},
		{ID: "5", Name: "Abductores"},
	}

	got := HistoryExercises(in, "es")

	var names []string
	for _, ex := range got {
		names = append(names, ex.Name)
	}
	require.Equal(t, []string{"Abductores", "nado", "ñandú", "Oblicuos", "Remo con barra"}, names)
	require.Equal(t, "Remo con barra", in[0].Name, "input must not be reordered")
}

func TestHistoryExercises_BadLocaleFallsBack(t *testing.T) {
	in := []Exercise{{Name: "b"}, {Name: "A"}}
	got := HistoryExercises(in, "not a locale!")
	require.Equal(t, "A", got[0].Name)
}

func TestHistoryEntries(t *testing.T) {
	entries := []TrainingEntry{
		{ID: "1", ExerciseID: "x"},
		{ID: "2", ExerciseID: "y"},
	}

	require.Empty(t, HistoryEntries(entries, ""))
	require.Equal(t, []string{"2"}, entryIDs(HistoryEntries(entries, "y")))
}
