package training

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale orders exercise names when no locale is configured.
const DefaultLocale = "es"

// ExerciseHistory is the per-exercise row of the history view.
type ExerciseHistory struct {
	Exercise Exercise        `json:"exercise"`
	Entries  []TrainingEntry `json:"entries"`
	TrendResult
}

// BuildHistories returns one history per exercise, in the given order.
// entries must already be date-descending, as returned by EntryLedger.Entries.
func BuildHistories(exercises []Exercise, entries []TrainingEntry) []ExerciseHistory {
	out := make([]ExerciseHistory, 0, len(exercises))
	for _, ex := range exercises {
		own := filterByExercise(entries, ex.ID)
		out = append(out, ExerciseHistory{
			Exercise:    ex,
			Entries:     own,
			TrendResult: ComputeTrend(own),
		})
	}
	return out
}

// HistoryExercises returns a copy of exercises sorted by name using the
// collation rules of locale. An unparsable locale falls back to DefaultLocale.
func HistoryExercises(exercises []Exercise, locale string) []Exercise {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	c := collate.New(tag)

	sorted := slices.Clone(exercises)
	slices.SortStableFunc(sorted, func(a, b Exercise) int {
		return c.CompareString(a.Name, b.Name)
	})
	return sorted
}

// HistoryEntries returns the entries of exerciseID. An empty id selects
// nothing.
func HistoryEntries(entries []TrainingEntry, exerciseID string) []TrainingEntry {
	if exerciseID == "" {
		return []TrainingEntry{}
	}
	return filterByExercise(entries, exerciseID)
}
