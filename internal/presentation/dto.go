package presentation

import (
	"github.com/maragym/gymlog/internal/training"
)

// ExerciseDTO represents an exercise for presentation
type ExerciseDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	Entries     int    `json:"entries"`
}

// EntryDTO represents a logged set with its exercise name resolved
type EntryDTO struct {
	ID         string   `json:"id"`
	ExerciseID string   `json:"exercise_id"`
	Exercise   string   `json:"exercise,omitempty"` // empty for orphaned entries
	Weight     string   `json:"weight"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	Reps       string   `json:"reps,omitempty"`
	Date       string   `json:"date"`
}

// HistoryDTO represents one row of the history view
type HistoryDTO struct {
	Exercise ExerciseDTO `json:"exercise"`
	Trend    string      `json:"trend"`
	Delta    *float64    `json:"delta,omitempty"`
	Latest   *EntryDTO   `json:"latest,omitempty"`
	Entries  []EntryDTO  `json:"entries"`
}

// FromExercises converts exercises to DTOs, counting their entries.
func FromExercises(exercises []training.Exercise, entries []training.TrainingEntry) []ExerciseDTO {
	counts := make(map[string]int, len(exercises))
	for _, e := range entries {
		counts[e.ExerciseID]++
	}
	dtos := make([]ExerciseDTO, len(exercises))
	for i, ex := range exercises {
		dtos[i] = ExerciseDTO{
			ID:          ex.ID,
			Name:        ex.Name,
			MuscleGroup: ex.MuscleGroup,
			Entries:     counts[ex.ID],
		}
	}
	return dtos
}

// FromEntry converts an entry to a DTO. exerciseName may be empty.
func FromEntry(e training.TrainingEntry, exerciseName string) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID,
		ExerciseID: e.ExerciseID,
		Exercise:   exerciseName,
		Weight:     e.Weight.String(),
		Reps:       e.Reps.String(),
		Date:       e.Date,
	}
	if kg, ok := training.ParseWeight(e.Weight); ok {
		dto.WeightKg = &kg
	}
	return dto
}

// FromEntries converts entries to DTOs, resolving names from exercises.
func FromEntries(entries []training.TrainingEntry, exercises []training.Exercise) []EntryDTO {
	names := make(map[string]string, len(exercises))
	for _, ex := range exercises {
		names[ex.ID] = ex.Name
	}
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FromEntry(e, names[e.ExerciseID])
	}
	return dtos
}

// FromHistories converts history rows to DTOs
func FromHistories(histories []training.ExerciseHistory) []HistoryDTO {
	dtos := make([]HistoryDTO, len(histories))
	for i, h := range histories {
		entries := make([]EntryDTO, len(h.Entries))
		for j, e := range h.Entries {
			entries[j] = FromEntry(e, h.Exercise.Name)
		}
		dto := HistoryDTO{
			Exercise: ExerciseDTO{
				ID:          h.Exercise.ID,
				Name:        h.Exercise.Name,
				MuscleGroup: h.Exercise.MuscleGroup,
				Entries:     len(h.Entries),
			},
			Trend:   string(h.Trend),
			Delta:   h.Delta,
			Entries: entries,
		}
		if len(entries) > 0 {
			dto.Latest = &entries[0]
		}
		dtos[i] = dto
	}
	return dtos
}
