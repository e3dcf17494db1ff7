package backup

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/maragym/gymlog/internal/training"
)

const (
	ExercisesSheet = "Exercises"
	EntriesSheet   = "Entries"
)

// WriteXLSX writes b as a workbook with one sheet per collection. Weights that
// parse as numbers are stored as numeric cells. This is an export-only format.
func WriteXLSX(w io.Writer, b Backup) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExercisesSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(EntriesSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	names := make(map[string]string, len(b.Exercises))
	rows := [][]any{{"ID", "Name", "Muscle group"}}
	for _, ex := range b.Exercises {
		names[ex.ID] = ex.Name
		rows = append(rows, []any{ex.ID, ex.Name, ex.MuscleGroup})
	}
	if err := writeRows(f, ExercisesSheet, rows); err != nil {
		return err
	}

	rows = [][]any{{"ID", "Exercise ID", "Exercise", "Weight", "Reps", "Date"}}
	for _, e := range b.Entries {
		var weight any = e.Weight.String()
		if v, ok := training.ParseWeight(e.Weight); ok {
			weight = v
		}
		var reps any = e.Reps.String()
		if n, ok := training.ParseReps(e.Reps); ok {
			reps = n
		}
		rows = append(rows, []any{e.ID, e.ExerciseID, names[e.ExerciseID], weight, reps, e.Date})
	}
	if err := writeRows(f, EntriesSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
