package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatExercises formats a list of exercises as JSON
func (f *Formatter) FormatExercises(exercises []ExerciseDTO) error {
	return f.encode(exercises)
}

// FormatEntries formats a list of entries as JSON
func (f *Formatter) FormatEntries(entries []EntryDTO) error {
	return f.encode(entries)
}

// FormatHistories formats history rows as JSON
func (f *Formatter) FormatHistories(histories []HistoryDTO) error {
	return f.encode(histories)
}

// FormatResult formats a single command result as JSON
func (f *Formatter) FormatResult(result any) error {
	return f.encode(result)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
