// Package backup implements the gymlog backup format: a JSON document with
// every exercise and entry, plus spreadsheet export and S3 storage of it.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/maragym/gymlog/internal/log"
	"github.com/maragym/gymlog/internal/training"
)

// ErrInvalidBackup is returned when a document does not have the backup shape.
var ErrInvalidBackup = errors.New("invalid backup")

// Backup is the full exported state.
type Backup struct {
	Exercises []training.Exercise      `json:"exercises"`
	Entries   []training.TrainingEntry `json:"entries"`
}

// documentSchema only requires both collections to be arrays. Items are
// trusted the same way persisted values are.
const documentSchema = `{
	"type": "object",
	"required": ["exercises", "entries"],
	"properties": {
		"exercises": {"type": "array"},
		"entries": {"type": "array"}
	}
}`

var schema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	if err != nil {
		panic(fmt.Sprintf("compiling backup schema: %v", err))
	}
	return s
}()

// New copies exercises and entries into a Backup, never holding nil slices.
func New(exercises []training.Exercise, entries []training.TrainingEntry) Backup {
	b := Backup{
		Exercises: append([]training.Exercise{}, exercises...),
		Entries:   append([]training.TrainingEntry{}, entries...),
	}
	return b
}

// Encode writes b as indented JSON.
func Encode(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// Decode validates and parses a backup document. Any shape problem is
// reported as ErrInvalidBackup.
func Decode(data []byte) (Backup, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// gojsonschema fails here on malformed JSON
		return Backup{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		log.Warn(log.CatBackup, "rejected backup", "errors", len(errs))
		return Backup{}, fmt.Errorf("%w: %s", ErrInvalidBackup, summarize(errs))
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return b, nil
}

// summarize keeps the first three schema errors.
func summarize(errs []string) string {
	if len(errs) <= 3 {
		return strings.Join(errs, "; ")
	}
	return fmt.Sprintf("%s; ... and %d more", strings.Join(errs[:3], "; "), len(errs)-3)
}
