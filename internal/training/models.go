// Package training holds the gym-tracking domain: exercises, logged sets,
// the services that own them, and the derived history view-models.
package training

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar date format used by TrainingEntry.Date.
const DateLayout = "2006-01-02"

var (
	ErrNameRequired   = errors.New("exercise name is required")
	ErrNameTooShort   = errors.New("exercise name must be at least 2 characters")
	ErrWeightRequired = errors.New("weight is required")
	ErrInvalidDate    = errors.New("date must be formatted as yyyy-MM-dd")
	ErrExerciseNeeded = errors.New("exercise is required")
)

// Exercise is a named movement sets can be logged against.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
}

// Quantity is a free-form numeric field (weight, reps). It is kept as text
// and decoded from any JSON scalar.
type Quantity string

// UnmarshalJSON accepts "82.5", 82.5, true and null. Objects and arrays are
// rejected.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*q = ""
	case string:
		*q = Quantity(v)
	case json.Number:
		*q = Quantity(v.String())
	case bool:
		*q = Quantity(strconv.FormatBool(v))
	default:
		return fmt.Errorf("quantity must be a JSON scalar, got %s", data)
	}
	return nil
}

func (q Quantity) String() string { return string(q) }

// TrainingEntry is one logged set.
type TrainingEntry struct {
	ID         string   `json:"id"`
	ExerciseID string   `json:"exerciseId"`
	Weight     Quantity `json:"weight"`
	Reps       Quantity `json:"reps,omitempty"`
	Date       string   `json:"date"`
}

// NewEntry is the payload for EntryLedger.Add.
type NewEntry struct {
	ExerciseID string
	Weight     Quantity
	Reps       Quantity
	Date       string
}

// ValidateExerciseName applies the form rules for exercise names.
func ValidateExerciseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) < 2 {
		return ErrNameTooShort
	}
	return nil
}

// ValidateNewEntry applies the log form rules and normalizes the payload:
// fields are trimmed and an empty date becomes today.
func ValidateNewEntry(e NewEntry, now time.Time) (NewEntry, error) {
	e.ExerciseID = strings.TrimSpace(e.ExerciseID)
	e.Weight = Quantity(strings.TrimSpace(string(e.Weight)))
	e.Reps = Quantity(strings.TrimSpace(string(e.Reps)))
	e.Date = strings.TrimSpace(e.Date)

	if e.ExerciseID == "" {
		return e, ErrExerciseNeeded
	}
	if e.Weight == "" {
		return e, ErrWeightRequired
	}
	if e.Date == "" {
		e.Date = Today(now)
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return e, fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}
	return e, nil
}

// Today formats now as an entry date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseReps returns reps as an int when it is a plain integer.
func ParseReps(q Quantity) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(q)))
	if err != nil {
		return 0, false
	}
	return n, true
}
