// Package routine holds the fixed push/pull/legs program shipped with gymlog.
package routine

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed routine.yaml
var routineYAML []byte

// Exercise is one prescribed movement of a routine day.
type Exercise struct {
	Name        string `yaml:"name"`
	Detail      string `yaml:"detail"`
	MuscleGroup string `yaml:"muscleGroup"`
	// Optional exercises are done only when time allows.
	Optional bool `yaml:"optional"`
}

// Day is one session of the routine.
type Day struct {
	Key      string     `yaml:"key"`
	Title    string     `yaml:"title"`
	WarmUp   []string   `yaml:"warmup"`
	Training []Exercise `yaml:"training"`
	Finish   []string   `yaml:"finish"`
}

var loadDays = sync.OnceValues(func() ([]Day, error) {
	return parse(routineYAML)
})

func parse(data []byte) ([]Day, error) {
	var days []Day
	if err := yaml.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("parsing routine: %w", err)
	}
	for i, d := range days {
		if d.Key == "" || len(d.Training) == 0 {
			return nil, fmt.Errorf("routine day %d: key and training are required", i)
		}
	}
	return days, nil
}

// Days returns the routine in program order. The embedded data is checked by
// tests, so a parse failure here is a build defect.
func Days() []Day {
	days, err := loadDays()
	if err != nil {
		panic(err)
	}
	out := make([]Day, len(days))
	copy(out, days)
	return out
}

// DayByKey returns the day with key (push, pull or legs).
func DayByKey(key string) (Day, bool) {
	for _, d := range Days() {
		if strings.EqualFold(d.Key, strings.TrimSpace(key)) {
			return d, true
		}
	}
	return Day{}, false
}

// Find looks a routine exercise up by case-insensitive name.
func Find(name string) (Exercise, bool) {
	name = strings.TrimSpace(name)
	for _, d := range Days() {
		for _, ex := range d.Training {
			if strings.EqualFold(ex.Name, name) {
				return ex, true
			}
		}
	}
	return Exercise{}, false
}

// Markdown renders a day as a markdown document.
func Markdown(d Day) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Title)

	if len(d.WarmUp) > 0 {
		sb.WriteString("## Calentamiento\n\n")
		for _, w := range d.WarmUp {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Entrenamiento\n\n")
	sb.WriteString("| Ejercicio | Series | Grupo |\n|---|---|---|\n")
	hasOptional := false
	for _, ex := range d.Training {
		name := ex.Name
		if ex.Optional {
			name += " \\*"
			hasOptional = true
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", name, ex.Detail, ex.MuscleGroup)
	}
	if hasOptional {
		sb.WriteString("\n\\* opcional\n")
	}

	if len(d.Finish) > 0 {
		sb.WriteString("\n## Final\n\n")
		for _, f := range d.Finish {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	return sb.String()
}
