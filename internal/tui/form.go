package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maragym/gymlog/internal/training"
	"github.com/maragym/gymlog/internal/ui/styles"
)

const (
	fieldExercise = iota
	fieldWeight
	fieldReps
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Ejercicio", "Peso", "Reps", "Fecha"}

// logForm collects one set. Validation happens on submit through the same
// rules the CLI applies.
type logForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newLogForm(exercise, today string) logForm {
	var f logForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		f.inputs[i] = in
	}
	f.inputs[fieldExercise].Placeholder = "Press de banca con barra"
	f.inputs[fieldWeight].Placeholder = "80"
	f.inputs[fieldReps].Placeholder = "8"
	f.inputs[fieldDate].Placeholder = today

	f.inputs[fieldExercise].SetValue(exercise)
	f.inputs[fieldDate].SetValue(today)

	start := fieldExercise
	if exercise != "" {
		start = fieldWeight
	}
	f.setFocus(start)
	return f
}

func (f *logForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f logForm) next() logForm {
	f.setFocus(f.focus + 1)
	return f
}

func (f logForm) prev() logForm {
	f.setFocus(f.focus - 1)
	return f
}

func (f logForm) update(msg tea.Msg) (logForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f logForm) exercise() string {
	return f.inputs[fieldExercise].Value()
}

func (f logForm) payload() training.NewEntry {
	return training.NewEntry{
		Weight: training.Quantity(f.inputs[fieldWeight].Value()),
		Reps:   training.Quantity(f.inputs[fieldReps].Value()),
		Date:   f.inputs[fieldDate].Value(),
	}
}

func (f logForm) view(width int) string {
	rows := make([]string, 0, fieldCount+2)
	for i, in := range f.inputs {
		label := styles.FormLabelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = styles.FormLabelFocusedStyle.Render(fieldLabels[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", in.View()))
	}
	if f.err != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(f.err))
	}

	box := styles.FormBoxStyle
	if width > 4 {
		box = box.Width(min(width-4, 60))
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
