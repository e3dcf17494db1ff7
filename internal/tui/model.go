// Package tui implements the interactive gymlog terminal interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maragym/gymlog/internal/app"
	"github.com/maragym/gymlog/internal/keys"
	"github.com/maragym/gymlog/internal/log"
	"github.com/maragym/gymlog/internal/pubsub"
	"github.com/maragym/gymlog/internal/routine"
	"github.com/maragym/gymlog/internal/training"
	"github.com/maragym/gymlog/internal/ui/styles"
	"github.com/maragym/gymlog/internal/ui/toaster"
)

// Mode is the screen currently shown.
type Mode int

const (
	ModeRoutine Mode = iota
	ModeLog
	ModeHistory
)

func (m Mode) String() string {
	switch m {
	case ModeLog:
		return "Registrar"
	case ModeHistory:
		return "Historial"
	default:
		return "Rutina"
	}
}

// routineItem is one selectable line of the routine screen.
type routineItem struct {
	day      string
	exercise routine.Exercise
}

// savedMsg reports a completed quick-log.
type savedMsg struct {
	exercise training.Exercise
	entry    training.TrainingEntry
}

// errMsg reports a failed command.
type errMsg struct{ err error }

// Model is the root TUI state.
type Model struct {
	app  *app.App
	keys keys.KeyMap
	help help.Model

	mode   Mode
	width  int
	height int

	items         []routineItem
	routineCursor int

	histories     []training.ExerciseHistory
	historyCursor int

	form    logForm
	toaster toaster.Model

	exerciseEvents *pubsub.ContinuousListener[[]training.Exercise]
	entryEvents    *pubsub.ContinuousListener[[]training.TrainingEntry]
}

// New builds the model. Subscriptions live as long as ctx.
func New(ctx context.Context, a *app.App) Model {
	var items []routineItem
	for _, d := range routine.Days() {
		for _, ex := range d.Training {
			items = append(items, routineItem{day: d.Title, exercise: ex})
		}
	}

	return Model{
		app:            a,
		keys:           keys.DefaultKeyMap(),
		help:           help.New(),
		items:          items,
		histories:      a.Histories(),
		toaster:        toaster.New(),
		exerciseEvents: pubsub.NewContinuousListener[[]training.Exercise](ctx, a.Exercises),
		entryEvents:    pubsub.NewContinuousListener[[]training.TrainingEntry](ctx, a.Entries),
	}
}

// Init starts listening for registry and ledger changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.exerciseEvents.Listen(), m.entryEvents.Listen())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pubsub.Event[[]training.Exercise]:
		log.Debug(log.CatUI, "exercises changed", "type", msg.Type, "seq", msg.Seq)
		m.refreshHistories()
		return m, m.exerciseEvents.Listen()

	case pubsub.Event[[]training.TrainingEntry]:
		log.Debug(log.CatUI, "entries changed", "type", msg.Type, "seq", msg.Seq)
		m.refreshHistories()
		return m, m.entryEvents.Listen()

	case savedMsg:
		m.refreshHistories()
		m.mode = ModeRoutine
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(
			fmt.Sprintf("%s: %s registrado", msg.exercise.Name, msg.entry.Weight), toaster.StyleSuccess)
		return m, cmd

	case errMsg:
		if m.mode == ModeLog {
			m.form.err = msg.err.Error()
			return m, nil
		}
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.err.Error(), toaster.StyleError)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeLog {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) refreshHistories() {
	m.histories = m.app.Histories()
	if m.historyCursor >= len(m.histories) {
		m.historyCursor = max(0, len(m.histories)-1)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.SwitchMode):
		if m.mode == ModeRoutine {
			m.mode = ModeHistory
		} else {
			m.mode = ModeRoutine
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NewLog):
		m.openForm("")
	case key.Matches(msg, m.keys.QuickLog):
		switch {
		case m.mode == ModeRoutine && len(m.items) > 0:
			m.openForm(m.items[m.routineCursor].exercise.Name)
		case m.mode == ModeHistory && len(m.histories) > 0:
			m.openForm(m.histories[m.historyCursor].Exercise.Name)
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.mode {
	case ModeRoutine:
		m.routineCursor = clamp(m.routineCursor+delta, len(m.items))
	case ModeHistory:
		m.historyCursor = clamp(m.historyCursor+delta, len(m.histories))
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m *Model) openForm(exercise string) {
	m.form = newLogForm(exercise, training.Today(m.app.Now()))
	m.mode = ModeLog
	log.Debug(log.CatUI, "opened log form", "exercise", exercise)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeRoutine
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		m.form.err = ""
		return m, m.saveCmd(m.form.exercise(), m.form.payload())
	case key.Matches(msg, m.keys.NextField):
		m.form = m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form = m.form.prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) saveCmd(name string, payload training.NewEntry) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ex, entry, err := a.QuickLog(name, payload)
		if err != nil {
			log.Debug(log.CatUI, "quick-log rejected", "error", err)
			return errMsg{err: err}
		}
		return savedMsg{exercise: ex, entry: entry}
	}
}

// View renders the current mode.
func (m Model) View() string {
	var body string
	switch m.mode {
	case ModeLog:
		body = m.form.view(m.width)
	case ModeHistory:
		body = m.historyView()
	default:
		body = m.routineView()
	}

	parts := []string{m.tabsView(), body}
	if t := m.toaster.View(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, 3)
	for _, mode := range []Mode{ModeRoutine, ModeLog, ModeHistory} {
		style := styles.TabStyle
		if mode == m.mode {
			style = styles.ActiveTabStyle
		}
		tabs = append(tabs, style.Render(mode.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) nameWidth() int {
	if m.width <= 0 {
		return 40
	}
	return max(10, m.width-30)
}

func (m Model) routineView() string {
	var sb strings.Builder
	day := ""
	for i, item := range m.items {
		if item.day != day {
			day = item.day
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(styles.TitleStyle.Render(day) + "\n")
		}
		cursor := "  "
		if i == m.routineCursor {
			cursor = styles.SelectionIndicatorStyle.Render("> ")
		}
		name := styles.TruncateString(item.exercise.Name, m.nameWidth())
		if item.exercise.Optional {
			name += " *"
		}
		fmt.Fprintf(&sb, "%s%s  %s\n", cursor, name, styles.MutedStyle.Render(item.exercise.Detail))
	}
	return sb.String()
}

func (m Model) historyView() string {
	if len(m.histories) == 0 {
		return styles.MutedStyle.Render("Sin registros todavía. Pulsa n para registrar una serie.") + "\n"
	}

	var sb strings.Builder
	for i, h := range m.histories {
		cursor := "  "
		if i == m.historyCursor {
			cursor = styles.SelectionIndicatorStyle.Render("> ")
		}
		latest := "-"
		if len(h.Entries) > 0 {
			latest = h.Entries[0].Weight.String()
		}
		fmt.Fprintf(&sb, "%s%s  %s  %s\n",
			cursor,
			styles.TruncateString(h.Exercise.Name, m.nameWidth()),
			styles.SecondaryStyle.Render(latest),
			styles.FormatTrend(h.TrendResult))
	}

	selected := m.histories[m.historyCursor]
	entries := training.HistoryEntries(selected.Entries, selected.Exercise.ID)
	if len(entries) > 0 {
		sb.WriteString("\n")
		for _, e := range entries[:min(len(entries), 8)] {
			line := fmt.Sprintf("%s  %s", e.Date, e.Weight)
			if e.Reps != "" {
				line += " x " + e.Reps.String()
			}
			sb.WriteString(styles.MutedStyle.Render(line) + "\n")
		}
	}
	return sb.String()
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
