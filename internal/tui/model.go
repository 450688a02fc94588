package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/internal/logging"
	"github.com/ShayCichocki/jrny/pkg/models"
)

// toastTTL is how long a toast stays in the footer.
const toastTTL = 4 * time.Second

// Options configures the journey view.
type Options struct {
	// Coordinator holds the loaded journey. Required.
	Coordinator *journey.Coordinator
	// Toasts is the notifier the coordinator was built with. Optional.
	Toasts *ToastNotifier
	// Changes signals that the database changed on disk. Optional.
	Changes <-chan struct{}
	Logger  *logging.Logger
}

type toggledMsg struct {
	result journey.ToggleResult
	err    error
}

type reloadedMsg struct {
	journey *models.Journey
	err     error
}

type deletedMsg struct {
	err error
}

type changedMsg struct{}

type toastExpiredMsg struct {
	seq int
}

// Model is the bubbletea model for one journey.
type Model struct {
	ctx     context.Context
	coord   *journey.Coordinator
	toasts  <-chan ToastMsg
	changes <-chan struct{}
	logger  *logging.Logger

	keys    keyMap
	styles  styles
	spinner spinner.Model

	journey  *models.Journey
	cursor   int
	saving   bool
	gone     bool
	deleted  bool
	confirm  bool
	toast    *ToastMsg
	toastSeq int
	width    int
	height   int
}

// NewModel creates the journey view. The coordinator must already hold a
// journey.
func NewModel(ctx context.Context, opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		ctx:     ctx,
		coord:   opts.Coordinator,
		changes: opts.Changes,
		logger:  opts.Logger.With("tui"),
		keys:    defaultKeyMap(),
		styles:  defaultStyles(),
		spinner: sp,
		width:   80,
	}
	if opts.Toasts != nil {
		m.toasts = opts.Toasts.Toasts()
	}
	m.journey = m.coord.Snapshot()
	if m.journey != nil {
		m.cursor = clampCursor(journey.NextUncompletedStep(m.journey.Plan), len(m.journey.Plan))
	}
	return m
}

// Init starts the spinner and the toast and change listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForToast(m.toasts), m.waitForChange())
}

// Deleted reports whether the journey was deleted from this view.
func (m *Model) Deleted() bool {
	return m.deleted
}

// Update handles input and results of background commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case toggledMsg:
		m.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, journey.ErrJourneyNotFound) {
				m.gone = true
			}
			return m, m.showToast(ToastMsg{Level: ToastError, Text: msg.err.Error()})
		}
		if msg.result.Journey != nil {
			m.journey = msg.result.Journey
		}
		m.gone = m.coord.Gone()
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, journey.ErrJourneyNotFound) {
				m.gone = true
				return m, nil
			}
			m.logger.Log("reload failed: %v", msg.err)
			return m, m.showToast(ToastMsg{Level: ToastError, Text: fmt.Sprintf("Reload failed: %v", msg.err)})
		}
		m.gone = false
		m.journey = msg.journey
		m.cursor = clampCursor(m.cursor, len(m.journey.Plan))
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			return m, m.showToast(ToastMsg{Level: ToastError, Text: fmt.Sprintf("Could not delete journey: %v", msg.err)})
		}
		m.deleted = true
		return m, tea.Quit

	case changedMsg:
		return m, tea.Batch(m.reload(), m.waitForChange())

	case ToastMsg:
		return m, tea.Batch(m.showToast(msg), waitForToast(m.toasts))

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirm = false
			return m, m.delete()
		case key.Matches(msg, m.keys.Cancel):
			m.confirm = false
		}
		return m, nil
	}

	steps := m.stepCount()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < steps-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Next):
		if m.journey != nil {
			m.cursor = clampCursor(journey.NextUncompletedStep(m.journey.Plan), steps)
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Delete):
		if m.journey != nil && !m.gone {
			m.confirm = true
		}
	}
	return m, nil
}

func (m *Model) toggle() tea.Cmd {
	if m.gone || m.saving || m.stepCount() == 0 {
		return nil
	}
	m.saving = true
	ctx, coord, index := m.ctx, m.coord, m.cursor
	return func() tea.Msg {
		res, err := coord.ToggleStep(ctx, index)
		return toggledMsg{result: res, err: err}
	}
}

func (m *Model) reload() tea.Cmd {
	ctx, coord := m.ctx, m.coord
	return func() tea.Msg {
		j, err := coord.Reload(ctx)
		return reloadedMsg{journey: j, err: err}
	}
}

func (m *Model) delete() tea.Cmd {
	ctx, coord := m.ctx, m.coord
	return func() tea.Msg {
		return deletedMsg{err: coord.Delete(ctx)}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m *Model) showToast(t ToastMsg) tea.Cmd {
	m.toastSeq++
	m.toast = &t
	seq := m.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// current prefers the coordinator's copy so an optimistic toggle shows
// before its save returns.
func (m *Model) current() *models.Journey {
	if j := m.coord.Snapshot(); j != nil {
		return j
	}
	return m.journey
}

func (m *Model) stepCount() int {
	if m.journey == nil {
		return 0
	}
	return len(m.journey.Plan)
}

func clampCursor(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// View renders the journey.
func (m *Model) View() string {
	j := m.current()
	if j == nil {
		return m.styles.hint.Render("No journey loaded.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(j.Title))
	b.WriteString("\n")
	if j.Description != "" {
		b.WriteString(m.styles.description.Render(j.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.label.Render("Status:"))
	b.WriteString(m.statusStyle(j.Status).Render(string(j.Status)))
	if m.saving || m.coord.Updating() {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.hint.Render(" saving"))
	}
	b.WriteString("\n")

	completed, total := journey.Counts(j.Plan)
	b.WriteString(m.styles.label.Render("Progress:"))
	b.WriteString(renderProgressBar(m.styles, j.Progress, 30))
	b.WriteString(m.styles.value.Render(fmt.Sprintf(" %d%%", j.Progress)))
	b.WriteString(m.styles.hint.Render(fmt.Sprintf("  (%d/%d steps)", completed, total)))
	b.WriteString("\n")

	if j.Duration != "" || j.EndDate != nil {
		b.WriteString(m.styles.label.Render("Timeline:"))
		parts := []string{}
		if j.Duration != "" {
			parts = append(parts, j.Duration)
		}
		if j.EndDate != nil {
			parts = append(parts, "ends "+j.EndDate.Format("Jan 2, 2006"))
		}
		b.WriteString(m.styles.value.Render(strings.Join(parts, ", ")))
		b.WriteString("\n")
	}

	if m.gone {
		b.WriteString("\n")
		b.WriteString(m.styles.toastError.Render("This journey no longer exists. Press q to leave."))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.section.Render("Plan"))
	b.WriteString("\n")
	b.WriteString(m.renderPlan(j.Plan))

	if len(j.DailyTasks) > 0 {
		b.WriteString(m.styles.section.Render("Daily tasks"))
		b.WriteString("\n")
		for _, t := range j.DailyTasks {
			b.WriteString("  • ")
			b.WriteString(t)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.confirm {
		b.WriteString(m.styles.confirm.Render(fmt.Sprintf("Delete %q? y/n", j.Title)))
		b.WriteString("\n")
	} else if m.toast != nil {
		b.WriteString(m.toastStyle(m.toast.Level).Render(m.toast.Text))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHints())
	return b.String()
}

func (m *Model) renderPlan(plan models.Plan) string {
	if len(plan) == 0 {
		return m.styles.hint.Render("  No steps yet. The plan is still being generated, press r to reload.") + "\n"
	}

	next := journey.NextUncompletedStep(plan)
	var b strings.Builder
	for i, step := range plan {
		pointer := "  "
		if i == m.cursor {
			pointer = m.styles.cursor.Render("> ")
		}

		var line string
		switch {
		case step.Completed:
			line = m.styles.done.Render("[x] " + step.Text)
		case i == next:
			line = m.styles.open.Render("[ ] " + step.Text)
		default:
			line = m.styles.locked.Render("[ ] " + step.Text)
		}
		b.WriteString(pointer)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderHints() string {
	var parts []string
	for _, k := range m.keys.hints() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.hint.Render(strings.Join(parts, " • "))
}

func (m *Model) statusStyle(s models.JourneyStatus) lipgloss.Style {
	switch s {
	case models.JourneyActive:
		return m.styles.statusActive
	case models.JourneyCompleted:
		return m.styles.statusCompleted
	default:
		return m.styles.statusPlanned
	}
}

func (m *Model) toastStyle(l ToastLevel) lipgloss.Style {
	switch l {
	case ToastWarn:
		return m.styles.toastWarn
	case ToastError:
		return m.styles.toastError
	default:
		return m.styles.toastInfo
	}
}

func renderProgressBar(s styles, percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.progressFull.Render(strings.Repeat("█", filled)) +
		s.progressEmpty.Render(strings.Repeat("░", width-filled))
}

// Run shows the journey view until the user quits. It returns true if the
// journey was deleted.
func Run(ctx context.Context, opts Options) (bool, error) {
	if opts.Coordinator == nil || opts.Coordinator.Snapshot() == nil {
		return false, journey.ErrNoJourney
	}
	m := NewModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return false, fmt.Errorf("run journey view: %w", err)
	}
	return m.Deleted(), nil
}
