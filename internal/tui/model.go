package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mini-time-tracker/internal/domain"
	"mini-time-tracker/internal/ports"
	"mini-time-tracker/internal/presenter"
)

// ─── messages ────────────────────────────────────────────────────────────────

type entriesLoadedMsg struct {
	entries []domain.TimeEntry
	err     error
}

type entryCreatedMsg struct {
	err error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldDate = iota
	fieldProject
	fieldHours
	fieldDescription
	fieldCount
)

var (
	labelStyle   = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("#a6adc8"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#b4befe")).Bold(true)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("#b4befe")).Foreground(lipgloss.Color("#1e1e2e"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#45475a")).Padding(0, 1)
	requestLimit = 30 * time.Second
)

// Model is the interactive entry form and history view.
type Model struct {
	api     ports.EntriesAPI
	session *presenter.Session
	inputs  [fieldCount]textinput.Model
	project int
	focus   int
	width   int
}

func New(api ports.EntriesAPI, today time.Time, projects []string) Model {
	s := presenter.NewSession(api, today, projects)

	m := Model{api: api, session: s}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		m.inputs[i] = ti
	}
	m.inputs[fieldDate].Placeholder = "YYYY-MM-DD"
	m.inputs[fieldDate].CharLimit = 10
	m.inputs[fieldDate].SetValue(s.Form.Date)
	m.inputs[fieldHours].Placeholder = "e.g. 1.5"
	m.inputs[fieldHours].CharLimit = 8
	m.inputs[fieldDescription].Placeholder = "What did you work on?"
	m.inputs[fieldDate].Focus()
	return m
}

// Session exposes the underlying state, mainly for tests.
func (m Model) Session() *presenter.Session { return m.session }

func (m Model) Init() tea.Cmd {
	m.session.BeginLoad()
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case entriesLoadedMsg:
		m.session.FinishLoad(msg.entries, msg.err)
		return m, nil

	case entryCreatedMsg:
		if !m.session.FinishSubmit(msg.err) {
			return m, nil
		}
		m.inputs[fieldHours].SetValue("")
		m.inputs[fieldDescription].SetValue("")
		m.session.BeginLoad()
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount), nil
		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
		case "ctrl+r":
			m.session.BeginLoad()
			return m, m.loadCmd()
		case "enter":
			return m.submit()
		}
		if m.focus == fieldProject {
			m.cycleProject(msg.String())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.session.Saving {
		return m, nil
	}
	m.syncForm()
	e, err := m.session.BeginSubmit()
	if err != nil {
		return m, nil
	}
	return m, m.createCmd(e)
}

func (m *Model) syncForm() {
	f := &m.session.Form
	f.Date = m.inputs[fieldDate].Value()
	f.Hours = m.inputs[fieldHours].Value()
	f.Description = m.inputs[fieldDescription].Value()
	if len(m.session.Projects) > 0 {
		f.Project = m.session.Projects[m.project]
	}
}

func (m *Model) cycleProject(key string) {
	n := len(m.session.Projects)
	if n == 0 {
		return
	}
	switch key {
	case "right", "l", " ":
		m.project = (m.project + 1) % n
	case "left", "h":
		m.project = (m.project + n - 1) % n
	}
	m.session.Form.Project = m.session.Projects[m.project]
}

func (m Model) setFocus(i int) Model {
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
	return m
}

func (m Model) loadCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestLimit)
		defer cancel()
		entries, err := api.ListEntries(ctx)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) createCmd(e domain.NewEntry) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestLimit)
		defer cancel()
		_, err := api.CreateEntry(ctx, e)
		return entryCreatedMsg{err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var form strings.Builder
	form.WriteString(presenter.TitleStyle.Render("Time Entry Form"))
	form.WriteString("\n\n")
	form.WriteString(m.row(fieldDate, "Date", m.inputs[fieldDate].View()))
	form.WriteString(m.row(fieldProject, "Project", m.projectView()))
	form.WriteString(m.row(fieldHours, "Hours", m.inputs[fieldHours].View()))
	form.WriteString(m.row(fieldDescription, "Description", m.inputs[fieldDescription].View()))
	form.WriteString("\n")

	if m.session.Saving {
		form.WriteString(presenter.MutedStyle.Render("Saving..."))
	} else {
		form.WriteString(buttonStyle.Render("Save"))
	}
	form.WriteString("  ")
	form.WriteString(presenter.MutedStyle.Render("Max 24 hours per day"))
	form.WriteString("\n")
	if m.session.Err != "" {
		form.WriteString("\n")
		form.WriteString(presenter.ErrorStyle.Render(m.session.Err))
		form.WriteString("\n")
	}

	history := presenter.MutedStyle.Render("Loading...")
	if !m.session.Loading {
		history = presenter.History(m.session.Entries)
	}

	help := presenter.MutedStyle.Render("tab: next field • ←/→: project • enter: save • ctrl+r: reload • esc: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(form.String()),
		panelStyle.Render(history),
		help,
	)
}

func (m Model) row(field int, label, value string) string {
	l := labelStyle.Render(label)
	if m.focus == field {
		l = focusStyle.Width(13).Render(label)
	}
	return l + value + "\n"
}

func (m Model) projectView() string {
	if len(m.session.Projects) == 0 {
		return presenter.MutedStyle.Render("(no projects configured)")
	}
	return "‹ " + m.session.Projects[m.project] + " ›"
}
