package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"studyplanner/internal/schedule"
)

// formCmd is the interactive form
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Fill in courses and hours interactively",
	Args:  cobra.NoArgs,
	RunE:  runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	svc, err := buildService(ctx)
	if err != nil {
		return fmt.Errorf("model provider unavailable: %w", err)
	}
	flow := schedule.NewFlow(svc)

	generate := func(courses, hours string) (schedule.ScheduleResponse, error) {
		callCtx, cancel := context.WithTimeout(ctx, llmTimeout())
		defer cancel()
		return flow.Run(callCtx, courses, hours)
	}

	final, err := tea.NewProgram(newFormModel(generate), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(formModel); ok && m.result != "" {
		return printSchedule(cmd.OutOrStdout(), m.result, false)
	}
	return nil
}

type formPhase int

const (
	phaseEditing formPhase = iota
	phaseGenerating
	phaseDone
)

const (
	inputCourses = iota
	inputHours
)

type generateFunc func(courses, hours string) (schedule.ScheduleResponse, error)

// scheduleResultMsg carries the outcome of one generation back to Update.
type scheduleResultMsg struct {
	resp schedule.ScheduleResponse
	err  error
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

type formModel struct {
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	phase    formPhase
	generate generateFunc

	errMsg   string
	errField string
	result   string
}

func newFormModel(generate generateFunc) formModel {
	courses := textinput.New()
	courses.Placeholder = "Intro to Python, Web Basics, Data Structures"
	courses.CharLimit = 500
	courses.Width = 60
	courses.Focus()

	hours := textinput.New()
	hours.Placeholder = "10"
	hours.CharLimit = 6
	hours.Width = 10

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusedStyle

	return formModel{
		inputs:   []textinput.Model{courses, hours},
		spinner:  sp,
		generate: generate,
	}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		switch m.phase {
		case phaseGenerating:
			return m, nil
		case phaseDone:
			return m.updateDone(msg)
		}
		return m.updateEditing(msg)

	case scheduleResultMsg:
		return m.finish(msg), nil

	case spinner.TickMsg:
		if m.phase != phaseGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.setFocus((m.focus + 1) % len(m.inputs)), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs)), nil
	case "enter":
		if m.focus == inputCourses {
			return m.setFocus(inputHours), nil
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "enter":
		return m, tea.Quit
	case "n":
		m.phase = phaseEditing
		m.result = ""
		m.errMsg, m.errField = "", ""
		return m.setFocus(inputCourses), nil
	}
	return m, nil
}

func (m formModel) setFocus(i int) formModel {
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

// submit validates locally so field errors show without a model call.
func (m formModel) submit() (tea.Model, tea.Cmd) {
	courses := m.inputs[inputCourses].Value()
	hours := m.inputs[inputHours].Value()

	if _, err := schedule.ParseRequest(courses, hours); err != nil {
		m.showError(err)
		if m.errField == schedule.FieldCourses {
			m = m.setFocus(inputCourses)
		}
		return m, nil
	}

	m.phase = phaseGenerating
	m.errMsg, m.errField = "", ""
	generate := m.generate
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := generate(courses, hours)
		return scheduleResultMsg{resp: resp, err: err}
	})
}

func (m formModel) finish(msg scheduleResultMsg) formModel {
	if msg.err != nil {
		m.phase = phaseEditing
		m.showError(msg.err)
		return m
	}
	m.phase = phaseDone
	m.result = msg.resp.ScheduleText
	return m
}

func (m *formModel) showError(err error) {
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		m.errField = ve.Field
		switch ve.Field {
		case schedule.FieldCourses:
			m.errMsg = "Enter at least one course."
		default:
			m.errMsg = fmt.Sprintf("Hours must be between %d and %d.", schedule.MinHours, schedule.MaxHours)
		}
		return
	}
	m.errField = ""
	m.errMsg = schedule.GenerationUnavailableMessage
}

func (m formModel) View() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Study Schedule Planner"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Courses (comma-separated)"))
	b.WriteString("\n")
	b.WriteString(m.inputs[inputCourses].View())
	b.WriteString("\n")
	if m.errField == schedule.FieldCourses {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Available hours per week"))
	b.WriteString("\n")
	b.WriteString(m.inputs[inputHours].View())
	b.WriteString("\n")
	if m.errField == schedule.FieldAvailableHours {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}
	if m.errField == "" && m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n")
	switch m.phase {
	case phaseGenerating:
		b.WriteString(m.spinner.View() + " Generating schedule...\n")
	case phaseDone:
		b.WriteString(focusedStyle.Render("Schedule ready.") + "\n")
		b.WriteString(helpStyle.Render("enter/q: quit and print  n: new schedule") + "\n")
	default:
		b.WriteString(helpStyle.Render("tab: switch field  enter: generate  esc: quit") + "\n")
	}
	return b.String()
}
