// Package tui drives a progress bar over the per-project report builds in
// multi-project mode. Report text is accumulated elsewhere and printed once
// the program exits, so the bar never interleaves with report output.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Step is one named unit of work, typically "build the report for one
// project".
type Step struct {
	Label string
	Run   func() error
}

type stepDoneMsg struct{}
type stepErrMsg struct{ err error }

// Model runs steps sequentially behind a progress bar.
type Model struct {
	steps    []Step
	current  int
	progress progress.Model
	done     bool
	err      error
}

// New creates a Model for the given steps.
func New(steps []Step) Model {
	return Model{
		steps:    steps,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.runCurrentStep()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case stepDoneMsg:
		m.current++
		if m.current >= len(m.steps) {
			m.done = true
			return m, tea.Quit
		}
		return m, tea.Batch(
			m.progress.SetPercent(float64(m.current)/float64(len(m.steps))),
			m.runCurrentStep(),
		)

	case stepErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("  Error: %v\n", m.err)
	}
	if m.done {
		return fmt.Sprintf("  Reported %d projects.\n", len(m.steps))
	}
	return fmt.Sprintf("  Reporting project %d/%d: %s\n  %s\n",
		m.current+1, len(m.steps), m.steps[m.current].Label, m.progress.View())
}

func (m Model) runCurrentStep() tea.Cmd {
	step := m.steps[m.current]
	return func() tea.Msg {
		if err := step.Run(); err != nil {
			return stepErrMsg{err: err}
		}
		return stepDoneMsg{}
	}
}

// Err returns any error that occurred during step execution.
func (m Model) Err() error {
	return m.err
}
