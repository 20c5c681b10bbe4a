package setup

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("setup interrupted")

// Step is one screen of the wizard. Returning a nil Step moves on.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *State, width, height int) (Step, tea.Cmd)
	View(state *State) string
}

func getSteps() []Step {
	return []Step{
		NewUserIDStep(),
		NewUserNameStep(),
		NewRoleStep(),
		NewLimitStep(),
		NewSaveEnvStep(),
	}
}

type nextMsg struct{}

func next() tea.Msg { return nextMsg{} }

type model struct {
	steps       []Step
	currentStep int
	state       *State
	quitting    bool
	width       int
	height      int
}

func newModel(state *State, steps []Step) model {
	return model{steps: steps, state: state}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.done() {
		return m, tea.Quit
	}

	step, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if step == nil {
		m.currentStep++
		if m.done() {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}
	m.steps[m.currentStep] = step
	return m, cmd
}

func (m model) done() bool {
	return m.currentStep >= len(m.steps)
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done() {
		return fmt.Sprintf("Configuration written to %s\n", m.state.EnvPath)
	}
	return titleStyle.Render("Chat pruner setup") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard asks for the operator settings and writes them to state.EnvPath.
func RunWizard(state *State) error {
	p := tea.NewProgram(newModel(state, getSteps()))
	m, err := p.Run()
	if err != nil {
		return err
	}
	if final := m.(model); final.quitting || !final.done() {
		return ErrInterrupted
	}
	return nil
}
