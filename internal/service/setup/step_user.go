package setup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/chatpruner/internal/config"
	"github.com/sandevgo/chatpruner/internal/core"
)

// InputStep collects one free-text value. An empty answer keeps the current
// value shown as placeholder.
type InputStep struct {
	title   string
	input   textinput.Model
	current func(*State) string
	apply   func(*State, string) error
	err     error
}

func newInputStep(title string, current func(*State) string, apply func(*State, string) error) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40
	return &InputStep{title: title, input: ti, current: current, apply: apply}
}

func NewUserIDStep() Step {
	return newInputStep("Your user ID in the chat log:",
		func(s *State) string { return s.Config.UserID },
		func(s *State, v string) error {
			if strings.ContainsAny(v, " \t") {
				return errors.New("user ID must not contain spaces")
			}
			s.Config.UserID = v
			return nil
		})
}

func NewUserNameStep() Step {
	return newInputStep("Display name:",
		func(s *State) string { return s.Config.UserName },
		func(s *State, v string) error {
			s.Config.UserName = v
			return nil
		})
}

func NewLimitStep() Step {
	return newInputStep(fmt.Sprintf("How many recent messages to load (at least %d):", core.MinMessageLimit),
		func(s *State) string { return strconv.Itoa(config.ClampLimit(s.Config.MessageLimit)) },
		func(s *State, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%q is not a number", v)
			}
			if n < core.MinMessageLimit {
				return fmt.Errorf("limit must be at least %d", core.MinMessageLimit)
			}
			s.Config.MessageLimit = n
			return nil
		})
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *State, width, height int) (Step, tea.Cmd) {
	s.input.Placeholder = s.current(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.input.Placeholder
		}
		if val == "" {
			s.err = errors.New("a value is required")
			return s, nil
		}
		if err := s.apply(state, val); err != nil {
			s.err = err
			return s, nil
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *State) string {
	s.input.Placeholder = s.current(state)
	view := s.title + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + hintStyle.Render("(press enter to confirm, ctrl+c to quit)") + "\n"
}
