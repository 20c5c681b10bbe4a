package setup

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/chatpruner/pkg/env"
)

// SaveEnvStep writes the collected configuration to the .env file.
type SaveEnvStep struct {
	err error
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return next
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *State, width, height int) (Step, tea.Cmd) {
	if _, ok := msg.(nextMsg); !ok {
		return s, nil
	}
	if err := Save(state); err != nil {
		s.err = err
		return s, nil
	}
	return nil, nil
}

func (s *SaveEnvStep) View(state *State) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Saving configuration...\n"
}

// Save writes the operator settings. The runtime path is implied by where
// the file lives and is left out.
func Save(state *State) error {
	cfg := state.Config
	cfg.RuntimePath = ""
	if err := env.WriteEnv(state.EnvPath, &cfg, state.Overwrite); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
