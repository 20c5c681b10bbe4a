package setup

import "github.com/sandevgo/chatpruner/internal/config"

// State is what the wizard collects before it is written to .env.
type State struct {
	Config    config.AppConfig
	EnvPath   string
	Overwrite bool
}

func NewState(envPath string, defaults config.AppConfig, overwrite bool) *State {
	return &State{Config: defaults, EnvPath: envPath, Overwrite: overwrite}
}
