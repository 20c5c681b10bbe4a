package config

import (
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/chatpruner/internal/core"
)

type AppConfig struct {
	RuntimePath  string `env:"PRUNER_RUNTIME_PATH" envDefault:".chatpruner"`
	MessageLimit int    `env:"PRUNER_MESSAGE_LIMIT" envDefault:"200"`

	// Acting operator
	UserID   string `env:"PRUNER_USER_ID" envDefault:"gm"`
	UserName string `env:"PRUNER_USER_NAME" envDefault:"Gamemaster"`
	UserRole string `env:"PRUNER_USER_ROLE" envDefault:"gamemaster"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolvePath(c.RuntimePath)
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "chat.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

// GetMessageLimit returns the snapshot window, never below core.MinMessageLimit.
func (c AppConfig) GetMessageLimit() int {
	return ClampLimit(c.MessageLimit)
}

func (c AppConfig) GetUser() core.User {
	return core.User{
		ID:   c.UserID,
		Name: c.UserName,
		Role: core.Role(c.UserRole),
	}
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return core.DefaultMessageLimit
	}
	if limit < core.MinMessageLimit {
		return core.MinMessageLimit
	}
	return limit
}
