package setup

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/chatpruner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() config.AppConfig {
	return config.AppConfig{
		RuntimePath:  "/tmp/ignored",
		MessageLimit: 200,
		UserID:       "gm",
		UserName:     "Gamemaster",
		UserRole:     "gamemaster",
	}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestWizard_FullRun(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	state := NewState(envPath, defaults(), false)
	var m tea.Model = newModel(state, getSteps())

	m, _ = send(t, m,
		typed("u7"), enter, // user id
		typed("Alice"), enter, // name
		down, enter, // role: gamemaster -> assistant
	)
	m, cmd := send(t, m, typed("50"), enter) // limit
	require.NotNil(t, cmd)

	// the save step kicks itself off
	m, cmd = send(t, m, cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.(model).done())

	env, err := godotenv.Read(envPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PRUNER_USER_ID":       "u7",
		"PRUNER_USER_NAME":     "Alice",
		"PRUNER_USER_ROLE":     "assistant",
		"PRUNER_MESSAGE_LIMIT": "50",
	}, env)
}

func TestWizard_DefaultsKept(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	state := NewState(envPath, defaults(), false)
	var m tea.Model = newModel(state, getSteps())

	m, cmd := send(t, m, enter, enter, enter, enter)
	m, _ = send(t, m, cmd())

	assert.True(t, m.(model).done())
	assert.Equal(t, "gm", state.Config.UserID)
	assert.Equal(t, "gamemaster", state.Config.UserRole)
	assert.Equal(t, 200, state.Config.MessageLimit)
}

func TestWizard_CtrlC(t *testing.T) {
	state := NewState(filepath.Join(t.TempDir(), ".env"), defaults(), false)
	m, cmd := send(t, newModel(state, getSteps()), tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, m.(model).quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Setup cancelled.\n", m.View())
}

func TestLimitStep_RejectsSmallValues(t *testing.T) {
	state := NewState("", defaults(), false)
	step := NewLimitStep()

	next, _ := step.Update(typed("5"), state, 80, 24)
	next, _ = next.Update(enter, state, 80, 24)

	require.NotNil(t, next, "stays on the step")
	assert.Contains(t, next.View(state), "at least 10")
	assert.Equal(t, 200, state.Config.MessageLimit)
}

func TestUserIDStep_RejectsSpaces(t *testing.T) {
	state := NewState("", defaults(), false)
	step := NewUserIDStep()

	next, _ := step.Update(typed("two words"), state, 80, 24)
	next, _ = next.Update(enter, state, 80, 24)

	require.NotNil(t, next)
	assert.Equal(t, "gm", state.Config.UserID)
}

func TestSave_RefusesOverwrite(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PRUNER_USER_ID=old\n"), 0o600))

	err := Save(NewState(envPath, defaults(), false))
	assert.Error(t, err)

	require.NoError(t, Save(NewState(envPath, defaults(), true)))
	env, err := godotenv.Read(envPath)
	require.NoError(t, err)
	assert.Equal(t, "gm", env["PRUNER_USER_ID"])
	assert.NotContains(t, env, "PRUNER_RUNTIME_PATH")
}
