package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Confirmer asks a yes/no question with a small bubbletea dialog.
// The cursor starts on "No".
type Confirmer struct {
	in  io.Reader
	out io.Writer
}

func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	p := tea.NewProgram(
		newConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	m, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation dialog failed: %w", err)
	}
	return m.(confirmModel).answer, nil
}

// AutoConfirm answers yes to everything. Used for --yes.
type AutoConfirm struct {
	Out io.Writer
}

func (a AutoConfirm) Confirm(_ context.Context, prompt string) (bool, error) {
	if a.Out != nil {
		fmt.Fprintln(a.Out, promptStyle.Render(prompt)+" "+hintStyle.Render("(--yes)"))
	}
	return true, nil
}

type confirmModel struct {
	prompt string
	yes    bool // cursor
	answer bool
	done   bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		return m.finish(true)
	case "n", "N", "q", "esc", "ctrl+c":
		return m.finish(false)
	case "enter":
		return m.finish(m.yes)
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.yes = !m.yes
	}
	return m, nil
}

func (m confirmModel) finish(answer bool) (tea.Model, tea.Cmd) {
	m.answer = answer
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		if m.answer {
			return promptStyle.Render(m.prompt) + " yes\n"
		}
		return promptStyle.Render(m.prompt) + " no\n"
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt) + "\n\n")
	for _, c := range []struct {
		label string
		value bool
	}{{"Yes", true}, {"No", false}} {
		if m.yes == c.value {
			b.WriteString(selectedStyle.Render("❯ " + c.label))
		} else {
			b.WriteString(choiceStyle.Render("  " + c.label))
		}
	}
	b.WriteString("\n\n" + hintStyle.Render("(y/n, ←/→ to choose, enter to confirm, esc to cancel)") + "\n")
	return b.String()
}
