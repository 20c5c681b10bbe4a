package setup

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/chatpruner/internal/core"
)

type roleItem struct {
	role core.Role
	desc string
}

func (i roleItem) Title() string       { return string(i.role) }
func (i roleItem) Description() string { return i.desc }
func (i roleItem) FilterValue() string { return string(i.role) }

var roleItems = []list.Item{
	roleItem{core.RoleGamemaster, "may delete every message"},
	roleItem{core.RoleAssistant, "assistant GM, may delete every message"},
	roleItem{core.RoleTrusted, "own messages and explicit grants"},
	roleItem{core.RolePlayer, "own messages and explicit grants"},
}

// RoleStep picks the operator's role.
type RoleStep struct {
	list     list.Model
	selected bool
}

func NewRoleStep() Step {
	l := list.New(roleItems, list.NewDefaultDelegate(), 40, 16)
	l.Title = "Select your role"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	return &RoleStep{list: l}
}

func (s *RoleStep) Init() tea.Cmd {
	return nil
}

func (s *RoleStep) Update(msg tea.Msg, state *State, width, height int) (Step, tea.Cmd) {
	if !s.selected {
		s.selected = true
		for i, it := range roleItems {
			if string(it.(roleItem).role) == state.Config.UserRole {
				s.list.Select(i)
			}
		}
	}
	if width > 0 && height > 4 {
		s.list.SetSize(width, height-4)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if it, ok := s.list.SelectedItem().(roleItem); ok {
			state.Config.UserRole = string(it.role)
			return nil, nil
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *RoleStep) View(state *State) string {
	return s.list.View()
}
