package terminal

import (
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/conv"
)

const previewWidth = 48

// Marks highlights rows of a rendered snapshot.
type Marks struct {
	Anchor   string
	Selected []string
}

func (m Marks) selected(id string) bool {
	return slices.Contains(m.Selected, id)
}

// RenderSnapshot draws the records as a table, oldest first.
func RenderSnapshot(records []core.MessageRecord, marks Marks) string {
	rows := make([][]string, 0, len(records))
	for i, m := range records {
		rows = append(rows, []string{
			marker(m.ID, marks),
			strconv.Itoa(i + 1),
			m.ID,
			formatTime(m.Timestamp),
			m.AuthorOrDefault(),
			m.SpeakerOrDefault(),
			conv.Preview(m.Text, previewWidth),
			yesNo(m.CanDelete),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("", "#", "ID", "TIME", "USER", "SPEAKER", "TEXT", "DELETE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(records) {
				return cellStyle
			}
			switch m := records[row]; {
			case m.ID == marks.Anchor:
				return anchorStyle
			case !m.CanDelete:
				return blockedStyle
			}
			return cellStyle
		})
	return t.String()
}

func marker(id string, marks Marks) string {
	switch {
	case id == marks.Anchor:
		return "⚓"
	case marks.selected(id):
		return "✓"
	}
	return ""
}

func formatTime(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
