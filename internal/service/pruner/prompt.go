package pruner

import (
	"fmt"

	"github.com/sandevgo/chatpruner/internal/core"
)

// ConfirmPrompt builds the yes/no question shown before a delete. Messages
// blocked by permission are mentioned as a caveat.
func ConfirmPrompt(subject string, count, blocked int) string {
	prompt := fmt.Sprintf("Delete %d %s? This cannot be undone.", count, subject)
	if blocked > 0 {
		prompt += fmt.Sprintf(" (%d not deletable due to permissions)", blocked)
	}
	return prompt
}

func anchorSubject(dir core.Direction) string {
	return fmt.Sprintf("%s message(s) than the selected anchor", dir)
}

const selectedSubject = "selected message(s)"
