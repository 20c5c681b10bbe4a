package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/sandevgo/chatpruner/internal/core"
)

// Notifier prints operator notices and mirrors them into the log.
type Notifier struct {
	out    io.Writer
	logger *zerolog.Logger
}

func NewNotifier(out io.Writer, logger *zerolog.Logger) *Notifier {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Notifier{out: out, logger: logger}
}

func (n *Notifier) Notify(kind core.NoticeKind, text string) {
	n.logger.WithLevel(levelOf(kind)).Str("notice", string(kind)).Msg(text)
	fmt.Fprintln(n.out, styleOf(kind).Render(fmt.Sprintf("[%s]", kind))+" "+text)
}

func levelOf(kind core.NoticeKind) zerolog.Level {
	switch kind {
	case core.NoticeWarn:
		return zerolog.WarnLevel
	case core.NoticeError:
		return zerolog.ErrorLevel
	}
	return zerolog.DebugLevel
}

func styleOf(kind core.NoticeKind) lipgloss.Style {
	switch kind {
	case core.NoticeWarn:
		return warnStyle
	case core.NoticeError:
		return errorStyle
	}
	return infoStyle
}
