package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/internal/service/ui"
	"github.com/sandevgo/chatpruner/pkg/conv"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one message in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, a *app) error {
			msg, found, err := a.messages.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: %s", core.ErrMessageNotFound, args[0])
			}
			msg.CanDelete = a.oracle.CanDelete(ctx, msg, a.cfg.GetUser())

			fmt.Fprint(cmd.OutOrStdout(), formatMessage(msg))
			return nil
		})
	},
}

func formatMessage(m core.MessageRecord) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "%s %s\n", ui.FlagStyle.Render(fmt.Sprintf("%-9s", name+":")), value)
	}

	field("ID", m.ID)
	field("Time", time.UnixMilli(m.Timestamp).Local().Format(time.RFC1123))
	field("User", m.AuthorOrDefault())
	field("Speaker", m.SpeakerOrDefault())
	if m.Kind != "" {
		field("Kind", string(m.Kind))
	}
	if m.Whisper {
		field("Whisper", "yes")
	}
	if m.Roll {
		field("Roll", "yes")
	}
	field("Deletable", map[bool]string{true: "yes", false: "no"}[m.CanDelete])

	if m.Flavor != "" {
		b.WriteString("\n" + ui.DescStyle.Render(conv.Readable(m.Flavor)) + "\n")
	}
	b.WriteString("\n" + conv.Readable(m.Content) + "\n")
	return b.String()
}

func init() {
	rootCmd.AddCommand(showCmd)
}
