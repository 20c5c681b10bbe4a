package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/chatpruner/internal/service/pruner"
	"github.com/sandevgo/chatpruner/internal/service/ui"
	"github.com/sandevgo/chatpruner/internal/transport/terminal"
	"github.com/spf13/cobra"
)

var (
	listOpts   selectOptions
	listAnchor string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the recent chat messages",
	Long:  `Loads the most recent messages, oldest first, and shows whether you may delete each one.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, a *app) error {
			session := a.newSession(cmd, &listOpts, false)
			if err := session.Refresh(ctx); err != nil {
				return err
			}
			session.SetAnchor(listAnchor)

			records := pruner.ApplyFilter(session.Snapshot().Records(), listOpts.filter())
			deletable, _ := pruner.PartitionByPermission(records)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, terminal.RenderSnapshot(records, terminal.Marks{Anchor: session.Anchor()}))
			fmt.Fprintln(out, ui.DescStyle.Render(
				fmt.Sprintf("%d message(s), %d deletable by %s", len(records), len(deletable), a.cfg.GetUser().Name),
			))
			return nil
		})
	},
}

func init() {
	listOpts.bind(listCmd)
	listCmd.Flags().StringVar(&listAnchor, "anchor", "", "highlight this message as the anchor")
	rootCmd.AddCommand(listCmd)
}
