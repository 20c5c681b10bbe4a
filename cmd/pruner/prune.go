package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/internal/service/pruner"
	"github.com/sandevgo/chatpruner/pkg/log"
	"github.com/spf13/cobra"
)

var (
	pruneOpts   selectOptions
	pruneYes    bool
	pruneAnchor string
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete messages around an anchor or by selection",
	Example: `  pruner prune newer --anchor 8fJ2kQ
  pruner prune older --anchor 8fJ2kQ --no-rolls
  pruner prune selected 8fJ2kQ 91LmZa --yes`,
}

func newAnchorCmd(dir core.Direction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(dir),
		Short: fmt.Sprintf("Delete every deletable message %s than the anchor", dir),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, func(ctx context.Context, a *app) error {
				session := a.newSession(cmd, &pruneOpts, pruneYes)
				session.SetAnchor(pruneAnchor)
				outcome, err := session.DeleteByAnchor(ctx, dir)
				return report(ctx, outcome, err)
			})
		},
	}
	cmd.Flags().StringVar(&pruneAnchor, "anchor", "", "id of the anchor message")
	_ = cmd.MarkFlagRequired("anchor")
	return cmd
}

var pruneSelectedCmd = &cobra.Command{
	Use:   "selected ID...",
	Short: "Delete the given messages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, a *app) error {
			session := a.newSession(cmd, &pruneOpts, pruneYes)
			session.Select(args...)
			outcome, err := session.DeleteSelected(ctx)
			return report(ctx, outcome, err)
		})
	},
}

// report turns a session outcome into the command result. Everything except
// a failed delete was already explained to the operator and exits cleanly.
func report(ctx context.Context, outcome pruner.Outcome, err error) error {
	log.FromCtx(ctx).Debug().Stringer("outcome", outcome).AnErr("reason", err).Msg("prune finished")
	if outcome == pruner.OutcomeFailed {
		return fmt.Errorf("%w: %w", errReported, err)
	}
	return nil
}

func init() {
	pruneOpts.bind(pruneCmd)
	pruneCmd.PersistentFlags().BoolVarP(&pruneYes, "yes", "y", false, "do not ask for confirmation")
	pruneCmd.PersistentFlags().BoolVar(&pruneOpts.sequential, "sequential", false, "delete one message at a time, continuing past failures")

	pruneCmd.AddCommand(newAnchorCmd(core.DirectionNewer))
	pruneCmd.AddCommand(newAnchorCmd(core.DirectionOlder))
	pruneCmd.AddCommand(pruneSelectedCmd)
	rootCmd.AddCommand(pruneCmd)
}
