package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/spf13/cobra"
)

var (
	grantAllow bool
	grantDeny  bool
)

var grantCmd = &cobra.Command{
	Use:   "grant MESSAGE_ID USER_ID",
	Short: "Allow or deny one user deleting one message",
	Long:  `Stores an explicit per-message permission. It overrides ownership but never the gamemaster role.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageID, userID := args[0], args[1]
		return runApp(cmd, func(ctx context.Context, a *app) error {
			if _, found, err := a.messages.Get(ctx, messageID); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("%w: %s", core.ErrMessageNotFound, messageID)
			}

			if err := a.grants.SetGrant(ctx, messageID, userID, grantAllow); err != nil {
				return err
			}

			verb := "may not"
			if grantAllow {
				verb = "may"
			}
			a.notifier.Notify(core.NoticeInfo, fmt.Sprintf("User %s %s delete message %s.", userID, verb, messageID))
			return nil
		})
	},
}

func init() {
	grantCmd.Flags().BoolVar(&grantAllow, "allow", false, "allow the delete")
	grantCmd.Flags().BoolVar(&grantDeny, "deny", false, "deny the delete")
	grantCmd.MarkFlagsMutuallyExclusive("allow", "deny")
	grantCmd.MarkFlagsOneRequired("allow", "deny")
	rootCmd.AddCommand(grantCmd)
}
