package main

import (
	"fmt"

	"github.com/sandevgo/chatpruner/internal/config"
	"github.com/sandevgo/chatpruner/internal/service/setup"
	"github.com/sandevgo/chatpruner/pkg/log"
	"github.com/spf13/cobra"
)

var setupForce bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the acting user and message window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		envPath := config.GetEnvPath()
		if err := initEnv(ctx, envPath); err != nil {
			return err
		}
		cfg, err := config.ParseAppConfig()
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		state := setup.NewState(envPath, *cfg, setupForce)
		if err := setup.RunWizard(state); err != nil {
			return err
		}

		logger.Info().Str("path", envPath).Msg("configuration saved")
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVarP(&setupForce, "force", "f", false, "overwrite an existing configuration")
	rootCmd.AddCommand(setupCmd)
}
