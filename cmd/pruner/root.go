package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sandevgo/chatpruner/internal/config"
	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/internal/service/ui"
	"github.com/sandevgo/chatpruner/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

// errReported marks failures the operator has already been told about.
var errReported = errors.New("already reported")

var rootCmd = &cobra.Command{
	Use:           "pruner",
	Short:         core.PrunerName + " - bulk cleanup for tabletop chat logs",
	Long:          `Pruner deletes chat messages newer or older than an anchor message, or a hand-picked selection, respecting per-message delete permissions.`,
	Version:       core.PrunerVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error:"), err)
		}
		return 1
	}
	return 0
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
	ui.CustomizeHelp(rootCmd)
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
