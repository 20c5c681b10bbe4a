package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/chatpruner/internal/config"
	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/internal/service/permission"
	"github.com/sandevgo/chatpruner/internal/service/pruner"
	"github.com/sandevgo/chatpruner/internal/storage/sqlite"
	"github.com/sandevgo/chatpruner/internal/transport/terminal"
	"github.com/sandevgo/chatpruner/pkg/log"
	"github.com/sandevgo/chatpruner/pkg/srv"
	"github.com/spf13/cobra"
)

// app holds what a single command run needs.
type app struct {
	cfg      core.AppConfig
	messages core.MessagesRepository
	grants   core.GrantsRepository
	oracle   core.PermissionOracle
	notifier *terminal.Notifier
}

// runApp prepares logging, configuration and storage, runs fn and releases
// everything afterwards.
func runApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, flushLog := setupLogger(cmd.Context())
	defer flushLog()
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetEnvPath()); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.ParseAppConfig()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open chat store: %w", err)
	}
	services := []srv.Service{srv.NewCleanup(db.Close)}
	if err := srv.StartServices(ctx, services); err != nil {
		return err
	}
	defer func() {
		_ = srv.ShutdownServices(ctx, services)
	}()

	grants := sqlite.NewGrantsRepo(db)
	a := &app{
		cfg:      cfg,
		messages: sqlite.NewMessagesRepo(db),
		grants:   grants,
		oracle:   permission.NewOracle(grants),
		notifier: terminal.NewNotifier(cmd.OutOrStdout(), logger),
	}

	user := cfg.GetUser()
	logger.Debug().
		Str("db", cfg.GetDatabasePath()).
		Str("user", user.ID).
		Str("role", string(user.Role)).
		Msg("store ready")
	return fn(ctx, a)
}

// newSession builds a prune session for the configured operator.
func (a *app) newSession(cmd *cobra.Command, opts *selectOptions, yes bool) *pruner.Session {
	var confirmer core.Confirmer = terminal.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	if yes {
		confirmer = terminal.AutoConfirm{Out: cmd.OutOrStdout()}
	}

	limit := a.cfg.GetMessageLimit()
	if opts.limit > 0 {
		limit = config.ClampLimit(opts.limit)
	}

	var store core.MessageStore = a.messages
	if opts.sequential {
		store = pruner.SequentialStore(a.messages)
	}

	return pruner.NewSession(pruner.SessionConfig{
		Store:     store,
		Oracle:    a.oracle,
		Confirmer: confirmer,
		Notifier:  a.notifier,
		User:      a.cfg.GetUser(),
		Limit:     limit,
		Filter:    opts.filter(),
	})
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
