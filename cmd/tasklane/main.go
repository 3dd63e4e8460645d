// Package main is the entry point for the tasklane CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tasklane/internal/backend/googletasks"
	"tasklane/internal/backend/sqlitestore"
	"tasklane/internal/cli"
	"tasklane/internal/commands"
	"tasklane/internal/config"
	"tasklane/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	commands.ImportSourceFactory = func(ctx context.Context, cfg *config.Config) (commands.ListSource, error) {
		c, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, openSession)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// openSession opens the SQLite store named by cfg for cfg's user.
func openSession(ctx context.Context, cfg *config.Config, log *slog.Logger) (*session.Session, error) {
	if err := cfg.EnsureStoreDir(); err != nil {
		return nil, err
	}
	store, err := sqlitestore.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", "path", cfg.StorePath)
	return session.New(store, cfg.UserID, log), nil
}
