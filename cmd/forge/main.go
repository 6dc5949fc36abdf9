// Package main is the entry point for the forge CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/config"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

var (
	cfg *config.Config

	// Flags override the matching FORGE_* environment variables
	storeFlag      string
	redisURLFlag   string
	sqlitePathFlag string
	keyFlag        string
	seedFlag       uint64
	logLevelFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Honor Run Forge",
	Long: `Honor Run Forge drafts random multiclass builds for a table of players
and rolls gear cards as encounter tasks are completed.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeFlag, "store", "", "session store: memory, redis or sqlite")
	flags.StringVar(&redisURLFlag, "redis-url", "", "redis URL for the redis store")
	flags.StringVar(&sqlitePathFlag, "sqlite-path", "", "database file for the sqlite store")
	flags.StringVar(&keyFlag, "key", "", "name the session is saved under")
	flags.Uint64Var(&seedFlag, "seed", 0, "deterministic roller seed, 0 for crypto rolls")
	flags.StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(newRunCmd)
	rootCmd.AddCommand(selectBuildCmd)
	rootCmd.AddCommand(resetSelectionCmd)
	rootCmd.AddCommand(selectSlotCmd)
	rootCmd.AddCommand(actCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(removeUnlockedCmd)
	rootCmd.AddCommand(spinCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(forgetCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

// setup loads config, applies flag overrides and installs the logger
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		loaded.Store = storeFlag
	}
	if flags.Changed("redis-url") {
		loaded.RedisURL = redisURLFlag
	}
	if flags.Changed("sqlite-path") {
		loaded.SQLitePath = sqlitePathFlag
	}
	if flags.Changed("key") {
		loaded.StorageKey = keyFlag
	}
	if flags.Changed("seed") {
		loaded.Seed = seedFlag
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevelFlag
	}
	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
