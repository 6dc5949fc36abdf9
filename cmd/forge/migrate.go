package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/codec"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite a saved session in the current format, keeping a backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := catalog.Default()
		if err != nil {
			return err
		}
		repo, closeRepo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeRepo() }()

		return migrateSession(cmd.Context(), cmd.OutOrStdout(), &migrateInput{
			Repository: repo,
			Catalog:    c,
			Key:        cfg.StorageKey,
			BackupIDs:  idgen.NewUUID(cfg.StorageKey + ".backup"),
			DryRun:     migrateDryRun,
		})
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "print the migrated blob without writing")
}

type migrateInput struct {
	Repository session.Repository
	Catalog    *catalog.Catalog
	Key        string
	// BackupIDs names the record the original blob is copied to
	BackupIDs idgen.Generator
	DryRun    bool
}

// migrateSession upgrades the blob stored under Key to the current shape
func migrateSession(ctx context.Context, w io.Writer, input *migrateInput) error {
	stored, err := input.Repository.Get(ctx, session.GetInput{Key: input.Key})
	if err != nil {
		if errors.IsNotFound(err) {
			fmt.Fprintf(w, "nothing saved under %s\n", input.Key)
			return nil
		}
		return err
	}

	defaults := entities.NewSession(entities.DefaultPlayerCount, entities.RunResult{}, input.Catalog.DefaultActID())
	decoded := codec.Decode(&codec.DecodeInput{
		Blob:     stored.Record.Blob,
		Defaults: defaults,
		Acts:     input.Catalog,
	})
	blob, err := codec.Encode(decoded.Session)
	if err != nil {
		return err
	}

	if input.DryRun {
		fmt.Fprintf(w, "%s\n", blob)
		return nil
	}

	backupKey := input.BackupIDs.Generate()
	if _, err := input.Repository.Put(ctx, session.PutInput{Key: backupKey, Blob: stored.Record.Blob}); err != nil {
		return errors.Wrap(err, "failed to write backup")
	}
	if _, err := input.Repository.Put(ctx, session.PutInput{Key: input.Key, Blob: blob}); err != nil {
		return errors.Wrapf(err, "failed to rewrite %s, original kept under %s", input.Key, backupKey)
	}

	fmt.Fprintf(w, "migrated %s, original kept under %s\n", input.Key, backupKey)
	if decoded.Recovered {
		fmt.Fprintln(w, "some fields could not be read and were reset")
	}
	return nil
}
