package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/repositories/session"
)

var forgetCmd = &cobra.Command{
	Use:   "forget [key...]",
	Short: "Delete a saved session, or named backups",
	Long: `Deletes the session saved under --key. Extra arguments name other
records to delete instead, such as backups written by migrate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeRepo() }()

		keys := args
		if len(keys) == 0 {
			keys = []string{cfg.StorageKey}
		}

		w := cmd.OutOrStdout()
		for _, key := range keys {
			out, err := repo.Delete(cmd.Context(), session.DeleteInput{Key: key})
			if err != nil {
				return err
			}
			if out.Deleted {
				fmt.Fprintf(w, "deleted %s\n", key)
			} else {
				fmt.Fprintf(w, "nothing saved under %s\n", key)
			}
		}
		return nil
	},
}
