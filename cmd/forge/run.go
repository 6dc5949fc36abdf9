package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/orchestrators/forge"
)

var newRunPlayers int

var newRunCmd = &cobra.Command{
	Use:   "new-run",
	Short: "Draft a new run, clearing all selections, gear and tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.GenerateRun(cmd.Context(), &forge.GenerateRunInput{PlayerCount: newRunPlayers})
			if err != nil {
				return err
			}
			printRun(cmd.OutOrStdout(), a.forge.Snapshot(), out.Run)
			return nil
		})
	},
}

func init() {
	newRunCmd.Flags().IntVar(&newRunPlayers, "players", 0, "table size, 1 to 4 (default keeps the current count)")
}

var selectBuildCmd = &cobra.Command{
	Use:   "select-build [player] [option-id]",
	Short: "Lock in one of a player's drafted builds",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := parsePlayer(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.SelectBuild(cmd.Context(), &forge.SelectBuildInput{
				PlayerNumber: player,
				OptionID:     args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s locked in %s (%s), viewing %s\n",
				displayName(a, player), out.ArchetypeName, out.Option.ID, a.catalog.SlotName(out.ActiveSlotID))
			return nil
		})
	},
}

var resetSelectionCmd = &cobra.Command{
	Use:   "reset-selection [player]",
	Short: "Clear a player's build; unlocked gear is kept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := parsePlayer(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			if _, err := a.forge.ResetSelection(cmd.Context(), &forge.ResetSelectionInput{PlayerNumber: player}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is choosing again\n", displayName(a, player))
			return nil
		})
	},
}

var selectSlotCmd = &cobra.Command{
	Use:   "select-slot [player] [slot-id]",
	Short: "Focus a player on a gear slot of the active act",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := parsePlayer(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.SelectSlot(cmd.Context(), &forge.SelectSlotInput{PlayerNumber: player, SlotID: args[1]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %s\n", displayName(a, player), a.catalog.SlotName(args[1]))
			printSlotState(w, a, out.SlotState)
			return nil
		})
	},
}

var actCmd = &cobra.Command{
	Use:   "act [act-id]",
	Short: "Switch the act the table is playing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.SetActiveAct(cmd.Context(), &forge.SetActiveActInput{ActID: entities.ActID(args[0])})
			if err != nil {
				return err
			}
			if out.ActiveActID != entities.ActID(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "unknown act %q, still in %s\n", args[0], out.ActiveActID)
				return nil
			}
			act, _ := a.catalog.Act(out.ActiveActID)
			fmt.Fprintf(cmd.OutOrStdout(), "now playing %s\n", act.Name)
			return nil
		})
	},
}

var playersCmd = &cobra.Command{
	Use:   "players [count]",
	Short: "Set the table size used by the next drafted run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parsePlayer(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.SetPlayerCount(cmd.Context(), &forge.SetPlayerCountInput{PlayerCount: n})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "table size %d, takes effect on the next new-run\n", out.PlayerCount)
			return nil
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename [player] [name...]",
	Short: "Set a player's display name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := parsePlayer(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.RenamePlayer(cmd.Context(), &forge.RenamePlayerInput{
				PlayerNumber: player,
				Name:         strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "player %d is now %s\n", player, out.DisplayName)
			return nil
		})
	},
}
