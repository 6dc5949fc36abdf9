package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/gearstate"
	"github.com/KirkDiggler/honor-run-forge/internal/orchestrators/forge"
	"github.com/KirkDiggler/honor-run-forge/internal/reveal"
)

var (
	taskUncheck bool
	taskNoSpin  bool
)

var taskCmd = &cobra.Command{
	Use:   "task [task-id]",
	Short: "Complete a task and pick from the loot it deals",
	Long: `Completing a task deals one card per card group to every player with a
build. Each player then locks one card:

  <player> <card#>   lock a card
  clear <player>     release a lock
  done               commit every lock (all players must have picked)
  dismiss            close without taking anything`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.ToggleTask(cmd.Context(), &forge.ToggleTaskInput{
				TaskID:    args[0],
				Completed: !taskUncheck,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Overlay == nil {
				state := "open"
				if !taskUncheck {
					state = "done"
				}
				fmt.Fprintf(w, "%s: %s\n", out.Task.Name, state)
				return nil
			}

			if !taskNoSpin {
				if err := spinOverlay(cmd.Context(), w, a, *out.Overlay); err != nil {
					return err
				}
			}
			printOverlay(w, a, *out.Overlay)
			return promptLoot(cmd.Context(), cmd.InOrStdin(), w, a)
		})
	},
}

func init() {
	taskCmd.Flags().BoolVar(&taskUncheck, "uncheck", false, "mark the task as not done")
	taskCmd.Flags().BoolVar(&taskNoSpin, "no-spin", false, "skip the card reveal")
}

// promptLoot reads pick commands until the overlay is confirmed or dismissed.
// End of input dismisses.
func promptLoot(ctx context.Context, in io.Reader, w io.Writer, a *app) error {
	scanner := bufio.NewScanner(in)
	for {
		pending, ok := a.forge.PendingLoot()
		if !ok {
			return nil
		}
		if pending.Satisfied {
			fmt.Fprint(w, "all picked, 'done' to commit> ")
		} else {
			fmt.Fprintf(w, "waiting on %s> ", joinInts(pending.Pending))
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read picks")
			}
			fmt.Fprintln(w)
			_, err := a.forge.DismissLoot(ctx, &forge.DismissLootInput{})
			return err
		}

		done, err := handleLootLine(ctx, w, a, pending.Overlay, strings.Fields(scanner.Text()))
		if err != nil {
			if errors.IsInternal(err) {
				return err
			}
			fmt.Fprintf(w, "  %v\n", err)
			continue
		}
		if done {
			return nil
		}
	}
}

func handleLootLine(ctx context.Context, w io.Writer, a *app, overlay entities.LootOverlay, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "done":
		out, err := a.forge.ConfirmLoot(ctx, &forge.ConfirmLootInput{})
		if err != nil {
			return false, err
		}
		s := a.forge.Snapshot()
		for _, player := range overlay.PlayerNumbers() {
			if card, ok := out.Committed[player]; ok {
				fmt.Fprintf(w, "  %s takes %s\n", gearstate.PlayerDisplayName(s, player), card.Item.Name)
			}
		}
		return true, nil

	case "dismiss":
		_, err := a.forge.DismissLoot(ctx, &forge.DismissLootInput{})
		return err == nil, err

	case "clear":
		if len(fields) != 2 {
			return false, errors.InvalidArgument("usage: clear <player>")
		}
		player, err := parsePlayer(fields[1])
		if err != nil {
			return false, err
		}
		_, err = a.forge.ClearLootCard(ctx, &forge.ClearLootCardInput{PlayerNumber: player})
		return false, err
	}

	if len(fields) != 2 {
		return false, errors.InvalidArgument("usage: <player> <card#>")
	}
	player, err := parsePlayer(fields[0])
	if err != nil {
		return false, err
	}
	n, err := strconv.Atoi(fields[1])
	cards := overlay.CardsFor(player)
	if err != nil || n < 1 || n > len(cards) {
		return false, errors.InvalidArgumentf("no card %q for player %d", fields[1], player)
	}

	out, err := a.forge.SelectLootCard(ctx, &forge.SelectLootCardInput{PlayerNumber: player, CardID: cards[n-1].ID})
	if err != nil {
		return false, err
	}
	fmt.Fprintf(w, "  %s locks %s\n", displayName(a, player), out.Card.Item.Name)
	return false, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = "player " + strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// spinOverlay plays the reveal, printing each card as it settles
func spinOverlay(ctx context.Context, w io.Writer, a *app, overlay entities.LootOverlay) error {
	s := a.forge.Snapshot()
	spinner, err := reveal.NewSpinner(&reveal.Config{
		Index:  a.forge.GearIndex(),
		Roller: a.roller,
		Timing: reveal.DefaultTiming(),
		Emit: func(face reveal.Face) {
			if !face.Settled {
				return
			}
			card, _ := overlay.Card(face.CardID)
			label := card.SlotName
			if face.Item != nil {
				label = itemLabel(*face.Item)
			}
			fmt.Fprintf(w, "  %s / %s: %s\n", gearstate.PlayerDisplayName(s, card.PlayerNumber), card.GroupName, label)
		},
	})
	if err != nil {
		return err
	}
	return spinner.Spin(ctx, overlay)
}

var spinCmd = &cobra.Command{
	Use:   "spin [task-id]",
	Short: "Preview the loot a task would deal without saving anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			task, ok := a.catalog.Task(args[0])
			if !ok {
				return errors.NotFoundf("task %s not found", args[0])
			}
			overlay, err := gearstate.RollLoot(&gearstate.RollLootInput{
				Catalog: a.catalog,
				Session: a.forge.Snapshot(),
				Task:    task,
				Roller:  a.roller,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if overlay == nil {
				fmt.Fprintln(w, "no player has a build, nothing to deal")
				return nil
			}
			if err := spinOverlay(cmd.Context(), w, a, *overlay); err != nil {
				return err
			}
			printOverlay(w, a, *overlay)
			return nil
		})
	},
}

var removeUnlockedCmd = &cobra.Command{
	Use:   "remove-unlocked [player] [act-id] [slot-id] [item-id]",
	Short: "Drop an unlocked item from a player's slot",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := parsePlayer(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			out, err := a.forge.RemoveUnlocked(cmd.Context(), &forge.RemoveUnlockedInput{
				PlayerNumber: player,
				ActID:        entities.ActID(args[1]),
				SlotID:       args[2],
				ItemID:       args[3],
			})
			if err != nil {
				return err
			}
			if !out.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s had not unlocked %s there\n", displayName(a, player), args[3])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[3])
			return nil
		})
	},
}
