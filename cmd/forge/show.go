package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/draft"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/gearstate"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			printSession(cmd.OutOrStdout(), a)
			return nil
		})
	},
}

func printSession(w io.Writer, a *app) {
	s := a.forge.Snapshot()
	act, _ := a.catalog.Act(s.ActiveActID)
	fmt.Fprintf(w, "%s, %d players\n\n", act.Name, s.PlayerCount)

	for p := 1; p <= s.PlayerCount; p++ {
		fmt.Fprintf(w, "%s\n", gearstate.PlayerDisplayName(s, p))

		option, ok := s.SelectedOption(p)
		if !ok {
			if player, drafted := s.CurrentRun.Player(p); drafted {
				fmt.Fprintf(w, "  choosing from %d builds\n", len(player.Options))
			} else {
				fmt.Fprintln(w, "  no builds drafted, run new-run")
			}
			fmt.Fprintln(w)
			continue
		}

		fmt.Fprintf(w, "  %s: %s\n", draft.BuildArchetypeName(option.ClassSpread), describeSpread(option.ClassSpread))
		if slot := s.PlayerActiveSlots[p]; slot != "" {
			fmt.Fprintf(w, "  viewing %s\n", a.catalog.SlotName(slot))
		}
		printGear(w, a, s, p)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Tasks")
	for _, task := range a.catalog.TasksForAct(s.ActiveActID) {
		box := "[ ]"
		if s.CompletedTasks[task.ID] {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %-28s %s\n", box, task.ID, task.Name)
	}
}

func printGear(w io.Writer, a *app, s entities.Session, player int) {
	index := a.forge.GearIndex()
	for _, act := range a.catalog.Acts() {
		slots := s.PlayerGearStates[player][act.ID]
		if len(slots) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", act.Name)
		for _, slot := range a.catalog.Slots() {
			state, ok := slots[slot.ID]
			if !ok {
				continue
			}
			equipped, ok := state.EquippedItemID()
			if !ok {
				continue
			}
			label := equipped
			if item, found := index.Item(equipped); found {
				label = itemLabel(item)
			}
			fmt.Fprintf(w, "    %-14s %s (%d unlocked)\n", slot.Name, label, len(state.UnlockedItemIDs))
		}
	}
}
