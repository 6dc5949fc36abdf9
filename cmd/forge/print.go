package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/draft"
	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/gearstate"
)

func displayName(a *app, player int) string {
	return gearstate.PlayerDisplayName(a.forge.Snapshot(), player)
}

func describeSpread(spread []entities.ClassSpread) string {
	parts := make([]string, 0, len(spread))
	for _, cs := range spread {
		parts = append(parts, fmt.Sprintf("%s (%s) %d", cs.Class.Name, cs.Subclass.Name, cs.Levels))
	}
	return strings.Join(parts, " / ")
}

func printRun(w io.Writer, s entities.Session, run entities.RunResult) {
	for _, player := range run.Players {
		fmt.Fprintf(w, "%s\n", gearstate.PlayerDisplayName(s, player.PlayerNumber))
		for _, opt := range player.Options {
			fmt.Fprintf(w, "  %-14s %-32s %s, %s\n", opt.ID, draft.BuildArchetypeName(opt.ClassSpread),
				describeSpread(opt.ClassSpread), opt.Gender.Name)
		}
	}
}

func itemLabel(item entities.GearItem) string {
	tier := catalog.Tier(item.Rarity)
	if tier == catalog.RarityDefault {
		return item.Name
	}
	return fmt.Sprintf("%s [%s]", item.Name, tier)
}

func printSlotState(w io.Writer, a *app, state entities.SlotRollState) {
	index := a.forge.GearIndex()
	if len(state.UnlockedItemIDs) == 0 {
		fmt.Fprintln(w, "  nothing unlocked")
	}
	equipped, _ := state.EquippedItemID()
	for _, id := range state.UnlockedItemIDs {
		marker := " "
		if id == equipped {
			marker = "*"
		}
		label := id
		if item, ok := index.Item(id); ok {
			label = itemLabel(item)
		}
		fmt.Fprintf(w, "  %s %s\n", marker, label)
	}
}

func printOverlay(w io.Writer, a *app, overlay entities.LootOverlay) {
	act, _ := a.catalog.Act(overlay.ActID)
	fmt.Fprintf(w, "Loot for %s (%s)\n", overlay.TaskName, act.Name)
	s := a.forge.Snapshot()
	for _, player := range overlay.PlayerNumbers() {
		fmt.Fprintf(w, "%s\n", gearstate.PlayerDisplayName(s, player))
		for i, card := range overlay.CardsFor(player) {
			if !card.Selectable() {
				fmt.Fprintf(w, "  %d. %-12s %s\n", i+1, card.GroupName, card.SlotName)
				continue
			}
			fmt.Fprintf(w, "  %d. %-12s %-18s %s\n", i+1, card.GroupName, card.SlotName, itemLabel(*card.Item))
		}
	}
}
