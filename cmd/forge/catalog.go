package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/honor-run-forge/internal/catalog"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

var catalogSections = []string{"acts", "slots", "items", "tasks", "classes", "groups"}

var catalogCmd = &cobra.Command{
	Use:       "catalog [" + strings.Join(catalogSections, "|") + "]",
	Short:     "List the built-in game data",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: catalogSections,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Default()
		if err != nil {
			return err
		}
		section := "acts"
		if len(args) == 1 {
			section = args[0]
		}

		w := cmd.OutOrStdout()
		switch section {
		case "acts":
			for _, act := range c.Acts() {
				fmt.Fprintf(w, "%-6s %-30s %s\n", act.ID, act.Name, act.LevelRange)
			}
		case "slots":
			for _, slot := range c.Slots() {
				fmt.Fprintf(w, "%-12s %s\n", slot.ID, slot.Name)
			}
		case "items":
			for _, item := range c.Items() {
				acts := make([]string, len(item.Acts))
				for i, a := range item.Acts {
					acts[i] = a.String()
				}
				fmt.Fprintf(w, "%-32s %-12s %-10s %s\n", item.ID, item.SlotID, catalog.Tier(item.Rarity), strings.Join(acts, ","))
			}
		case "tasks":
			for _, task := range c.Tasks() {
				fmt.Fprintf(w, "%-6s %-28s %s\n", task.ActID, task.ID, task.Name)
			}
		case "classes":
			for _, class := range c.Classes() {
				names := make([]string, len(class.Subclasses))
				for i, sub := range class.Subclasses {
					names[i] = sub.Name
				}
				fmt.Fprintf(w, "%-10s %s\n", class.Name, strings.Join(names, ", "))
			}
		case "groups":
			for _, group := range c.CardGroups() {
				fmt.Fprintf(w, "%-12s %s\n", group.Name, strings.Join(group.SlotIDs, ", "))
			}
		default:
			return errors.InvalidArgumentf("unknown catalog section %q", section)
		}
		return nil
	},
}
