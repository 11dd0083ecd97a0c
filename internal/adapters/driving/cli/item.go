package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Edit the items of a section",
	Long: `Add, update, remove, or reorder the items of a section's collection:
features, gallery images, amenities, pricing tiers, nearby places, or
draggable texts.`,
}

var itemAddCmd = &cobra.Command{
	Use:   "add [property-id] [section-id]",
	Short: "Add an item, optionally seeded with --set key=value",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemAdd,
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update [property-id] [section-id] [item-id]",
	Short: "Update an item with --set key=value",
	Args:  cobra.ExactArgs(3),
	RunE:  runItemUpdate,
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove [property-id] [section-id] [item-id]",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(3),
	RunE:  runItemRemove,
}

var itemReorderCmd = &cobra.Command{
	Use:   "reorder [property-id] [section-id] [item-id...]",
	Short: "Reorder items; unlisted items keep their order at the end",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runItemReorder,
}

// itemSets holds --set assignments.
var itemSets []string

func init() {
	itemAddCmd.Flags().StringArrayVarP(&itemSets, "set", "s", nil, "Field assignment key=value (repeatable)")
	itemUpdateCmd.Flags().StringArrayVarP(&itemSets, "set", "s", nil, "Field assignment key=value (repeatable)")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemRemoveCmd)
	itemCmd.AddCommand(itemReorderCmd)
	rootCmd.AddCommand(itemCmd)
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	seed, err := parseAssignments(itemSets)
	if err != nil {
		return err
	}

	out, err := edit(cmd.Context(), args[0], driving.AddItem{SectionID: args[1], Seed: seed})
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	if !out.Changed {
		cmd.Printf("No change: section %s has no item collection.\n", args[1])
		return nil
	}

	cmd.Printf("Item added: %s\n", out.CreatedID)
	return nil
}

func runItemUpdate(cmd *cobra.Command, args []string) error {
	if len(itemSets) == 0 {
		return fmt.Errorf("nothing to update, pass at least one --set key=value")
	}
	patch, err := parseAssignments(itemSets)
	if err != nil {
		return err
	}

	out, err := edit(cmd.Context(), args[0], driving.UpdateItem{SectionID: args[1], ItemID: args[2], Patch: patch})
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	reportOutcome(cmd.Printf, out, "updated item "+args[2])
	return nil
}

func runItemRemove(cmd *cobra.Command, args []string) error {
	out, err := edit(cmd.Context(), args[0], driving.RemoveItem{SectionID: args[1], ItemID: args[2]})
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	reportOutcome(cmd.Printf, out, "removed item "+args[2])
	return nil
}

func runItemReorder(cmd *cobra.Command, args []string) error {
	out, err := edit(cmd.Context(), args[0], driving.ReorderItems{SectionID: args[1], IDs: args[2:]})
	if err != nil {
		return fmt.Errorf("failed to reorder items: %w", err)
	}
	reportOutcome(cmd.Printf, out, "reordered items")
	return nil
}
