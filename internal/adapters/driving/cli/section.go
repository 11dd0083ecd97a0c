package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Edit the sections of a property",
	Long: `Add, remove, move, reorder, and edit the sections of a property page.

Section types:
` + sectionTypeHelp(),
}

var sectionAddCmd = &cobra.Command{
	Use:   "add [property-id] [type]",
	Short: "Add a section with placeholder content",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionAdd,
}

var sectionRemoveCmd = &cobra.Command{
	Use:   "remove [property-id] [section-id]",
	Short: "Remove a section",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionRemove,
}

var sectionMoveCmd = &cobra.Command{
	Use:   "move [property-id] [section-id] [up|down|delta]",
	Short: "Move a section up or down",
	Args:  cobra.ExactArgs(3),
	RunE:  runSectionMove,
}

var sectionSetCmd = &cobra.Command{
	Use:   "set [property-id] [section-id] [path] [value]",
	Short: "Set a section field by dotted path",
	Long: `Set a section field by dotted path, for example:

  studio section set p1 s1 title.text "Sea views"
  studio section set p1 s1 style.backgroundColor "#102a43"
  studio section set p1 s1 parallax false

Values are read as JSON when they parse, and as text otherwise.`,
	Args: cobra.ExactArgs(4),
	RunE: runSectionSet,
}

var sectionReorderCmd = &cobra.Command{
	Use:   "reorder [property-id] [section-id...]",
	Short: "Reorder sections; unlisted sections keep their order at the end",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSectionReorder,
}

// Flags for the add command.
var (
	sectionIndex int
	sectionTitle string
)

func init() {
	sectionAddCmd.Flags().IntVarP(&sectionIndex, "index", "i", -1, "Position to insert at (default: end)")
	sectionAddCmd.Flags().StringVarP(&sectionTitle, "title", "t", "", "Title of the new section")

	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionRemoveCmd)
	sectionCmd.AddCommand(sectionMoveCmd)
	sectionCmd.AddCommand(sectionSetCmd)
	sectionCmd.AddCommand(sectionReorderCmd)
	rootCmd.AddCommand(sectionCmd)
}

func sectionTypeHelp() string {
	var b strings.Builder
	for _, t := range domain.AllSectionTypes() {
		fmt.Fprintf(&b, "  %-18s %s\n", t, t.Description())
	}
	return b.String()
}

func runSectionAdd(cmd *cobra.Command, args []string) error {
	t := domain.SectionType(args[1])
	if !t.IsValid() {
		return fmt.Errorf("unknown section type %q, expected one of:\n%s", args[1], sectionTypeHelp())
	}

	out, err := edit(cmd.Context(), args[0], driving.AddSection{Type: t, Index: sectionIndex, Title: sectionTitle})
	if err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}

	cmd.Printf("Section added: %s\n", out.CreatedID)
	return nil
}

func runSectionRemove(cmd *cobra.Command, args []string) error {
	out, err := edit(cmd.Context(), args[0], driving.RemoveSection{SectionID: args[1]})
	if err != nil {
		return fmt.Errorf("failed to remove section: %w", err)
	}
	reportOutcome(cmd.Printf, out, "removed section "+args[1])
	return nil
}

func runSectionMove(cmd *cobra.Command, args []string) error {
	delta, err := parseDelta(args[2])
	if err != nil {
		return err
	}

	out, err := edit(cmd.Context(), args[0], driving.MoveSection{SectionID: args[1], Delta: delta})
	if err != nil {
		return fmt.Errorf("failed to move section: %w", err)
	}
	reportOutcome(cmd.Printf, out, "moved section "+args[1])
	return nil
}

func parseDelta(s string) (int, error) {
	switch strings.ToLower(s) {
	case "up":
		return -1, nil
	case "down":
		return 1, nil
	}
	delta, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid move %q, expected up, down or a number", s)
	}
	return delta, nil
}

func runSectionSet(cmd *cobra.Command, args []string) error {
	out, err := edit(cmd.Context(), args[0], driving.SetField{
		SectionID: args[1],
		Path:      args[2],
		Value:     parseValue(args[3]),
	})
	if err != nil {
		return fmt.Errorf("failed to set field: %w", err)
	}
	reportOutcome(cmd.Printf, out, "set "+args[2])
	return nil
}

func runSectionReorder(cmd *cobra.Command, args []string) error {
	out, err := edit(cmd.Context(), args[0], driving.ReorderSections{IDs: args[1:]})
	if err != nil {
		return fmt.Errorf("failed to reorder sections: %w", err)
	}
	reportOutcome(cmd.Printf, out, "reordered sections")
	return nil
}
