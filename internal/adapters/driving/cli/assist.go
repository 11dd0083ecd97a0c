package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "AI assistance for listings",
}

var assistLocationCmd = &cobra.Command{
	Use:   "location [property-id]",
	Short: "Geocode a property and suggest nearby places",
	Long: `Ask the configured AI provider for the coordinates of the property's
address and for nearby places of interest. Suggestions are printed; pass
--apply to store them in the property's location sections.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssistLocation,
}

// Flags for the location command.
var (
	assistAddress string
	assistApply   bool
)

func init() {
	assistLocationCmd.Flags().StringVar(&assistAddress, "address", "", "Address to look up instead of the property's own")
	assistLocationCmd.Flags().BoolVar(&assistApply, "apply", false, "Store the suggestions in the property")

	assistCmd.AddCommand(assistLocationCmd)
	rootCmd.AddCommand(assistCmd)
}

func runAssistLocation(cmd *cobra.Command, args []string) error {
	if locationService == nil || propertyService == nil {
		return errors.New("location service not configured")
	}

	address := assistAddress
	if address == "" {
		p, err := propertyService.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load property: %w", err)
		}
		address = p.Address
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("property has no address, pass --address")
	}

	cmd.Printf("Looking up %s...\n", address)
	plan, err := locationService.SuggestLocation(cmd.Context(), address)
	if err != nil {
		return fmt.Errorf("failed to suggest location: %w", err)
	}

	cmd.Printf("Coordinates: %.5f, %.5f\n", plan.Coordinates.Lat, plan.Coordinates.Lng)
	if len(plan.Places) > 0 {
		cmd.Println("Nearby places:")
		for _, place := range plan.Places {
			cmd.Printf("  [%s] %s  %s\n", place.Icon, place.Title, place.TravelTime)
		}
	}
	for _, w := range plan.Warnings {
		cmd.Printf("Warning: %s\n", w)
	}

	if !assistApply {
		return nil
	}
	out, err := edit(cmd.Context(), args[0], driving.ApplyLocation{Plan: plan})
	if err != nil {
		return fmt.Errorf("failed to apply location: %w", err)
	}
	reportOutcome(cmd.Printf, out, "applied location")
	return nil
}
