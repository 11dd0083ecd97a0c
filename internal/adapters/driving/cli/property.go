package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

var propertyCmd = &cobra.Command{
	Use:     "property",
	Aliases: []string{"properties"},
	Short:   "Manage property listings",
	Long:    `Create, list, inspect, or delete property listing pages.`,
}

var propertyCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a property with the default layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runPropertyCreate,
}

var propertyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List properties",
	Args:  cobra.NoArgs,
	RunE:  runPropertyList,
}

var propertyShowCmd = &cobra.Command{
	Use:   "show [property-id]",
	Short: "Show a property's sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runPropertyShow,
}

var propertyDeleteCmd = &cobra.Command{
	Use:   "delete [property-id]",
	Short: "Delete a property and its contact submissions",
	Args:  cobra.ExactArgs(1),
	RunE:  runPropertyDelete,
}

// Flags for the create and show commands.
var (
	createAddress string
	createPrice   float64
	createGeocode bool
	showJSON      bool
)

func init() {
	propertyCreateCmd.Flags().StringVarP(&createAddress, "address", "a", "", "Street address")
	propertyCreateCmd.Flags().Float64VarP(&createPrice, "price", "p", 0, "Asking price")
	propertyCreateCmd.Flags().BoolVar(&createGeocode, "geocode", false, "Ask the AI assistant for coordinates and nearby places")
	propertyShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full document as JSON")

	propertyCmd.AddCommand(propertyCreateCmd)
	propertyCmd.AddCommand(propertyListCmd)
	propertyCmd.AddCommand(propertyShowCmd)
	propertyCmd.AddCommand(propertyDeleteCmd)
	rootCmd.AddCommand(propertyCmd)
}

func runPropertyCreate(cmd *cobra.Command, args []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	p, warnings, err := propertyService.Create(context.Background(), driving.NewProperty{
		Name:    args[0],
		Address: createAddress,
		Price:   createPrice,
		Geocode: createGeocode,
	})
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	for _, w := range warnings {
		cmd.Printf("Warning: %s\n", w)
	}
	cmd.Printf("Property created: %s\n", p.ID)
	cmd.Printf("  Name:     %s\n", p.Name)
	cmd.Printf("  Sections: %d\n", len(p.Sections))
	return nil
}

func runPropertyList(cmd *cobra.Command, _ []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	list, err := propertyService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list properties: %w", err)
	}

	if len(list) == 0 {
		cmd.Println("No properties yet. Create one with 'studio property create'.")
		return nil
	}

	cmd.Println("Properties:")
	cmd.Println()
	for _, p := range list {
		cmd.Printf("  %s\n", p.ID)
		cmd.Printf("    Name:     %s\n", p.Name)
		if p.Address != "" {
			cmd.Printf("    Address:  %s\n", p.Address)
		}
		cmd.Printf("    Sections: %d\n", p.SectionCount)
		cmd.Printf("    Updated:  %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d properties\n", len(list))
	return nil
}

func runPropertyShow(cmd *cobra.Command, args []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	p, err := propertyService.Load(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load property: %w", err)
	}

	if showJSON {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode property: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Property: %s\n\n", p.ID)
	cmd.Printf("  Name:     %s\n", p.Name)
	cmd.Printf("  Address:  %s\n", p.Address)
	cmd.Printf("  Price:    %.0f\n", p.Price)
	if p.Coordinates.Valid() && !p.Coordinates.IsZero() {
		cmd.Printf("  Location: %.5f, %.5f\n", p.Coordinates.Lat, p.Coordinates.Lng)
	}
	cmd.Printf("  Version:  %d\n", p.Version)
	cmd.Printf("  Updated:  %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))

	cmd.Println("\n  Sections:")
	for i, s := range p.Sections {
		cmd.Printf("    %d. %-18s %s  %q\n", i+1, s.Type(), s.SectionID(), document.Headline(s))
		if ids := document.ItemIDs(s); len(ids) > 0 {
			cmd.Printf("       items: %d\n", len(ids))
		}
	}
	return nil
}

func runPropertyDelete(cmd *cobra.Command, args []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	if err := propertyService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	cmd.Printf("Property %s deleted.\n", args[0])
	return nil
}
