package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkessler/plotmark/internal/property"
)

func newAddCmd() *cobra.Command {
	var p property.Property

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a property",
		Long:  "Create a property listing with the given title and flag-supplied details.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Title = args[0]
			return runAdd(&p)
		},
	}

	cmd.Flags().StringVar(&p.Description, "description", "", "listing description")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "asking price")
	cmd.Flags().StringVar(&p.PropertyType, "type", "plot", "property type (plot|villa|apartment|commercial|shop)")
	cmd.Flags().StringVar(&p.Location, "location", "", "locality or city")
	cmd.Flags().StringVar(&p.Address, "address", "", "street address")
	cmd.Flags().Float64Var(&p.Area, "area", 0, "area in square feet")
	cmd.Flags().Float64Var(&p.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&p.Longitude, "lng", 0, "longitude")

	return cmd
}

func runAdd(p *property.Property) error {
	c := newAPIClient()

	saved, err := c.AddProperty(p)
	if err != nil {
		return fmt.Errorf("adding property: %w", err)
	}

	if isJSON() {
		return printJSON(saved)
	}

	fmt.Println("Property added.")
	printPropertySummary(saved)
	return nil
}
