package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkessler/plotmark/internal/property"
)

func newListCmd() *cobra.Command {
	var (
		propertyType string
		location     string
		minPrice     float64
		maxPrice     float64
		featured     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Long:  "List stored properties, optionally filtered by type, location, or price range.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := property.ListOptions{
				PropertyType: propertyType,
				Location:     location,
			}
			if cmd.Flags().Changed("min-price") {
				opts.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				opts.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("featured") {
				opts.Featured = &featured
			}
			return runList(opts)
		},
	}

	cmd.Flags().StringVar(&propertyType, "type", "", "filter by property type")
	cmd.Flags().StringVar(&location, "location", "", "filter by location substring")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().BoolVar(&featured, "featured", false, "filter by featured flag")

	return cmd
}

func runList(opts property.ListOptions) error {
	repo, database, err := newPropertyRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	props, err := repo.List(opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(props)
	}

	return printPropertyTable(props)
}
