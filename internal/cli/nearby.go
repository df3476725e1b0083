package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newNearbyCmd() *cobra.Command {
	var radius int

	cmd := &cobra.Command{
		Use:   "nearby <id> <category>",
		Short: "Find places near a property",
		Long:  "List nearby places of a category (school, hospital, market, ...) sorted by distance.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNearby(args[0], args[1], radius)
		},
	}

	cmd.Flags().IntVar(&radius, "radius", 0, "search radius in meters (default: server default)")

	return cmd
}

func runNearby(idStr, category string, radius int) error {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", idStr)
	}

	c := newAPIClient()

	found, err := c.Nearby(id, category, radius)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(found)
	}

	printPlaces(found)
	return nil
}
