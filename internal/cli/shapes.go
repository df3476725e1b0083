package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShapesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes <id>",
		Short: "List a property's drawn shapes",
		Long:  "List the markers and boundaries drawn on a property's map.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShapes,
	}
}

func runShapes(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", args[0])
	}

	c := newAPIClient()

	shapes, err := c.GetShapes(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(shapes)
	}

	printShapes(shapes)
	return nil
}
