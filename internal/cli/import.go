package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Bulk-import properties from a spreadsheet",
		Long:  "Upload an xlsx workbook and import each valid row as a property. Invalid rows are reported and skipped.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	c := newAPIClient()

	result, err := c.Import(args[0])
	if err != nil {
		return fmt.Errorf("importing workbook: %w", err)
	}

	if isJSON() {
		return printJSON(result)
	}

	fmt.Printf("Imported %d properties.\n", result.Imported)
	if len(result.Errors) > 0 {
		fmt.Printf("Skipped %d rows:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
	return nil
}
