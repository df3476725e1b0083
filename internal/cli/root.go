// Package cli defines the cobra command tree for plotmark.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkessler/plotmark/internal/client"
	"github.com/mkessler/plotmark/internal/db"
	"github.com/mkessler/plotmark/internal/property"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pm",
		Short:         "Manage property listings and plot annotations",
		Long:          "A tool to manage real estate listings. Add properties, draw plot boundaries and markers, bulk-import from spreadsheets, and browse via CLI or the HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.plotmark/plotmark.db)")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newShapesCmd(),
		newNearbyCmd(),
		newImportCmd(),
		newRemoveCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newPropertyRepo opens the database and wraps it in a property repository.
// The caller owns the returned database handle.
func newPropertyRepo() (*property.Repository, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return property.NewRepository(database), database, nil
}

// newAPIClient creates an HTTP client for the plotmark API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
