package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mkessler/plotmark/internal/logging"
	"github.com/mkessler/plotmark/internal/places"
	"github.com/mkessler/plotmark/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API server. Reads PLACES_API_KEY and PM_DEV_MODE from the environment or a .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(port int) error {
	// Missing .env is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	logging.Setup(os.Getenv("PM_DEV_MODE") == "true")

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	resolver, err := newResolver()
	if err != nil {
		return err
	}
	if resolver == nil {
		slog.Info("PLACES_API_KEY not set, nearby lookups disabled")
	}

	return web.NewServer(database, resolver).ListenAndServe(port)
}

// newResolver builds a nearby-place resolver from the environment.
// Returns nil when no API key is configured.
func newResolver() (*places.Resolver, error) {
	apiKey := os.Getenv("PLACES_API_KEY")
	if apiKey == "" {
		return nil, nil
	}

	search, err := places.NewNearbyClient(apiKey)
	if err != nil {
		return nil, err
	}
	distance, err := places.NewRouteClient(apiKey)
	if err != nil {
		return nil, err
	}
	return places.NewResolver(search, distance), nil
}
