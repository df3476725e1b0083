package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show CLI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-server <url>",
		Short: "Set the API server URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSetServer(args[0])
		},
	})

	return cmd
}

func runConfigShow() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]string{
			"server_url": getServerURL(),
			"configured": cfg.ServerURL,
		})
	}

	fmt.Printf("Server URL: %s\n", getServerURL())
	if cfg.ServerURL == "" {
		fmt.Println("(using default; set with `pm config set-server <url>`)")
	}
	return nil
}

func runConfigSetServer(url string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ServerURL = url

	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Server URL set to %s\n", url)
	return nil
}
