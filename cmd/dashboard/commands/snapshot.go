package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/terminal"
)

func snapshotCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the dashboard data once and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			// The one-shot command reports failure to the caller instead of
			// staying on a loading screen.
			snap, err := dashboard.NewLoader(client).Load(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			return terminal.Render(os.Stdout, snap, config.DisplayLocation())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the normalized snapshot as JSON")
	return cmd
}
