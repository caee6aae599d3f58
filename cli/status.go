package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cloud sync configuration",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the stored settings as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	application, closeApp, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	settings, err := application.Settings.Load(ctx)
	if err != nil {
		return err
	}

	if statusJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"settings":     settings,
			"isConfigured": settings.IsConfigured(),
		})
	}

	connection := "Not connected"
	if settings.ConnectedProvider != "" {
		connection = "Connected to " + settings.ConnectedProvider.DisplayName()
	}

	cmd.Println("Cloud Sync")
	cmd.Printf("  Connection:  %s\n", connection)
	cmd.Printf("  Enabled:     %t\n", settings.Enabled)
	cmd.Printf("  Frequency:   %s\n", settings.Frequency)
	cmd.Printf("  Folder:      %s\n", settings.Folder())
	cmd.Printf("  Last sync:   %s\n", formatMillis(settings.LastSyncDate))
	cmd.Printf("  Next sync:   %s\n", formatMillis(settings.NextSyncDate))
	return nil
}
