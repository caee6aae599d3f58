package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload the game history to the connected provider now",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	application, closeApp, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	if _, err := application.Settings.Load(ctx); err != nil {
		return err
	}
	if err := application.Games.Load(ctx); err != nil {
		return err
	}

	settings := application.Settings.Get()
	cmd.Printf("Synchronising %d games to %s...\n", len(application.Games.All()), settings.ConnectedProvider.DisplayName())

	if err := application.CloudSync.SyncNow(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	settings = application.Settings.Get()
	cmd.Printf("Sync complete. Next sync: %s\n", formatMillis(settings.NextSyncDate))
	return nil
}
