package cli

import (
	"fmt"
	"lightningbowl-sync/storage"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the game history workbook to a local file",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Replace the game history with the rows of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default game_data_DD.MM.YYYY.xlsx)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	application, closeApp, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	if err := application.Games.Load(ctx); err != nil {
		return err
	}

	data, err := application.Excel.Generate(ctx)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = storage.FileName(time.Now())
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	cmd.Printf("Exported %d games to %s\n", len(application.Games.All()), out)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer file.Close()

	application, closeApp, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp()

	count, err := application.Excel.Import(ctx, file)
	if err != nil {
		return err
	}

	cmd.Printf("Imported %d games from %s\n", count, args[0])
	return nil
}
