package services

import (
	"context"
	"fmt"
	"io"
	"lightningbowl-sync/export"
	"lightningbowl-sync/models"
	"lightningbowl-sync/stats"
	"log/slog"
)

// GameImporter replaces the local history with imported games.
type GameImporter interface {
	Replace(ctx context.Context, games []models.Game, leagues []string) error
}

// ExcelService builds the spreadsheet artifact from the current game history
// and imports spreadsheets back into it.
type ExcelService struct {
	games    GameSource
	importer GameImporter
	logger   *slog.Logger
}

func NewExcelService(games GameSource, importer GameImporter, logger *slog.Logger) *ExcelService {
	return &ExcelService{
		games:    games,
		importer: importer,
		logger:   logger.With("component", "excel"),
	}
}

// Generate implements ArtifactGenerator.
func (es *ExcelService) Generate(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	games := es.games.All()
	data, err := export.Generate(games, stats.Compute(games))
	if err != nil {
		return nil, err
	}

	es.logger.Debug("workbook generated", "games", len(games), "bytes", len(data))
	return data, nil
}

// Import reads a workbook and replaces the game history with its rows.
func (es *ExcelService) Import(ctx context.Context, r io.Reader) (int, error) {
	rows, err := export.ReadRows(r)
	if err != nil {
		return 0, err
	}

	imported, err := export.TransformRows(rows)
	if err != nil {
		return 0, err
	}

	if err := es.importer.Replace(ctx, imported.Games, imported.Leagues); err != nil {
		return 0, fmt.Errorf("import games: %w", err)
	}

	es.logger.Info("workbook imported", "games", len(imported.Games), "leagues", len(imported.Leagues))
	return len(imported.Games), nil
}
