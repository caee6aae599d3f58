package database

import (
	"context"
	"encoding/json"
	"fmt"
	"lightningbowl-sync/models"
	"time"
)

// ==================== GAMES ====================

// GetGames returns every stored game, newest first.
func (r *Repository) GetGames(ctx context.Context) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM games ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var game models.Game
		if err := json.Unmarshal([]byte(raw), &game); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// SaveGame inserts or replaces a single game.
func (r *Repository) SaveGame(ctx context.Context, game models.Game) error {
	raw, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO games (id, date, league, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			league = excluded.league,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, game.GameID, game.Date, game.League, string(raw), time.Now())
	return err
}

// ReplaceGames swaps the whole history in one transaction.
func (r *Repository) ReplaceGames(ctx context.Context, games []models.Game) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM games`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO games (id, date, league, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, game := range games {
		raw, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("encode game %s: %w", game.GameID, err)
		}
		if _, err := stmt.ExecContext(ctx, game.GameID, game.Date, game.League, string(raw)); err != nil {
			return fmt.Errorf("insert game %s: %w", game.GameID, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteGame(ctx context.Context, gameID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
	return err
}

// ==================== LEAGUES ====================

func (r *Repository) GetLeagues(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM leagues ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		leagues = append(leagues, name)
	}
	return leagues, rows.Err()
}

// AddLeague is a no-op when the league already exists.
func (r *Repository) AddLeague(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO leagues (name) VALUES (?)`, name)
	return err
}
