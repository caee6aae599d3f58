// Package games holds the local game history in memory, backed by the database.
package games

import (
	"context"
	"fmt"
	"lightningbowl-sync/models"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository is the persistence used by Store.
type Repository interface {
	GetGames(ctx context.Context) ([]models.Game, error)
	SaveGame(ctx context.Context, game models.Game) error
	ReplaceGames(ctx context.Context, games []models.Game) error
	DeleteGame(ctx context.Context, gameID string) error
	GetLeagues(ctx context.Context) ([]string, error)
	AddLeague(ctx context.Context, name string) error
}

// Store caches the history newest first. Ready is closed after the first Load.
type Store struct {
	repo   Repository
	mu     sync.RWMutex
	games  []models.Game
	ready  chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func NewStore(repo Repository, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		ready:  make(chan struct{}),
		logger: logger.With("component", "games"),
	}
}

// Load reads the history from the database. Ready is only released by a
// successful load, so nothing exports an empty history by mistake.
func (s *Store) Load(ctx context.Context) error {
	games, err := s.repo.GetGames(ctx)
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	s.mu.Lock()
	s.games = games
	s.mu.Unlock()
	s.once.Do(func() { close(s.ready) })

	s.logger.Info("game history loaded", "games", len(games))
	return nil
}

func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// All returns a copy of the history, newest first.
func (s *Store) All() []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Add saves a game, assigning an id when it has none, and registers its league.
func (s *Store) Add(ctx context.Context, game models.Game) (models.Game, error) {
	if game.GameID == "" {
		game.GameID = uuid.NewString()
	}
	if err := s.repo.SaveGame(ctx, game); err != nil {
		return game, fmt.Errorf("save game: %w", err)
	}
	if game.League != "" {
		if err := s.repo.AddLeague(ctx, game.League); err != nil {
			return game, fmt.Errorf("add league: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.games {
		if s.games[i].GameID == game.GameID {
			s.games[i] = game
			replaced = true
			break
		}
	}
	if !replaced {
		s.games = append(s.games, game)
	}
	sortNewestFirst(s.games)
	return game, nil
}

func (s *Store) Delete(ctx context.Context, gameID string) error {
	if err := s.repo.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.games {
		if s.games[i].GameID == gameID {
			s.games = append(s.games[:i], s.games[i+1:]...)
			break
		}
	}
	return nil
}

// Replace swaps the whole history, as an import does, and registers leagues.
func (s *Store) Replace(ctx context.Context, games []models.Game, leagues []string) error {
	sorted := make([]models.Game, len(games))
	copy(sorted, games)
	sortNewestFirst(sorted)

	if err := s.repo.ReplaceGames(ctx, sorted); err != nil {
		return fmt.Errorf("replace games: %w", err)
	}
	for _, league := range leagues {
		if err := s.repo.AddLeague(ctx, league); err != nil {
			return fmt.Errorf("add league: %w", err)
		}
	}

	s.mu.Lock()
	s.games = sorted
	s.mu.Unlock()

	s.logger.Info("game history replaced", "games", len(sorted), "leagues", len(leagues))
	return nil
}

func (s *Store) AddLeague(ctx context.Context, name string) error {
	if err := s.repo.AddLeague(ctx, name); err != nil {
		return fmt.Errorf("add league: %w", err)
	}
	return nil
}

func (s *Store) Leagues(ctx context.Context) ([]string, error) {
	return s.repo.GetLeagues(ctx)
}

func sortNewestFirst(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool { return games[i].Date > games[j].Date })
}
