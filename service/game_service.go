package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"zipline/models"
)

type gameService struct {
	uowFactory UnitOfWorkFactory
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
	}
}

// ListGames returns all games ordered by game time
func (s *gameService) ListGames(ctx context.Context) ([]*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	return games, nil
}

// CreateGame adds a game to the slate. Spreads start unset ("TBD") until an
// admin assigns them.
func (s *gameService) CreateGame(ctx context.Context, homeTeam, awayTeam string, gameTime time.Time) (*models.Game, error) {
	if homeTeam == "" || awayTeam == "" || homeTeam == awayTeam {
		return nil, ErrInvalidTeam
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game := &models.Game{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		GameTime: gameTime,
	}
	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return game, nil
}

// SetSpread sets the home spread; the away spread is always its negation.
// Spreads move in half-point increments.
func (s *gameService) SetSpread(ctx context.Context, gameID int64, homeSpread float64) (*models.Game, error) {
	if math.Abs(homeSpread*2-math.Round(homeSpread*2)) > 1e-9 {
		return nil, ErrInvalidSpread
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	if err := uow.GameRepository().SetSpread(ctx, gameID, homeSpread); err != nil {
		return nil, fmt.Errorf("failed to set spread: %w", err)
	}

	awaySpread := -homeSpread
	game.HomeSpread = &homeSpread
	game.AwaySpread = &awaySpread
	game.SpreadsSet = true

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return game, nil
}

// SetLocked opens or closes a game for new wagers
func (s *gameService) SetLocked(ctx context.Context, gameID int64, locked bool) (*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	if err := uow.GameRepository().SetLocked(ctx, gameID, locked); err != nil {
		return nil, fmt.Errorf("failed to set locked: %w", err)
	}
	game.Locked = locked

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return game, nil
}
