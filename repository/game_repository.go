package repository

import (
	"context"
	"fmt"

	"zipline/database"
	"zipline/models"

	"github.com/jackc/pgx/v5"
)

// GameRepository implements the service.GameRepository interface
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

// newGameRepositoryWithTx creates a new game repository with a transaction
func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `id, home_team, away_team, home_spread, away_spread, spreads_set, locked, game_time, created_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID,
		&game.HomeTeam,
		&game.AwayTeam,
		&game.HomeSpread,
		&game.AwaySpread,
		&game.SpreadsSet,
		&game.Locked,
		&game.GameTime,
		&game.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetByID retrieves a game by its ID
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// Create creates a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (home_team, away_team, game_time)
		VALUES ($1, $2, $3)
		RETURNING id, spreads_set, locked, created_at
	`

	err := r.q.QueryRow(ctx, query, game.HomeTeam, game.AwayTeam, game.GameTime).Scan(
		&game.ID,
		&game.SpreadsSet,
		&game.Locked,
		&game.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetAll returns all games ordered by game time
func (r *GameRepository) GetAll(ctx context.Context) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY game_time ASC, id ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID,
			&game.HomeTeam,
			&game.AwayTeam,
			&game.HomeSpread,
			&game.AwaySpread,
			&game.SpreadsSet,
			&game.Locked,
			&game.GameTime,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// SetSpread sets the home spread and the mirrored away spread
func (r *GameRepository) SetSpread(ctx context.Context, id int64, homeSpread float64) error {
	query := `
		UPDATE games
		SET home_spread = $1, away_spread = -$1, spreads_set = TRUE
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, homeSpread, id)
	if err != nil {
		return fmt.Errorf("failed to set spread for game %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", id)
	}

	return nil
}

// SetLocked toggles whether new wagers may reference the game
func (r *GameRepository) SetLocked(ctx context.Context, id int64, locked bool) error {
	query := `UPDATE games SET locked = $1 WHERE id = $2`

	result, err := r.q.Exec(ctx, query, locked, id)
	if err != nil {
		return fmt.Errorf("failed to set locked for game %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", id)
	}

	return nil
}
