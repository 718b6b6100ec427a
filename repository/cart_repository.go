package repository

import (
	"context"
	"fmt"

	"zipline/database"
	"zipline/models"
)

// CartRepository implements the service.CartRepository interface
type CartRepository struct {
	q queryable
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *database.DB) *CartRepository {
	return &CartRepository{q: db.Pool}
}

// newCartRepositoryWithTx creates a new cart repository with a transaction
func newCartRepositoryWithTx(tx queryable) *CartRepository {
	return &CartRepository{q: tx}
}

// GetByUser returns a user's cart items in insertion order
func (r *CartRepository) GetByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	query := `
		SELECT c.id, c.user_id, c.game_id, c.team, c.amount, c.spread, c.created_at,
		       g.away_team || ' @ ' || g.home_team AS game_name
		FROM cart_items c
		JOIN games g ON g.id = c.game_id
		WHERE c.user_id = $1
		ORDER BY c.id ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.GameID,
			&item.Team,
			&item.Amount,
			&item.Spread,
			&item.CreatedAt,
			&item.GameName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// Upsert adds an item to the cart. A user holds at most one item per game,
// so a second add for the same game replaces the first in place.
func (r *CartRepository) Upsert(ctx context.Context, item *models.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, game_id, team, amount, spread)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, game_id)
		DO UPDATE SET team = EXCLUDED.team, amount = EXCLUDED.amount, spread = EXCLUDED.spread
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, item.UserID, item.GameID, item.Team, item.Amount, item.Spread).Scan(
		&item.ID,
		&item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// Delete removes a single item. Removing an absent item is a no-op.
func (r *CartRepository) Delete(ctx context.Context, userID, itemID int64) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	if _, err := r.q.Exec(ctx, query, itemID, userID); err != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, err)
	}

	return nil
}

// Clear removes all of a user's cart items
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart for user %d: %w", userID, err)
	}

	return nil
}
