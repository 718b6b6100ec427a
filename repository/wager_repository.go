package repository

import (
	"context"
	"fmt"

	"zipline/database"
	"zipline/models"

	"github.com/jackc/pgx/v5"
)

// WagerRepository implements the service.WagerRepository interface
type WagerRepository struct {
	q queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository with a transaction
func newWagerRepositoryWithTx(tx queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

const wagerColumns = `
	w.id, w.user_id, w.game_id, w.team, w.amount, w.spread, w.status,
	w.created_at, w.submitted_at, w.updated_at, w.approved_at, w.rejected_at, w.settled_at`

func scanWagerRow(row pgx.Row) (*models.Wager, error) {
	var wager models.Wager
	err := row.Scan(
		&wager.ID,
		&wager.UserID,
		&wager.GameID,
		&wager.Team,
		&wager.Amount,
		&wager.Spread,
		&wager.Status,
		&wager.CreatedAt,
		&wager.SubmittedAt,
		&wager.UpdatedAt,
		&wager.ApprovedAt,
		&wager.RejectedAt,
		&wager.SettledAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wager, nil
}

// Create creates a new wager
func (r *WagerRepository) Create(ctx context.Context, wager *models.Wager) error {
	query := `
		INSERT INTO wagers (user_id, game_id, team, amount, spread, status, created_at, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		wager.UserID,
		wager.GameID,
		wager.Team,
		wager.Amount,
		wager.Spread,
		wager.Status,
		wager.CreatedAt,
		wager.SubmittedAt,
	).Scan(&wager.ID)
	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

// GetByID retrieves a wager by its ID
func (r *WagerRepository) GetByID(ctx context.Context, id int64) (*models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers w WHERE w.id = $1`

	wager, err := scanWagerRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get wager %d: %w", id, err)
	}
	return wager, nil
}

func (r *WagerRepository) queryWagers(ctx context.Context, query string, args ...any) ([]*models.Wager, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wagers []*models.Wager
	for rows.Next() {
		var wager models.Wager
		err := rows.Scan(
			&wager.ID,
			&wager.UserID,
			&wager.GameID,
			&wager.Team,
			&wager.Amount,
			&wager.Spread,
			&wager.Status,
			&wager.CreatedAt,
			&wager.SubmittedAt,
			&wager.UpdatedAt,
			&wager.ApprovedAt,
			&wager.RejectedAt,
			&wager.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &wager)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}

	return wagers, nil
}

func (r *WagerRepository) queryWagersWithNames(ctx context.Context, query string, args ...any) ([]*models.Wager, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wagers []*models.Wager
	for rows.Next() {
		var wager models.Wager
		err := rows.Scan(
			&wager.ID,
			&wager.UserID,
			&wager.GameID,
			&wager.Team,
			&wager.Amount,
			&wager.Spread,
			&wager.Status,
			&wager.CreatedAt,
			&wager.SubmittedAt,
			&wager.UpdatedAt,
			&wager.ApprovedAt,
			&wager.RejectedAt,
			&wager.SettledAt,
			&wager.Username,
			&wager.GameName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &wager)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}

	return wagers, nil
}

// GetByUser returns all wagers for a user, newest first
func (r *WagerRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers w WHERE w.user_id = $1 ORDER BY w.submitted_at DESC, w.id DESC`

	wagers, err := r.queryWagers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for user %d: %w", userID, err)
	}
	return wagers, nil
}

// GetPendingByUser returns a user's pending-approval wagers in submission order
func (r *WagerRepository) GetPendingByUser(ctx context.Context, userID int64) ([]*models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers w
		WHERE w.user_id = $1 AND w.status = 'pending_approval'
		ORDER BY w.submitted_at ASC, w.id ASC
	`

	wagers, err := r.queryWagers(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers for user %d: %w", userID, err)
	}
	return wagers, nil
}

// GetPendingTotal returns the sum of a user's pending-approval amounts
func (r *WagerRepository) GetPendingTotal(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM wagers
		WHERE user_id = $1 AND status = 'pending_approval'
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get pending total for user %d: %w", userID, err)
	}

	return total, nil
}

// GetAllPending returns every pending wager with username and game name
// attached, ordered by submission time
func (r *WagerRepository) GetAllPending(ctx context.Context) ([]*models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `,
		       u.username,
		       g.away_team || ' @ ' || g.home_team AS game_name
		FROM wagers w
		JOIN users u ON u.id = w.user_id
		JOIN games g ON g.id = w.game_id
		WHERE w.status = 'pending_approval'
		ORDER BY w.submitted_at ASC, w.id ASC
	`

	wagers, err := r.queryWagersWithNames(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers: %w", err)
	}
	return wagers, nil
}

// GetAll returns every wager with username and game name attached
func (r *WagerRepository) GetAll(ctx context.Context) ([]*models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `,
		       u.username,
		       g.away_team || ' @ ' || g.home_team AS game_name
		FROM wagers w
		JOIN users u ON u.id = w.user_id
		JOIN games g ON g.id = w.game_id
		ORDER BY w.submitted_at DESC, w.id DESC
	`

	wagers, err := r.queryWagersWithNames(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all wagers: %w", err)
	}
	return wagers, nil
}

// Update persists status, amount, and timestamp changes
func (r *WagerRepository) Update(ctx context.Context, wager *models.Wager) error {
	query := `
		UPDATE wagers
		SET amount = $1, status = $2, updated_at = $3, approved_at = $4, rejected_at = $5, settled_at = $6
		WHERE id = $7
	`

	result, err := r.q.Exec(ctx, query,
		wager.Amount,
		wager.Status,
		wager.UpdatedAt,
		wager.ApprovedAt,
		wager.RejectedAt,
		wager.SettledAt,
		wager.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wager %d: %w", wager.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("wager %d not found", wager.ID)
	}

	return nil
}

// Delete permanently removes a wager
func (r *WagerRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM wagers WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete wager %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("wager %d not found", id)
	}

	return nil
}
