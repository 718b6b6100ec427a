package repository

import (
	"context"
	"fmt"

	"zipline/database"
	"zipline/models"

	"github.com/jackc/pgx/v5"
)

// availableCoinsExpr computes coins minus the user's pending liability.
// Pending wagers have not been debited yet but are provisionally committed.
const availableCoinsExpr = `
	u.coins - COALESCE(
		(SELECT SUM(w.amount)
		 FROM wagers w
		 WHERE w.user_id = u.id
		   AND w.status = 'pending_approval'),
		0
	)`

const userColumns = `
	u.id,
	u.username,
	u.password_hash,
	u.coins,
	u.is_admin,
	u.hide_from_leaderboard,
	u.created_at,
	u.updated_at,
	` + availableCoinsExpr + ` AS available_coins`

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Coins,
		&user.IsAdmin,
		&user.HideFromLeaderboard,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.AvailableCoins,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID, including the available-coins projection
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetByIDForUpdate retrieves a user and locks their row until the enclosing
// transaction ends. This is the per-user single-writer serialization point
// for every ledger-mutating operation.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	// Lock first, then read the projection; FOR UPDATE cannot be combined
	// with the correlated subquery in a single statement.
	lock := `SELECT id FROM users WHERE id = $1 FOR UPDATE`
	var lockedID int64
	err := r.q.QueryRow(ctx, lock, id).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %d: %w", id, err)
	}

	return r.GetByID(ctx, id)
}

// GetByUsername retrieves a user by their unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

// Create creates a new user with the given starting coins
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, startingCoins int64, isAdmin bool) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, coins, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, coins, is_admin, hide_from_leaderboard, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, username, passwordHash, startingCoins, isAdmin).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Coins,
		&user.IsAdmin,
		&user.HideFromLeaderboard,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	// A new user has no pending wagers
	user.AvailableCoins = user.Coins

	return &user, nil
}

// AddCoins credits a user's balance atomically
func (r *UserRepository) AddCoins(ctx context.Context, id int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET coins = coins + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to add coins for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

// DeductCoins debits a user's balance atomically, refusing to drive the
// stored balance negative.
func (r *UserRepository) DeductCoins(ctx context.Context, id int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET coins = coins - $1, updated_at = NOW()
		WHERE id = $2 AND coins >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to deduct coins for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		user, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("insufficient coins: have %d, need %d", user.Coins, amount)
	}

	return nil
}

// GetAll returns all users, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Coins,
			&user.IsAdmin,
			&user.HideFromLeaderboard,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.AvailableCoins,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetLeaderboard returns visible users ordered by coins descending
func (r *UserRepository) GetLeaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT id, username, coins
		FROM users
		WHERE NOT hide_from_leaderboard
		ORDER BY coins DESC, username ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.Coins); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return entries, nil
}
