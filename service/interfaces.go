package service

import (
	"context"
	"time"

	"zipline/events"
	"zipline/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID, including the available-coins projection
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByIDForUpdate retrieves a user and locks their row for the duration
	// of the transaction. Every ledger-mutating operation takes this lock
	// first so that at most one mutation per user is in flight at a time.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername retrieves a user by their unique username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create creates a new user with the given starting coins
	Create(ctx context.Context, username, passwordHash string, startingCoins int64, isAdmin bool) (*models.User, error)

	// AddCoins credits a user's balance atomically
	AddCoins(ctx context.Context, id int64, amount int64) error

	// DeductCoins debits a user's balance atomically, failing if the stored
	// balance cannot cover the amount
	DeductCoins(ctx context.Context, id int64, amount int64) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)

	// GetLeaderboard returns visible users ordered by coins descending
	GetLeaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error)
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// GetByID retrieves a game by its ID
	GetByID(ctx context.Context, id int64) (*models.Game, error)

	// Create creates a new game
	Create(ctx context.Context, game *models.Game) error

	// GetAll returns all games ordered by game time
	GetAll(ctx context.Context) ([]*models.Game, error)

	// SetSpread sets the home spread (and the mirrored away spread)
	SetSpread(ctx context.Context, id int64, homeSpread float64) error

	// SetLocked toggles whether new wagers may reference the game
	SetLocked(ctx context.Context, id int64, locked bool) error
}

// CartRepository defines the interface for cart staging data access
type CartRepository interface {
	// GetByUser returns a user's cart items in insertion order
	GetByUser(ctx context.Context, userID int64) ([]*models.CartItem, error)

	// Upsert adds an item, replacing any existing item for the same game
	Upsert(ctx context.Context, item *models.CartItem) error

	// Delete removes a single item; removing an absent item is a no-op
	Delete(ctx context.Context, userID, itemID int64) error

	// Clear removes all of a user's cart items
	Clear(ctx context.Context, userID int64) error
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// Create creates a new wager
	Create(ctx context.Context, wager *models.Wager) error

	// GetByID retrieves a wager by its ID
	GetByID(ctx context.Context, id int64) (*models.Wager, error)

	// GetByUser returns all wagers for a user, newest first
	GetByUser(ctx context.Context, userID int64) ([]*models.Wager, error)

	// GetPendingByUser returns a user's pending-approval wagers in
	// submission order
	GetPendingByUser(ctx context.Context, userID int64) ([]*models.Wager, error)

	// GetPendingTotal returns the sum of a user's pending-approval amounts
	GetPendingTotal(ctx context.Context, userID int64) (int64, error)

	// GetAllPending returns every pending wager with username and game name
	// attached, ordered by submission time
	GetAllPending(ctx context.Context) ([]*models.Wager, error)

	// GetAll returns every wager with username and game name attached
	GetAll(ctx context.Context) ([]*models.Wager, error)

	// Update persists status, amount, and timestamp changes
	Update(ctx context.Context, wager *models.Wager) error

	// Delete permanently removes a wager
	Delete(ctx context.Context, id int64) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// EventPublisher publishes events that are flushed after commit
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to all repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	GameRepository() GameRepository
	CartRepository() CartRepository
	WagerRepository() WagerRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// CartService stages candidate wagers and converts them into pending wagers
type CartService interface {
	// GetCart returns the user's staged items in insertion order
	GetCart(ctx context.Context, userID int64) ([]*models.CartItem, error)

	// AddItem stages a wager, replacing any existing item for the same game
	AddItem(ctx context.Context, userID, gameID int64, team string, amount int64, spread float64) (*models.CartItem, error)

	// RemoveItem removes one staged item; absent items are a no-op
	RemoveItem(ctx context.Context, userID, itemID int64) error

	// Submit converts the cart into pending-approval wagers after the
	// minimum-total and pending-liability checks pass
	Submit(ctx context.Context, userID int64) (*models.SubmitResult, error)
}

// WagerService is the ledger: it owns every wager lifecycle transition and
// every coin mutation tied to one
type WagerService interface {
	// ListUserWagers returns all of a user's wagers
	ListUserWagers(ctx context.Context, userID int64) ([]*models.Wager, error)

	// EditPendingWager changes the amount of a pending wager
	EditPendingWager(ctx context.Context, wagerID, userID, newAmount int64) (*models.Wager, error)

	// CancelPendingWager permanently removes a pending wager
	CancelPendingWager(ctx context.Context, wagerID, userID int64) error

	// DecideForUser approves or rejects all of a user's pending wagers as
	// one atomic batch; approval debits the batch total exactly once
	DecideForUser(ctx context.Context, userID int64, decision models.Decision) (*models.DecisionResult, error)

	// Settle records a terminal result against an active wager and credits
	// the payout
	Settle(ctx context.Context, wagerID int64, result models.SettleResult) (*models.SettlementResult, error)

	// GroupedPendingWagers shapes pending wagers into per-user batches for
	// admin review, oldest batch first
	GroupedPendingWagers(ctx context.Context) ([]*models.PendingWagerGroup, error)

	// ListAllWagers returns every wager for the admin overview
	ListAllWagers(ctx context.Context) ([]*models.Wager, error)
}

// UserService manages accounts and identity
type UserService interface {
	// CreateUser registers a new user with the configured starting coins
	CreateUser(ctx context.Context, username, password string, isAdmin bool) (*models.User, error)

	// Authenticate verifies a username/password pair
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// ListUsers returns all users for the admin overview
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Leaderboard returns visible users ranked by coins
	Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error)
}

// GameService manages the weekly game slate
type GameService interface {
	// ListGames returns all games ordered by game time
	ListGames(ctx context.Context) ([]*models.Game, error)

	// CreateGame adds a game to the slate
	CreateGame(ctx context.Context, homeTeam, awayTeam string, gameTime time.Time) (*models.Game, error)

	// SetSpread sets the home spread; the away spread is its negation
	SetSpread(ctx context.Context, gameID int64, homeSpread float64) (*models.Game, error)

	// SetLocked opens or closes a game for new wagers
	SetLocked(ctx context.Context, gameID int64, locked bool) (*models.Game, error)
}
