package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"zipline/config"
	"zipline/events"
	"zipline/models"

	log "github.com/sirupsen/logrus"
)

type cartService struct {
	uowFactory UnitOfWorkFactory
	cfg        *config.Config
}

// NewCartService creates a new cart service
func NewCartService(uowFactory UnitOfWorkFactory, cfg *config.Config) CartService {
	return &cartService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// GetCart returns the user's staged items in insertion order
func (s *cartService) GetCart(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	items, err := uow.CartRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return items, nil
}

// AddItem stages a wager against an open game, replacing any existing item
// for the same game. No coins are reserved at this stage.
func (s *cartService) AddItem(ctx context.Context, userID, gameID int64, team string, amount int64, spread float64) (*models.CartItem, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
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
	if game.Locked {
		return nil, ErrGameLocked
	}
	if !game.HasTeam(team) {
		return nil, ErrInvalidTeam
	}

	item := &models.CartItem{
		UserID: userID,
		GameID: gameID,
		Team:   team,
		Amount: amount,
		Spread: spread,
	}

	if err := uow.CartRepository().Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	item.GameName = game.Name()

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return item, nil
}

// RemoveItem removes one staged item. Removing an absent item is a no-op
// success so the operation is safe to retry.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.CartRepository().Delete(ctx, userID, itemID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Submit converts the whole cart into pending-approval wagers as one atomic
// unit. No coins are debited here; the debit happens on admin approval. The
// funds check therefore reserves against pending wagers from earlier
// submissions, not just the live balance.
func (s *cartService) Submit(ctx context.Context, userID int64) (*models.SubmitResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Lock the user row so concurrent submissions and decisions serialize
	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	items, err := uow.CartRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var cartTotal int64
	for _, item := range items {
		cartTotal += item.Amount
	}

	pendingTotal, err := uow.WagerRepository().GetPendingTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending total: %w", err)
	}

	minimumRequired := int64(math.Floor(float64(user.Coins) * s.cfg.MinimumCartPercentage))
	if cartTotal < minimumRequired {
		return nil, &BelowMinimumError{
			MinimumRequired: minimumRequired,
			Percentage:      s.cfg.MinimumCartPercentage,
		}
	}

	// Pending wagers are funds already provisionally committed
	if user.Coins < cartTotal+pendingTotal {
		return nil, &InsufficientFundsError{
			Available: user.Coins - pendingTotal,
			Required:  cartTotal,
		}
	}

	now := time.Now()
	wagers := make([]*models.Wager, 0, len(items))
	wagerIDs := make([]int64, 0, len(items))
	for _, item := range items {
		wager := &models.Wager{
			UserID:      userID,
			GameID:      item.GameID,
			Team:        item.Team,
			Amount:      item.Amount,
			Spread:      item.Spread,
			Status:      models.WagerStatusPendingApproval,
			CreatedAt:   now,
			SubmittedAt: now,
		}
		if err := uow.WagerRepository().Create(ctx, wager); err != nil {
			return nil, fmt.Errorf("failed to create wager: %w", err)
		}
		wagers = append(wagers, wager)
		wagerIDs = append(wagerIDs, wager.ID)
	}

	if err := uow.CartRepository().Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	uow.EventBus().Publish(events.CartSubmittedEvent{
		UserID:      userID,
		WagerIDs:    wagerIDs,
		TotalAmount: cartTotal,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":      userID,
		"wagerCount":  len(wagers),
		"totalAmount": cartTotal,
	}).Info("Cart submitted for approval")

	return &models.SubmitResult{
		WagersCreated: len(wagers),
		TotalAmount:   cartTotal,
		Wagers:        wagers,
	}, nil
}
