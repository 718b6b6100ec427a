package service

import (
	"context"
	"fmt"
	"time"

	"zipline/events"
	"zipline/models"

	log "github.com/sirupsen/logrus"
)

type wagerService struct {
	uowFactory UnitOfWorkFactory
}

// NewWagerService creates a new wager ledger service
func NewWagerService(uowFactory UnitOfWorkFactory) WagerService {
	return &wagerService{
		uowFactory: uowFactory,
	}
}

// ListUserWagers returns all of a user's wagers
func (s *wagerService) ListUserWagers(ctx context.Context, userID int64) ([]*models.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}

	return wagers, nil
}

// EditPendingWager changes the amount of a wager that is still awaiting an
// admin decision. The new amount together with the user's other pending
// wagers must stay within the coin balance.
func (s *wagerService) EditPendingWager(ctx context.Context, wagerID, userID, newAmount int64) (*models.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil || wager.UserID != userID {
		return nil, ErrWagerNotFound
	}
	if !wager.IsPending() {
		return nil, fmt.Errorf("can only edit pending wagers: %w", ErrInvalidState)
	}
	if newAmount < 1 {
		return nil, ErrInvalidAmount
	}

	pendingTotal, err := uow.WagerRepository().GetPendingTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending total: %w", err)
	}
	otherPendingTotal := pendingTotal - wager.Amount

	if newAmount+otherPendingTotal > user.Coins {
		return nil, &InsufficientFundsError{
			Available: user.Coins - otherPendingTotal,
			Required:  newAmount,
		}
	}

	now := time.Now()
	wager.Amount = newAmount
	wager.UpdatedAt = &now

	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wager, nil
}

// CancelPendingWager permanently removes a pending wager. There is no
// balance effect because no coins were ever debited for it.
func (s *wagerService) CancelPendingWager(ctx context.Context, wagerID, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil || wager.UserID != userID {
		return ErrWagerNotFound
	}
	if !wager.IsPending() {
		return fmt.Errorf("can only cancel pending wagers: %w", ErrInvalidState)
	}

	if err := uow.WagerRepository().Delete(ctx, wagerID); err != nil {
		return fmt.Errorf("failed to delete wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DecideForUser approves or rejects all of a user's pending wagers as one
// atomic batch. A cart submission is treated as one gambling decision, so
// the admin decides it as a whole. Approval debits the batch total exactly
// once; rejection moves no coins.
func (s *wagerService) DecideForUser(ctx context.Context, userID int64, decision models.Decision) (*models.DecisionResult, error) {
	if decision != models.DecisionApproved && decision != models.DecisionRejected {
		return nil, ErrInvalidDecision
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	pending, err := uow.WagerRepository().GetPendingByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers: %w", err)
	}
	if len(pending) == 0 {
		return nil, ErrNoPendingWagers
	}

	var totalAmount int64
	for _, wager := range pending {
		totalAmount += wager.Amount
	}

	now := time.Now()
	wagerIDs := make([]int64, 0, len(pending))
	for _, wager := range pending {
		if decision == models.DecisionApproved {
			wager.Status = models.WagerStatusActive
			wager.ApprovedAt = &now
		} else {
			wager.Status = models.WagerStatusRejected
			wager.RejectedAt = &now
		}
		if err := uow.WagerRepository().Update(ctx, wager); err != nil {
			return nil, fmt.Errorf("failed to update wager %d: %w", wager.ID, err)
		}
		wagerIDs = append(wagerIDs, wager.ID)
	}

	userCoins := user.Coins
	if decision == models.DecisionApproved {
		if err := uow.UserRepository().DeductCoins(ctx, userID, totalAmount); err != nil {
			return nil, fmt.Errorf("failed to debit batch total: %w", err)
		}
		userCoins = user.Coins - totalAmount

		history := &models.BalanceHistory{
			UserID:          userID,
			BalanceBefore:   user.Coins,
			BalanceAfter:    userCoins,
			ChangeAmount:    -totalAmount,
			TransactionType: models.TransactionTypeWagerApproved,
			TransactionMetadata: map[string]any{
				"wager_ids":   wagerIDs,
				"wager_count": len(pending),
			},
		}
		if err := RecordBalanceChange(ctx, uow, history); err != nil {
			return nil, fmt.Errorf("failed to record balance change: %w", err)
		}
	}

	uow.EventBus().Publish(events.WagerBatchDecidedEvent{
		UserID:      userID,
		Decision:    decision,
		WagerCount:  len(pending),
		TotalAmount: totalAmount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":      userID,
		"decision":    decision,
		"wagerCount":  len(pending),
		"totalAmount": totalAmount,
	}).Info("Pending wager batch decided")

	return &models.DecisionResult{
		Decision:    decision,
		WagerCount:  len(pending),
		TotalAmount: totalAmount,
		UserCoins:   userCoins,
	}, nil
}

// Settle records a terminal result against an active wager. A win credits
// twice the stake, a push returns the stake, and a loss credits nothing
// since the stake was already debited at approval.
func (s *wagerService) Settle(ctx context.Context, wagerID int64, result models.SettleResult) (*models.SettlementResult, error) {
	switch result {
	case models.SettleResultWin, models.SettleResultLoss, models.SettleResultPush:
	default:
		return nil, ErrInvalidResult
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return nil, ErrWagerNotFound
	}

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, wager.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Re-read after acquiring the user lock: a concurrent settlement may
	// have transitioned the wager between the first read and the lock.
	wager, err = uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return nil, ErrWagerNotFound
	}
	if !wager.IsActive() {
		return nil, fmt.Errorf("can only settle active wagers: %w", ErrInvalidState)
	}

	payout := wager.Payout(result)
	userCoins := user.Coins

	if payout > 0 {
		if err := uow.UserRepository().AddCoins(ctx, wager.UserID, payout); err != nil {
			return nil, fmt.Errorf("failed to credit payout: %w", err)
		}
		userCoins = user.Coins + payout

		transactionType := models.TransactionTypeWagerWin
		if result == models.SettleResultPush {
			transactionType = models.TransactionTypeWagerPush
		}
		history := &models.BalanceHistory{
			UserID:          wager.UserID,
			BalanceBefore:   user.Coins,
			BalanceAfter:    userCoins,
			ChangeAmount:    payout,
			TransactionType: transactionType,
			TransactionMetadata: map[string]any{
				"wager_id": wager.ID,
				"amount":   wager.Amount,
				"result":   string(result),
			},
			RelatedWagerID: &wager.ID,
		}
		if err := RecordBalanceChange(ctx, uow, history); err != nil {
			return nil, fmt.Errorf("failed to record balance change: %w", err)
		}
	}

	now := time.Now()
	wager.Status = models.WagerStatus(result)
	wager.SettledAt = &now

	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update settled wager: %w", err)
	}

	uow.EventBus().Publish(events.WagerSettledEvent{
		WagerID: wager.ID,
		UserID:  wager.UserID,
		Result:  result,
		Payout:  payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"wagerID": wager.ID,
		"userID":  wager.UserID,
		"result":  result,
		"payout":  payout,
	}).Info("Wager settled")

	return &models.SettlementResult{
		Wager:     wager,
		UserCoins: userCoins,
	}, nil
}

// GroupedPendingWagers shapes pending wagers into per-user batches for the
// admin review screen, ordered oldest batch first.
func (s *wagerService) GroupedPendingWagers(ctx context.Context) ([]*models.PendingWagerGroup, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pending, err := uow.WagerRepository().GetAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers: %w", err)
	}

	// Wagers arrive ordered by submission time, so appending groups as they
	// first appear yields oldest-batch-first ordering.
	byUser := make(map[int64]*models.PendingWagerGroup)
	var groups []*models.PendingWagerGroup
	for _, wager := range pending {
		group, ok := byUser[wager.UserID]
		if !ok {
			group = &models.PendingWagerGroup{
				UserID:      wager.UserID,
				Username:    wager.Username,
				SubmittedAt: wager.SubmittedAt,
			}
			byUser[wager.UserID] = group
			groups = append(groups, group)
		}
		group.Wagers = append(group.Wagers, wager)
		group.TotalAmount += wager.Amount
		if wager.SubmittedAt.Before(group.SubmittedAt) {
			group.SubmittedAt = wager.SubmittedAt
		}
	}

	return groups, nil
}

// ListAllWagers returns every wager for the admin overview
func (s *wagerService) ListAllWagers(ctx context.Context) ([]*models.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}

	return wagers, nil
}
