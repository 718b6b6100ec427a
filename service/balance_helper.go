package service

import (
	"context"
	"fmt"

	"zipline/events"
	"zipline/models"
)

// RecordBalanceChange records a balance history entry and emits the
// corresponding events. This is the single entry point for all coin
// mutations in the system.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, history *models.BalanceHistory) error {
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	// Emit balance change event (flushed after the transaction commits)
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          history.UserID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	// Also emit a user created event if this is the initial balance
	if history.TransactionType == models.TransactionTypeInitial {
		if username, ok := history.TransactionMetadata["username"].(string); ok {
			uow.EventBus().Publish(events.UserCreatedEvent{
				UserID:        history.UserID,
				Username:      username,
				StartingCoins: history.BalanceAfter,
			})
		}
	}

	return nil
}
