package models

import (
	"time"
)

// TransactionType represents the type of coin balance change
type TransactionType string

const (
	TransactionTypeInitial       TransactionType = "initial"
	TransactionTypeWagerApproved TransactionType = "wager_approved"
	TransactionTypeWagerWin      TransactionType = "wager_win"
	TransactionTypeWagerPush     TransactionType = "wager_push"
)

// BalanceHistory represents a historical coin balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	UserID              int64           `db:"user_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedWagerID      *int64          `db:"related_wager_id"`
	CreatedAt           time.Time       `db:"created_at"`
}
