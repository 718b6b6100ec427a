package models

import (
	"time"
)

// WagerStatus represents the lifecycle state of a wager
type WagerStatus string

const (
	WagerStatusPendingApproval WagerStatus = "pending_approval"
	WagerStatusActive          WagerStatus = "active"
	WagerStatusRejected        WagerStatus = "rejected"
	WagerStatusWin             WagerStatus = "win"
	WagerStatusLoss            WagerStatus = "loss"
	WagerStatusPush            WagerStatus = "push"
)

// Decision is the admin verdict applied to a user's pending batch
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// SettleResult is the terminal outcome recorded against an active wager
type SettleResult string

const (
	SettleResultWin  SettleResult = "win"
	SettleResultLoss SettleResult = "loss"
	SettleResultPush SettleResult = "push"
)

// Wager represents a submitted pick awaiting approval, activation, or settlement
type Wager struct {
	ID          int64       `db:"id" json:"id"`
	UserID      int64       `db:"user_id" json:"userId"`
	GameID      int64       `db:"game_id" json:"gameId"`
	Team        string      `db:"team" json:"team"`
	Amount      int64       `db:"amount" json:"amount"`
	Spread      float64     `db:"spread" json:"spread"`
	Status      WagerStatus `db:"status" json:"status"`
	GameName    string      `db:"-" json:"gameName,omitempty"`
	Username    string      `db:"-" json:"username,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	SubmittedAt time.Time   `db:"submitted_at" json:"submittedAt"`
	UpdatedAt   *time.Time  `db:"updated_at" json:"updatedAt,omitempty"`
	ApprovedAt  *time.Time  `db:"approved_at" json:"approvedAt,omitempty"`
	RejectedAt  *time.Time  `db:"rejected_at" json:"rejectedAt,omitempty"`
	SettledAt   *time.Time  `db:"settled_at" json:"settledAt,omitempty"`
}

// IsPending checks if the wager is still awaiting an admin decision
func (w *Wager) IsPending() bool {
	return w.Status == WagerStatusPendingApproval
}

// IsActive checks if the wager has been approved but not yet settled
func (w *Wager) IsActive() bool {
	return w.Status == WagerStatusActive
}

// IsTerminal checks if the wager has reached a final state
func (w *Wager) IsTerminal() bool {
	switch w.Status {
	case WagerStatusRejected, WagerStatusWin, WagerStatusLoss, WagerStatusPush:
		return true
	}
	return false
}

// CanBeEdited checks if the owner may still change the amount
func (w *Wager) CanBeEdited(userID int64) bool {
	return w.UserID == userID && w.Status == WagerStatusPendingApproval
}

// CanBeCancelled checks if the owner may still withdraw the wager
func (w *Wager) CanBeCancelled(userID int64) bool {
	return w.UserID == userID && w.Status == WagerStatusPendingApproval
}

// Payout returns the coins credited back for a given settlement result.
// A win returns the stake plus equal winnings, a push returns the stake,
// and a loss returns nothing (the stake was debited at approval).
func (w *Wager) Payout(result SettleResult) int64 {
	switch result {
	case SettleResultWin:
		return w.Amount * 2
	case SettleResultPush:
		return w.Amount
	}
	return 0
}

// PendingWagerGroup aggregates one user's pending wagers for admin review
type PendingWagerGroup struct {
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	Wagers      []*Wager  `json:"wagers"`
	TotalAmount int64     `json:"totalAmount"`
	SubmittedAt time.Time `json:"submittedAt"` // earliest submission in the batch
}

// DecisionResult represents the outcome of a batch decision
type DecisionResult struct {
	Decision    Decision `json:"decision"`
	WagerCount  int      `json:"count"`
	TotalAmount int64    `json:"totalAmount"`
	UserCoins   int64    `json:"userCoins"`
}

// SettlementResult represents the outcome of settling a single wager
type SettlementResult struct {
	Wager     *Wager `json:"wager"`
	UserCoins int64  `json:"userCoins"`
}
