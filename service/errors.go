package service

import (
	"errors"
	"fmt"
)

// Business-rule outcomes are typed so callers can distinguish them from
// infrastructure faults. Everything below is an expected result of an
// operation, never a crash condition.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrWagerNotFound      = errors.New("wager not found")
	ErrGameLocked         = errors.New("game is locked for new wagers")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoPendingWagers    = errors.New("no pending wagers found for this user")
	ErrInvalidState       = errors.New("invalid wager state for this operation")
	ErrInvalidAmount      = errors.New("amount must be at least 1 coin")
	ErrInvalidTeam        = errors.New("team must be one of the game's two sides")
	ErrInvalidSpread      = errors.New("spread must be in half-point increments")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
	ErrInvalidResult      = errors.New("result must be win, loss, or push")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// BelowMinimumError is returned when a cart total falls short of the
// minimum-cart-percentage rule. It carries the computed threshold so the
// caller can present an actionable message.
type BelowMinimumError struct {
	MinimumRequired int64
	Percentage      float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("cart total must be at least %d coins (%.0f%% of your balance)",
		e.MinimumRequired, e.Percentage*100)
}

// InsufficientFundsError is returned when coins cannot cover an operation
// once pending liabilities are reserved against.
type InsufficientFundsError struct {
	Available int64
	Required  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient coins: have %d available, need %d", e.Available, e.Required)
}
