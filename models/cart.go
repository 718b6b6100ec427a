package models

import (
	"time"
)

// CartItem represents a staged wager that has not been submitted yet.
// A user holds at most one item per game; re-adding replaces the old one.
// No coins are reserved while an item sits in the cart.
type CartItem struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	GameID    int64     `db:"game_id" json:"gameId"`
	Team      string    `db:"team" json:"team"`
	Amount    int64     `db:"amount" json:"amount"`
	Spread    float64   `db:"spread" json:"spread"`
	GameName  string    `db:"-" json:"gameName"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SubmitResult represents the outcome of a cart submission
type SubmitResult struct {
	WagersCreated int      `json:"count"`
	TotalAmount   int64    `json:"totalAmount"`
	Wagers        []*Wager `json:"wagers"`
}
