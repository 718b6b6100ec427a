package models

import (
	"time"
)

// User represents a player with a coin balance
type User struct {
	ID                  int64     `db:"id" json:"id"`
	Username            string    `db:"username" json:"username"`
	PasswordHash        string    `db:"password_hash" json:"-"`
	Coins               int64     `db:"coins" json:"coins"`
	AvailableCoins      int64     `db:"-" json:"availableCoins"` // Calculated field: coins minus pending wagers
	IsAdmin             bool      `db:"is_admin" json:"isAdmin"`
	HideFromLeaderboard bool      `db:"hide_from_leaderboard" json:"-"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// LeaderboardEntry is the public projection of a user for the leaderboard
type LeaderboardEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
}
