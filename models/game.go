package models

import (
	"time"
)

// Game represents a scheduled game that wagers can reference
type Game struct {
	ID         int64     `db:"id" json:"id"`
	HomeTeam   string    `db:"home_team" json:"homeTeam"`
	AwayTeam   string    `db:"away_team" json:"awayTeam"`
	HomeSpread *float64  `db:"home_spread" json:"homeSpread"`
	AwaySpread *float64  `db:"away_spread" json:"awaySpread"`
	SpreadsSet bool      `db:"spreads_set" json:"spreadsSet"`
	Locked     bool      `db:"locked" json:"locked"`
	GameTime   time.Time `db:"game_time" json:"gameTime"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Name returns the conventional "Away @ Home" display name
func (g *Game) Name() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// HasTeam checks whether team is one of the game's two sides
func (g *Game) HasTeam(team string) bool {
	return team == g.HomeTeam || team == g.AwayTeam
}
