package testutil

import (
	"time"

	"zipline/models"
)

// CreateTestGame creates a game with default values
func CreateTestGame(homeTeam, awayTeam string) *models.Game {
	return &models.Game{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		GameTime: time.Now().Add(48 * time.Hour),
	}
}

// CreateTestCartItem stages an item for the given user and game
func CreateTestCartItem(userID, gameID int64, team string, amount int64) *models.CartItem {
	return &models.CartItem{
		UserID: userID,
		GameID: gameID,
		Team:   team,
		Amount: amount,
		Spread: -3.5,
	}
}

// CreateTestWager creates a pending-approval wager
func CreateTestWager(userID, gameID int64, team string, amount int64) *models.Wager {
	now := time.Now()
	return &models.Wager{
		UserID:      userID,
		GameID:      gameID,
		Team:        team,
		Amount:      amount,
		Spread:      -3.5,
		Status:      models.WagerStatusPendingApproval,
		CreatedAt:   now,
		SubmittedAt: now,
	}
}

// CreateTestBalanceHistory creates a balance history entry
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   2000,
		BalanceAfter:    1750,
		ChangeAmount:    -250,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}
