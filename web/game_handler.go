package web

import (
	"net/http"
	"strconv"
	"time"

	"zipline/service"

	"github.com/gin-gonic/gin"
)

// GameHandler serves the weekly game slate
type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// ListGames returns all games ordered by game time
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.gameService.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}

type createGameRequest struct {
	HomeTeam string    `json:"homeTeam" binding:"required"`
	AwayTeam string    `json:"awayTeam" binding:"required"`
	GameTime time.Time `json:"gameTime" binding:"required"`
}

// CreateGame adds a game to the slate
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "homeTeam, awayTeam and gameTime are required"})
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), req.HomeTeam, req.AwayTeam, req.GameTime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

type setSpreadRequest struct {
	HomeSpread *float64 `json:"homeSpread" binding:"required"`
}

// SetSpread sets a game's home spread; the away spread mirrors it
func (h *GameHandler) SetSpread(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	var req setSpreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "homeSpread is required"})
		return
	}

	game, err := h.gameService.SetSpread(c.Request.Context(), gameID, *req.HomeSpread)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

type setLockedRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// SetLocked opens or closes a game for new wagers
func (h *GameHandler) SetLocked(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	var req setLockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "locked is required"})
		return
	}

	game, err := h.gameService.SetLocked(c.Request.Context(), gameID, *req.Locked)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}
