package web

import (
	"net/http"
	"strconv"

	"zipline/service"

	"github.com/gin-gonic/gin"
)

// WagerHandler serves a user's view of their own wagers
type WagerHandler struct {
	wagerService service.WagerService
}

func NewWagerHandler(wagerService service.WagerService) *WagerHandler {
	return &WagerHandler{wagerService: wagerService}
}

// ListWagers returns all of the authenticated user's wagers
func (h *WagerHandler) ListWagers(c *gin.Context) {
	wagers, err := h.wagerService.ListUserWagers(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wagers)
}

type editWagerRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// EditWager changes the amount of a still-pending wager
func (h *WagerHandler) EditWager(c *gin.Context) {
	wagerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wager id"})
		return
	}

	var req editWagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	wager, err := h.wagerService.EditPendingWager(c.Request.Context(), wagerID, currentUserID(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wager updated successfully",
		"wager":   wager,
	})
}

// CancelWager permanently removes a still-pending wager
func (h *WagerHandler) CancelWager(c *gin.Context) {
	wagerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wager id"})
		return
	}

	if err := h.wagerService.CancelPendingWager(c.Request.Context(), wagerID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wager cancelled successfully"})
}
