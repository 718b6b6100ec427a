package web

import (
	"net/http"
	"strconv"

	"zipline/service"

	"github.com/gin-gonic/gin"
)

// CartHandler serves the cart staging flow
type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the user's staged items
func (h *CartHandler) GetCart(c *gin.Context) {
	items, err := h.cartService.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

type addItemRequest struct {
	GameID int64   `json:"gameId" binding:"required"`
	Team   string  `json:"team" binding:"required"`
	Amount int64   `json:"amount" binding:"required"`
	Spread float64 `json:"spread"`
}

// AddItem stages a wager, replacing any prior item for the same game
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId, team, and amount are required"})
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), currentUserID(c), req.GameID, req.Team, req.Amount, req.Spread)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem removes one staged item; absent items succeed as a no-op
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), currentUserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Submit converts the cart into pending-approval wagers
func (h *CartHandler) Submit(c *gin.Context) {
	result, err := h.cartService.Submit(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Wagers submitted for approval",
		"count":       result.WagersCreated,
		"totalAmount": result.TotalAmount,
	})
}
