package web

import (
	"net/http"
	"strconv"

	"zipline/models"
	"zipline/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the review console: user management, the pending
// queue, batch decisions, and settlement
type AdminHandler struct {
	userService  service.UserService
	wagerService service.WagerService
}

func NewAdminHandler(userService service.UserService, wagerService service.WagerService) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		wagerService: wagerService,
	}
}

// ListUsers returns all users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// CreateUser registers a new account with the configured starting balance
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListAllWagers returns every wager across all users
func (h *AdminHandler) ListAllWagers(c *gin.Context) {
	wagers, err := h.wagerService.ListAllWagers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wagers)
}

// GroupedPendingWagers returns pending wagers batched per user, oldest
// batch first
func (h *AdminHandler) GroupedPendingWagers(c *gin.Context) {
	groups, err := h.wagerService.GroupedPendingWagers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

type decisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// DecideForUser approves or rejects all of one user's pending wagers as
// a single batch
func (h *AdminHandler) DecideForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision is required"})
		return
	}

	result, err := h.wagerService.DecideForUser(c.Request.Context(), userID, models.Decision(req.Decision))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type settleRequest struct {
	Result string `json:"result" binding:"required"`
}

// Settle records a terminal result against an active wager
func (h *AdminHandler) Settle(c *gin.Context) {
	wagerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wager id"})
		return
	}

	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "result is required"})
		return
	}

	result, err := h.wagerService.Settle(c.Request.Context(), wagerID, models.SettleResult(req.Result))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
