package web

import (
	"net/http"

	"zipline/config"
	"zipline/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves login, identity, and leaderboard requests
type AuthHandler struct {
	userService service.UserService
	cfg         *config.Config
}

func NewAuthHandler(userService service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cfg:         cfg,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := issueToken(user, h.cfg.JWTSecret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"coins":    user.Coins,
			"isAdmin":  user.IsAdmin,
		},
	})
}

// CurrentUser returns the authenticated user's account
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"coins":          user.Coins,
		"availableCoins": user.AvailableCoins,
		"isAdmin":        user.IsAdmin,
	})
}

// Leaderboard returns visible users ranked by coin balance
func (h *AuthHandler) Leaderboard(c *gin.Context) {
	entries, err := h.userService.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
