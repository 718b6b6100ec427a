package web

import (
	"net/http"

	"zipline/config"
	"zipline/service"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes registered
func NewRouter(
	cfg *config.Config,
	userService service.UserService,
	gameService service.GameService,
	cartService service.CartService,
	wagerService service.WagerService,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(corsMiddleware(cfg.CORSOrigins))

	authHandler := NewAuthHandler(userService, cfg)
	gameHandler := NewGameHandler(gameService)
	cartHandler := NewCartHandler(cartService)
	wagerHandler := NewWagerHandler(wagerService)
	adminHandler := NewAdminHandler(userService, wagerService)

	router.POST("/api/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/user", authHandler.CurrentUser)
		protected.GET("/leaderboard", authHandler.Leaderboard)
		protected.GET("/games", gameHandler.ListGames)

		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart", cartHandler.AddItem)
		protected.DELETE("/cart/:itemId", cartHandler.RemoveItem)
		protected.POST("/cart/submit", cartHandler.Submit)

		protected.GET("/wagers", wagerHandler.ListWagers)
		protected.PUT("/wagers/:id", wagerHandler.EditWager)
		protected.DELETE("/wagers/:id", wagerHandler.CancelWager)

		admin := protected.Group("/admin")
		admin.Use(AdminMiddleware())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)

			admin.GET("/wagers", adminHandler.ListAllWagers)
			admin.GET("/wagers/pending/grouped", adminHandler.GroupedPendingWagers)
			admin.PUT("/wagers/user/:userId/decision", adminHandler.DecideForUser)
			admin.PUT("/wagers/:id/settle", adminHandler.Settle)

			admin.POST("/games", gameHandler.CreateGame)
			admin.PUT("/games/:id/spreads", gameHandler.SetSpread)
			admin.PUT("/games/:id/lock", gameHandler.SetLocked)
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] || allowed["*"] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
