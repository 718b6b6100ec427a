package web

import (
	"errors"
	"net/http"

	"zipline/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Business rejections keep their message verbatim so computed thresholds
// reach the caller; anything unrecognized is an internal fault.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrWagerNotFound),
		errors.Is(err, service.ErrNoPendingWagers):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrGameLocked),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTeam),
		errors.Is(err, service.ErrInvalidSpread),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidResult),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		var belowMin *service.BelowMinimumError
		var insufficient *service.InsufficientFundsError
		if errors.As(err, &belowMin) || errors.As(err, &insufficient) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		log.WithError(err).Error("Unexpected error handling request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
