package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/moderation"
)

// writeError translates service errors into the client-visible contract:
// authorization failures map to 403, invalid transitions and bad input to
// 400, and the rest to their conventional statuses.
func writeError(c *gin.Context, err error) {
	var authErr *moderation.AuthorizationError
	var invErr *moderation.InvalidTransitionError

	switch {
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{"error": authErr.Error()})
	case errors.As(err, &invErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": invErr.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
