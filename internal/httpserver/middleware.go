package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/moderation"
)

const userCtxKey = "authUser"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authRequired resolves the bearer token to a user or aborts with 401.
func authRequired(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}

// authOptional resolves the bearer token when present; anonymous requests
// pass through.
func authOptional(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if u, err := users.LookupByToken(c.Request.Context(), token); err == nil {
				c.Set(userCtxKey, u)
			}
		}
		c.Next()
	}
}

// adminRequired runs after authRequired and rejects non-admin users.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || !u.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// currentActor adapts the authenticated user for the moderation engine.
// Nil for anonymous requests.
func currentActor(c *gin.Context) *moderation.Actor {
	u := currentUser(c)
	if u == nil {
		return nil
	}
	return &moderation.Actor{ID: u.ID, Admin: u.Admin}
}
