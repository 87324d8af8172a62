package middleware

import (
	"net/http"
	"strings"

	"sessionsheet/utils"

	"github.com/gin-gonic/gin"
)

// ActorKey is the gin context key holding the authenticated subject.
const ActorKey = "actor"

// JWTAuthMiddleware requires a valid bearer token and stores its subject as the actor.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		subject, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ActorKey, subject)
		c.Next()
	}
}

// Actor returns the authenticated subject, or "" on open deployments.
func Actor(c *gin.Context) string {
	return c.GetString(ActorKey)
}
