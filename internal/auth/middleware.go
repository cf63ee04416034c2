package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key carrying the authenticated user id.
const UserIDKey = "user_id"

// RequireAuth is a middleware that rejects requests without a valid bearer
// token and sets the user id on the context for downstream handlers.
func RequireAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
