package middleware

import (
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// CurrentUser attributes every request to the configured worker
func CurrentUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID extracts the current worker ID from the Gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
