package handler

import "github.com/gin-gonic/gin"

// GetUsername extracts the authenticated cashier's username from the Gin
// context.
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	name, ok := username.(string)
	if !ok {
		return ""
	}
	return name
}
