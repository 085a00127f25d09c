package response

import (
	"github.com/gin-gonic/gin"
)

// Error writes the standard error body used across the API.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
