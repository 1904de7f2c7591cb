package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a single human-readable error message.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
