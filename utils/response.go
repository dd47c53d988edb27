package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a localized message body
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// RespondWithMessage writes a plain confirmation message
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
