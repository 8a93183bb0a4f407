package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldIssue is one field-level validation failure.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Message writes the plain error envelope {message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// AbortMessage writes the plain envelope and aborts the chain. Used by
// middleware.
func AbortMessage(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"message": message})
}

// ValidationFailed writes the validation envelope {message, errors}.
func ValidationFailed(c *gin.Context, issues []FieldIssue) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  issues,
	})
}
