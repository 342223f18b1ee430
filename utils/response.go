package utils

import (
	"github.com/gin-gonic/gin"
)

// Level tells the client how to present a response message
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// JSONResponse sends a structured JSON success response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	JSONLevelResponse(c, status, LevelSuccess, data, message)
}

// JSONLevelResponse sends a structured JSON response with an explicit level
func JSONLevelResponse(c *gin.Context, status int, level Level, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"level":   level,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	JSONLevelError(c, status, LevelError, err, message)
}

// JSONLevelError sends a structured error response with an explicit level
func JSONLevelError(c *gin.Context, status int, level Level, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"level":   level,
		"message": message,
		"error":   err.Error(),
	})
}
