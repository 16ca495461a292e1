package handlers

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

func abortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Error: err.Error()})
}
