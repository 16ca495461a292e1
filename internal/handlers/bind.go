package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// bindAndValidate decodes the JSON body into req and runs its presence checks.
func bindAndValidate(c *gin.Context, req validatable) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("decoding json payload: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validating payload: %w", err)
	}
	return nil
}
