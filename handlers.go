package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/simailhq/simail_backend/config"
	"github.com/simailhq/simail_backend/utils"
)

// pathInt parses a numeric path parameter, answering 400 itself when the
// value is not an integer.
func pathInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return value, true
}

// bindJSON binds the request body and answers 400 with per-field
// messages on validation failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondFetchError maps read-path errors: missing records become 404,
// anything else is an internal failure worth logging.
func respondFetchError(c *gin.Context, moduleName string, funcName string, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	config.LogError(config.GetLogger(), moduleName, funcName, "", nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// respondMutationError maps write-path errors: missing records become
// 404, everything else is treated as a rejected input.
func respondMutationError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
