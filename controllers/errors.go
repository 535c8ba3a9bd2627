package controllers

import (
	"errors"
	"net/http"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses in one place so
// every handler reports them the same way.
func respondError(c *gin.Context, err error) {
	var storage *services.StorageError

	switch {
	case errors.Is(err, services.ErrUnknownIngredient),
		errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptySlot),
		errors.Is(err, utils.ErrInvalidReference):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &storage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
