// Package handlers holds the gin HTTP handlers for the catalog API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/models"
)

// respondError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is a dependency failure: a 500 with a generic message, so no
// internal error text leaks to clients.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
