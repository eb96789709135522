package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocktake/internal/domain/models"
)

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation failures are 400, missing documents 404, everything else
// a logged 500 with a generic message. Error bodies follow the
// {error, details?} shape.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func badRequest(c *gin.Context, message, details string) {
	body := gin.H{"error": message}
	if details != "" {
		body["details"] = details
	}
	c.JSON(http.StatusBadRequest, body)
}
