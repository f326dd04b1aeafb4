package handler

import (
	"errors"
	"net/http"

	"kampuskitap/internal/logging"
	"kampuskitap/internal/middleware"
	"kampuskitap/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to a status and {"error": msg}.
// Unclassified errors are logged and answered with a generic 500 naming op.
func respondError(c *gin.Context, log logging.Logger, op string, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrUserAlreadyExists.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrProductNotFound.Error()})
	case errors.Is(err, service.ErrUploadsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrUploadsDisabled.Error()})
	default:
		_ = c.Error(err)
		log.With("request_id", c.GetString(middleware.RequestIDKey)).
			Error(c.Request.Context(), op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
