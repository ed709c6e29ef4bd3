package controller

import (
	"errors"
	"net/http"

	"boardhub/web/service"

	"github.com/gin-gonic/gin"
)

// jsonError maps the service error taxonomy onto status codes. Anything
// outside the sentinels is a domain-rule violation whose message is meant
// for the caller.
func jsonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInternal):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
}
