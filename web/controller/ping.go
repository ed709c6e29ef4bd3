package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewPingController registers the health endpoint.
func NewPingController(g *gin.RouterGroup) {
	g.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
}
