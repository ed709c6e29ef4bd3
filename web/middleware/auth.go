// Package middleware provides the session resolution and access gates shared
// by the HTTP surface.
package middleware

import (
	"net/http"

	"boardhub/database/model"
	"boardhub/web/service"
	"boardhub/web/session"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// SessionAuth resolves the session cookie to a user on every request. A
// missing, expired, or banned session leaves the request anonymous; gating
// happens in LoginRequired/AdminRequired.
func SessionAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := session.GetToken(c); token != "" {
			if user, err := authService.ResolveSession(token); err == nil && user != nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user for this request, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(userKey); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

// LoginRequired rejects anonymous requests.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects callers without the isAdmin flag. Implies
// LoginRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
