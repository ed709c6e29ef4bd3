// Package session wraps the signed session_id cookie. The cookie carries
// only the opaque token of a server-side session row; everything else lives
// in the database.
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie, registered on the engine in web.go.
const CookieName = "session_id"

const sessionToken = "SESSION_TOKEN"

// MaxAge is the 7-day session lifetime in seconds, shared with the
// Session.ExpiresAt column.
const MaxAge = 7 * 24 * 60 * 60

func defaultOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetToken stores the session token in the cookie.
func SetToken(c *gin.Context, token string) error {
	s := sessions.Default(c)
	s.Options(defaultOptions(MaxAge))
	s.Set(sessionToken, token)
	return s.Save()
}

// GetToken returns the session token from the cookie, or "".
func GetToken(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(sessionToken); obj != nil {
		if token, ok := obj.(string); ok {
			return token
		}
	}
	return ""
}

// Clear removes the cookie.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(defaultOptions(-1))
	return s.Save()
}
