package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
)

const (
	ContextSession  = "apiSession"
	ContextUsername = "username"

	AuthPath = "/auth"
)

// SessionGate only checks that the API session cookie is present. Whether
// it is still valid is for the API to decide on each call.
func SessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(apiclient.SessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, AuthPath)
			c.Abort()
			return
		}

		identify(c, token)
		c.Next()
	}
}

// Identify records the session and display name when the cookie is
// present, and lets every request through.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(apiclient.SessionCookie); err == nil && token != "" {
			identify(c, token)
		}
		c.Next()
	}
}

func identify(c *gin.Context, token string) {
	c.Set(ContextSession, apiclient.Session{Cookies: c.Request.Cookies()})
	c.Set(ContextUsername, usernameFromToken(token))
}

// Session returns the cookies to forward to the API, whether or not the
// gate ran.
func Session(c *gin.Context) apiclient.Session {
	if v, ok := c.Get(ContextSession); ok {
		return v.(apiclient.Session)
	}
	return apiclient.Session{Cookies: c.Request.Cookies()}
}

func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// usernameFromToken reads the display name from the JWT payload without
// verifying the signature. Never use it for authorization.
func usernameFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	if name, ok := claims["username"].(string); ok && name != "" {
		return name
	}
	switch id := claims["user_id"].(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("#%d", int64(id))
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}
