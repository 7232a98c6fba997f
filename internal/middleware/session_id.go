package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDCookie  = "dash_sid"
	ContextSessionID = "sessionID"
)

// SessionID makes sure every browser carries a dash_sid cookie, which keys
// its view state.
func SessionID(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionIDCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionIDCookie, sid, 0, "/", "", secure, true)
		}

		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

func SID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
