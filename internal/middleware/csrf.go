package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const CSRFField = "csrf_token"

// CSRF guards every unsafe request with gorilla/csrf. With an empty key it
// is a no-op.
func CSRF(key []byte, secure bool, onFailure http.HandlerFunc) gin.HandlerFunc {
	if len(key) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Solicitud inválida, recarga la página.", http.StatusForbidden)
		}
	}

	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFField),
		csrf.ErrorHandler(onFailure),
	)

	return func(c *gin.Context) {
		passed := false
		h := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		}))

		r := c.Request
		if !secure {
			r = csrf.PlaintextHTTPRequest(r)
		}
		h.ServeHTTP(c.Writer, r)
		if !passed {
			c.Abort()
		}
	}
}
