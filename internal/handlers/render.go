package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/middleware"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/web"
)

const expiredQuery = "expired"

func layout(c *gin.Context, page, title string, shell bool) web.Layout {
	return web.Layout{
		Page:      page,
		Title:     title,
		Shell:     shell,
		Username:  middleware.Username(c),
		CSRFField: csrf.TemplateField(c.Request),
	}
}

// redirect ends a POST with a 303 so a reload never resubmits.
func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}

func redirectExpired(c *gin.Context) {
	redirect(c, middleware.AuthPath+"?"+expiredQuery+"=1")
}

func internalError(c *gin.Context, log *zap.Logger, err error) {
	log.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, web.Root, layout(c, "error", "Error", false))
}

// draftFrom collects the posted form fields, leaving out the CSRF token.
func draftFrom(c *gin.Context) (validators.Draft, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	out := make(validators.Draft, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if k == middleware.CSRFField || len(v) == 0 {
			continue
		}
		out[k] = strings.Join(v, ",")
	}
	return out, nil
}

// relayCookies hands API cookies to the browser for this host.
func relayCookies(c *gin.Context, cookies []*http.Cookie) {
	for _, ck := range cookies {
		relayed := *ck
		relayed.Domain = ""
		if relayed.Path == "" {
			relayed.Path = "/"
		}
		http.SetCookie(c.Writer, &relayed)
	}
}
