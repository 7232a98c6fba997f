package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/middleware"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/validators"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/web"
)

const (
	landingPath = "/"
	homePath    = "/clients"
)

type authPage struct {
	web.Layout

	LoginUsername  string
	Register       validators.Draft
	RegisterErrors map[string][]string
	DefaultRole    string
}

type AuthHandler struct {
	api      *apiclient.Client
	store    viewstate.Store
	audit    *audit.Dispatcher
	log      *zap.Logger
	navDelay time.Duration
	secure   bool
}

func NewAuthHandler(
	api *apiclient.Client,
	store viewstate.Store,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
	navDelay time.Duration,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		api:      api,
		store:    store,
		audit:    dispatcher,
		log:      log,
		navDelay: navDelay,
		secure:   secureCookies,
	}
}

func (h *AuthHandler) page(c *gin.Context) authPage {
	return authPage{
		Layout:      layout(c, "auth", "Authentication", false),
		Register:    validators.Draft{},
		DefaultRole: models.DefaultUserRole,
	}
}

func (h *AuthHandler) Page(c *gin.Context) {
	p := h.page(c)
	if c.Query(expiredQuery) != "" {
		p.Notice = view.ExpiredNotice()
	}
	c.HTML(http.StatusOK, web.Root, p)
}

// TooManyAttempts answers a rate limited login or registration.
func (h *AuthHandler) TooManyAttempts(c *gin.Context) {
	p := h.page(c)
	p.Notice = &view.Notice{
		Kind:  view.NoticeWarning,
		Title: "Demasiados intentos",
		Text:  "Espera un momento antes de volver a intentarlo.",
	}
	c.HTML(http.StatusTooManyRequests, web.Root, p)
}

func connectivityNotice() *view.Notice {
	return &view.Notice{Kind: view.NoticeError, Title: "Error de red", Text: "No se pudo conectar con el servidor."}
}

// --------- Login ---------

func (h *AuthHandler) Login(c *gin.Context) {
	creds := models.Credentials{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}

	cookies, err := h.api.Login(c.Request.Context(), creds)
	h.audit.Dispatch(audit.Event{
		Subject: creds.Username,
		Action:  audit.ActionLogin,
		Outcome: httperr.KindOf(err).String(),
	})

	p := h.page(c)
	p.LoginUsername = creds.Username

	switch httperr.KindOf(err) {
	case httperr.KindNone:
		relayCookies(c, cookies)
		ok := layout(c, "redirect", "Bienvenido", false)
		ok.Notice = &view.Notice{Kind: view.NoticeSuccess, Title: "Bienvenido"}
		ok.Refresh = &web.Refresh{URL: homePath, Delay: h.navDelay}
		c.HTML(http.StatusOK, web.Root, ok)
		return
	case httperr.KindUnauthorized:
		p.Notice = &view.Notice{
			Kind:  view.NoticeError,
			Title: "Credenciales incorrectas",
			Text:  "Verifica tu usuario y contraseña.",
		}
	case httperr.KindTransport:
		h.log.Warn("login failed", zap.Error(err))
		p.Notice = connectivityNotice()
	default:
		// Only logged; the user sees the form again.
		h.log.Warn("login failed", zap.String("kind", httperr.KindOf(err).String()), zap.Error(err))
	}
	c.HTML(http.StatusOK, web.Root, p)
}

// --------- Register ---------

func (h *AuthHandler) Register(c *gin.Context) {
	draft, err := draftFrom(c)
	if err != nil {
		draft = validators.Draft{}
	}
	delete(draft, "password")

	p := h.page(c)

	posted := draft.Clone()
	posted["password"] = c.PostForm("password")
	user, err := validators.ValidateRegistration(posted)
	if err != nil {
		var fe *validators.FieldErrors
		if errors.As(err, &fe) {
			p.RegisterErrors = fe.Map()
			p.Notice = &view.Notice{Kind: view.NoticeError, Title: "Error de validación", Text: fe.Message()}
		}
		p.Register = draft
		c.HTML(http.StatusOK, web.Root, p)
		return
	}

	err = h.api.Register(c.Request.Context(), middleware.Session(c), user)
	h.audit.Dispatch(audit.Event{
		Subject: user.Username,
		Action:  audit.ActionRegister,
		Outcome: httperr.KindOf(err).String(),
	})

	switch httperr.KindOf(err) {
	case httperr.KindNone:
		p.Notice = &view.Notice{
			Kind:  view.NoticeSuccess,
			Title: "Usuario registrado",
			Text:  "El usuario se ha registrado correctamente.",
		}
	case httperr.KindTransport:
		h.log.Warn("register failed", zap.Error(err))
		p.Notice = connectivityNotice()
	default:
		p.Register = draft
		p.RegisterErrors = apiFieldErrors(err)
		p.Notice = &view.Notice{
			Kind:  view.NoticeError,
			Title: "Error al registrar usuario",
			Text:  httperr.Message(err, "Error desconocido."),
		}
	}
	c.HTML(http.StatusOK, web.Root, p)
}

// apiFieldErrors maps a field-keyed API error body onto the form.
func apiFieldErrors(err error) map[string][]string {
	var apiErr *httperr.APIError
	if !errors.As(err, &apiErr) || apiErr.Body.Kind != httperr.BodyFields {
		return nil
	}
	out := make(map[string][]string, len(apiErr.Body.Fields))
	for _, f := range apiErr.Body.Fields {
		out[f.Field] = f.Messages
	}
	return out
}

// --------- Logout ---------

// Logout always ends on the landing page, whatever the API answered.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.Session(c)

	cookies, err := h.api.Logout(ctx, sess)
	if err != nil {
		h.log.Warn("logout failed", zap.Error(err))
	}
	relayCookies(c, cookies)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(apiclient.SessionCookie, "", -1, "/", "", h.secure, true)

	if err := h.store.Forget(ctx, middleware.SID(c)); err != nil {
		h.log.Warn("forget view state", zap.Error(err))
	}

	h.audit.Dispatch(audit.Event{
		Subject: middleware.Username(c),
		Action:  audit.ActionLogout,
		Outcome: httperr.KindOf(err).String(),
	})

	p := layout(c, "redirect", "Sesión cerrada", false)
	p.Notice = &view.Notice{Kind: view.NoticeSuccess, Title: "Sesión cerrada", Text: "Has salido correctamente."}
	p.Refresh = &web.Refresh{URL: landingPath, Delay: h.navDelay}
	c.HTML(http.StatusOK, web.Root, p)
}
