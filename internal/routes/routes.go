package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/config"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/handlers"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httpresp"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/middleware"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/web"
)

type Deps struct {
	Config *config.Config
	API    *apiclient.Client
	Store  viewstate.Store
	Audit  *audit.Logger
	Events *audit.Dispatcher
	Logger *zap.Logger
}

// entityRoutes is the surface every entity view exposes.
type entityRoutes interface {
	Base() string
	Show(*gin.Context)
	New(*gin.Context)
	Edit(*gin.Context)
	Submit(*gin.Context)
	Cancel(*gin.Context)
	AskDelete(*gin.Context)
	ConfirmDelete(*gin.Context)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Logger),
		middleware.SecurityHeaders(cfg.SecureCookies),
		middleware.SessionID(cfg.SecureCookies),
		middleware.CSRF([]byte(cfg.CSRFKey), cfg.SecureCookies, nil),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	appWebHandler := handlers.NewAppWebHandler()
	authHandler := handlers.NewAuthHandler(d.API, d.Store, d.Events, d.Logger, cfg.NavDelay, cfg.SecureCookies)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Audit, d.Logger)

	views := []entityRoutes{
		handlers.NewClientHandler(d.API, d.Store, d.Events, d.Logger),
		handlers.NewEstablishmentHandler(d.API, d.Store, d.Events, d.Logger),
		handlers.NewReservationHandler(d.API, d.Store, d.Events, d.Logger),
	}

	limiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMin)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/", appWebHandler.Landing)
	r.NoRoute(appWebHandler.NotFound)

	auth := r.Group(middleware.AuthPath)
	{
		auth.GET("", authHandler.Page)
		auth.POST("/login", limiter.Limit(authHandler.TooManyAttempts), authHandler.Login)
		auth.POST("/register", limiter.Limit(authHandler.TooManyAttempts), authHandler.Register)
	}

	r.POST("/logout", middleware.Identify(), authHandler.Logout)

	// ======================================================
	// DASHBOARD (session cookie required)
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.SessionGate())
	{
		for _, v := range views {
			g := secured.Group(v.Base())
			g.GET("", v.Show)
			g.POST("/new", v.New)
			g.POST("/:id/edit", v.Edit)
			g.POST("/form", v.Submit)
			g.POST("/form/cancel", v.Cancel)
			g.POST("/:id/delete", v.AskDelete)
			g.POST("/delete/confirm", v.ConfirmDelete)
		}

		secured.GET("/activity", auditLogsHandler.List)
		secured.GET("/activity/export", auditLogsHandler.Export)
	}
}

// NewRouter builds the engine with templates, recovery and every route.
func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates(d.Config.Location())
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		httpresp.OK(c, gin.H{"status": "ok"})
	})

	RegisterRoutes(r, d)
	return r, nil
}
