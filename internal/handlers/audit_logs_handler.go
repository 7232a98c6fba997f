package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httpresp"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/web"
)

type activityPage struct {
	web.Layout

	Activity     audit.Page
	AuditEnabled bool
	Entities     []string
	Actions      []string
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
	log    *zap.Logger
}

func NewAuditLogsHandler(logger *audit.Logger, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger, log: log}
}

func (h *AuditLogsHandler) query(c *gin.Context) (audit.Page, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	return h.logger.List(c.Request.Context(), audit.Filter{
		Entity: c.Query("entity"),
		Action: c.Query("action"),
		Page:   page,
		Limit:  limit,
	})
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	result, err := h.query(c)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	c.HTML(http.StatusOK, web.Root, activityPage{
		Layout:       layout(c, "activity", "Activity", true),
		Activity:     result,
		AuditEnabled: h.logger.Enabled(),
		Entities:     viewstate.Views,
		Actions: []string{
			audit.ActionCreate,
			audit.ActionUpdate,
			audit.ActionDelete,
			audit.ActionLogin,
			audit.ActionLogout,
			audit.ActionRegister,
		},
	})
}

// Export serves the same window as List as JSON.
func (h *AuditLogsHandler) Export(c *gin.Context) {
	result, err := h.query(c)
	if err != nil {
		h.log.Error("activity export failed", zap.Error(err))
		httpresp.Error(c, http.StatusInternalServerError, "could not list activity")
		return
	}
	httpresp.Page(c, result.Logs, result.Total, result.Page, result.Limit)
}
