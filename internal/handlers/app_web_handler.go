package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/web"
)

type AppWebHandler struct{}

func NewAppWebHandler() *AppWebHandler {
	return &AppWebHandler{}
}

func (h *AppWebHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, web.Root, layout(c, "landing", "", false))
}

func (h *AppWebHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, web.Root, layout(c, "error", "No encontrado", false))
}
