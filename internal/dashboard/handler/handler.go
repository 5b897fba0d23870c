// Package handler exposes the performance dashboard over HTTP.
package handler

import (
	"net/http"
	"time"

	"crm_leads_backend/internal/dashboard/service"
	"crm_leads_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/performance", h.Performance)
}

func (h *Handler) Performance(c *gin.Context) {
	var from, to time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "from must be a date (YYYY-MM-DD)", nil)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "to must be a date (YYYY-MM-DD)", nil)
			return
		}
		to = parsed
	}

	dashboard, err := h.svc.Performance(c.Request.Context(), from, to)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, dashboard)
}
