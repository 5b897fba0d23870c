// Package handler exposes revenue target management over HTTP.
package handler

import (
	"net/http"

	"crm_leads_backend/internal/targets/service"
	"crm_leads_backend/platform/httpkit"
	"crm_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterReadRoutes mounts the target read endpoints.
func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:userId", h.GetByUserID)
}

// RegisterWriteRoutes mounts the target mutation endpoints.
func (h *Handler) RegisterWriteRoutes(rg *gin.RouterGroup) {
	rg.PUT("", h.Set)
	rg.DELETE("/:userId", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, list)
}

func (h *Handler) GetByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	target, err := h.svc.GetByUserID(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, target)
}

func (h *Handler) Set(c *gin.Context) {
	var req service.SetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	target, err := h.svc.Set(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, target)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), userID)) {
		return
	}
	c.Status(http.StatusNoContent)
}
