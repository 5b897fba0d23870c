// Package handler exposes the follow-up queue over HTTP.
package handler

import (
	"net/http"
	"time"

	"crm_leads_backend/internal/followup/service"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/follow-up", h.RecordFollowUp)
}

type recordFollowUpRequest struct {
	Status string `json:"status" binding:"required" validate:"required,oneof=Belum Sudah"`
	// LastFollowUpAt overrides the recorded follow-up time; without it,
	// marking Sudah stamps the current time.
	LastFollowUpAt *time.Time `json:"lastFollowUpAt"`
}

func (h *Handler) List(c *gin.Context) {
	var assigneeID *uuid.UUID
	if raw := c.Query("assigneeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid assigneeId filter", nil)
			return
		}
		assigneeID = &id
	}

	queue, err := h.svc.ListQueue(c.Request.Context(), c.Query("status"), assigneeID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, queue)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	hc, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, hc)
}

func (h *Handler) RecordFollowUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	var req recordFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	hc, err := h.svc.RecordFollowUp(c.Request.Context(), id, req.Status, req.LastFollowUpAt)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, hc)
}
