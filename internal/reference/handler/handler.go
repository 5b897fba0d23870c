// Package handler exposes the reference lists over HTTP.
package handler

import (
	"net/http"

	"crm_leads_backend/internal/reference/repository"
	"crm_leads_backend/internal/reference/service"
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

// RegisterReadRoutes mounts the list endpoints for both reference tables.
func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("/obstacles", h.list(repository.TableObstacles))
	rg.GET("/promos", h.list(repository.TablePromos))
}

// RegisterWriteRoutes mounts the mutation endpoints for both tables.
func (h *Handler) RegisterWriteRoutes(rg *gin.RouterGroup) {
	rg.POST("/obstacles", h.create(repository.TableObstacles))
	rg.PUT("/obstacles/:id", h.update(repository.TableObstacles))
	rg.DELETE("/obstacles/:id", h.remove(repository.TableObstacles))
	rg.POST("/promos", h.create(repository.TablePromos))
	rg.PUT("/promos/:id", h.update(repository.TablePromos))
	rg.DELETE("/promos/:id", h.remove(repository.TablePromos))
}

func (h *Handler) list(table repository.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.svc.List(c.Request.Context(), table)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, items)
	}
}

func (h *Handler) create(table repository.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
			return
		}

		item, err := h.svc.Create(c.Request.Context(), table, req)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.JSON(c, http.StatusCreated, item)
	}
}

func (h *Handler) update(table repository.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
			return
		}

		var req service.ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
			return
		}

		item, err := h.svc.Update(c.Request.Context(), table, id, req)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, item)
	}
}

func (h *Handler) remove(table repository.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
			return
		}

		if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), table, id)) {
			return
		}
		c.Status(http.StatusNoContent)
	}
}
