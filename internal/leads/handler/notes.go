package handler

import (
	"net/http"

	"crm_leads_backend/internal/leads/notes"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/httpkit"
	"crm_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotesHandler serves the note sub-resource of a lead.
type NotesHandler struct {
	svc *notes.Service
	val *validator.Validator
}

func NewNotesHandler(svc *notes.Service, val *validator.Validator) *NotesHandler {
	return &NotesHandler{svc: svc, val: val}
}

func (h *NotesHandler) Add(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CreateLeadNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	note, err := h.svc.Add(c.Request.Context(), leadID, identity.UserID(), identity.DisplayName(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, note)
}

func (h *NotesHandler) List(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	list, err := h.svc.List(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, list)
}
