package handler

import (
	"net/http"
	"strconv"

	"crm_leads_backend/internal/leads/intake"
	"crm_leads_backend/internal/leads/transport"
	"crm_leads_backend/platform/httpkit"
	"crm_leads_backend/platform/validator"
	"crm_leads_backend/platform/whatsapp"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated inquiry intake endpoints.
type PublicHandler struct {
	intake *intake.Service
	val    *validator.Validator
}

func NewPublicHandler(intakeSvc *intake.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{intake: intakeSvc, val: val}
}

// RegisterRoutes registers public intake routes under /public/inquiries.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.SubmitInquiry)
}

func (h *PublicHandler) SubmitInquiry(c *gin.Context) {
	var req transport.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.intake.SubmitInquiry(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, resp)
}

// ContactQR renders a wa.me QR code for an arbitrary phone number.
// Used by the intake confirmation page for a scan-to-chat handover.
func ContactQR(c *gin.Context) {
	phoneNumber := c.Query("phone")
	if phoneNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, "phone query parameter is required", nil)
		return
	}

	size := 256
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 64 || parsed > 1024 {
			httpkit.Error(c, http.StatusBadRequest, "size must be between 64 and 1024", nil)
			return
		}
		size = parsed
	}

	png, err := whatsapp.QRPNG(phoneNumber, c.Query("text"), size)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "phone number is not dialable", nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
