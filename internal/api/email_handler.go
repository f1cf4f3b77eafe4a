package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/service"
)

// EmailHandler serves the bulk-email endpoints.
type EmailHandler struct {
	emailService service.EmailService
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

type QuotaIncreaseRequest struct {
	AlumnoIDs []int64 `json:"alumno_ids" binding:"required,min=1"`
	NewAmount float64 `json:"nuevo_monto" binding:"required"`
	Mensaje   string  `json:"mensaje"`
}

func (h *EmailHandler) SendQuotaIncrease(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	var req QuotaIncreaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	result, err := h.emailService.SendQuotaIncrease(c.Request.Context(), coachID, req.AlumnoIDs, req.NewAmount, req.Mensaje)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type AbsenceNoticeRequest struct {
	AlumnoIDs []int64 `json:"alumno_ids" binding:"required,min=1"`
	StartDate string  `json:"fecha_inicio" binding:"required"`
	EndDate   string  `json:"fecha_fin" binding:"required"`
	Reason    string  `json:"motivo" binding:"required"`
	Mensaje   string  `json:"mensaje"`
}

func (h *EmailHandler) SendAbsenceNotice(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	var req AbsenceNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	result, err := h.emailService.SendAbsenceNotice(c.Request.Context(), coachID, req.AlumnoIDs, req.StartDate, req.EndDate, req.Reason, req.Mensaje)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
