package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/service"
)

// LesionHandler serves student injury records.
type LesionHandler struct {
	lesionService service.LesionService
}

// NewLesionHandler creates a new LesionHandler.
func NewLesionHandler(lesionService service.LesionService) *LesionHandler {
	return &LesionHandler{lesionService: lesionService}
}

type LesionRequest struct {
	Nombre      string     `json:"nombre" binding:"required"`
	Descripcion string     `json:"descripcion"`
	EsCronica   bool       `json:"es_cronica"`
	FechaInicio *time.Time `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin"`
	Activa      *bool      `json:"activa"`
}

func (h *LesionHandler) Create(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "alumnoId")
	if !ok {
		return
	}
	var req LesionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	lesion := &domain.Lesion{
		AlumnoID:    alumnoID,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		EsCronica:   req.EsCronica,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
	}
	created, err := h.lesionService.Create(c.Request.Context(), lesion, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LesionHandler) ListByAlumno(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "alumnoId")
	if !ok {
		return
	}
	lesiones, err := h.lesionService.ListByAlumno(c.Request.Context(), alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesiones)
}

func (h *LesionHandler) Update(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req LesionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	lesion := &domain.Lesion{
		ID:          id,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		EsCronica:   req.EsCronica,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Activa:      true,
	}
	if req.Activa != nil {
		lesion.Activa = *req.Activa
	}
	updated, err := h.lesionService.Update(c.Request.Context(), lesion, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LesionHandler) Delete(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.lesionService.Delete(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
