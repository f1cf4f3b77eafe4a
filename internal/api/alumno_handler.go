package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/service"
)

// paramID parses a numeric path parameter, aborting with 400 on garbage.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", name))
		return 0, false
	}
	return id, true
}

// mustCoachID pulls the authenticated coach id from the context.
func mustCoachID(c *gin.Context) (int64, bool) {
	coachID, err := getCoachIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get coach ID from token")
		return 0, false
	}
	return coachID, true
}

// AlumnoHandler serves students, their weight history and PRs.
type AlumnoHandler struct {
	alumnoService service.AlumnoService
}

// NewAlumnoHandler creates a new AlumnoHandler.
func NewAlumnoHandler(alumnoService service.AlumnoService) *AlumnoHandler {
	return &AlumnoHandler{alumnoService: alumnoService}
}

type AlumnoRequest struct {
	Nombre                string     `json:"nombre" binding:"required"`
	Email                 string     `json:"email" binding:"required,email"`
	FechaNacimiento       time.Time  `json:"fecha_nacimiento" binding:"required"`
	Altura                float64    `json:"altura" binding:"required"`
	Objetivo              string     `json:"objetivo"`
	FechaCobro            *time.Time `json:"fecha_cobro"`
	NotificacionesActivas bool       `json:"notificaciones_activas"`
}

func (h *AlumnoHandler) Create(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	var req AlumnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	alumno := &domain.Alumno{
		CoachID:               coachID,
		Nombre:                req.Nombre,
		Email:                 req.Email,
		FechaNacimiento:       req.FechaNacimiento,
		Altura:                req.Altura,
		Objetivo:              req.Objetivo,
		FechaCobro:            req.FechaCobro,
		NotificacionesActivas: req.NotificacionesActivas,
	}
	created, err := h.alumnoService.Create(c.Request.Context(), alumno)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AlumnoHandler) List(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnos, err := h.alumnoService.List(c.Request.Context(), coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alumnos)
}

func (h *AlumnoHandler) Get(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	alumno, err := h.alumnoService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alumno)
}

func (h *AlumnoHandler) Update(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AlumnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	alumno := &domain.Alumno{
		ID:                    id,
		Nombre:                req.Nombre,
		Email:                 req.Email,
		FechaNacimiento:       req.FechaNacimiento,
		Altura:                req.Altura,
		Objetivo:              req.Objetivo,
		FechaCobro:            req.FechaCobro,
		NotificacionesActivas: req.NotificacionesActivas,
	}
	updated, err := h.alumnoService.Update(c.Request.Context(), alumno, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AlumnoHandler) Delete(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.alumnoService.Delete(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard returns the per-student overview.
func (h *AlumnoHandler) Dashboard(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dash, err := h.alumnoService.Dashboard(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// --- Weight history ---

type PesoRequest struct {
	Peso  float64    `json:"peso" binding:"required"`
	Fecha *time.Time `json:"fecha"`
}

func (h *AlumnoHandler) AddPeso(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PesoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	fecha := time.Time{}
	if req.Fecha != nil {
		fecha = *req.Fecha
	}
	entry, err := h.alumnoService.AddPeso(c.Request.Context(), alumnoID, coachID, req.Peso, fecha)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *AlumnoHandler) ListPesos(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	pesos, err := h.alumnoService.ListPesos(c.Request.Context(), alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pesos)
}

func (h *AlumnoHandler) UpdatePeso(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PesoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	entry, err := h.alumnoService.UpdatePeso(c.Request.Context(), id, coachID, req.Peso, req.Fecha)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *AlumnoHandler) DeletePeso(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.alumnoService.DeletePeso(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Personal records ---

type RecordRequest struct {
	Ejercicio    string     `json:"ejercicio" binding:"required"`
	Peso         float64    `json:"peso" binding:"required"`
	Repeticiones int        `json:"repeticiones" binding:"required"`
	Fecha        *time.Time `json:"fecha"`
}

func (h *AlumnoHandler) AddRecord(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	record := &domain.PersonalRecord{
		AlumnoID:     alumnoID,
		Ejercicio:    domain.RecordEjercicio(req.Ejercicio),
		Peso:         req.Peso,
		Repeticiones: req.Repeticiones,
	}
	if req.Fecha != nil {
		record.Fecha = *req.Fecha
	}
	created, err := h.alumnoService.AddRecord(c.Request.Context(), record, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AlumnoHandler) ListRecords(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	records, err := h.alumnoService.ListRecords(c.Request.Context(), alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// RecordChart returns the PR history grouped by lift.
func (h *AlumnoHandler) RecordChart(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	chart, err := h.alumnoService.RecordChart(c.Request.Context(), alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *AlumnoHandler) DeleteRecord(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.alumnoService.DeleteRecord(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
