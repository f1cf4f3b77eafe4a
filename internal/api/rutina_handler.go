package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/export"
	"fittrack/backoffice/internal/service"
)

// RutinaHandler serves routines, exercises, day copies and templates.
type RutinaHandler struct {
	rutinaService service.RutinaService
	alumnoService service.AlumnoService
}

// NewRutinaHandler creates a new RutinaHandler.
func NewRutinaHandler(rutinaService service.RutinaService, alumnoService service.AlumnoService) *RutinaHandler {
	return &RutinaHandler{rutinaService: rutinaService, alumnoService: alumnoService}
}

type EjercicioRequest struct {
	EjercicioBaseID int64    `json:"ejercicio_base_id" binding:"required"`
	Dia             int      `json:"dia" binding:"required"`
	Series          int      `json:"series" binding:"required"`
	Repeticiones    int      `json:"repeticiones" binding:"required"`
	Peso            *float64 `json:"peso"`
	Descanso        int      `json:"descanso"`
	Notas           string   `json:"notas"`
}

type RutinaRequest struct {
	Nombre               string             `json:"nombre" binding:"required"`
	FechaInicio          *time.Time         `json:"fecha_inicio"`
	FechaVencimiento     *time.Time         `json:"fecha_vencimiento"`
	Notas                string             `json:"notas"`
	EntrenamientosSemana int                `json:"entrenamientos_semana"`
	Ejercicios           []EjercicioRequest `json:"ejercicios"`
}

// RutinaUpdateRequest applies only the fields present in the body;
// absent fields keep their stored value.
type RutinaUpdateRequest struct {
	Nombre               *string    `json:"nombre"`
	FechaInicio          *time.Time `json:"fecha_inicio"`
	FechaVencimiento     *time.Time `json:"fecha_vencimiento"`
	Notas                *string    `json:"notas"`
	EntrenamientosSemana *int       `json:"entrenamientos_semana"`
	Activa               *bool      `json:"activa"`
}

type CopyDayRequest struct {
	SourceDay int `json:"source_day" binding:"required"`
	TargetDay int `json:"target_day" binding:"required"`
}

// Create stores a routine for the student in the path. The literal "none"
// creates a standalone routine not assigned to anyone.
func (h *RutinaHandler) Create(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	var alumnoID *int64
	if raw := c.Param("id"); raw != "none" {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		alumnoID = &id
	}

	var req RutinaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	rutina := &domain.Rutina{
		AlumnoID:             alumnoID,
		Nombre:               req.Nombre,
		FechaInicio:          req.FechaInicio,
		FechaVencimiento:     req.FechaVencimiento,
		Notas:                req.Notas,
		EntrenamientosSemana: req.EntrenamientosSemana,
	}
	for _, e := range req.Ejercicios {
		rutina.Ejercicios = append(rutina.Ejercicios, domain.Ejercicio{
			EjercicioBaseID: e.EjercicioBaseID,
			Dia:             e.Dia,
			Series:          e.Series,
			Repeticiones:    e.Repeticiones,
			Peso:            e.Peso,
			Descanso:        e.Descanso,
			Notas:           e.Notas,
		})
	}

	created, err := h.rutinaService.Create(c.Request.Context(), rutina, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RutinaHandler) ListByAlumno(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	rutinas, err := h.rutinaService.ListByAlumno(c.Request.Context(), alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rutinas)
}

func (h *RutinaHandler) Get(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rutina, err := h.rutinaService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rutina)
}

func (h *RutinaHandler) Update(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RutinaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	existing, err := h.rutinaService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	rutina := *existing
	if req.Nombre != nil {
		rutina.Nombre = *req.Nombre
	}
	if req.FechaInicio != nil {
		rutina.FechaInicio = req.FechaInicio
	}
	if req.FechaVencimiento != nil {
		rutina.FechaVencimiento = req.FechaVencimiento
	}
	if req.Notas != nil {
		rutina.Notas = *req.Notas
	}
	if req.EntrenamientosSemana != nil {
		rutina.EntrenamientosSemana = *req.EntrenamientosSemana
	}
	if req.Activa != nil {
		rutina.Activa = *req.Activa
	}
	updated, err := h.rutinaService.Update(c.Request.Context(), &rutina, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RutinaHandler) Delete(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.rutinaService.Delete(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Exercises ---

func (h *RutinaHandler) AddEjercicio(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	rutinaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req EjercicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ejercicio := &domain.Ejercicio{
		RutinaID:        rutinaID,
		EjercicioBaseID: req.EjercicioBaseID,
		Dia:             req.Dia,
		Series:          req.Series,
		Repeticiones:    req.Repeticiones,
		Peso:            req.Peso,
		Descanso:        req.Descanso,
		Notas:           req.Notas,
	}
	created, err := h.rutinaService.AddEjercicio(c.Request.Context(), ejercicio, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RutinaHandler) UpdateEjercicio(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req EjercicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ejercicio := &domain.Ejercicio{
		ID:              id,
		EjercicioBaseID: req.EjercicioBaseID,
		Dia:             req.Dia,
		Series:          req.Series,
		Repeticiones:    req.Repeticiones,
		Peso:            req.Peso,
		Descanso:        req.Descanso,
		Notas:           req.Notas,
	}
	updated, err := h.rutinaService.UpdateEjercicio(c.Request.Context(), ejercicio, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RutinaHandler) DeleteEjercicio(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.rutinaService.DeleteEjercicio(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Copies and templates ---

func (h *RutinaHandler) CopyToAlumno(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	rutinaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "alumnoId")
	if !ok {
		return
	}
	clone, err := h.rutinaService.CopyToAlumno(c.Request.Context(), rutinaID, alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clone)
}

func (h *RutinaHandler) CopyDay(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	rutinaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CopyDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	copied, err := h.rutinaService.CopyDay(c.Request.Context(), rutinaID, coachID, req.SourceDay, req.TargetDay)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ejercicios_copiados": copied})
}

func (h *RutinaHandler) SaveAsTemplate(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	rutinaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	plantilla, err := h.rutinaService.SaveAsTemplate(c.Request.Context(), rutinaID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plantilla)
}

type RutinaPlantillaRequest struct {
	Nombre               string             `json:"nombre" binding:"required"`
	Notas                string             `json:"notas"`
	EntrenamientosSemana int                `json:"entrenamientos_semana"`
	Ejercicios           []EjercicioRequest `json:"ejercicios"`
}

func (h *RutinaHandler) CreatePlantilla(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	var req RutinaPlantillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	plantilla := &domain.RutinaPlantilla{
		CoachID:              coachID,
		Nombre:               req.Nombre,
		Notas:                req.Notas,
		EntrenamientosSemana: req.EntrenamientosSemana,
	}
	for _, e := range req.Ejercicios {
		plantilla.Ejercicios = append(plantilla.Ejercicios, domain.EjercicioPlantilla{
			EjercicioBaseID: e.EjercicioBaseID,
			Dia:             e.Dia,
			Series:          e.Series,
			Repeticiones:    e.Repeticiones,
			Peso:            e.Peso,
			Descanso:        e.Descanso,
			Notas:           e.Notas,
		})
	}
	created, err := h.rutinaService.CreatePlantilla(c.Request.Context(), plantilla)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RutinaHandler) ListPlantillas(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	plantillas, err := h.rutinaService.ListPlantillas(c.Request.Context(), coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plantillas)
}

func (h *RutinaHandler) CreateFromTemplate(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	plantillaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "alumnoId")
	if !ok {
		return
	}
	rutina, err := h.rutinaService.CreateFromTemplate(c.Request.Context(), plantillaID, alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rutina)
}

// --- Exports ---

func (h *RutinaHandler) exportRutina(c *gin.Context) (*domain.Rutina, string, bool) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return nil, "", false
	}
	id, ok := paramID(c, "id")
	if !ok {
		return nil, "", false
	}
	rutina, err := h.rutinaService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return nil, "", false
	}
	alumnoNombre := ""
	if rutina.AlumnoID != nil {
		if alumno, err := h.alumnoService.Get(c.Request.Context(), *rutina.AlumnoID, coachID); err == nil {
			alumnoNombre = alumno.Nombre
		}
	}
	return rutina, alumnoNombre, true
}

func (h *RutinaHandler) ExportPDF(c *gin.Context) {
	rutina, alumnoNombre, ok := h.exportRutina(c)
	if !ok {
		return
	}
	data, err := export.RutinaPDF(rutina, alumnoNombre)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="rutina_%d.pdf"`, rutina.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *RutinaHandler) ExportExcel(c *gin.Context) {
	rutina, alumnoNombre, ok := h.exportRutina(c)
	if !ok {
		return
	}
	data, err := export.RutinaExcel(rutina, alumnoNombre)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="rutina_%d.xlsx"`, rutina.ID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
