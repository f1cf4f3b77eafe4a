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

// DietaHandler serves diets, meals, food lines, day copies and templates.
type DietaHandler struct {
	dietaService  service.DietaService
	alumnoService service.AlumnoService
}

// NewDietaHandler creates a new DietaHandler.
func NewDietaHandler(dietaService service.DietaService, alumnoService service.AlumnoService) *DietaHandler {
	return &DietaHandler{dietaService: dietaService, alumnoService: alumnoService}
}

type ComidaAlimentoRequest struct {
	AlimentoID     int64   `json:"alimento_id" binding:"required"`
	CantidadGramos float64 `json:"cantidad_gramos" binding:"required"`
}

type ComidaRequest struct {
	Nombre    string                  `json:"nombre" binding:"required"`
	Orden     int                     `json:"orden"`
	Dia       int                     `json:"dia" binding:"required"`
	Alimentos []ComidaAlimentoRequest `json:"alimentos"`
}

type DietaRequest struct {
	Nombre      string          `json:"nombre" binding:"required"`
	FechaInicio *time.Time      `json:"fecha_inicio"`
	Notas       string          `json:"notas"`
	Comidas     []ComidaRequest `json:"comidas"`
}

// DietaUpdateRequest applies only the fields present in the body;
// absent fields keep their stored value.
type DietaUpdateRequest struct {
	Nombre      *string    `json:"nombre"`
	FechaInicio *time.Time `json:"fecha_inicio"`
	Notas       *string    `json:"notas"`
	Activa      *bool      `json:"activa"`
}

func (h *DietaHandler) Create(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req DietaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	dieta := &domain.Dieta{
		AlumnoID:    alumnoID,
		Nombre:      req.Nombre,
		FechaInicio: req.FechaInicio,
		Notas:       req.Notas,
	}
	for _, cm := range req.Comidas {
		comida := domain.Comida{
			Nombre: cm.Nombre,
			Orden:  cm.Orden,
			Dia:    cm.Dia,
		}
		for _, a := range cm.Alimentos {
			comida.Alimentos = append(comida.Alimentos, domain.ComidaAlimento{
				AlimentoID:     a.AlimentoID,
				CantidadGramos: a.CantidadGramos,
			})
		}
		dieta.Comidas = append(dieta.Comidas, comida)
	}

	created, err := h.dietaService.Create(c.Request.Context(), dieta, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *DietaHandler) ListByAlumno(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	alumnoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	dietas, err := h.dietaService.ListByAlumno(c.Request.Context(), alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dietas)
}

func (h *DietaHandler) Get(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dieta, err := h.dietaService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dieta)
}

func (h *DietaHandler) Update(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req DietaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	existing, err := h.dietaService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	dieta := *existing
	if req.Nombre != nil {
		dieta.Nombre = *req.Nombre
	}
	if req.FechaInicio != nil {
		dieta.FechaInicio = req.FechaInicio
	}
	if req.Notas != nil {
		dieta.Notas = *req.Notas
	}
	if req.Activa != nil {
		dieta.Activa = *req.Activa
	}
	updated, err := h.dietaService.Update(c.Request.Context(), &dieta, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DietaHandler) Delete(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.dietaService.Delete(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Meals ---

func (h *DietaHandler) AddComida(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	dietaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ComidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	comida := &domain.Comida{
		DietaID: dietaID,
		Nombre:  req.Nombre,
		Orden:   req.Orden,
		Dia:     req.Dia,
	}
	created, err := h.dietaService.AddComida(c.Request.Context(), comida, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *DietaHandler) UpdateComida(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ComidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	comida := &domain.Comida{
		ID:     id,
		Nombre: req.Nombre,
		Orden:  req.Orden,
		Dia:    req.Dia,
	}
	updated, err := h.dietaService.UpdateComida(c.Request.Context(), comida, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DietaHandler) DeleteComida(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.dietaService.DeleteComida(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Food lines ---

func (h *DietaHandler) AddComidaAlimento(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	comidaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ComidaAlimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	linea, err := h.dietaService.AddComidaAlimento(c.Request.Context(), comidaID, coachID, req.AlimentoID, req.CantidadGramos)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, linea)
}

func (h *DietaHandler) DeleteComidaAlimento(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.dietaService.DeleteComidaAlimento(c.Request.Context(), id, coachID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Copies and templates ---

func (h *DietaHandler) CopyDay(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	dietaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CopyDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	copied, err := h.dietaService.CopyDay(c.Request.Context(), dietaID, coachID, req.SourceDay, req.TargetDay)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comidas_copiadas": copied})
}

func (h *DietaHandler) SaveAsTemplate(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	dietaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	plantilla, err := h.dietaService.SaveAsTemplate(c.Request.Context(), dietaID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plantilla)
}

func (h *DietaHandler) ListPlantillas(c *gin.Context) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return
	}
	plantillas, err := h.dietaService.ListPlantillas(c.Request.Context(), coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plantillas)
}

func (h *DietaHandler) CreateFromTemplate(c *gin.Context) {
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
	dieta, err := h.dietaService.CreateFromTemplate(c.Request.Context(), plantillaID, alumnoID, coachID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dieta)
}

// --- Exports ---

func (h *DietaHandler) exportDieta(c *gin.Context) (*domain.Dieta, string, bool) {
	coachID, ok := mustCoachID(c)
	if !ok {
		return nil, "", false
	}
	id, ok := paramID(c, "id")
	if !ok {
		return nil, "", false
	}
	dieta, err := h.dietaService.Get(c.Request.Context(), id, coachID)
	if err != nil {
		handleServiceError(c, err)
		return nil, "", false
	}
	alumnoNombre := ""
	if alumno, err := h.alumnoService.Get(c.Request.Context(), dieta.AlumnoID, coachID); err == nil {
		alumnoNombre = alumno.Nombre
	}
	return dieta, alumnoNombre, true
}

func (h *DietaHandler) ExportPDF(c *gin.Context) {
	dieta, alumnoNombre, ok := h.exportDieta(c)
	if !ok {
		return
	}
	data, err := export.DietaPDF(dieta, alumnoNombre)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="dieta_%d.pdf"`, dieta.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *DietaHandler) ExportExcel(c *gin.Context) {
	dieta, alumnoNombre, ok := h.exportDieta(c)
	if !ok {
		return
	}
	data, err := export.DietaExcel(dieta, alumnoNombre)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="dieta_%d.xlsx"`, dieta.ID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
