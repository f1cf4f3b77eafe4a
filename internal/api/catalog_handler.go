package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/service"
)

// CatalogHandler serves the shared exercise and food catalogs.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListEjerciciosBase(c *gin.Context) {
	ejercicios, err := h.catalogService.ListEjerciciosBase(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ejercicios)
}

func (h *CatalogHandler) SearchEjerciciosBase(c *gin.Context) {
	ejercicios, err := h.catalogService.SearchEjerciciosBase(c.Request.Context(), c.Param("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ejercicios)
}

type EjercicioBaseRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Categoria string `json:"categoria"`
}

// CreateEjercicioBase is idempotent by name: posting an existing name
// returns the existing entry.
func (h *CatalogHandler) CreateEjercicioBase(c *gin.Context) {
	var req EjercicioBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ejercicio, err := h.catalogService.GetOrCreateEjercicioBase(c.Request.Context(), req.Nombre, req.Categoria)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ejercicio)
}

func (h *CatalogHandler) ListAlimentos(c *gin.Context) {
	alimentos, err := h.catalogService.ListAlimentos(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alimentos)
}

func (h *CatalogHandler) SearchAlimentos(c *gin.Context) {
	alimentos, err := h.catalogService.SearchAlimentos(c.Request.Context(), c.Param("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alimentos)
}

type AlimentoRequest struct {
	Nombre            string  `json:"nombre" binding:"required"`
	Calorias100g      float64 `json:"calorias_100g"`
	Proteinas100g     float64 `json:"proteinas_100g"`
	Carbohidratos100g float64 `json:"carbohidratos_100g"`
	Grasas100g        float64 `json:"grasas_100g"`
}

// CreateAlimento is idempotent by name, like CreateEjercicioBase.
func (h *CatalogHandler) CreateAlimento(c *gin.Context) {
	var req AlimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	alimento, err := h.catalogService.GetOrCreateAlimento(c.Request.Context(), &domain.Alimento{
		Nombre:            req.Nombre,
		Calorias100g:      req.Calorias100g,
		Proteinas100g:     req.Proteinas100g,
		Carbohidratos100g: req.Carbohidratos100g,
		Grasas100g:        req.Grasas100g,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alimento)
}
