package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/service"
)

// stubRutinaService overrides only the methods a test touches; the
// embedded interface panics on anything else.
type stubRutinaService struct {
	service.RutinaService
	existing        *domain.Rutina
	updated         *domain.Rutina
	addEjercicioErr error
}

func (s *stubRutinaService) Get(ctx context.Context, id, coachID int64) (*domain.Rutina, error) {
	return s.existing, nil
}

func (s *stubRutinaService) Update(ctx context.Context, rutina *domain.Rutina, coachID int64) (*domain.Rutina, error) {
	s.updated = rutina
	return rutina, nil
}

func (s *stubRutinaService) AddEjercicio(ctx context.Context, ejercicio *domain.Ejercicio, coachID int64) (*domain.Ejercicio, error) {
	if s.addEjercicioErr != nil {
		return nil, s.addEjercicioErr
	}
	return ejercicio, nil
}

func rutinaRouter(svc service.RutinaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set(ContextCoachIDKey, int64(1)) })
	h := NewRutinaHandler(svc, nil)
	router.PATCH("/rutinas/:id", h.Update)
	router.POST("/rutinas/:id/ejercicios", h.AddEjercicio)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func storedRutina() *domain.Rutina {
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Rutina{
		ID:                   5,
		Nombre:               "Fuerza",
		FechaInicio:          &inicio,
		Notas:                "Bloque 1",
		EntrenamientosSemana: 4,
		Activa:               true,
	}
}

func TestUpdateRutinaCanDeactivate(t *testing.T) {
	svc := &stubRutinaService{existing: storedRutina()}
	router := rutinaRouter(svc)

	w := doJSON(t, router, http.MethodPatch, "/rutinas/5", gin.H{"activa": false})
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.updated)
	assert.False(t, svc.updated.Activa)
	// Absent fields keep their stored values.
	assert.Equal(t, "Fuerza", svc.updated.Nombre)
	assert.Equal(t, 4, svc.updated.EntrenamientosSemana)
	assert.Equal(t, "Bloque 1", svc.updated.Notas)
}

func TestUpdateRutinaPartialFields(t *testing.T) {
	svc := &stubRutinaService{existing: storedRutina()}
	router := rutinaRouter(svc)

	w := doJSON(t, router, http.MethodPatch, "/rutinas/5", gin.H{"nombre": "Hipertrofia"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.updated)
	assert.Equal(t, "Hipertrofia", svc.updated.Nombre)
	assert.True(t, svc.updated.Activa)
}

func TestAddEjercicioValidationAs400(t *testing.T) {
	svc := &stubRutinaService{
		addEjercicioErr: fmt.Errorf("%w: series and repeticiones must be at least 1", service.ErrValidation),
	}
	router := rutinaRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/rutinas/5/ejercicios", gin.H{
		"ejercicio_base_id": 1,
		"dia":               1,
		"series":            -1,
		"repeticiones":      10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "series")
}
