package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fittrack/backoffice/internal/repository"
	"fittrack/backoffice/internal/service"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"empty source day", repository.ErrEmptySourceDay, http.StatusNotFound},
		{"duplicate active", repository.ErrDuplicateActive, http.StatusConflict},
		{"wrapped validation", fmt.Errorf("%w: series and repeticiones must be at least 1", service.ErrValidation), http.StatusBadRequest},
		{"invalid dia", service.ErrInvalidDia, http.StatusBadRequest},
		{"same day", service.ErrSameDay, http.StatusBadRequest},
		{"invalid peso", service.ErrInvalidPeso, http.StatusBadRequest},
		{"email not configured", service.ErrEmailNotConfigured, http.StatusBadRequest},
		{"no recipients", service.ErrNoRecipients, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleServiceError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestHandleServiceErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handleServiceError(c, errors.New("pq: column does not exist"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "column")
}

func TestHandleServiceErrorKeepsValidationMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handleServiceError(c, fmt.Errorf("%w: cantidad_gramos must be positive", service.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cantidad_gramos")
}
