package api

import (
	"bytes"
	"context"
	"encoding/json"
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

type stubAuthService struct {
	registerCoach *domain.Coach
	registerErr   error
	loginToken    string
	loginCoach    *domain.Coach
	loginErr      error
}

func (s *stubAuthService) Register(ctx context.Context, nombre, email, password string) (*domain.Coach, error) {
	return s.registerCoach, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Coach, error) {
	return s.loginToken, s.loginCoach, s.loginErr
}

func (s *stubAuthService) GetJWTSecret() string { return "test-secret" }

func authRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	svc := &stubAuthService{
		registerCoach: &domain.Coach{ID: 1, Nombre: "Laura", Email: "laura@test.local", CreadoEn: time.Now()},
	}
	router := authRouter(svc)

	w := postJSON(t, router, "/register", gin.H{
		"nombre":   "Laura",
		"email":    "laura@test.local",
		"password": "Passw0rd!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CoachResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "laura@test.local", resp.Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	router := authRouter(&stubAuthService{})

	cases := []gin.H{
		{"email": "laura@test.local", "password": "Passw0rd!"},          // missing nombre
		{"nombre": "Laura", "email": "not-an-email", "password": "Passw0rd!"},
		{"nombre": "Laura", "email": "laura@test.local", "password": "short"},
	}
	for _, body := range cases {
		w := postJSON(t, router, "/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	router := authRouter(&stubAuthService{registerErr: service.ErrCoachAlreadyExists})

	w := postJSON(t, router, "/register", gin.H{
		"nombre":   "Laura",
		"email":    "laura@test.local",
		"password": "Passw0rd!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterWeakPassword(t *testing.T) {
	router := authRouter(&stubAuthService{registerErr: service.ErrWeakPassword})

	w := postJSON(t, router, "/register", gin.H{
		"nombre":   "Laura",
		"email":    "laura@test.local",
		"password": "alllowercase",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "header.payload.signature",
		loginCoach: &domain.Coach{ID: 7, Nombre: "Laura", Email: "laura@test.local"},
	}
	router := authRouter(svc)

	w := postJSON(t, router, "/login", gin.H{"email": "laura@test.local", "password": "Passw0rd!"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "header.payload.signature", resp.Token)
	assert.Equal(t, int64(7), resp.Coach.ID)
}

func TestLoginBadCredentials(t *testing.T) {
	router := authRouter(&stubAuthService{loginErr: service.ErrAuthenticationFailed})

	w := postJSON(t, router, "/login", gin.H{"email": "laura@test.local", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
