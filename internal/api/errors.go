package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fittrack/backoffice/internal/repository"
	"fittrack/backoffice/internal/service"
)

// handleServiceError maps service and repository errors onto HTTP
// responses. Anything unrecognized is logged with detail and reported
// as a generic 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, repository.ErrEmptySourceDay):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateActive):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidDia),
		errors.Is(err, service.ErrSameDay),
		errors.Is(err, service.ErrInvalidAltura),
		errors.Is(err, service.ErrInvalidPeso),
		errors.Is(err, service.ErrInvalidRecord),
		errors.Is(err, service.ErrEmailNotConfigured):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoRecipients):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.WithError(err).WithField("request_id", c.GetString(ContextRequestIDKey)).
			Error("unhandled service error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
