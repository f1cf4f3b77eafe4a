package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"fittrack/backoffice/internal/email"
	"fittrack/backoffice/internal/repository"
)

var (
	ErrEmailNotConfigured = errors.New("email service is not configured")
	ErrNoRecipients       = errors.New("no owned students match the given ids")
)

// BulkSendResult reports how a bulk email run went. Failed recipients are
// logged and skipped, never retried.
type BulkSendResult struct {
	Requested int `json:"solicitados"`
	Sent      int `json:"enviados"`
	Failed    int `json:"fallidos"`
}

// EmailService sends templated bulk emails to a coach's students.
type EmailService interface {
	SendQuotaIncrease(ctx context.Context, coachID int64, alumnoIDs []int64, newAmount float64, mensaje string) (*BulkSendResult, error)
	SendAbsenceNotice(ctx context.Context, coachID int64, alumnoIDs []int64, startDate, endDate, reason, mensaje string) (*BulkSendResult, error)
}

type emailService struct {
	coachRepo  repository.CoachRepository
	alumnoRepo repository.AlumnoRepository
	sender     email.Sender
}

// NewEmailService creates a new instance of emailService.
func NewEmailService(coachRepo repository.CoachRepository, alumnoRepo repository.AlumnoRepository, sender email.Sender) EmailService {
	return &emailService{
		coachRepo:  coachRepo,
		alumnoRepo: alumnoRepo,
		sender:     sender,
	}
}

// buildFn renders the message for one recipient.
type buildFn func(to, alumnoNombre string) (email.Message, error)

func (s *emailService) sendBulk(ctx context.Context, coachID int64, alumnoIDs []int64, build buildFn) (*BulkSendResult, error) {
	if !s.sender.Configured() {
		return nil, ErrEmailNotConfigured
	}
	alumnos, err := s.alumnoRepo.GetOwnedByIDs(ctx, alumnoIDs, coachID)
	if err != nil {
		return nil, err
	}
	if len(alumnos) == 0 {
		return nil, ErrNoRecipients
	}

	result := &BulkSendResult{Requested: len(alumnos)}
	for _, a := range alumnos {
		msg, err := build(a.Email, a.Nombre)
		if err != nil {
			log.WithError(err).WithField("alumno_id", a.ID).Error("failed to render email")
			result.Failed++
			continue
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			log.WithError(err).WithField("alumno_id", a.ID).Error("failed to send email")
			result.Failed++
			continue
		}
		result.Sent++
	}
	return result, nil
}

func (s *emailService) SendQuotaIncrease(ctx context.Context, coachID int64, alumnoIDs []int64, newAmount float64, mensaje string) (*BulkSendResult, error) {
	if newAmount <= 0 {
		return nil, fmt.Errorf("%w: nuevo_monto must be positive", ErrValidation)
	}
	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return s.sendBulk(ctx, coachID, alumnoIDs, func(to, alumnoNombre string) (email.Message, error) {
		return email.QuotaIncrease(to, alumnoNombre, coach.Nombre, newAmount, mensaje)
	})
}

func (s *emailService) SendAbsenceNotice(ctx context.Context, coachID int64, alumnoIDs []int64, startDate, endDate, reason, mensaje string) (*BulkSendResult, error) {
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: fecha_inicio and fecha_fin are required", ErrValidation)
	}
	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return s.sendBulk(ctx, coachID, alumnoIDs, func(to, alumnoNombre string) (email.Message, error) {
		return email.AbsenceNotice(to, alumnoNombre, coach.Nombre, startDate, endDate, reason, mensaje)
	})
}
