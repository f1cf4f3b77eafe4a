package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/email"
	"fittrack/backoffice/internal/repository"
)

// reminderWindow is how long a student stays quiet after a payment
// reminder before becoming eligible again.
const reminderWindow = 30 * 24 * time.Hour

// ReminderResult summarizes one payment-reminder run.
type ReminderResult struct {
	Due    int `json:"due"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// ReminderService runs the payment-reminder batch: one templated email per
// student whose billing date has passed, at most once per 30 days.
type ReminderService interface {
	Run(ctx context.Context) (*ReminderResult, error)
}

type reminderService struct {
	alumnoRepo       repository.AlumnoRepository
	notificationRepo repository.NotificationRepository
	sender           email.Sender
}

// NewReminderService creates a new instance of reminderService.
func NewReminderService(
	alumnoRepo repository.AlumnoRepository,
	notificationRepo repository.NotificationRepository,
	sender email.Sender,
) ReminderService {
	return &reminderService{
		alumnoRepo:       alumnoRepo,
		notificationRepo: notificationRepo,
		sender:           sender,
	}
}

// Run selects every student due for a reminder, sends the emails one by
// one (a failed send is logged and skipped), and stamps the successful
// ones in a single transaction at the end. Emails already delivered when
// the stamp fails will be re-sent on the next run; that gap is accepted.
func (s *reminderService) Run(ctx context.Context) (*ReminderResult, error) {
	if !s.sender.Configured() {
		return nil, ErrEmailNotConfigured
	}

	now := time.Now().UTC()
	targets, err := s.alumnoRepo.ListDueForReminder(ctx, now, now.Add(-reminderWindow))
	if err != nil {
		return nil, err
	}

	result := &ReminderResult{Due: len(targets)}
	notified := make([]int64, 0, len(targets))
	for _, t := range targets {
		msg, err := email.PaymentReminder(t.Alumno.Email, t.Alumno.Nombre, t.CoachNombre, now)
		if err != nil {
			log.WithError(err).WithField("alumno_id", t.Alumno.ID).Error("failed to render reminder")
			result.Failed++
			continue
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			log.WithError(err).WithField("alumno_id", t.Alumno.ID).Error("failed to send reminder")
			result.Failed++
			continue
		}
		notified = append(notified, t.Alumno.ID)
		result.Sent++

		// Leave an in-app trace for the coach. A failure here does not
		// undo the send.
		alumnoID := t.Alumno.ID
		if _, err := s.notificationRepo.Create(ctx, &domain.Notification{
			CoachID:  t.Alumno.CoachID,
			AlumnoID: &alumnoID,
			Tipo:     domain.NotificationPagoRecordado,
			Titulo:   "Recordatorio de Pago Enviado",
			Mensaje:  fmt.Sprintf("Se envió un recordatorio de pago a %s.", t.Alumno.Nombre),
		}); err != nil {
			log.WithError(err).WithField("alumno_id", t.Alumno.ID).Error("failed to record reminder notification")
		}
	}

	if len(notified) > 0 {
		if err := s.alumnoRepo.StampNotified(ctx, notified, now); err != nil {
			return result, err
		}
	}

	log.WithFields(log.Fields{
		"due": result.Due, "sent": result.Sent, "failed": result.Failed,
	}).Info("payment reminder run finished")
	return result, nil
}
