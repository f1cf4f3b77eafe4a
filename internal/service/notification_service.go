package service

import (
	"context"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// NotificationService reads and manages in-app notices for a coach.
// Notices are produced by the background workflows, not over HTTP.
type NotificationService interface {
	List(ctx context.Context, coachID int64) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, coachID int64) (int, error)
	MarkRead(ctx context.Context, id, coachID int64) error
	Delete(ctx context.Context, id, coachID int64) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(ctx context.Context, coachID int64) ([]domain.Notification, error) {
	return s.notificationRepo.GetByCoachID(ctx, coachID)
}

func (s *notificationService) UnreadCount(ctx context.Context, coachID int64) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, coachID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, coachID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, coachID)
}

func (s *notificationService) Delete(ctx context.Context, id, coachID int64) error {
	return s.notificationRepo.Delete(ctx, id, coachID)
}
