package service

import (
	"context"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

const recentAlumnosLimit = 5

// CoachDashboard is the coach-level overview: totals plus the most
// recently added students.
type CoachDashboard struct {
	TotalAlumnos         int             `json:"total_alumnos"`
	TotalRutinasActivas  int             `json:"total_rutinas_activas"`
	NotificacionesUnread int             `json:"notificaciones_sin_leer"`
	AlumnosRecientes     []domain.Alumno `json:"alumnos_recientes"`
}

// DashboardService builds the coach dashboard.
type DashboardService interface {
	Overview(ctx context.Context, coachID int64) (*CoachDashboard, error)
}

type dashboardService struct {
	alumnoRepo       repository.AlumnoRepository
	rutinaRepo       repository.RutinaRepository
	notificationRepo repository.NotificationRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(
	alumnoRepo repository.AlumnoRepository,
	rutinaRepo repository.RutinaRepository,
	notificationRepo repository.NotificationRepository,
) DashboardService {
	return &dashboardService{
		alumnoRepo:       alumnoRepo,
		rutinaRepo:       rutinaRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *dashboardService) Overview(ctx context.Context, coachID int64) (*CoachDashboard, error) {
	totalAlumnos, err := s.alumnoRepo.CountByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	totalRutinas, err := s.rutinaRepo.CountActivasByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.UnreadCount(ctx, coachID)
	if err != nil {
		return nil, err
	}
	recientes, err := s.alumnoRepo.Recent(ctx, coachID, recentAlumnosLimit)
	if err != nil {
		return nil, err
	}
	return &CoachDashboard{
		TotalAlumnos:         totalAlumnos,
		TotalRutinasActivas:  totalRutinas,
		NotificacionesUnread: unread,
		AlumnosRecientes:     recientes,
	}, nil
}
