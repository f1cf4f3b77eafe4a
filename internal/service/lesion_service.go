package service

import (
	"context"
	"fmt"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// LesionService manages student injury records.
type LesionService interface {
	Create(ctx context.Context, lesion *domain.Lesion, coachID int64) (*domain.Lesion, error)
	ListByAlumno(ctx context.Context, alumnoID, coachID int64) ([]domain.Lesion, error)
	Update(ctx context.Context, lesion *domain.Lesion, coachID int64) (*domain.Lesion, error)
	Delete(ctx context.Context, id, coachID int64) error
}

type lesionService struct {
	lesionRepo repository.LesionRepository
	alumnoRepo repository.AlumnoRepository
}

// NewLesionService creates a new instance of lesionService.
func NewLesionService(lesionRepo repository.LesionRepository, alumnoRepo repository.AlumnoRepository) LesionService {
	return &lesionService{lesionRepo: lesionRepo, alumnoRepo: alumnoRepo}
}

func (s *lesionService) Create(ctx context.Context, lesion *domain.Lesion, coachID int64) (*domain.Lesion, error) {
	if lesion.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	if _, err := s.alumnoRepo.GetByID(ctx, lesion.AlumnoID, coachID); err != nil {
		return nil, err
	}
	id, err := s.lesionRepo.Create(ctx, lesion)
	if err != nil {
		return nil, err
	}
	lesion.ID = id
	return lesion, nil
}

func (s *lesionService) ListByAlumno(ctx context.Context, alumnoID, coachID int64) ([]domain.Lesion, error) {
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}
	return s.lesionRepo.GetByAlumnoID(ctx, alumnoID)
}

func (s *lesionService) Update(ctx context.Context, lesion *domain.Lesion, coachID int64) (*domain.Lesion, error) {
	existing, err := s.lesionRepo.GetByID(ctx, lesion.ID, coachID)
	if err != nil {
		return nil, err
	}
	lesion.AlumnoID = existing.AlumnoID
	lesion.CreadaEn = existing.CreadaEn
	if err := s.lesionRepo.Update(ctx, lesion); err != nil {
		return nil, err
	}
	return lesion, nil
}

func (s *lesionService) Delete(ctx context.Context, id, coachID int64) error {
	return s.lesionRepo.Delete(ctx, id, coachID)
}
