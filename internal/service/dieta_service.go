package service

import (
	"context"
	"fmt"
	"strings"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// DietaService manages diets, their meals and food lines, day copies and
// the diet template workflows.
type DietaService interface {
	Create(ctx context.Context, dieta *domain.Dieta, coachID int64) (*domain.Dieta, error)
	ListByAlumno(ctx context.Context, alumnoID, coachID int64) ([]domain.Dieta, error)
	Get(ctx context.Context, id, coachID int64) (*domain.Dieta, error)
	Update(ctx context.Context, dieta *domain.Dieta, coachID int64) (*domain.Dieta, error)
	Delete(ctx context.Context, id, coachID int64) error

	AddComida(ctx context.Context, comida *domain.Comida, coachID int64) (*domain.Comida, error)
	UpdateComida(ctx context.Context, comida *domain.Comida, coachID int64) (*domain.Comida, error)
	DeleteComida(ctx context.Context, id, coachID int64) error

	AddComidaAlimento(ctx context.Context, comidaID, coachID int64, alimentoID int64, cantidadGramos float64) (*domain.ComidaAlimento, error)
	DeleteComidaAlimento(ctx context.Context, id, coachID int64) error

	CopyDay(ctx context.Context, dietaID, coachID int64, sourceDay, targetDay int) (int, error)

	SaveAsTemplate(ctx context.Context, dietaID, coachID int64) (*domain.DietaPlantilla, error)
	ListPlantillas(ctx context.Context, coachID int64) ([]domain.DietaPlantilla, error)
	CreateFromTemplate(ctx context.Context, plantillaID, alumnoID, coachID int64) (*domain.Dieta, error)
}

type dietaService struct {
	dietaRepo     repository.DietaRepository
	plantillaRepo repository.DietaPlantillaRepository
	alumnoRepo    repository.AlumnoRepository
}

// NewDietaService creates a new instance of dietaService.
func NewDietaService(
	dietaRepo repository.DietaRepository,
	plantillaRepo repository.DietaPlantillaRepository,
	alumnoRepo repository.AlumnoRepository,
) DietaService {
	return &dietaService{
		dietaRepo:     dietaRepo,
		plantillaRepo: plantillaRepo,
		alumnoRepo:    alumnoRepo,
	}
}

// Create stores a new diet as the student's active one, retiring the
// previous active diet atomically.
func (s *dietaService) Create(ctx context.Context, dieta *domain.Dieta, coachID int64) (*domain.Dieta, error) {
	if dieta.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	if _, err := s.alumnoRepo.GetByID(ctx, dieta.AlumnoID, coachID); err != nil {
		return nil, err
	}
	for i := range dieta.Comidas {
		if !domain.ValidDia(dieta.Comidas[i].Dia) {
			return nil, ErrInvalidDia
		}
	}
	dieta.Activa = true
	dieta.Eliminado = false
	id, err := s.dietaRepo.Create(ctx, dieta)
	if err != nil {
		return nil, err
	}
	return s.dietaRepo.GetByID(ctx, id, coachID)
}

func (s *dietaService) ListByAlumno(ctx context.Context, alumnoID, coachID int64) ([]domain.Dieta, error) {
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}
	return s.dietaRepo.GetByAlumnoID(ctx, alumnoID)
}

func (s *dietaService) Get(ctx context.Context, id, coachID int64) (*domain.Dieta, error) {
	return s.dietaRepo.GetByID(ctx, id, coachID)
}

func (s *dietaService) Update(ctx context.Context, dieta *domain.Dieta, coachID int64) (*domain.Dieta, error) {
	existing, err := s.dietaRepo.GetByID(ctx, dieta.ID, coachID)
	if err != nil {
		return nil, err
	}
	dieta.AlumnoID = existing.AlumnoID
	dieta.Eliminado = existing.Eliminado
	if err := s.dietaRepo.Update(ctx, dieta); err != nil {
		return nil, err
	}
	return s.dietaRepo.GetByID(ctx, dieta.ID, coachID)
}

func (s *dietaService) Delete(ctx context.Context, id, coachID int64) error {
	return s.dietaRepo.SoftDelete(ctx, id, coachID)
}

func (s *dietaService) AddComida(ctx context.Context, comida *domain.Comida, coachID int64) (*domain.Comida, error) {
	if comida.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	if !domain.ValidDia(comida.Dia) {
		return nil, ErrInvalidDia
	}
	if _, err := s.dietaRepo.GetByID(ctx, comida.DietaID, coachID); err != nil {
		return nil, err
	}
	id, err := s.dietaRepo.AddComida(ctx, comida)
	if err != nil {
		return nil, err
	}
	return s.dietaRepo.GetComidaByID(ctx, id, coachID)
}

func (s *dietaService) UpdateComida(ctx context.Context, comida *domain.Comida, coachID int64) (*domain.Comida, error) {
	if !domain.ValidDia(comida.Dia) {
		return nil, ErrInvalidDia
	}
	existing, err := s.dietaRepo.GetComidaByID(ctx, comida.ID, coachID)
	if err != nil {
		return nil, err
	}
	comida.DietaID = existing.DietaID
	if err := s.dietaRepo.UpdateComida(ctx, comida); err != nil {
		return nil, err
	}
	return s.dietaRepo.GetComidaByID(ctx, comida.ID, coachID)
}

func (s *dietaService) DeleteComida(ctx context.Context, id, coachID int64) error {
	return s.dietaRepo.DeleteComida(ctx, id, coachID)
}

func (s *dietaService) AddComidaAlimento(ctx context.Context, comidaID, coachID int64, alimentoID int64, cantidadGramos float64) (*domain.ComidaAlimento, error) {
	if cantidadGramos <= 0 {
		return nil, fmt.Errorf("%w: cantidad_gramos must be positive", ErrValidation)
	}
	if _, err := s.dietaRepo.GetComidaByID(ctx, comidaID, coachID); err != nil {
		return nil, err
	}
	linea := &domain.ComidaAlimento{
		ComidaID:       comidaID,
		AlimentoID:     alimentoID,
		CantidadGramos: cantidadGramos,
	}
	id, err := s.dietaRepo.AddComidaAlimento(ctx, linea)
	if err != nil {
		return nil, err
	}
	linea.ID = id
	return linea, nil
}

func (s *dietaService) DeleteComidaAlimento(ctx context.Context, id, coachID int64) error {
	return s.dietaRepo.DeleteComidaAlimento(ctx, id, coachID)
}

// CopyDay overwrites the target day's meals (and their food lines) with
// clones of the source day's ones.
func (s *dietaService) CopyDay(ctx context.Context, dietaID, coachID int64, sourceDay, targetDay int) (int, error) {
	if !domain.ValidDia(sourceDay) || !domain.ValidDia(targetDay) {
		return 0, ErrInvalidDia
	}
	if sourceDay == targetDay {
		return 0, ErrSameDay
	}
	if _, err := s.dietaRepo.GetByID(ctx, dietaID, coachID); err != nil {
		return 0, err
	}
	return s.dietaRepo.CopyDay(ctx, dietaID, sourceDay, targetDay)
}

// SaveAsTemplate snapshots a live diet into a coach-owned template.
func (s *dietaService) SaveAsTemplate(ctx context.Context, dietaID, coachID int64) (*domain.DietaPlantilla, error) {
	source, err := s.dietaRepo.GetByID(ctx, dietaID, coachID)
	if err != nil {
		return nil, err
	}
	plantilla := &domain.DietaPlantilla{
		CoachID: coachID,
		Nombre:  source.Nombre + templateSuffix,
		Notas:   source.Notas,
	}
	for _, c := range source.Comidas {
		pc := domain.ComidaPlantilla{
			Nombre: c.Nombre,
			Orden:  c.Orden,
			Dia:    c.Dia,
		}
		for _, a := range c.Alimentos {
			pc.Alimentos = append(pc.Alimentos, domain.ComidaPlantillaAlimento{
				AlimentoID:     a.AlimentoID,
				CantidadGramos: a.CantidadGramos,
			})
		}
		plantilla.Comidas = append(plantilla.Comidas, pc)
	}
	id, err := s.plantillaRepo.Create(ctx, plantilla)
	if err != nil {
		return nil, err
	}
	return s.plantillaRepo.GetByID(ctx, id, coachID)
}

func (s *dietaService) ListPlantillas(ctx context.Context, coachID int64) ([]domain.DietaPlantilla, error) {
	return s.plantillaRepo.GetByCoachID(ctx, coachID)
}

// CreateFromTemplate instantiates a diet template onto a student, making
// the result the student's active diet.
func (s *dietaService) CreateFromTemplate(ctx context.Context, plantillaID, alumnoID, coachID int64) (*domain.Dieta, error) {
	plantilla, err := s.plantillaRepo.GetByID(ctx, plantillaID, coachID)
	if err != nil {
		return nil, err
	}
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}

	dieta := &domain.Dieta{
		AlumnoID: alumnoID,
		Nombre:   strings.TrimSuffix(plantilla.Nombre, templateSuffix),
		Notas:    plantilla.Notas,
		Activa:   true,
	}
	for _, c := range plantilla.Comidas {
		comida := domain.Comida{
			Nombre: c.Nombre,
			Orden:  c.Orden,
			Dia:    c.Dia,
		}
		for _, a := range c.Alimentos {
			comida.Alimentos = append(comida.Alimentos, domain.ComidaAlimento{
				AlimentoID:     a.AlimentoID,
				CantidadGramos: a.CantidadGramos,
			})
		}
		dieta.Comidas = append(dieta.Comidas, comida)
	}
	id, err := s.dietaRepo.Create(ctx, dieta)
	if err != nil {
		return nil, err
	}
	return s.dietaRepo.GetByID(ctx, id, coachID)
}
