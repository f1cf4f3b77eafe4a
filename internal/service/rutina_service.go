package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

var (
	ErrInvalidDia = errors.New("dia must be between 1 and 7")
	ErrSameDay    = errors.New("source and target day must differ")
)

// templateSuffix is appended when saving a live routine or diet as a
// template, and stripped again when instantiating one.
const templateSuffix = " (Plantilla)"

// RutinaService manages routines, their exercises, day copies and the
// template workflows.
type RutinaService interface {
	Create(ctx context.Context, rutina *domain.Rutina, coachID int64) (*domain.Rutina, error)
	ListByAlumno(ctx context.Context, alumnoID, coachID int64) ([]domain.Rutina, error)
	Get(ctx context.Context, id, coachID int64) (*domain.Rutina, error)
	Update(ctx context.Context, rutina *domain.Rutina, coachID int64) (*domain.Rutina, error)
	Delete(ctx context.Context, id, coachID int64) error

	AddEjercicio(ctx context.Context, ejercicio *domain.Ejercicio, coachID int64) (*domain.Ejercicio, error)
	UpdateEjercicio(ctx context.Context, ejercicio *domain.Ejercicio, coachID int64) (*domain.Ejercicio, error)
	DeleteEjercicio(ctx context.Context, id, coachID int64) error

	CopyToAlumno(ctx context.Context, rutinaID, targetAlumnoID, coachID int64) (*domain.Rutina, error)
	CopyDay(ctx context.Context, rutinaID, coachID int64, sourceDay, targetDay int) (int, error)

	SaveAsTemplate(ctx context.Context, rutinaID, coachID int64) (*domain.RutinaPlantilla, error)
	CreatePlantilla(ctx context.Context, plantilla *domain.RutinaPlantilla) (*domain.RutinaPlantilla, error)
	ListPlantillas(ctx context.Context, coachID int64) ([]domain.RutinaPlantilla, error)
	CreateFromTemplate(ctx context.Context, plantillaID, alumnoID, coachID int64) (*domain.Rutina, error)
}

type rutinaService struct {
	rutinaRepo    repository.RutinaRepository
	plantillaRepo repository.RutinaPlantillaRepository
	alumnoRepo    repository.AlumnoRepository
}

// NewRutinaService creates a new instance of rutinaService.
func NewRutinaService(
	rutinaRepo repository.RutinaRepository,
	plantillaRepo repository.RutinaPlantillaRepository,
	alumnoRepo repository.AlumnoRepository,
) RutinaService {
	return &rutinaService{
		rutinaRepo:    rutinaRepo,
		plantillaRepo: plantillaRepo,
		alumnoRepo:    alumnoRepo,
	}
}

func validateEjercicio(e *domain.Ejercicio) error {
	if !domain.ValidDia(e.Dia) {
		return ErrInvalidDia
	}
	if e.Series < 1 || e.Repeticiones < 1 {
		return fmt.Errorf("%w: series and repeticiones must be at least 1", ErrValidation)
	}
	return nil
}

// Create stores a new routine. An assigned routine becomes the student's
// active one, retiring the previous active routine atomically. A routine
// without a student is stored standalone.
func (s *rutinaService) Create(ctx context.Context, rutina *domain.Rutina, coachID int64) (*domain.Rutina, error) {
	if rutina.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	if rutina.AlumnoID != nil {
		if _, err := s.alumnoRepo.GetByID(ctx, *rutina.AlumnoID, coachID); err != nil {
			return nil, err
		}
	}
	for i := range rutina.Ejercicios {
		if err := validateEjercicio(&rutina.Ejercicios[i]); err != nil {
			return nil, err
		}
	}
	rutina.Activa = true
	rutina.Eliminado = false
	id, err := s.rutinaRepo.Create(ctx, rutina)
	if err != nil {
		return nil, err
	}
	if rutina.AlumnoID == nil {
		// Standalone routines are not reachable through the owner-filtered
		// detail query, so return the object as stored.
		rutina.ID = id
		return rutina, nil
	}
	return s.rutinaRepo.GetByID(ctx, id, coachID)
}

func (s *rutinaService) ListByAlumno(ctx context.Context, alumnoID, coachID int64) ([]domain.Rutina, error) {
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}
	return s.rutinaRepo.GetByAlumnoID(ctx, alumnoID)
}

func (s *rutinaService) Get(ctx context.Context, id, coachID int64) (*domain.Rutina, error) {
	return s.rutinaRepo.GetByID(ctx, id, coachID)
}

func (s *rutinaService) Update(ctx context.Context, rutina *domain.Rutina, coachID int64) (*domain.Rutina, error) {
	existing, err := s.rutinaRepo.GetByID(ctx, rutina.ID, coachID)
	if err != nil {
		return nil, err
	}
	rutina.AlumnoID = existing.AlumnoID
	rutina.Eliminado = existing.Eliminado
	if err := s.rutinaRepo.Update(ctx, rutina); err != nil {
		return nil, err
	}
	return s.rutinaRepo.GetByID(ctx, rutina.ID, coachID)
}

func (s *rutinaService) Delete(ctx context.Context, id, coachID int64) error {
	return s.rutinaRepo.SoftDelete(ctx, id, coachID)
}

func (s *rutinaService) AddEjercicio(ctx context.Context, ejercicio *domain.Ejercicio, coachID int64) (*domain.Ejercicio, error) {
	if err := validateEjercicio(ejercicio); err != nil {
		return nil, err
	}
	if _, err := s.rutinaRepo.GetByID(ctx, ejercicio.RutinaID, coachID); err != nil {
		return nil, err
	}
	id, err := s.rutinaRepo.AddEjercicio(ctx, ejercicio)
	if err != nil {
		return nil, err
	}
	return s.rutinaRepo.GetEjercicioByID(ctx, id, coachID)
}

func (s *rutinaService) UpdateEjercicio(ctx context.Context, ejercicio *domain.Ejercicio, coachID int64) (*domain.Ejercicio, error) {
	if err := validateEjercicio(ejercicio); err != nil {
		return nil, err
	}
	existing, err := s.rutinaRepo.GetEjercicioByID(ctx, ejercicio.ID, coachID)
	if err != nil {
		return nil, err
	}
	ejercicio.RutinaID = existing.RutinaID
	if err := s.rutinaRepo.UpdateEjercicio(ctx, ejercicio); err != nil {
		return nil, err
	}
	return s.rutinaRepo.GetEjercicioByID(ctx, ejercicio.ID, coachID)
}

func (s *rutinaService) DeleteEjercicio(ctx context.Context, id, coachID int64) error {
	return s.rutinaRepo.DeleteEjercicio(ctx, id, coachID)
}

// CopyToAlumno clones a routine onto another student. The clone becomes
// the target's active routine; the source is untouched.
func (s *rutinaService) CopyToAlumno(ctx context.Context, rutinaID, targetAlumnoID, coachID int64) (*domain.Rutina, error) {
	source, err := s.rutinaRepo.GetByID(ctx, rutinaID, coachID)
	if err != nil {
		return nil, err
	}
	if _, err := s.alumnoRepo.GetByID(ctx, targetAlumnoID, coachID); err != nil {
		return nil, err
	}

	clone := &domain.Rutina{
		AlumnoID:             &targetAlumnoID,
		Nombre:               source.Nombre,
		FechaInicio:          source.FechaInicio,
		FechaVencimiento:     source.FechaVencimiento,
		Notas:                source.Notas,
		EntrenamientosSemana: source.EntrenamientosSemana,
		Activa:               true,
	}
	for _, e := range source.Ejercicios {
		clone.Ejercicios = append(clone.Ejercicios, domain.Ejercicio{
			EjercicioBaseID: e.EjercicioBaseID,
			Dia:             e.Dia,
			Series:          e.Series,
			Repeticiones:    e.Repeticiones,
			Peso:            e.Peso,
			Descanso:        e.Descanso,
			Notas:           e.Notas,
		})
	}
	id, err := s.rutinaRepo.Create(ctx, clone)
	if err != nil {
		return nil, err
	}
	return s.rutinaRepo.GetByID(ctx, id, coachID)
}

// CopyDay overwrites the target day's exercises with clones of the source
// day's ones.
func (s *rutinaService) CopyDay(ctx context.Context, rutinaID, coachID int64, sourceDay, targetDay int) (int, error) {
	if !domain.ValidDia(sourceDay) || !domain.ValidDia(targetDay) {
		return 0, ErrInvalidDia
	}
	if sourceDay == targetDay {
		return 0, ErrSameDay
	}
	if _, err := s.rutinaRepo.GetByID(ctx, rutinaID, coachID); err != nil {
		return 0, err
	}
	return s.rutinaRepo.CopyDay(ctx, rutinaID, sourceDay, targetDay)
}

// SaveAsTemplate snapshots a live routine into a coach-owned template.
func (s *rutinaService) SaveAsTemplate(ctx context.Context, rutinaID, coachID int64) (*domain.RutinaPlantilla, error) {
	source, err := s.rutinaRepo.GetByID(ctx, rutinaID, coachID)
	if err != nil {
		return nil, err
	}
	plantilla := &domain.RutinaPlantilla{
		CoachID:              coachID,
		Nombre:               source.Nombre + templateSuffix,
		Notas:                source.Notas,
		EntrenamientosSemana: source.EntrenamientosSemana,
	}
	for _, e := range source.Ejercicios {
		plantilla.Ejercicios = append(plantilla.Ejercicios, domain.EjercicioPlantilla{
			EjercicioBaseID: e.EjercicioBaseID,
			Dia:             e.Dia,
			Series:          e.Series,
			Repeticiones:    e.Repeticiones,
			Peso:            e.Peso,
			Descanso:        e.Descanso,
			Notas:           e.Notas,
		})
	}
	id, err := s.plantillaRepo.Create(ctx, plantilla)
	if err != nil {
		return nil, err
	}
	return s.plantillaRepo.GetByID(ctx, id, coachID)
}

func (s *rutinaService) CreatePlantilla(ctx context.Context, plantilla *domain.RutinaPlantilla) (*domain.RutinaPlantilla, error) {
	if plantilla.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	for i := range plantilla.Ejercicios {
		if !domain.ValidDia(plantilla.Ejercicios[i].Dia) {
			return nil, ErrInvalidDia
		}
	}
	id, err := s.plantillaRepo.Create(ctx, plantilla)
	if err != nil {
		return nil, err
	}
	return s.plantillaRepo.GetByID(ctx, id, plantilla.CoachID)
}

func (s *rutinaService) ListPlantillas(ctx context.Context, coachID int64) ([]domain.RutinaPlantilla, error) {
	return s.plantillaRepo.GetByCoachID(ctx, coachID)
}

// CreateFromTemplate instantiates a template onto a student, making the
// result the student's active routine.
func (s *rutinaService) CreateFromTemplate(ctx context.Context, plantillaID, alumnoID, coachID int64) (*domain.Rutina, error) {
	plantilla, err := s.plantillaRepo.GetByID(ctx, plantillaID, coachID)
	if err != nil {
		return nil, err
	}
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}

	rutina := &domain.Rutina{
		AlumnoID:             &alumnoID,
		Nombre:               strings.TrimSuffix(plantilla.Nombre, templateSuffix),
		Notas:                plantilla.Notas,
		EntrenamientosSemana: plantilla.EntrenamientosSemana,
		Activa:               true,
	}
	for _, e := range plantilla.Ejercicios {
		rutina.Ejercicios = append(rutina.Ejercicios, domain.Ejercicio{
			EjercicioBaseID: e.EjercicioBaseID,
			Dia:             e.Dia,
			Series:          e.Series,
			Repeticiones:    e.Repeticiones,
			Peso:            e.Peso,
			Descanso:        e.Descanso,
			Notas:           e.Notas,
		})
	}
	id, err := s.rutinaRepo.Create(ctx, rutina)
	if err != nil {
		return nil, err
	}
	return s.rutinaRepo.GetByID(ctx, id, coachID)
}
