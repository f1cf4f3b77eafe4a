package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

var (
	// ErrValidation wraps input validation failures that have no dedicated
	// sentinel, so the HTTP layer reports them as 400 with the message.
	ErrValidation = errors.New("validation failed")

	ErrInvalidAltura = errors.New("altura must be between 0.5 and 3.0 meters")
	ErrInvalidPeso   = errors.New("peso must be between 20 and 500 kg")
	ErrInvalidRecord = errors.New("ejercicio must be one of: press_banca, sentadilla, peso_muerto, dominadas")
)

// AlumnoDashboard aggregates everything the per-student dashboard shows.
type AlumnoDashboard struct {
	Alumno       domain.Alumno       `json:"alumno"`
	Edad         int                 `json:"edad"`
	PesoActual   *float64            `json:"peso_actual,omitempty"`
	Pesos        []domain.PesoAlumno `json:"pesos"`
	Rutinas      []domain.Rutina     `json:"rutinas"`
	DietaActiva  *domain.Dieta       `json:"dieta_activa,omitempty"`
	LesionesVivo []domain.Lesion     `json:"lesiones_activas"`
}

// AlumnoService manages students, their weight history and personal records.
type AlumnoService interface {
	Create(ctx context.Context, alumno *domain.Alumno) (*domain.Alumno, error)
	List(ctx context.Context, coachID int64) ([]domain.Alumno, error)
	Get(ctx context.Context, id, coachID int64) (*domain.Alumno, error)
	Update(ctx context.Context, alumno *domain.Alumno, coachID int64) (*domain.Alumno, error)
	Delete(ctx context.Context, id, coachID int64) error
	Dashboard(ctx context.Context, id, coachID int64) (*AlumnoDashboard, error)

	AddPeso(ctx context.Context, alumnoID, coachID int64, peso float64, fecha time.Time) (*domain.PesoAlumno, error)
	ListPesos(ctx context.Context, alumnoID, coachID int64) ([]domain.PesoAlumno, error)
	UpdatePeso(ctx context.Context, id, coachID int64, peso float64, fecha *time.Time) (*domain.PesoAlumno, error)
	DeletePeso(ctx context.Context, id, coachID int64) error

	AddRecord(ctx context.Context, record *domain.PersonalRecord, coachID int64) (*domain.PersonalRecord, error)
	ListRecords(ctx context.Context, alumnoID, coachID int64) ([]domain.PersonalRecord, error)
	RecordChart(ctx context.Context, alumnoID, coachID int64) (map[domain.RecordEjercicio][]domain.PersonalRecord, error)
	DeleteRecord(ctx context.Context, id, coachID int64) error
}

type alumnoService struct {
	alumnoRepo repository.AlumnoRepository
	rutinaRepo repository.RutinaRepository
	dietaRepo  repository.DietaRepository
	lesionRepo repository.LesionRepository
	recordRepo repository.RecordRepository
}

// NewAlumnoService creates a new instance of alumnoService.
func NewAlumnoService(
	alumnoRepo repository.AlumnoRepository,
	rutinaRepo repository.RutinaRepository,
	dietaRepo repository.DietaRepository,
	lesionRepo repository.LesionRepository,
	recordRepo repository.RecordRepository,
) AlumnoService {
	return &alumnoService{
		alumnoRepo: alumnoRepo,
		rutinaRepo: rutinaRepo,
		dietaRepo:  dietaRepo,
		lesionRepo: lesionRepo,
		recordRepo: recordRepo,
	}
}

func validateAltura(altura float64) error {
	if altura < 0.5 || altura > 3.0 {
		return ErrInvalidAltura
	}
	return nil
}

func validatePesoKg(peso float64) error {
	if peso < 20 || peso > 500 {
		return ErrInvalidPeso
	}
	return nil
}

func (s *alumnoService) Create(ctx context.Context, alumno *domain.Alumno) (*domain.Alumno, error) {
	if alumno.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", ErrValidation)
	}
	if err := validateAltura(alumno.Altura); err != nil {
		return nil, err
	}
	id, err := s.alumnoRepo.Create(ctx, alumno)
	if err != nil {
		return nil, err
	}
	alumno.ID = id
	return alumno, nil
}

func (s *alumnoService) List(ctx context.Context, coachID int64) ([]domain.Alumno, error) {
	return s.alumnoRepo.GetByCoachID(ctx, coachID)
}

func (s *alumnoService) Get(ctx context.Context, id, coachID int64) (*domain.Alumno, error) {
	return s.alumnoRepo.GetByID(ctx, id, coachID)
}

func (s *alumnoService) Update(ctx context.Context, alumno *domain.Alumno, coachID int64) (*domain.Alumno, error) {
	if err := validateAltura(alumno.Altura); err != nil {
		return nil, err
	}
	// Confirm ownership before touching the row.
	existing, err := s.alumnoRepo.GetByID(ctx, alumno.ID, coachID)
	if err != nil {
		return nil, err
	}
	alumno.CoachID = existing.CoachID
	alumno.CreadoEn = existing.CreadoEn
	if err := s.alumnoRepo.Update(ctx, alumno); err != nil {
		return nil, err
	}
	return alumno, nil
}

func (s *alumnoService) Delete(ctx context.Context, id, coachID int64) error {
	return s.alumnoRepo.Delete(ctx, id, coachID)
}

// Dashboard builds the per-student overview: age, weight trajectory, the
// student's routines, the active diet and any active injuries.
func (s *alumnoService) Dashboard(ctx context.Context, id, coachID int64) (*AlumnoDashboard, error) {
	alumno, err := s.alumnoRepo.GetByID(ctx, id, coachID)
	if err != nil {
		return nil, err
	}

	pesos, err := s.alumnoRepo.GetPesos(ctx, id)
	if err != nil {
		return nil, err
	}
	rutinas, err := s.rutinaRepo.GetByAlumnoID(ctx, id)
	if err != nil {
		return nil, err
	}
	dietas, err := s.dietaRepo.GetByAlumnoID(ctx, id)
	if err != nil {
		return nil, err
	}
	lesiones, err := s.lesionRepo.GetByAlumnoID(ctx, id)
	if err != nil {
		return nil, err
	}

	dash := &AlumnoDashboard{
		Alumno:  *alumno,
		Edad:    alumno.Edad(time.Now()),
		Pesos:   pesos,
		Rutinas: rutinas,
	}
	if len(pesos) > 0 {
		// Weight history comes back ordered by fecha ascending.
		last := pesos[len(pesos)-1].Peso
		dash.PesoActual = &last
	}
	for i := range dietas {
		if dietas[i].Activa {
			dash.DietaActiva = &dietas[i]
			break
		}
	}
	dash.LesionesVivo = []domain.Lesion{}
	for _, l := range lesiones {
		if l.Activa {
			dash.LesionesVivo = append(dash.LesionesVivo, l)
		}
	}
	return dash, nil
}

func (s *alumnoService) AddPeso(ctx context.Context, alumnoID, coachID int64, peso float64, fecha time.Time) (*domain.PesoAlumno, error) {
	if err := validatePesoKg(peso); err != nil {
		return nil, err
	}
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}
	if fecha.IsZero() {
		fecha = time.Now().UTC()
	}
	entry := &domain.PesoAlumno{AlumnoID: alumnoID, Peso: peso, Fecha: fecha}
	id, err := s.alumnoRepo.AddPeso(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *alumnoService) ListPesos(ctx context.Context, alumnoID, coachID int64) ([]domain.PesoAlumno, error) {
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}
	return s.alumnoRepo.GetPesos(ctx, alumnoID)
}

func (s *alumnoService) UpdatePeso(ctx context.Context, id, coachID int64, peso float64, fecha *time.Time) (*domain.PesoAlumno, error) {
	if err := validatePesoKg(peso); err != nil {
		return nil, err
	}
	entry, err := s.alumnoRepo.GetPesoByID(ctx, id, coachID)
	if err != nil {
		return nil, err
	}
	entry.Peso = peso
	if fecha != nil {
		entry.Fecha = *fecha
	}
	if err := s.alumnoRepo.UpdatePeso(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *alumnoService) DeletePeso(ctx context.Context, id, coachID int64) error {
	return s.alumnoRepo.DeletePeso(ctx, id, coachID)
}

func (s *alumnoService) AddRecord(ctx context.Context, record *domain.PersonalRecord, coachID int64) (*domain.PersonalRecord, error) {
	if !domain.ValidRecordEjercicio(record.Ejercicio) {
		return nil, ErrInvalidRecord
	}
	if err := validatePesoKg(record.Peso); err != nil {
		return nil, err
	}
	if record.Repeticiones < 1 {
		return nil, fmt.Errorf("%w: repeticiones must be at least 1", ErrValidation)
	}
	if _, err := s.alumnoRepo.GetByID(ctx, record.AlumnoID, coachID); err != nil {
		return nil, err
	}
	id, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

func (s *alumnoService) ListRecords(ctx context.Context, alumnoID, coachID int64) ([]domain.PersonalRecord, error) {
	if _, err := s.alumnoRepo.GetByID(ctx, alumnoID, coachID); err != nil {
		return nil, err
	}
	return s.recordRepo.GetByAlumnoID(ctx, alumnoID)
}

// RecordChart groups a student's PR history by lift, ready for charting.
// Every tracked lift is present in the result, empty slice when no entries.
func (s *alumnoService) RecordChart(ctx context.Context, alumnoID, coachID int64) (map[domain.RecordEjercicio][]domain.PersonalRecord, error) {
	records, err := s.ListRecords(ctx, alumnoID, coachID)
	if err != nil {
		return nil, err
	}
	chart := map[domain.RecordEjercicio][]domain.PersonalRecord{
		domain.RecordPressBanca: {},
		domain.RecordSentadilla: {},
		domain.RecordPesoMuerto: {},
		domain.RecordDominadas:  {},
	}
	for _, r := range records {
		chart[r.Ejercicio] = append(chart[r.Ejercicio], r)
	}
	return chart, nil
}

func (s *alumnoService) DeleteRecord(ctx context.Context, id, coachID int64) error {
	return s.recordRepo.Delete(ctx, id, coachID)
}
