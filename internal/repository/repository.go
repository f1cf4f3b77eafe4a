package repository

import (
	"context"
	"time"

	"fittrack/backoffice/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	// ErrEmptySourceDay is returned by CopyDay when the source day has no
	// children to copy.
	ErrEmptySourceDay = RepositoryError("no content for source day")
	// ErrDuplicateActive is returned when an insert would violate the
	// one-active-per-student constraint.
	ErrDuplicateActive = RepositoryError("student already has an active instance")
	// ErrEmailTaken is returned when the coaches email unique index
	// rejects an insert.
	ErrEmailTaken = RepositoryError("coach with this email already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ReminderTarget is one student due for a payment reminder, together with
// the owning coach's name for the email template.
type ReminderTarget struct {
	Alumno      domain.Alumno
	CoachNombre string
}

// Ownership note: every read or mutation below that takes a coachID filters
// through the join chain up to the owning coach. A resource that exists but
// belongs to another coach is reported as ErrNotFound, exactly like a
// resource that does not exist.

// CoachRepository defines the interface for coach account data.
type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Coach, error)
	GetByID(ctx context.Context, id int64) (*domain.Coach, error)
}

// AlumnoRepository defines the interface for student data, weight history
// and the payment-reminder selection.
type AlumnoRepository interface {
	Create(ctx context.Context, alumno *domain.Alumno) (int64, error)
	GetByCoachID(ctx context.Context, coachID int64) ([]domain.Alumno, error)
	GetByID(ctx context.Context, id, coachID int64) (*domain.Alumno, error)
	GetOwnedByIDs(ctx context.Context, ids []int64, coachID int64) ([]domain.Alumno, error)
	Update(ctx context.Context, alumno *domain.Alumno) error
	Delete(ctx context.Context, id, coachID int64) error

	CountByCoachID(ctx context.Context, coachID int64) (int, error)
	Recent(ctx context.Context, coachID int64, limit int) ([]domain.Alumno, error)

	AddPeso(ctx context.Context, peso *domain.PesoAlumno) (int64, error)
	GetPesos(ctx context.Context, alumnoID int64) ([]domain.PesoAlumno, error)
	GetPesoByID(ctx context.Context, id, coachID int64) (*domain.PesoAlumno, error)
	UpdatePeso(ctx context.Context, peso *domain.PesoAlumno) error
	DeletePeso(ctx context.Context, id, coachID int64) error

	// ListDueForReminder selects students with a billing date in the past,
	// notifications enabled, and no reminder within the 30-day window
	// ending at cutoff.
	ListDueForReminder(ctx context.Context, now, cutoff time.Time) ([]ReminderTarget, error)
	// StampNotified sets ultima_notificacion = now for all given students
	// in one transaction.
	StampNotified(ctx context.Context, alumnoIDs []int64, now time.Time) error
}

// RutinaRepository defines the interface for routines and their exercises.
type RutinaRepository interface {
	// Create inserts the routine and any Ejercicios it carries in one
	// transaction. For an assigned routine the student's prior active,
	// non-deleted routine is retired (eliminado=true, activa=false) in the
	// same transaction.
	Create(ctx context.Context, rutina *domain.Rutina) (int64, error)
	GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.Rutina, error)
	GetByID(ctx context.Context, id, coachID int64) (*domain.Rutina, error)
	Update(ctx context.Context, rutina *domain.Rutina) error
	SoftDelete(ctx context.Context, id, coachID int64) error
	CountActivasByCoachID(ctx context.Context, coachID int64) (int, error)

	AddEjercicio(ctx context.Context, ejercicio *domain.Ejercicio) (int64, error)
	GetEjercicioByID(ctx context.Context, id, coachID int64) (*domain.Ejercicio, error)
	UpdateEjercicio(ctx context.Context, ejercicio *domain.Ejercicio) error
	DeleteEjercicio(ctx context.Context, id, coachID int64) error

	// CopyDay deletes the target day's exercises and clones the source
	// day's ones in a single transaction. Returns the number of cloned
	// rows, or ErrEmptySourceDay when the source day is empty.
	CopyDay(ctx context.Context, rutinaID int64, sourceDay, targetDay int) (int, error)
}

// RutinaPlantillaRepository defines the interface for routine templates.
type RutinaPlantillaRepository interface {
	// Create inserts the template and its exercises in one transaction.
	Create(ctx context.Context, plantilla *domain.RutinaPlantilla) (int64, error)
	GetByCoachID(ctx context.Context, coachID int64) ([]domain.RutinaPlantilla, error)
	GetByID(ctx context.Context, id, coachID int64) (*domain.RutinaPlantilla, error)
}

// DietaRepository defines the interface for diets, meals and food lines.
type DietaRepository interface {
	// Create inserts the diet and any Comidas (with food lines) it carries
	// in one transaction, retiring the student's prior active diet.
	Create(ctx context.Context, dieta *domain.Dieta) (int64, error)
	GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.Dieta, error)
	GetByID(ctx context.Context, id, coachID int64) (*domain.Dieta, error)
	Update(ctx context.Context, dieta *domain.Dieta) error
	SoftDelete(ctx context.Context, id, coachID int64) error

	AddComida(ctx context.Context, comida *domain.Comida) (int64, error)
	GetComidaByID(ctx context.Context, id, coachID int64) (*domain.Comida, error)
	UpdateComida(ctx context.Context, comida *domain.Comida) error
	DeleteComida(ctx context.Context, id, coachID int64) error

	AddComidaAlimento(ctx context.Context, linea *domain.ComidaAlimento) (int64, error)
	DeleteComidaAlimento(ctx context.Context, id, coachID int64) error

	// CopyDay mirrors RutinaRepository.CopyDay for meals, cloning each
	// meal's food lines as well.
	CopyDay(ctx context.Context, dietaID int64, sourceDay, targetDay int) (int, error)
}

// DietaPlantillaRepository defines the interface for diet templates.
type DietaPlantillaRepository interface {
	// Create inserts the template with its meals and food lines in one
	// transaction.
	Create(ctx context.Context, plantilla *domain.DietaPlantilla) (int64, error)
	GetByCoachID(ctx context.Context, coachID int64) ([]domain.DietaPlantilla, error)
	GetByID(ctx context.Context, id, coachID int64) (*domain.DietaPlantilla, error)
}

// CatalogRepository defines the interface for the shared exercise and food
// catalogs. Catalog entries are not owned by a coach.
type CatalogRepository interface {
	ListEjerciciosBase(ctx context.Context) ([]domain.EjercicioBase, error)
	SearchEjerciciosBase(ctx context.Context, query string, limit int) ([]domain.EjercicioBase, error)
	// GetOrCreateEjercicioBase returns the existing entry matching the
	// name case-insensitively, or inserts a new one.
	GetOrCreateEjercicioBase(ctx context.Context, ejercicio *domain.EjercicioBase) (*domain.EjercicioBase, error)

	ListAlimentos(ctx context.Context) ([]domain.Alimento, error)
	SearchAlimentos(ctx context.Context, query string, limit int) ([]domain.Alimento, error)
	GetOrCreateAlimento(ctx context.Context, alimento *domain.Alimento) (*domain.Alimento, error)
}

// RecordRepository defines the interface for personal records.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.PersonalRecord) (int64, error)
	GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.PersonalRecord, error)
	Delete(ctx context.Context, id, coachID int64) error
}

// NotificationRepository defines the interface for coach notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (int64, error)
	GetByCoachID(ctx context.Context, coachID int64) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, coachID int64) (int, error)
	MarkRead(ctx context.Context, id, coachID int64) error
	Delete(ctx context.Context, id, coachID int64) error
}

// LesionRepository defines the interface for injury records.
type LesionRepository interface {
	Create(ctx context.Context, lesion *domain.Lesion) (int64, error)
	GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.Lesion, error)
	GetByID(ctx context.Context, id, coachID int64) (*domain.Lesion, error)
	Update(ctx context.Context, lesion *domain.Lesion) error
	Delete(ctx context.Context, id, coachID int64) error
}
