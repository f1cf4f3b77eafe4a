package domain

import "time"

// Day indexes tag which weekday an exercise or meal belongs to.
const (
	MinDia = 1
	MaxDia = 7
)

// ValidDia reports whether d is a usable weekday index.
func ValidDia(d int) bool {
	return d >= MinDia && d <= MaxDia
}

// Rutina is a workout routine. At most one routine per student may be
// active and not deleted at any time; creating a new one retires the
// previous active routine. A nil AlumnoID means a standalone routine
// not assigned to any student.
type Rutina struct {
	ID                   int64      `json:"id"`
	AlumnoID             *int64     `json:"alumno_id,omitempty"`
	Nombre               string     `json:"nombre"`
	FechaInicio          *time.Time `json:"fecha_inicio,omitempty"`
	FechaVencimiento     *time.Time `json:"fecha_vencimiento,omitempty"`
	Notas                string     `json:"notas"`
	EntrenamientosSemana int        `json:"entrenamientos_semana"`
	Activa               bool       `json:"activa"`
	Eliminado            bool       `json:"eliminado"`

	Ejercicios []Ejercicio `json:"ejercicios,omitempty"`
}

// EjercicioBase is a reusable catalog entry (exercise name + muscle group).
type EjercicioBase struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"` // unique
	Categoria string    `json:"categoria"`
	CreadoEn  time.Time `json:"creado_en"`
}

// Ejercicio is one exercise slot inside a routine, tagged with the
// weekday it belongs to.
type Ejercicio struct {
	ID              int64    `json:"id"`
	RutinaID        int64    `json:"rutina_id"`
	EjercicioBaseID int64    `json:"ejercicio_base_id"`
	Dia             int      `json:"dia"`
	Series          int      `json:"series"`
	Repeticiones    int      `json:"repeticiones"`
	Peso            *float64 `json:"peso,omitempty"` // kg
	Descanso        int      `json:"descanso"`       // seconds
	Notas           string   `json:"notas,omitempty"`

	EjercicioBase *EjercicioBase `json:"ejercicio_base,omitempty"`
}

// RutinaPlantilla is a coach-owned, student-independent routine used as
// a copy source.
type RutinaPlantilla struct {
	ID                   int64  `json:"id"`
	CoachID              int64  `json:"coach_id"`
	Nombre               string `json:"nombre"`
	Notas                string `json:"notas"`
	EntrenamientosSemana int    `json:"entrenamientos_semana"`

	Ejercicios []EjercicioPlantilla `json:"ejercicios,omitempty"`
}

// EjercicioPlantilla mirrors Ejercicio for template routines.
type EjercicioPlantilla struct {
	ID                int64    `json:"id"`
	RutinaPlantillaID int64    `json:"rutina_plantilla_id"`
	EjercicioBaseID   int64    `json:"ejercicio_base_id"`
	Dia               int      `json:"dia"`
	Series            int      `json:"series"`
	Repeticiones      int      `json:"repeticiones"`
	Peso              *float64 `json:"peso,omitempty"`
	Descanso          int      `json:"descanso"`
	Notas             string   `json:"notas,omitempty"`

	EjercicioBase *EjercicioBase `json:"ejercicio_base,omitempty"`
}
