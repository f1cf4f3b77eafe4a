package domain

import "time"

// Alumno is a coach's client: the subject of routines, diets, weight
// history, personal records and injuries.
type Alumno struct {
	ID                    int64      `json:"id"`
	CoachID               int64      `json:"coach_id"`
	Nombre                string     `json:"nombre"`
	Email                 string     `json:"email"`
	FechaNacimiento       time.Time  `json:"fecha_nacimiento"`
	Altura                float64    `json:"altura"` // meters
	Objetivo              string     `json:"objetivo"`
	FechaCobro            *time.Time `json:"fecha_cobro,omitempty"`
	NotificacionesActivas bool       `json:"notificaciones_activas"`
	UltimaNotificacion    *time.Time `json:"ultima_notificacion,omitempty"`
	CreadoEn              time.Time  `json:"creado_en"`
}

// Edad returns the student's age in full years at the given instant.
func (a *Alumno) Edad(now time.Time) int {
	years := now.Year() - a.FechaNacimiento.Year()
	if now.YearDay() < a.FechaNacimiento.YearDay() {
		years--
	}
	return years
}

// PesoAlumno is one entry of a student's weight history.
type PesoAlumno struct {
	ID       int64     `json:"id"`
	AlumnoID int64     `json:"alumno_id"`
	Peso     float64   `json:"peso"` // kg
	Fecha    time.Time `json:"fecha"`
}
