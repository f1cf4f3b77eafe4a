package domain

import "time"

// RecordEjercicio is the fixed set of lifts tracked as personal records.
type RecordEjercicio string

const (
	RecordPressBanca RecordEjercicio = "press_banca"
	RecordSentadilla RecordEjercicio = "sentadilla"
	RecordPesoMuerto RecordEjercicio = "peso_muerto"
	RecordDominadas  RecordEjercicio = "dominadas"
)

// ValidRecordEjercicio reports whether e is one of the tracked lifts.
func ValidRecordEjercicio(e RecordEjercicio) bool {
	switch e {
	case RecordPressBanca, RecordSentadilla, RecordPesoMuerto, RecordDominadas:
		return true
	}
	return false
}

// PersonalRecord is one PR entry for a student.
type PersonalRecord struct {
	ID           int64           `json:"id"`
	AlumnoID     int64           `json:"alumno_id"`
	Ejercicio    RecordEjercicio `json:"ejercicio"`
	Peso         float64         `json:"peso"` // kg
	Repeticiones int             `json:"repeticiones"`
	Fecha        time.Time       `json:"fecha"`
}
