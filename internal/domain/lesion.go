package domain

import "time"

// Lesion is an injury record for a student.
type Lesion struct {
	ID          int64      `json:"id"`
	AlumnoID    int64      `json:"alumno_id"`
	Nombre      string     `json:"nombre"`
	Descripcion string     `json:"descripcion"`
	EsCronica   bool       `json:"es_cronica"`
	FechaInicio *time.Time `json:"fecha_inicio,omitempty"`
	FechaFin    *time.Time `json:"fecha_fin,omitempty"`
	Activa      bool       `json:"activa"`
	CreadaEn    time.Time  `json:"creada_en"`
}
